package theme

import (
	"strings"

	"github.com/tsawler/pbitheme/model"
	"github.com/tsawler/pbitheme/selection"
)

// Compile builds the theme document for the selection in ov.
//
// Checks run in order and the first that fails stops compilation:
//
//  1. every selected visual must have a distinct type
//  2. every wildcard object name must come from a single selected visual
//
// On success the document holds the general fields, one style group per
// selected visual type with its selected objects, and a "*" group with the
// wildcard objects. The report and overlay are not modified, so compiling
// the same selection twice gives equal documents.
func Compile(report *model.Report, ov *selection.Overlay, fields GeneralFields) (*Document, []ConflictError) {
	selected := ov.SelectedVisuals()

	var (
		types     []string
		typeLocs  []Location
		wildNames []string
		wildLocs  []Location
	)
	for _, v := range selected {
		loc := location(report, v)
		types = append(types, v.Type)
		typeLocs = append(typeLocs, loc)
		for _, obj := range ov.SelectedObjects(v) {
			if ov.Wildcard(v.PageID, v.Index, obj.Name) {
				wildNames = append(wildNames, obj.Name)
				wildLocs = append(wildLocs, loc)
			}
		}
	}

	if conflicts := duplicates(DuplicateVisualType, types, typeLocs); len(conflicts) > 0 {
		return nil, conflicts
	}
	if conflicts := duplicates(DuplicateWildcardProperty, wildNames, wildLocs); len(conflicts) > 0 {
		return nil, conflicts
	}

	doc := &Document{
		Name:         strings.TrimSpace(fields.Name),
		DataColors:   fields.dataColors(),
		Background:   fields.Background,
		Foreground:   fields.Foreground,
		TableAccent:  fields.TableAccent,
		VisualStyles: make(map[string]map[string]StyleGroup),
	}
	if doc.Name == "" {
		doc.Name = DefaultName
	}

	wildcards := make(StyleGroup)
	for _, v := range selected {
		group := make(StyleGroup)
		for _, obj := range ov.SelectedObjects(v) {
			set := []PropertySet{propertySet(obj)}
			group[obj.Name] = set
			if ov.Wildcard(v.PageID, v.Index, obj.Name) {
				wildcards[obj.Name] = []PropertySet{propertySet(obj)}
			}
		}
		doc.VisualStyles[v.Type] = map[string]StyleGroup{Wildcard: group}
	}
	if len(wildcards) > 0 {
		doc.VisualStyles[Wildcard] = map[string]StyleGroup{Wildcard: wildcards}
	}

	return doc, nil
}

func location(report *model.Report, v *model.Visual) Location {
	loc := Location{PageID: v.PageID, VisualIndex: v.Index, VisualType: v.Type}
	if p := report.Page(v.PageID); p != nil {
		loc.PageName = p.DisplayName
	}
	return loc
}

// propertySet copies the properties of obj so the document does not share
// maps with the report.
func propertySet(obj *model.Object) PropertySet {
	set := make(PropertySet, len(obj.Properties))
	for k, v := range obj.Properties {
		set[k] = v
	}
	return set
}
