// Package selection tracks which visuals and objects of a report are
// included in a theme.
//
// An [Overlay] is a keyed store over a built report: visual flags are
// addressed by (page ID, visual index) and object flags by (page ID, visual
// index, object name). The report itself is never modified.
//
// Defaults when an overlay is created:
//
//   - no visual is selected
//   - an object is selected when it carries at least one property
//   - no object is a wildcard
//
// Objects without properties and visuals of unknown type cannot be
// selected. An Overlay is meant for a single writer and is not safe for
// concurrent use.
package selection

import (
	"errors"
	"fmt"

	"github.com/tsawler/pbitheme/model"
)

var (
	// ErrUnknownVisual is returned when a page ID and index do not address
	// a visual of the report.
	ErrUnknownVisual = errors.New("unknown visual")

	// ErrUnknownObject is returned when a visual has no object of the
	// given name.
	ErrUnknownObject = errors.New("unknown object")

	// ErrNotEligible is returned when selecting an object without
	// properties or a visual of unknown type.
	ErrNotEligible = errors.New("not eligible for selection")
)

// VisualKey addresses a visual.
type VisualKey struct {
	PageID string
	Index  int
}

// ObjectKey addresses an object of a visual.
type ObjectKey struct {
	PageID string
	Index  int
	Object string
}

type objectFlags struct {
	selected bool
	wildcard bool
}

// Overlay holds the selection state for one report.
type Overlay struct {
	report  *model.Report
	visuals map[VisualKey]bool
	objects map[ObjectKey]objectFlags
}

// New creates an overlay with the default selection for report.
func New(report *model.Report) *Overlay {
	o := &Overlay{report: report}
	o.Reset()
	return o
}

// Reset restores the default selection.
func (o *Overlay) Reset() {
	o.visuals = make(map[VisualKey]bool)
	o.objects = make(map[ObjectKey]objectFlags)
	for _, v := range o.report.Visuals() {
		for name, obj := range v.Objects {
			if obj.HasProperties() {
				o.objects[ObjectKey{v.PageID, v.Index, name}] = objectFlags{selected: true}
			}
		}
	}
}

// Report returns the report the overlay belongs to.
func (o *Overlay) Report() *model.Report {
	return o.report
}

// Clone returns an independent copy of the overlay.
func (o *Overlay) Clone() *Overlay {
	c := &Overlay{
		report:  o.report,
		visuals: make(map[VisualKey]bool, len(o.visuals)),
		objects: make(map[ObjectKey]objectFlags, len(o.objects)),
	}
	for k, v := range o.visuals {
		c.visuals[k] = v
	}
	for k, v := range o.objects {
		c.objects[k] = v
	}
	return c
}

// VisualSelected reports whether the visual is selected.
func (o *Overlay) VisualSelected(pageID string, index int) bool {
	return o.visuals[VisualKey{pageID, index}]
}

// SetVisualSelected selects or deselects a visual.
func (o *Overlay) SetVisualSelected(pageID string, index int, selected bool) error {
	v, err := o.visual(pageID, index)
	if err != nil {
		return err
	}
	if selected && v.Type == "" {
		return fmt.Errorf("%w: visual %d on page %s has no type", ErrNotEligible, index, pageID)
	}
	o.visuals[VisualKey{pageID, index}] = selected
	return nil
}

// ToggleVisualSelected flips the selection of a visual and returns the new
// state.
func (o *Overlay) ToggleVisualSelected(pageID string, index int) (bool, error) {
	next := !o.VisualSelected(pageID, index)
	if err := o.SetVisualSelected(pageID, index, next); err != nil {
		return !next, err
	}
	return next, nil
}

// SetPageSelected selects or deselects every eligible visual of a page.
func (o *Overlay) SetPageSelected(pageID string, selected bool) error {
	p := o.report.Page(pageID)
	if p == nil {
		return fmt.Errorf("%w: no page %s", ErrUnknownVisual, pageID)
	}
	for _, v := range p.Visuals {
		if v.Type == "" {
			continue
		}
		o.visuals[VisualKey{pageID, v.Index}] = selected
	}
	return nil
}

// ObjectSelected reports whether the object is selected.
func (o *Overlay) ObjectSelected(pageID string, index int, name string) bool {
	return o.objects[ObjectKey{pageID, index, name}].selected
}

// SetObjectSelected selects or deselects an object.
func (o *Overlay) SetObjectSelected(pageID string, index int, name string, selected bool) error {
	key, err := o.eligibleObject(pageID, index, name)
	if err != nil {
		return err
	}
	flags := o.objects[key]
	flags.selected = selected
	o.objects[key] = flags
	return nil
}

// ToggleObjectSelected flips the selection of an object and returns the new
// state.
func (o *Overlay) ToggleObjectSelected(pageID string, index int, name string) (bool, error) {
	next := !o.ObjectSelected(pageID, index, name)
	if err := o.SetObjectSelected(pageID, index, name, next); err != nil {
		return !next, err
	}
	return next, nil
}

// SetObjectsSelected selects or deselects every eligible object of a visual.
func (o *Overlay) SetObjectsSelected(pageID string, index int, selected bool) error {
	v, err := o.visual(pageID, index)
	if err != nil {
		return err
	}
	for name, obj := range v.Objects {
		if !obj.HasProperties() {
			continue
		}
		key := ObjectKey{pageID, index, name}
		flags := o.objects[key]
		flags.selected = selected
		o.objects[key] = flags
	}
	return nil
}

// Wildcard reports whether the object is applied to all visual types.
func (o *Overlay) Wildcard(pageID string, index int, name string) bool {
	return o.objects[ObjectKey{pageID, index, name}].wildcard
}

// SetWildcard sets or clears the wildcard flag of an object.
func (o *Overlay) SetWildcard(pageID string, index int, name string, wildcard bool) error {
	key, err := o.eligibleObject(pageID, index, name)
	if err != nil {
		return err
	}
	flags := o.objects[key]
	flags.wildcard = wildcard
	o.objects[key] = flags
	return nil
}

// ToggleWildcard flips the wildcard flag of an object and returns the new
// state.
func (o *Overlay) ToggleWildcard(pageID string, index int, name string) (bool, error) {
	next := !o.Wildcard(pageID, index, name)
	if err := o.SetWildcard(pageID, index, name, next); err != nil {
		return !next, err
	}
	return next, nil
}

// SelectedVisuals returns the selected visuals in report order.
func (o *Overlay) SelectedVisuals() []*model.Visual {
	var selected []*model.Visual
	for _, v := range o.report.Visuals() {
		if o.VisualSelected(v.PageID, v.Index) {
			selected = append(selected, v)
		}
	}
	return selected
}

// SelectedObjects returns the selected objects of v sorted by name.
func (o *Overlay) SelectedObjects(v *model.Visual) []*model.Object {
	var objects []*model.Object
	for _, name := range v.ObjectNames() {
		if o.ObjectSelected(v.PageID, v.Index, name) {
			objects = append(objects, v.Objects[name])
		}
	}
	return objects
}

func (o *Overlay) visual(pageID string, index int) (*model.Visual, error) {
	v := o.report.Visual(pageID, index)
	if v == nil {
		return nil, fmt.Errorf("%w: page %s index %d", ErrUnknownVisual, pageID, index)
	}
	return v, nil
}

func (o *Overlay) eligibleObject(pageID string, index int, name string) (ObjectKey, error) {
	v, err := o.visual(pageID, index)
	if err != nil {
		return ObjectKey{}, err
	}
	obj := v.Object(name)
	if obj == nil {
		return ObjectKey{}, fmt.Errorf("%w: %q on page %s visual %d", ErrUnknownObject, name, pageID, index)
	}
	if !obj.HasProperties() {
		return ObjectKey{}, fmt.Errorf("%w: object %q has no properties", ErrNotEligible, name)
	}
	return ObjectKey{pageID, index, name}, nil
}
