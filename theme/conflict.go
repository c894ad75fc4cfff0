package theme

import (
	"fmt"
	"strings"
)

// ConflictKind classifies selections that cannot be compiled.
type ConflictKind int

const (
	// DuplicateVisualType means more than one selected visual has the same
	// type. A theme holds one style per visual type.
	DuplicateVisualType ConflictKind = iota + 1
	// DuplicateWildcardProperty means an object name is marked as wildcard
	// on more than one selected visual.
	DuplicateWildcardProperty
)

// String returns the string representation of the kind.
func (k ConflictKind) String() string {
	switch k {
	case DuplicateVisualType:
		return "DuplicateVisualType"
	case DuplicateWildcardProperty:
		return "DuplicateWildcardProperty"
	default:
		return "Unknown"
	}
}

// Location identifies a selected visual involved in a conflict.
type Location struct {
	PageID      string
	PageName    string
	VisualIndex int
	VisualType  string
}

func (l Location) String() string {
	page := l.PageName
	if page == "" {
		page = l.PageID
	}
	return fmt.Sprintf("%s (page %s, visual %d)", l.VisualType, page, l.VisualIndex)
}

// ConflictError reports one visual type or wildcard object name selected
// more than once, with every place it was selected.
type ConflictError struct {
	Kind      ConflictKind
	Name      string
	Locations []Location
}

func (e ConflictError) Error() string {
	locs := make([]string, len(e.Locations))
	for i, l := range e.Locations {
		locs[i] = l.String()
	}
	switch e.Kind {
	case DuplicateVisualType:
		return fmt.Sprintf("%s: visual type %q is selected %d times: %s",
			e.Kind, e.Name, len(e.Locations), strings.Join(locs, "; "))
	case DuplicateWildcardProperty:
		return fmt.Sprintf("%s: wildcard object %q is selected %d times: %s",
			e.Kind, e.Name, len(e.Locations), strings.Join(locs, "; "))
	default:
		return fmt.Sprintf("%s: %q", e.Kind, e.Name)
	}
}

// Tag returns the conflict kind name.
func (e ConflictError) Tag() string { return e.Kind.String() }

// Summary returns the message shown before the list of locations.
func (k ConflictKind) Summary() string {
	switch k {
	case DuplicateVisualType:
		return "Multiple visuals of the same type are selected. Select each visual type only once."
	case DuplicateWildcardProperty:
		return "The same object is marked as wildcard on multiple visuals. Mark each object as wildcard only once."
	default:
		return "The selection cannot be compiled."
	}
}

// duplicates groups locations by key and returns one conflict for every key
// seen more than once, in the order keys were first seen.
func duplicates(kind ConflictKind, keys []string, locs []Location) []ConflictError {
	groups := make(map[string][]Location)
	var order []string
	for i, k := range keys {
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], locs[i])
	}

	var conflicts []ConflictError
	for _, k := range order {
		if len(groups[k]) > 1 {
			conflicts = append(conflicts, ConflictError{Kind: kind, Name: k, Locations: groups[k]})
		}
	}
	return conflicts
}
