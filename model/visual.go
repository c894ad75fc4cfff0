package model

import (
	"sort"

	"github.com/tsawler/pbitheme/property"
)

// PageVisualType is the visual type of the synthetic visual that carries a
// page's own formatting (background, wallpaper, canvas size).
const PageVisualType = "page"

// Visual is one visual on a page.
type Visual struct {
	PageID  string
	Index   int    // position within the page, never changes once assigned
	Type    string // visual type such as "card" or "clusteredColumnChart"
	Objects map[string]*Object
}

// IsPage reports whether v is the synthetic page visual.
func (v *Visual) IsPage() bool {
	return v.Type == PageVisualType
}

// Object returns the named object, or nil.
func (v *Visual) Object(name string) *Object {
	return v.Objects[name]
}

// ObjectNames returns the object names in sorted order.
func (v *Visual) ObjectNames() []string {
	names := make([]string, 0, len(v.Objects))
	for name := range v.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Title returns the visual's title text, if it sets one.
func (v *Visual) Title() string {
	title := v.Objects["title"]
	if title == nil {
		return ""
	}
	text, ok := title.Properties["text"]
	if !ok || text.Kind != property.KindString {
		return ""
	}
	return text.Text
}

// Label returns "type - title" when the visual has a title and the type
// otherwise.
func (v *Visual) Label() string {
	t := v.Type
	if t == "" {
		t = "(unknown)"
	}
	if title := v.Title(); title != "" {
		return t + " - " + title
	}
	return t
}

// Object is a named group of formatting properties on a visual.
type Object struct {
	Name       string
	Properties map[string]property.Value
}

// NewObject creates an object without properties.
func NewObject(name string) *Object {
	return &Object{
		Name:       name,
		Properties: make(map[string]property.Value),
	}
}

// HasProperties reports whether the object carries at least one property.
func (o *Object) HasProperties() bool {
	return len(o.Properties) > 0
}

// PropertyNames returns the property names in sorted order.
func (o *Object) PropertyNames() []string {
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
