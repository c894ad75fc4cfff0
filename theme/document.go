// Package theme compiles the selected formatting of a report into a theme
// document.
//
// A document holds the general fields (name and colors) and the visual
// styles. Visual styles are keyed by visual type, then by the "*" style
// selector, then by object name:
//
//	{
//	    "name": "My Theme",
//	    "visualStyles": {
//	        "card": {"*": {"labels": [{"fontSize": 12}]}},
//	        "*":    {"*": {"title": [{"show": true}]}}
//	    }
//	}
//
// The "*" visual type holds wildcard objects, which apply to every visual
// type.
package theme

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/pbitheme/colorutil"
	"github.com/tsawler/pbitheme/property"
)

// DefaultName is used when no theme name is given.
const DefaultName = "My Theme"

// Wildcard is the visual type and style selector that match everything.
const Wildcard = "*"

// PropertySet maps property names to values for one object.
type PropertySet map[string]property.Value

// StyleGroup maps object names to their property sets. Each object carries
// a one-element list.
type StyleGroup map[string][]PropertySet

// Document is a compiled theme.
type Document struct {
	Name         string                           `json:"name"`
	DataColors   []string                         `json:"dataColors,omitempty"`
	Background   string                           `json:"background,omitempty"`
	Foreground   string                           `json:"foreground,omitempty"`
	TableAccent  string                           `json:"tableAccent,omitempty"`
	VisualStyles map[string]map[string]StyleGroup `json:"visualStyles"`
}

// JSON returns the document indented with four spaces. Object keys are
// sorted, so equal documents encode to equal bytes.
func (d *Document) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding theme: %w", err)
	}
	return buf.Bytes(), nil
}

// VisualTypeCount returns the number of visual types styled by the document,
// including the wildcard type.
func (d *Document) VisualTypeCount() int {
	return len(d.VisualStyles)
}

// GeneralFields are the theme-wide values entered by the user.
type GeneralFields struct {
	Name        string
	DataColors  []string
	Background  string
	Foreground  string
	TableAccent string
}

// Validate checks that every color field is blank or a hex color. All
// problems are reported together.
func (f GeneralFields) Validate() error {
	var errs []error
	check := func(field, value string) {
		if value != "" && !colorutil.IsValidHexColor(value) {
			errs = append(errs, fmt.Errorf("%s: %w: %q", field, colorutil.ErrInvalidHex, value))
		}
	}
	for i, c := range f.DataColors {
		check(fmt.Sprintf("dataColors[%d]", i), strings.TrimSpace(c))
	}
	check("background", f.Background)
	check("foreground", f.Foreground)
	check("tableAccent", f.TableAccent)
	return errors.Join(errs...)
}

// dataColors returns the non-blank data colors, or nil.
func (f GeneralFields) dataColors() []string {
	var out []string
	for _, c := range f.DataColors {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
