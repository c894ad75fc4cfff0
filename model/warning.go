package model

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal problem found while building a report.
type Warning struct {
	PageID      string
	VisualIndex int // negative when no visual applies
	Object      string
	Property    string
	Message     string
}

// String formats the warning with its location.
func (w Warning) String() string {
	var loc []string
	if w.PageID != "" {
		loc = append(loc, "page "+w.PageID)
	}
	if w.VisualIndex >= 0 {
		loc = append(loc, fmt.Sprintf("visual %d", w.VisualIndex))
	}
	if w.Object != "" {
		loc = append(loc, "object "+w.Object)
	}
	if w.Property != "" {
		loc = append(loc, "property "+w.Property)
	}
	if len(loc) == 0 {
		return w.Message
	}
	return strings.Join(loc, ", ") + ": " + w.Message
}

// FormatWarnings joins warnings into a multi-line string.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
