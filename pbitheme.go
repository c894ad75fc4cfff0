// Package pbitheme extracts the formatting of a Power BI report (.pbix) and
// compiles the parts you select into a report theme.
//
// Basic usage:
//
//	s, err := pbitheme.Open("sales.pbix")
//	if err != nil {
//	    // handle error
//	}
//	if w := s.Warnings(); len(w) > 0 {
//	    log.Println("Warnings:", pbitheme.FormatWarnings(w))
//	}
//
//	s.ToggleVisualSelected("ReportSection", 0)
//	doc, conflicts := s.Compile(theme.GeneralFields{Name: "Sales"})
//	if len(conflicts) > 0 {
//	    // a visual type or wildcard object was selected twice
//	}
//	data, _ := doc.JSON()
//
// The lower-level packages pbix, builder, selection and theme can be used
// on their own.
package pbitheme

import (
	"github.com/tsawler/pbitheme/builder"
	"github.com/tsawler/pbitheme/pbix"
)

// Open reads the report package at path and builds its model with the
// default selection. Errors are *pbix.ValidationError or *pbix.FormatError.
//
// Example:
//
//	s, err := pbitheme.Open("sales.pbix")
func Open(path string, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	layout, err := pbix.ReadLayout(path)
	if err != nil {
		o.logger.Debug("cannot open package", "path", path, "error", err)
		return nil, err
	}
	o.logger.Info("opened package", "path", path, "pages", len(layout.Sections))
	return newSession(path, layout, o), nil
}

// FromLayout creates a session from an already parsed layout document.
// This is useful when the layout comes from somewhere other than a file.
//
// Example:
//
//	layout, err := pbix.ParseLayout(data)
//	if err != nil {
//	    // handle error
//	}
//	s := pbitheme.FromLayout(layout)
func FromLayout(layout *pbix.Layout, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newSession("", layout, o)
}

func newSession(path string, layout *pbix.Layout, o options) *Session {
	res := builder.Build(layout, builder.WithLogger(o.logger))
	return &Session{
		path:     path,
		report:   res.Report,
		overlay:  res.Overlay,
		warnings: res.Warnings,
		logger:   o.logger,
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	s := pbitheme.Must(pbitheme.Open("sales.pbix"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
