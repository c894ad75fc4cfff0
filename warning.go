package pbitheme

import (
	"errors"

	"github.com/tsawler/pbitheme/model"
)

// Warning describes a non-fatal problem found while building the report
// model, such as a visual config or property encoding that could not be
// understood.
type Warning = model.Warning

// FormatWarnings joins warnings into a multi-line string.
func FormatWarnings(warnings []Warning) string {
	return model.FormatWarnings(warnings)
}

// tagger is implemented by errors that carry a kind name.
type tagger interface {
	Tag() string
}

// ErrorTag returns the kind name of err, such as "InvalidExtension" or
// "DuplicateVisualType", looking through wrapped errors. It returns an
// empty string for errors without a kind.
func ErrorTag(err error) string {
	var t tagger
	if errors.As(err, &t) {
		return t.Tag()
	}
	return ""
}
