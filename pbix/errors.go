package pbix

import "fmt"

// ErrorKind classifies failures to read a report package.
type ErrorKind int

const (
	// InvalidExtension means the path does not name a .pbix file.
	InvalidExtension ErrorKind = iota + 1
	// UnreadableArchive means the file is missing, truncated or not a ZIP archive.
	UnreadableArchive
	// MissingLayoutEntry means the archive has no Report/Layout entry.
	MissingLayoutEntry
	// MalformedJSON means the layout entry is not valid JSON.
	MalformedJSON
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case InvalidExtension:
		return "InvalidExtension"
	case UnreadableArchive:
		return "UnreadableArchive"
	case MissingLayoutEntry:
		return "MissingLayoutEntry"
	case MalformedJSON:
		return "MalformedJSON"
	default:
		return "Unknown"
	}
}

// ValidationError is returned when the input path is rejected before any
// I/O happens.
type ValidationError struct {
	Kind ErrorKind
	Path string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q is not a Power BI report (.pbix) file", e.Kind, e.Path)
}

// Tag returns the error kind name.
func (e *ValidationError) Tag() string { return e.Kind.String() }

// FormatError is returned when the package cannot be read or its layout
// document cannot be parsed.
type FormatError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	var msg string
	switch e.Kind {
	case UnreadableArchive:
		msg = "cannot read archive"
	case MissingLayoutEntry:
		msg = "archive has no " + LayoutEntry + " entry"
	case MalformedJSON:
		msg = "layout document is not valid JSON"
	default:
		msg = "invalid package"
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Tag returns the error kind name.
func (e *FormatError) Tag() string { return e.Kind.String() }
