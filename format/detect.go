// Package format provides file format detection for the pbitheme library.
package format

import (
	"path/filepath"
	"strings"
)

// Format represents a file format the library knows about.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PBIX indicates a Power BI report package (.pbix).
	PBIX
	// PBIT indicates a Power BI report template (.pbit).
	PBIT
	// JSON indicates a compiled theme document (.json).
	JSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PBIX:
		return "PBIX"
	case PBIT:
		return "PBIT"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PBIX:
		return ".pbix"
	case PBIT:
		return ".pbit"
	case JSON:
		return ".json"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pbix":
		return PBIX
	case ".pbit":
		return PBIT
	case ".json":
		return JSON
	default:
		return Unknown
	}
}

// ThemeFilename returns a file name for a theme called name, replacing
// characters that are not safe in file names.
func ThemeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "theme"
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	return name + JSON.Extension()
}
