// Package pbix reads the layout document embedded in Power BI report
// packages.
//
// A .pbix file is a ZIP archive. The report pages, the visuals on them and
// their formatting live in a single JSON entry, Report/Layout, whose
// config fields are themselves JSON documents encoded as strings.
package pbix

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tsawler/pbitheme/format"
)

// LayoutEntry is the archive entry holding the report layout.
const LayoutEntry = "Report/Layout"

var errEntryNotFound = errors.New("entry not found")

// ReadLayout opens the package at path and parses its layout document.
//
// The archive is closed before ReadLayout returns. Errors are a
// *ValidationError when path does not end in .pbix, or a *FormatError when
// the archive, the layout entry or its JSON is unusable.
func ReadLayout(path string) (*Layout, error) {
	if format.Detect(path) != format.PBIX {
		return nil, &ValidationError{Kind: InvalidExtension, Path: path}
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &FormatError{Kind: UnreadableArchive, Path: path, Err: err}
	}
	defer zr.Close()

	layout, err := readLayout(&zr.Reader)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return layout, nil
}

// ReadLayoutFrom parses the layout document of a package held in r.
// It is useful when the package is already in memory; no extension check
// is made.
func ReadLayoutFrom(r io.ReaderAt, size int64) (*Layout, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &FormatError{Kind: UnreadableArchive, Err: err}
	}
	return readLayout(zr)
}

func readLayout(zr *zip.Reader) (*Layout, error) {
	data, err := getFileContent(zr, LayoutEntry)
	if errors.Is(err, errEntryNotFound) {
		return nil, &FormatError{Kind: MissingLayoutEntry}
	}
	if err != nil {
		return nil, &FormatError{Kind: UnreadableArchive, Err: err}
	}
	return ParseLayout(data)
}

// getFileContent reads the content of a file from the ZIP archive.
func getFileContent(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%w: %s", errEntryNotFound, name)
}

// ParseLayout parses the bytes of a layout entry. The entry is normally
// UTF-16LE without a byte order mark; UTF-16 with a mark and UTF-8 are
// accepted as well.
func ParseLayout(data []byte) (*Layout, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, &FormatError{Kind: MalformedJSON, Err: err}
	}

	var layout Layout
	if err := json.Unmarshal(text, &layout); err != nil {
		return nil, &FormatError{Kind: MalformedJSON, Err: err}
	}
	return &layout, nil
}

// decodeText converts the entry bytes to UTF-8. JSON text starts with an
// ASCII character, so a zero byte in either of the first two positions
// identifies BOM-less UTF-16.
func decodeText(data []byte) ([]byte, error) {
	switch {
	case len(data) >= 2 && data[0] != 0 && data[1] == 0:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	case len(data) >= 2 && data[0] == 0 && data[1] != 0:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(out), nil
}
