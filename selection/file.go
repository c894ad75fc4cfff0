package selection

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/pbitheme/model"
)

// ErrTypeMismatch is returned when a selection file entry names a visual
// type that differs from the visual found at its address.
var ErrTypeMismatch = errors.New("visual type mismatch")

// File is the YAML form of an overlay, used to save a selection and apply
// it again later.
//
//	visuals:
//	  - page: ReportSection
//	    index: 0
//	    type: card
//	    selected: true
//	    exclude: [border]
//	    wildcard: [title]
type File struct {
	Visuals []VisualEntry `yaml:"visuals"`
}

// VisualEntry is the selection state of one visual. Page may be a page ID
// or a display name. Type and Label are informational; when Type is set it
// must match the visual.
type VisualEntry struct {
	Page     string   `yaml:"page"`
	Index    int      `yaml:"index"`
	Type     string   `yaml:"type,omitempty"`
	Label    string   `yaml:"label,omitempty"`
	Selected bool     `yaml:"selected"`
	Exclude  []string `yaml:"exclude,omitempty"`
	Wildcard []string `yaml:"wildcard,omitempty"`
}

// Snapshot captures the state of every selectable visual of the overlay.
func Snapshot(o *Overlay) *File {
	f := &File{}
	for _, v := range o.report.Visuals() {
		if v.Type == "" {
			continue
		}
		entry := VisualEntry{
			Page:     v.PageID,
			Index:    v.Index,
			Type:     v.Type,
			Label:    v.Label(),
			Selected: o.VisualSelected(v.PageID, v.Index),
		}
		for _, name := range v.ObjectNames() {
			if !v.Objects[name].HasProperties() {
				continue
			}
			if !o.ObjectSelected(v.PageID, v.Index, name) {
				entry.Exclude = append(entry.Exclude, name)
			}
			if o.Wildcard(v.PageID, v.Index, name) {
				entry.Wildcard = append(entry.Wildcard, name)
			}
		}
		f.Visuals = append(f.Visuals, entry)
	}
	return f
}

// Apply sets the overlay state from the file. Visuals that are not listed
// keep their current state. Every entry is attempted; the returned error
// joins all failures.
func (f *File) Apply(o *Overlay) error {
	var errs []error
	for _, entry := range f.Visuals {
		if err := entry.apply(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e VisualEntry) apply(o *Overlay) error {
	page := o.report.FindPage(e.Page)
	if page == nil {
		return fmt.Errorf("%w: no page %q", ErrUnknownVisual, e.Page)
	}
	v := page.Visual(e.Index)
	if v == nil {
		return fmt.Errorf("%w: page %q index %d", ErrUnknownVisual, e.Page, e.Index)
	}
	if e.Type != "" && e.Type != v.Type {
		return fmt.Errorf("%w: page %q index %d is %q, not %q", ErrTypeMismatch, e.Page, e.Index, v.Type, e.Type)
	}

	var errs []error
	if err := o.SetVisualSelected(page.ID, v.Index, e.Selected); err != nil {
		errs = append(errs, err)
	}
	for _, name := range e.Exclude {
		if err := o.SetObjectSelected(page.ID, v.Index, name, false); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range e.Wildcard {
		if err := o.SetWildcard(page.ID, v.Index, name, true); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Decode reads a selection file from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decoding selection: %w", err)
	}
	return &f, nil
}

// Encode writes the file as YAML to w.
func (f *File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding selection: %w", err)
	}
	return enc.Close()
}

// LoadFile reads a selection file from path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Decode(fh)
}

// SaveFile writes the file to path.
func (f *File) SaveFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Encode(fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// Labels returns a label for every visual the file selects, for display.
func (f *File) Labels(report *model.Report) []string {
	var labels []string
	for _, e := range f.Visuals {
		if !e.Selected {
			continue
		}
		page := report.FindPage(e.Page)
		if page == nil {
			continue
		}
		if v := page.Visual(e.Index); v != nil {
			labels = append(labels, fmt.Sprintf("%s #%d %s", page.Label(), v.Index, v.Label()))
		}
	}
	return labels
}
