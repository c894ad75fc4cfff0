package pbitheme

import (
	"github.com/charmbracelet/log"

	"github.com/tsawler/pbitheme/model"
	"github.com/tsawler/pbitheme/selection"
	"github.com/tsawler/pbitheme/theme"
)

// Session holds a built report and the current selection. The report does
// not change after Open; the selection is changed in place by the Toggle
// and Select methods. A Session is not safe for concurrent use.
type Session struct {
	path     string
	report   *model.Report
	overlay  *selection.Overlay
	warnings []Warning
	logger   *log.Logger
}

// Path returns the package path, or "" for sessions created by FromLayout.
func (s *Session) Path() string {
	return s.path
}

// Report returns the report model.
func (s *Session) Report() *model.Report {
	return s.report
}

// Overlay returns the selection state.
func (s *Session) Overlay() *selection.Overlay {
	return s.overlay
}

// Warnings returns the problems found while building the report.
func (s *Session) Warnings() []Warning {
	return s.warnings
}

// VisualTypes returns the distinct visual types of the report.
func (s *Session) VisualTypes() []string {
	return s.report.VisualTypes()
}

// ToggleVisualSelected flips the selection of a visual and returns the new
// state.
func (s *Session) ToggleVisualSelected(pageID string, index int) (bool, error) {
	return s.overlay.ToggleVisualSelected(pageID, index)
}

// ToggleObjectSelected flips the selection of an object and returns the new
// state.
func (s *Session) ToggleObjectSelected(pageID string, index int, object string) (bool, error) {
	return s.overlay.ToggleObjectSelected(pageID, index, object)
}

// ToggleWildcard flips the wildcard flag of an object and returns the new
// state.
func (s *Session) ToggleWildcard(pageID string, index int, object string) (bool, error) {
	return s.overlay.ToggleWildcard(pageID, index, object)
}

// SelectAll selects every visual of a page.
func (s *Session) SelectAll(pageID string) error {
	return s.overlay.SetPageSelected(pageID, true)
}

// DeselectAll deselects every visual of a page.
func (s *Session) DeselectAll(pageID string) error {
	return s.overlay.SetPageSelected(pageID, false)
}

// SelectAllObjects selects every object of a visual that has properties.
func (s *Session) SelectAllObjects(pageID string, index int) error {
	return s.overlay.SetObjectsSelected(pageID, index, true)
}

// DeselectAllObjects deselects every object of a visual.
func (s *Session) DeselectAllObjects(pageID string, index int) error {
	return s.overlay.SetObjectsSelected(pageID, index, false)
}

// ResetSelection restores the default selection.
func (s *Session) ResetSelection() {
	s.overlay.Reset()
}

// Selection returns a snapshot of the selection that can be saved and
// applied again later.
func (s *Session) Selection() *selection.File {
	return selection.Snapshot(s.overlay)
}

// ApplySelection applies a saved selection. Entries that do not match the
// report are reported in the returned error; the others are still applied.
func (s *Session) ApplySelection(f *selection.File) error {
	err := f.Apply(s.overlay)
	if err != nil {
		s.logger.Warn("selection partly applied", "error", err)
	}
	return err
}

// Compile builds the theme for the current selection. The selection is not
// changed, so Compile can be called again after fixing conflicts.
func (s *Session) Compile(fields theme.GeneralFields) (*theme.Document, []theme.ConflictError) {
	doc, conflicts := theme.Compile(s.report, s.overlay, fields)
	if len(conflicts) > 0 {
		s.logger.Debug("theme has conflicts", "conflicts", len(conflicts))
		return nil, conflicts
	}
	s.logger.Debug("compiled theme", "name", doc.Name, "visualTypes", doc.VisualTypeCount())
	return doc, nil
}
