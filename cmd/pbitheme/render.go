package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tsawler/pbitheme/colorutil"
	"github.com/tsawler/pbitheme/model"
	"github.com/tsawler/pbitheme/property"
	"github.com/tsawler/pbitheme/selection"
	"github.com/tsawler/pbitheme/theme"
)

// colorEnabled resolves the color mode for w. "auto" enables color only
// for terminals without NO_COLOR set.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// styles holds the lipgloss styles for one output stream.
type styles struct {
	r *lipgloss.Renderer

	page     lipgloss.Style
	visual   lipgloss.Style
	object   lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	errTag   lipgloss.Style
	warnTag  lipgloss.Style
}

func newStyles(w io.Writer, color bool) *styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &styles{
		r:        r,
		page:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		visual:   r.NewStyle().Foreground(lipgloss.Color("39")),
		object:   r.NewStyle().Foreground(lipgloss.Color("46")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("240")),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		errTag:   r.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("196")).Foreground(lipgloss.Color("15")),
		warnTag:  r.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("214")).Foreground(lipgloss.Color("15")),
	}
}

// swatch renders a small block filled with hex, or nothing for values that
// are not colors.
func (s *styles) swatch(hex string) string {
	if !colorutil.IsValidHexColor(hex) {
		return ""
	}
	return s.r.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

func (s *styles) value(v property.Value) string {
	if v.Kind == property.KindColor {
		if v.Text == "" {
			return s.muted.Render("(unresolved color)")
		}
		return s.swatch(v.Text) + " " + v.Text
	}
	return v.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// renderReport writes the page, visual and object tree of a report.
func renderReport(w io.Writer, s *styles, ov *selection.Overlay) {
	report := ov.Report()
	for _, page := range report.Pages {
		fmt.Fprintf(w, "%s %s\n", s.page.Render(page.Label()), s.muted.Render("("+page.ID+")"))
		for _, v := range page.Visuals {
			renderVisual(w, s, ov, v)
		}
	}
}

func renderVisual(w io.Writer, s *styles, ov *selection.Overlay, v *model.Visual) {
	box := checkbox(ov.VisualSelected(v.PageID, v.Index))
	if ov.VisualSelected(v.PageID, v.Index) {
		box = s.selected.Render(box)
	}
	fmt.Fprintf(w, "  %s %2d  %s\n", box, v.Index, s.visual.Render(v.Label()))

	for _, name := range v.ObjectNames() {
		obj := v.Objects[name]
		if !obj.HasProperties() {
			continue
		}
		flags := checkbox(ov.ObjectSelected(v.PageID, v.Index, name))
		if ov.Wildcard(v.PageID, v.Index, name) {
			flags += " *"
		}
		props := make([]string, 0, len(obj.Properties))
		for _, p := range obj.PropertyNames() {
			props = append(props, p+"="+s.value(obj.Properties[p]))
		}
		fmt.Fprintf(w, "        %s %s: %s\n", flags, s.object.Render(name), strings.Join(props, " "))
	}
}

// renderConflicts writes one block per conflict.
func renderConflicts(w io.Writer, s *styles, conflicts []theme.ConflictError) {
	for _, c := range conflicts {
		fmt.Fprintf(w, "%s %s\n", s.errTag.Render(c.Tag()), c.Kind.Summary())
		for _, l := range c.Locations {
			fmt.Fprintf(w, "    %s is selected on %s\n", c.Name, l)
		}
	}
}

func renderWarnings(w io.Writer, s *styles, warnings []model.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "%s %s\n", s.warnTag.Render("WARN"), warn)
	}
}

// rampSteps are the shade percentages shown by the palette command.
var rampSteps = []float64{-0.5, -0.25, 0, 0.25, 0.5}

func renderPalette(w io.Writer, s *styles, ramp bool) error {
	for i, hex := range property.Palette() {
		line := fmt.Sprintf("%2d %s %s", i, s.swatch(hex), hex)
		if ramp {
			var steps []string
			for _, pct := range rampSteps {
				shaded, err := colorutil.Shade(hex, pct)
				if err != nil {
					return err
				}
				steps = append(steps, s.swatch(shaded)+" "+shaded)
			}
			line += "   " + strings.Join(steps, "  ")
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
