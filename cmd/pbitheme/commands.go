package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/pbitheme"
	"github.com/tsawler/pbitheme/format"
	"github.com/tsawler/pbitheme/internal/logger"
	"github.com/tsawler/pbitheme/selection"
	"github.com/tsawler/pbitheme/theme"
)

func (a *app) open(path string) (*pbitheme.Session, error) {
	s, err := pbitheme.Open(path, pbitheme.WithLogger(logger.NewComponent("builder")))
	if err != nil {
		return nil, err
	}
	if w := s.Warnings(); len(w) > 0 {
		logger.Info("report has formatting that could not be read", "path", path, "warnings", len(w))
	}
	return s, nil
}

func (a *app) inspectCmd() *cobra.Command {
	var asJSON, showWarnings bool
	cmd := &cobra.Command{
		Use:   "inspect <report.pbix>",
		Short: "List the pages, visuals and formatting objects of a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.stdout, inspectReport(s))
			}
			st := a.styles(a.stdout)
			renderReport(a.stdout, st, s.Overlay())
			if showWarnings {
				renderWarnings(a.stdout, st, s.Warnings())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report model as JSON")
	cmd.Flags().BoolVar(&showWarnings, "warnings", false, "Print formatting that could not be read")
	return cmd
}

func (a *app) selectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selection",
		Short: "Work with selection files",
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init <report.pbix>",
		Short: "Write the default selection of a report for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			f := s.Selection()
			if output == "" || output == "-" {
				return f.Encode(a.stdout)
			}
			if err := f.SaveFile(output); err != nil {
				return err
			}
			logger.Info("wrote selection", "path", output, "visuals", len(f.Visuals))
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "", "Selection file to write (default stdout)")

	cmd.AddCommand(initCmd)
	return cmd
}

func (a *app) compileCmd() *cobra.Command {
	var (
		selectionFile string
		selects       []string
		excludes      []string
		wildcards     []string
	)
	cmd := &cobra.Command{
		Use:   "compile <report.pbix>",
		Short: "Compile the selected visuals into a theme file",
		Long: `Compile the selected visuals into a theme file.

Visuals are addressed as page:index, where page is a page ID or display name
and index is the position shown by inspect. Objects are addressed as
page:index:object. No visual is selected by default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := a.open(args[0])
			if err != nil {
				return err
			}
			if err := applySelection(s, selectionFile, selects, excludes, wildcards); err != nil {
				return err
			}

			fields := a.cfg.Fields()
			if err := fields.Validate(); err != nil {
				return err
			}

			doc, conflicts := s.Compile(fields)
			if len(conflicts) > 0 {
				renderConflicts(a.stderr, a.styles(a.stderr), conflicts)
				return &exitCodeError{code: exitConflict, err: errors.New("selection has conflicts")}
			}

			data, err := doc.JSON()
			if err != nil {
				return err
			}

			output := a.cfg.Output
			if output == "" {
				output = format.ThemeFilename(doc.Name)
			}
			if output == "-" {
				_, err := a.stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			logger.Info("wrote theme", "path", output, "visualTypes", doc.VisualTypeCount())
			fmt.Fprintln(a.stdout, output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&selectionFile, "selection", "", "Selection file to apply")
	f.StringArrayVar(&selects, "select", nil, "Select a visual (page:index)")
	f.StringArrayVar(&excludes, "exclude", nil, "Leave an object out (page:index:object)")
	f.StringArrayVar(&wildcards, "wildcard", nil, "Apply an object to all visual types (page:index:object)")
	f.String("name", "", "Theme name")
	f.StringSlice("data-colors", nil, "Data colors, comma separated")
	f.String("background", "", "Background color")
	f.String("foreground", "", "Foreground color")
	f.String("table-accent", "", "Table accent color")
	f.StringP("output", "o", "", "Theme file to write, - for stdout (default <name>.json)")
	return cmd
}

// applySelection applies a selection file and then the command-line
// selections, which take precedence.
func applySelection(s *pbitheme.Session, file string, selects, excludes, wildcards []string) error {
	if file != "" {
		f, err := selection.LoadFile(file)
		if err != nil {
			return err
		}
		if err := s.ApplySelection(f); err != nil {
			return fmt.Errorf("applying %s: %w", file, err)
		}
	}

	ov := s.Overlay()
	for _, ref := range selects {
		pageID, index, err := parseVisualRef(s, ref)
		if err != nil {
			return err
		}
		if err := ov.SetVisualSelected(pageID, index, true); err != nil {
			return fmt.Errorf("--select %s: %w", ref, err)
		}
	}
	for _, ref := range excludes {
		pageID, index, object, err := parseObjectRef(s, ref)
		if err != nil {
			return err
		}
		if err := ov.SetObjectSelected(pageID, index, object, false); err != nil {
			return fmt.Errorf("--exclude %s: %w", ref, err)
		}
	}
	for _, ref := range wildcards {
		pageID, index, object, err := parseObjectRef(s, ref)
		if err != nil {
			return err
		}
		if err := ov.SetWildcard(pageID, index, object, true); err != nil {
			return fmt.Errorf("--wildcard %s: %w", ref, err)
		}
	}
	return nil
}

// parseVisualRef resolves page:index. The page part may itself contain
// colons, so the index is taken from the last one.
func parseVisualRef(s *pbitheme.Session, ref string) (string, int, error) {
	i := strings.LastIndex(ref, ":")
	if i < 0 {
		return "", 0, fmt.Errorf("invalid visual %q: want page:index", ref)
	}
	index, err := strconv.Atoi(ref[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid visual %q: index is not a number", ref)
	}
	page := s.Report().FindPage(ref[:i])
	if page == nil {
		return "", 0, fmt.Errorf("invalid visual %q: %w: no page %q", ref, selection.ErrUnknownVisual, ref[:i])
	}
	return page.ID, index, nil
}

func parseObjectRef(s *pbitheme.Session, ref string) (string, int, string, error) {
	i := strings.LastIndex(ref, ":")
	if i < 0 || i == len(ref)-1 {
		return "", 0, "", fmt.Errorf("invalid object %q: want page:index:object", ref)
	}
	pageID, index, err := parseVisualRef(s, ref[:i])
	if err != nil {
		return "", 0, "", err
	}
	return pageID, index, ref[i+1:], nil
}

func (a *app) paletteCmd() *cobra.Command {
	var ramp bool
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the accent palette used by theme color references",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return renderPalette(a.stdout, a.styles(a.stdout), ramp)
		},
	}
	cmd.Flags().BoolVar(&ramp, "ramp", false, "Also show shades from -50% to +50%")
	return cmd
}

func (a *app) stripCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "strip <theme.json>",
		Short: "Remove selection bookkeeping keys from a theme file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if f := format.Detect(args[0]); f != format.JSON {
				logger.Warn("input does not look like a theme file", "path", args[0], "format", f)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if !theme.HasBookkeeping(data) {
				logger.Info("nothing to strip", "path", args[0])
			}
			out, err := theme.StripJSON(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if output == "" || output == "-" {
				_, err := a.stdout.Write(out)
				return err
			}
			return os.WriteFile(output, out, 0644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default stdout)")
	return cmd
}

// inspectVisual is the JSON form of a visual printed by inspect --json.
type inspectVisual struct {
	Index    int                       `json:"index"`
	Type     string                    `json:"type"`
	Label    string                    `json:"label"`
	Selected bool                      `json:"selected"`
	Objects  map[string]map[string]any `json:"objects,omitempty"`
}

type inspectPage struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"displayName"`
	Visuals     []inspectVisual `json:"visuals"`
}

type inspectOutput struct {
	Pages       []inspectPage `json:"pages"`
	VisualTypes []string      `json:"visualTypes"`
	Warnings    []string      `json:"warnings,omitempty"`
}

func inspectReport(s *pbitheme.Session) inspectOutput {
	out := inspectOutput{VisualTypes: s.VisualTypes()}
	ov := s.Overlay()
	for _, p := range s.Report().Pages {
		ip := inspectPage{ID: p.ID, DisplayName: p.DisplayName, Visuals: []inspectVisual{}}
		for _, v := range p.Visuals {
			iv := inspectVisual{
				Index:    v.Index,
				Type:     v.Type,
				Label:    v.Label(),
				Selected: ov.VisualSelected(v.PageID, v.Index),
			}
			for name, obj := range v.Objects {
				if !obj.HasProperties() {
					continue
				}
				if iv.Objects == nil {
					iv.Objects = make(map[string]map[string]any)
				}
				props := make(map[string]any, len(obj.Properties))
				for k, val := range obj.Properties {
					props[k] = val
				}
				iv.Objects[name] = props
			}
			ip.Visuals = append(ip.Visuals, iv)
		}
		out.Pages = append(out.Pages, ip)
	}
	for _, w := range s.Warnings() {
		out.Warnings = append(out.Warnings, w.String())
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
