// Package builder turns a parsed layout document into a report model with
// normalized property values and a default selection.
package builder

import (
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/tsawler/pbitheme/model"
	"github.com/tsawler/pbitheme/pbix"
	"github.com/tsawler/pbitheme/property"
	"github.com/tsawler/pbitheme/selection"
)

// Result is the output of Build.
type Result struct {
	Report   *model.Report
	Overlay  *selection.Overlay
	Warnings []model.Warning
}

// Option configures Build.
type Option func(*options)

type options struct {
	logger *log.Logger
}

func defaultOptions() options {
	return options{logger: log.New(io.Discard)}
}

// WithLogger sets the logger used for per-property fallback messages.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Build creates the report model for layout.
//
// Every visual container becomes a visual at the same index on its page,
// followed by one synthetic page visual carrying the section's own
// formatting. A container whose config cannot be parsed is kept as a visual
// with no type and no objects so later indices do not shift. Properties
// whose encoding is not understood get an empty fallback value and a
// warning.
func Build(layout *pbix.Layout, opts ...Option) *Result {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &builder{logger: o.logger}
	report := model.NewReport()
	if layout != nil {
		for _, section := range layout.Sections {
			report.AddPage(b.buildPage(section))
		}
	}

	b.logger.Debug("built report", "pages", report.PageCount(), "visuals", len(report.Visuals()), "warnings", len(b.warnings))

	return &Result{
		Report:   report,
		Overlay:  selection.New(report),
		Warnings: b.warnings,
	}
}

type builder struct {
	logger   *log.Logger
	warnings []model.Warning
}

func (b *builder) warn(w model.Warning) {
	b.warnings = append(b.warnings, w)
	b.logger.Debug(w.Message, "page", w.PageID, "visual", w.VisualIndex, "object", w.Object, "property", w.Property)
}

func (b *builder) buildPage(section pbix.Section) *model.Page {
	page := model.NewPage(section.Name, section.DisplayName)

	for i, container := range section.VisualContainers {
		cfg, err := pbix.ParseVisualConfig(container.Config)
		if err != nil {
			b.warn(model.Warning{
				PageID:      page.ID,
				VisualIndex: i,
				Message:     "unreadable visual config: " + err.Error(),
			})
			page.AddVisual("", nil)
			continue
		}
		sv := cfg.SingleVisual
		page.AddVisual(sv.VisualType, b.buildObjects(page.ID, i, sv.EffectiveObjects()))
	}

	pageIndex := len(page.Visuals)
	var objects map[string]*model.Object
	pageCfg, err := pbix.ParsePageConfig(section.Config)
	if err != nil {
		b.warn(model.Warning{
			PageID:      page.ID,
			VisualIndex: pageIndex,
			Message:     "unreadable page config: " + err.Error(),
		})
	} else {
		objects = b.buildObjects(page.ID, pageIndex, pageCfg.Objects)
	}
	page.AddVisual(model.PageVisualType, objects)

	return page
}

func (b *builder) buildObjects(pageID string, index int, objects pbix.ObjectMap) map[string]*model.Object {
	out := make(map[string]*model.Object, len(objects))
	for _, name := range slices.Sorted(maps.Keys(objects)) {
		obj := model.NewObject(name)
		if variant, ok := pbix.FirstVariant(objects[name]); ok {
			for _, prop := range slices.Sorted(maps.Keys(variant.Properties)) {
				raw := variant.Properties[prop]
				v, ok, err := property.Decode(raw)
				if err != nil {
					b.warn(model.Warning{
						PageID:      pageID,
						VisualIndex: index,
						Object:      name,
						Property:    prop,
						Message:     err.Error(),
					})
				}
				if ok {
					obj.Properties[prop] = v
				}
			}
		}
		out[name] = obj
	}
	return out
}
