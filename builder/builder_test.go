package builder

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pbitheme/model"
	"github.com/tsawler/pbitheme/pbix"
	"github.com/tsawler/pbitheme/property"
)

// visualConfig returns the config string of a visual container.
func visualConfig(t *testing.T, visualType string, objects, vcObjects map[string]any) string {
	t.Helper()
	sv := map[string]any{"visualType": visualType}
	if objects != nil {
		sv["objects"] = objects
	}
	if vcObjects != nil {
		sv["vcObjects"] = vcObjects
	}
	data, err := json.Marshal(map[string]any{"name": "v", "singleVisual": sv})
	require.NoError(t, err)
	return string(data)
}

func props(p map[string]any) []any {
	return []any{map[string]any{"properties": p}}
}

func literal(v string) map[string]any {
	return map[string]any{"expr": map[string]any{"Literal": map[string]any{"Value": v}}}
}

func themeColor(id int, percent float64) map[string]any {
	return map[string]any{"solid": map[string]any{"color": map[string]any{"expr": map[string]any{
		"ThemeDataColor": map[string]any{"ColorId": id, "Percent": percent},
	}}}}
}

func testLayout(t *testing.T) *pbix.Layout {
	card := visualConfig(t, "card",
		map[string]any{
			"labels": props(map[string]any{
				"fontSize": literal("12D"),
				"color":    themeColor(2, 0),
			}),
			"title": props(map[string]any{"show": literal("false")}),
		},
		map[string]any{
			"title":  props(map[string]any{"show": literal("true"), "text": literal("'Revenue'")}),
			"border": props(map[string]any{}),
		},
	)
	chart := visualConfig(t, "clusteredColumnChart",
		map[string]any{
			"dataPoint": props(map[string]any{
				"fill":        themeColor(99, 0),
				"transparent": map[string]any{"kind": 1},
			}),
		}, nil)

	return &pbix.Layout{Sections: []pbix.Section{
		{
			Name:        "ReportSection1",
			DisplayName: "Overview",
			Config:      `{"objects":{"background":[{"properties":{"transparency":{"expr":{"Literal":{"Value":"50D"}}}}}]}}`,
			VisualContainers: []pbix.VisualContainer{
				{Config: card},
				{Config: "not json"},
				{Config: chart},
			},
		},
		{
			Name:        "ReportSection2",
			DisplayName: "Detail",
			Config:      "{broken",
		},
	}}
}

func TestBuild_Structure(t *testing.T) {
	res := Build(testLayout(t))
	r := res.Report

	require.Equal(t, 2, r.PageCount())
	p1 := r.Pages[0]
	assert.Equal(t, "ReportSection1", p1.ID)
	assert.Equal(t, "Overview", p1.DisplayName)
	require.Len(t, p1.Visuals, 4)

	for i, v := range p1.Visuals {
		assert.Equal(t, i, v.Index)
		assert.Equal(t, "ReportSection1", v.PageID)
	}
	assert.Equal(t, "card", p1.Visuals[0].Type)
	assert.Equal(t, "", p1.Visuals[1].Type, "unreadable config keeps its index")
	assert.Empty(t, p1.Visuals[1].Objects)
	assert.Equal(t, "clusteredColumnChart", p1.Visuals[2].Type)
	assert.True(t, p1.Visuals[3].IsPage())

	p2 := r.Pages[1]
	require.Len(t, p2.Visuals, 1)
	assert.True(t, p2.Visuals[0].IsPage())
	assert.Empty(t, p2.Visuals[0].Objects)
}

func TestBuild_Values(t *testing.T) {
	r := Build(testLayout(t)).Report
	card := r.Visual("ReportSection1", 0)

	labels := card.Object("labels")
	require.NotNil(t, labels)
	assert.Equal(t, property.Number(12), labels.Properties["fontSize"])
	assert.Equal(t, property.Color("#01b8aa"), labels.Properties["color"])

	// vcObjects replaces objects for the same name.
	title := card.Object("title")
	require.NotNil(t, title)
	assert.Equal(t, property.Bool(true), title.Properties["show"])
	assert.Equal(t, "card - Revenue", card.Label())

	border := card.Object("border")
	require.NotNil(t, border)
	assert.False(t, border.HasProperties())

	chart := r.Visual("ReportSection1", 2)
	dp := chart.Object("dataPoint")
	assert.Equal(t, property.Color(""), dp.Properties["fill"])
	_, ok := dp.Properties["transparent"]
	assert.False(t, ok, "plain objects are not style properties")

	page := r.Visual("ReportSection1", 3)
	assert.Equal(t, property.Number(50), page.Object("background").Properties["transparency"])
}

func TestBuild_Warnings(t *testing.T) {
	res := Build(testLayout(t))

	require.Len(t, res.Warnings, 3)
	assert.Equal(t, model.Warning{PageID: "ReportSection1", VisualIndex: 1}, stripMessage(res.Warnings[0]))
	assert.Equal(t, model.Warning{PageID: "ReportSection1", VisualIndex: 2, Object: "dataPoint", Property: "fill"}, stripMessage(res.Warnings[1]))
	assert.Contains(t, res.Warnings[1].Message, "ColorId 99")
	assert.Equal(t, model.Warning{PageID: "ReportSection2", VisualIndex: 0}, stripMessage(res.Warnings[2]))

	for _, w := range res.Warnings {
		require.NotNil(t, res.Report.Visual(w.PageID, w.VisualIndex), w.String())
	}
	assert.Equal(t, model.PageVisualType, res.Report.Visual("ReportSection2", 0).Type)
}

func stripMessage(w model.Warning) model.Warning {
	w.Message = ""
	return w
}

func TestBuild_DefaultSelection(t *testing.T) {
	res := Build(testLayout(t))
	ov := res.Overlay

	assert.Same(t, res.Report, ov.Report())
	assert.Empty(t, ov.SelectedVisuals())
	assert.True(t, ov.ObjectSelected("ReportSection1", 0, "labels"))
	assert.True(t, ov.ObjectSelected("ReportSection1", 0, "title"))
	assert.False(t, ov.ObjectSelected("ReportSection1", 0, "border"))
}

func TestBuild_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	Build(testLayout(t), WithLogger(logger))
	assert.Contains(t, buf.String(), "built report")
	assert.Contains(t, buf.String(), "unreadable visual config")
}

func TestBuild_Nil(t *testing.T) {
	res := Build(nil)
	assert.Equal(t, 0, res.Report.PageCount())
	assert.NotNil(t, res.Overlay)
	assert.Empty(t, res.Warnings)
}
