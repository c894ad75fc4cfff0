package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pbitheme/property"
)

func newTestReport() *Report {
	r := NewReport()

	p1 := NewPage("ReportSection1", "Overview")
	title := NewObject("title")
	title.Properties["text"] = property.String("Revenue")
	p1.AddVisual("card", map[string]*Object{"title": title})
	p1.AddVisual("clusteredColumnChart", nil)
	p1.AddVisual(PageVisualType, nil)
	r.AddPage(p1)

	p2 := NewPage("ReportSection2", "")
	p2.AddVisual("card", nil)
	p2.AddVisual("", nil)
	p2.AddVisual(PageVisualType, nil)
	r.AddPage(p2)

	return r
}

func TestReport_Lookup(t *testing.T) {
	r := newTestReport()

	assert.Equal(t, 2, r.PageCount())
	require.NotNil(t, r.Page("ReportSection2"))
	assert.Nil(t, r.Page("missing"))
	assert.Same(t, r.Pages[0], r.FindPage("Overview"))
	assert.Same(t, r.Pages[1], r.FindPage("ReportSection2"))
	assert.Nil(t, r.FindPage(""))

	v := r.Visual("ReportSection1", 1)
	require.NotNil(t, v)
	assert.Equal(t, "clusteredColumnChart", v.Type)
	assert.Equal(t, "ReportSection1", v.PageID)
	assert.Equal(t, 1, v.Index)

	assert.Nil(t, r.Visual("ReportSection1", 3))
	assert.Nil(t, r.Visual("ReportSection1", -1))
	assert.Nil(t, r.Visual("missing", 0))
	assert.Len(t, r.Visuals(), 6)
}

func TestReport_VisualTypes(t *testing.T) {
	assert.Equal(t, []string{"card", "clusteredColumnChart"}, newTestReport().VisualTypes())
}

func TestPage_AddVisualAssignsIndexes(t *testing.T) {
	p := NewPage("s", "S")
	for i := 0; i < 3; i++ {
		v := p.AddVisual("card", nil)
		assert.Equal(t, i, v.Index)
		assert.NotNil(t, v.Objects)
	}
	assert.Equal(t, "S", p.Label())
	assert.Equal(t, "s", NewPage("s", "").Label())
}

func TestVisual_Label(t *testing.T) {
	r := newTestReport()
	assert.Equal(t, "card - Revenue", r.Visual("ReportSection1", 0).Label())
	assert.Equal(t, "Revenue", r.Visual("ReportSection1", 0).Title())
	assert.Equal(t, "clusteredColumnChart", r.Visual("ReportSection1", 1).Label())
	assert.Equal(t, "(unknown)", r.Visual("ReportSection2", 1).Label())
	assert.True(t, r.Visual("ReportSection2", 2).IsPage())
}

func TestObject_Names(t *testing.T) {
	o := NewObject("labels")
	assert.False(t, o.HasProperties())

	o.Properties["fontSize"] = property.Number(12)
	o.Properties["color"] = property.Color("#ffffff")
	assert.True(t, o.HasProperties())
	assert.Equal(t, []string{"color", "fontSize"}, o.PropertyNames())

	v := &Visual{Objects: map[string]*Object{"title": NewObject("title"), "labels": o}}
	assert.Equal(t, []string{"labels", "title"}, v.ObjectNames())
	assert.Same(t, o, v.Object("labels"))
}

func TestWarning_String(t *testing.T) {
	w := Warning{PageID: "s1", VisualIndex: 2, Object: "title", Property: "fontColor", Message: "unsupported"}
	assert.Equal(t, "page s1, visual 2, object title, property fontColor: unsupported", w.String())

	w = Warning{PageID: "s1", VisualIndex: -1, Message: "bad page config"}
	assert.Equal(t, "page s1: bad page config", w.String())

	assert.Equal(t, "x\ny", FormatWarnings([]Warning{{VisualIndex: -1, Message: "x"}, {VisualIndex: -1, Message: "y"}}))
}
