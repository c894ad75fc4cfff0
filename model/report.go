package model

// Report holds the pages of a report with their extracted formatting.
type Report struct {
	Pages []*Page
}

// NewReport creates a new empty report.
func NewReport() *Report {
	return &Report{
		Pages: make([]*Page, 0),
	}
}

// AddPage adds a page to the report.
func (r *Report) AddPage(page *Page) {
	r.Pages = append(r.Pages, page)
}

// Page returns the page with the given ID, or nil.
func (r *Report) Page(id string) *Page {
	for _, p := range r.Pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindPage returns the page whose ID is ref or, failing that, the first
// page whose display name is ref.
func (r *Report) FindPage(ref string) *Page {
	if ref == "" {
		return nil
	}
	if p := r.Page(ref); p != nil {
		return p
	}
	for _, p := range r.Pages {
		if p.DisplayName == ref {
			return p
		}
	}
	return nil
}

// Visual returns the visual at index on page pageID, or nil.
func (r *Report) Visual(pageID string, index int) *Visual {
	p := r.Page(pageID)
	if p == nil {
		return nil
	}
	return p.Visual(index)
}

// PageCount returns the number of pages.
func (r *Report) PageCount() int {
	return len(r.Pages)
}

// Visuals returns every visual of every page in report order.
func (r *Report) Visuals() []*Visual {
	var visuals []*Visual
	for _, p := range r.Pages {
		visuals = append(visuals, p.Visuals...)
	}
	return visuals
}

// VisualTypes returns the distinct visual types used in the report, in the
// order they are first seen. The synthetic page visuals and visuals of
// unknown type are not included.
func (r *Report) VisualTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, v := range r.Visuals() {
		if v.IsPage() || v.Type == "" || seen[v.Type] {
			continue
		}
		seen[v.Type] = true
		types = append(types, v.Type)
	}
	return types
}

// Page is one report page.
type Page struct {
	ID          string // stable section name
	DisplayName string // label shown in the report
	Visuals     []*Visual
}

// NewPage creates a page without visuals.
func NewPage(id, displayName string) *Page {
	return &Page{
		ID:          id,
		DisplayName: displayName,
		Visuals:     make([]*Visual, 0),
	}
}

// AddVisual appends a visual to the page and assigns its page ID and index.
func (p *Page) AddVisual(visualType string, objects map[string]*Object) *Visual {
	if objects == nil {
		objects = make(map[string]*Object)
	}
	v := &Visual{
		PageID:  p.ID,
		Index:   len(p.Visuals),
		Type:    visualType,
		Objects: objects,
	}
	p.Visuals = append(p.Visuals, v)
	return v
}

// Visual returns the visual at index, or nil.
func (p *Page) Visual(index int) *Visual {
	if index < 0 || index >= len(p.Visuals) {
		return nil
	}
	return p.Visuals[index]
}

// Label returns the display name, or the ID when the page has none.
func (p *Page) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}
