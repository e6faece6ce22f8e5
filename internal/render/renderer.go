package render

import (
	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/golang/glog"
)

// Renderer turns provider elements into table rows.
type Renderer[E any] interface {
	// Header returns the column header.
	Header() model1.Header

	// Render fills row from an element.
	Render(e E, row *model1.Row) error
}

// Source adapts a data source and a renderer into what a table draws.
type Source[E any] struct {
	data     model.DataSource[E]
	renderer Renderer[E]
	texts    *model.SectionTexts[E]
}

// Bind returns a source rendering ds. texts may be nil.
func Bind[E any](ds model.DataSource[E], r Renderer[E], texts *model.SectionTexts[E]) *Source[E] {
	return &Source[E]{
		data:     ds,
		renderer: r,
		texts:    texts,
	}
}

// SectionCount returns the number of sections.
func (s *Source[E]) SectionCount() int {
	return s.data.SectionCount()
}

// ItemCount returns the number of rows in a section.
func (s *Source[E]) ItemCount(section int) int {
	return s.data.ItemCount(section)
}

// RowAt renders the element at p.
func (s *Source[E]) RowAt(p model1.Position) (model1.Row, bool) {
	e, ok := model.Lookup(s.data, p)
	if !ok {
		return model1.Row{}, false
	}
	var row model1.Row
	if err := s.renderer.Render(e, &row); err != nil {
		glog.Errorf("[render] unable to render %s: %v\n", p, err)
		return model1.Row{}, false
	}

	return row, true
}

// SectionTitle returns the section header text.
func (s *Source[E]) SectionTitle(section int) string {
	if s.texts == nil {
		return ""
	}
	return s.texts.Header(section)
}

// SectionFooter returns the section footer text.
func (s *Source[E]) SectionFooter(section int) string {
	if s.texts == nil {
		return ""
	}
	return s.texts.Footer(section)
}

// Header returns the column header.
func (s *Source[E]) Header() model1.Header {
	return s.renderer.Header()
}
