package model

import "github.com/a1s/gridbind/internal/model1"

// SectionTextFunc computes a section header or footer.
type SectionTextFunc[E any] func(ds DataSource[E], section int) string

// FromFirst summarizes a section with its first element.
func FromFirst[E any](fn func(E) string) SectionTextFunc[E] {
	return FromNth(0, fn)
}

// FromLast summarizes a section with its last element.
func FromLast[E any](fn func(E) string) SectionTextFunc[E] {
	return func(ds DataSource[E], section int) string {
		e, ok := Lookup(ds, model1.At(section, ds.ItemCount(section)-1))
		if !ok {
			return ""
		}
		return fn(e)
	}
}

// FromNth summarizes a section with its nth element.
func FromNth[E any](n int, fn func(E) string) SectionTextFunc[E] {
	return func(ds DataSource[E], section int) string {
		e, ok := Lookup(ds, model1.At(section, n))
		if !ok {
			return ""
		}
		return fn(e)
	}
}

// Static returns the same text for every section.
func Static[E any](s string) SectionTextFunc[E] {
	return func(DataSource[E], int) string {
		return s
	}
}

// SectionTexts derives section headers and footers from section
// content. Empty sections yield empty texts.
type SectionTexts[E any] struct {
	source DataSource[E]
	header SectionTextFunc[E]
	footer SectionTextFunc[E]
}

// NewSectionTexts returns section texts over a data source. Either func
// may be nil.
func NewSectionTexts[E any](ds DataSource[E], header, footer SectionTextFunc[E]) *SectionTexts[E] {
	return &SectionTexts[E]{
		source: ds,
		header: header,
		footer: footer,
	}
}

// Header returns the section header.
func (s *SectionTexts[E]) Header(section int) string {
	if s.header == nil {
		return ""
	}
	return s.header(s.source, section)
}

// Footer returns the section footer.
func (s *SectionTexts[E]) Footer(section int) string {
	if s.footer == nil {
		return ""
	}
	return s.footer(s.source, section)
}
