package model

import (
	"fmt"
	"sort"

	"github.com/a1s/gridbind/internal/model1"
)

// ArraySection is a named ordered group of elements.
type ArraySection[E any] struct {
	Name  string
	Items []E
}

func (s ArraySection[E]) clone() ArraySection[E] {
	items := make([]E, len(s.Items))
	copy(items, s.Items)
	return ArraySection[E]{Name: s.Name, Items: items}
}

// ArrayProvider is an in-memory sectioned data source. Every mutation
// updates the backing slices first and then emits exactly one change, so
// an observer reacting synchronously sees the new state.
type ArrayProvider[E any] struct {
	sections   []ArraySection[E]
	observable *Observable
}

// NewArrayProvider returns a provider holding one unnamed section per
// element slice.
func NewArrayProvider[E any](sections ...[]E) *ArrayProvider[E] {
	a := ArrayProvider[E]{observable: NewObservable()}
	for _, items := range sections {
		a.sections = append(a.sections, ArraySection[E]{Items: items}.clone())
	}

	return &a
}

// NewNamedArrayProvider returns a provider from named sections.
func NewNamedArrayProvider[E any](sections ...ArraySection[E]) *ArrayProvider[E] {
	a := ArrayProvider[E]{observable: NewObservable()}
	for _, s := range sections {
		a.sections = append(a.sections, s.clone())
	}

	return &a
}

// Observable returns the provider change channel.
func (a *ArrayProvider[E]) Observable() *Observable {
	return a.observable
}

// SectionCount returns the number of sections.
func (a *ArrayProvider[E]) SectionCount() int {
	return len(a.sections)
}

// ItemCount returns the number of items in a section or 0 for an
// unknown section.
func (a *ArrayProvider[E]) ItemCount(section int) int {
	if section < 0 || section >= len(a.sections) {
		return 0
	}
	return len(a.sections[section].Items)
}

// ObjectAt returns the element at p.
func (a *ArrayProvider[E]) ObjectAt(p model1.Position) (E, error) {
	var zero E
	if !a.validItem(p) {
		return zero, outOfRange(p)
	}
	return a.sections[p.Section].Items[p.Item], nil
}

// SectionName returns the section name or "" for an unknown section.
func (a *ArrayProvider[E]) SectionName(section int) string {
	if section < 0 || section >= len(a.sections) {
		return ""
	}
	return a.sections[section].Name
}

// Sections returns a copy of the current sections.
func (a *ArrayProvider[E]) Sections() []ArraySection[E] {
	out := make([]ArraySection[E], 0, len(a.sections))
	for _, s := range a.sections {
		out = append(out, s.clone())
	}
	return out
}

// InsertItem inserts e at p and emits InsertRow.
func (a *ArrayProvider[E]) InsertItem(p model1.Position, e E) error {
	return a.InsertItemWithMode(p, e, ViewRelated)
}

// InsertItemWithMode inserts e at p and emits InsertRow with the given mode.
func (a *ArrayProvider[E]) InsertItemWithMode(p model1.Position, e E, m EmitMode) error {
	if !a.validSlot(p, 0) {
		return outOfRange(p)
	}
	a.sections[p.Section].Items = insertAt(a.sections[p.Section].Items, p.Item, e)
	a.emit(model1.Batch(model1.InsertRow(p)), m)

	return nil
}

// AppendItem adds e at the end of a section.
func (a *ArrayProvider[E]) AppendItem(section int, e E) (model1.Position, error) {
	p := model1.At(section, a.ItemCount(section))
	return p, a.InsertItem(p, e)
}

// DeleteItem removes the element at p and emits DeleteRow.
func (a *ArrayProvider[E]) DeleteItem(p model1.Position) (E, error) {
	return a.DeleteItemWithMode(p, ViewRelated)
}

// DeleteItemWithMode removes the element at p and emits DeleteRow with
// the given mode.
func (a *ArrayProvider[E]) DeleteItemWithMode(p model1.Position, m EmitMode) (E, error) {
	var zero E
	if !a.validItem(p) {
		return zero, outOfRange(p)
	}
	items := a.sections[p.Section].Items
	victim := items[p.Item]
	a.sections[p.Section].Items = append(items[:p.Item], items[p.Item+1:]...)
	a.emit(model1.Batch(model1.DeleteRow(p)), m)

	return victim, nil
}

// MoveItem relocates an element and emits MoveRow. The destination is
// expressed in terms of the final layout.
func (a *ArrayProvider[E]) MoveItem(from, to model1.Position) error {
	return a.MoveItemWithMode(from, to, ViewRelated)
}

// MoveItemWithMode relocates an element and emits MoveRow with the given mode.
func (a *ArrayProvider[E]) MoveItemWithMode(from, to model1.Position, m EmitMode) error {
	if !a.validItem(from) {
		return outOfRange(from)
	}
	shrink := 0
	if from.Section == to.Section {
		shrink = 1
	}
	if !a.validSlot(to, shrink) {
		return outOfRange(to)
	}

	src := a.sections[from.Section].Items
	e := src[from.Item]
	a.sections[from.Section].Items = append(src[:from.Item], src[from.Item+1:]...)
	a.sections[to.Section].Items = insertAt(a.sections[to.Section].Items, to.Item, e)
	a.emit(model1.Batch(model1.MoveRow(from, to)), m)

	return nil
}

// ReplaceItem swaps the element at p and emits UpdateRow.
func (a *ArrayProvider[E]) ReplaceItem(p model1.Position, e E) error {
	if !a.validItem(p) {
		return outOfRange(p)
	}
	a.sections[p.Section].Items[p.Item] = e
	a.emit(model1.Batch(model1.UpdateRow(p)), ViewRelated)

	return nil
}

// InsertSection inserts a section at idx and emits InsertSection.
func (a *ArrayProvider[E]) InsertSection(idx int, name string, items []E) error {
	if idx < 0 || idx > len(a.sections) {
		return outOfRange(model1.SectionPosition(idx))
	}
	s := ArraySection[E]{Name: name, Items: items}.clone()
	a.sections = insertAt(a.sections, idx, s)
	a.emit(model1.Batch(model1.InsertSection(idx)), ViewRelated)

	return nil
}

// DeleteSection removes the section at idx and emits DeleteSection.
func (a *ArrayProvider[E]) DeleteSection(idx int) error {
	if idx < 0 || idx >= len(a.sections) {
		return outOfRange(model1.SectionPosition(idx))
	}
	a.sections = append(a.sections[:idx], a.sections[idx+1:]...)
	a.emit(model1.Batch(model1.DeleteSection(idx)), ViewRelated)

	return nil
}

// MoveSection relocates a section and emits MoveSection.
func (a *ArrayProvider[E]) MoveSection(from, to int) error {
	if from < 0 || from >= len(a.sections) {
		return outOfRange(model1.SectionPosition(from))
	}
	if to < 0 || to >= len(a.sections) {
		return outOfRange(model1.SectionPosition(to))
	}
	s := a.sections[from]
	a.sections = append(a.sections[:from], a.sections[from+1:]...)
	a.sections = insertAt(a.sections, to, s)
	a.emit(model1.Batch(model1.MoveSection(from, to)), ViewRelated)

	return nil
}

// ReplaceSection swaps the content of a section and emits UpdateSection.
func (a *ArrayProvider[E]) ReplaceSection(idx int, name string, items []E) error {
	if idx < 0 || idx >= len(a.sections) {
		return outOfRange(model1.SectionPosition(idx))
	}
	a.sections[idx] = ArraySection[E]{Name: name, Items: items}.clone()
	a.emit(model1.Batch(model1.UpdateSection(idx)), ViewRelated)

	return nil
}

// SortSection stably sorts a section and emits one MoveRow per element
// whose index changed. An already sorted section emits an empty batch.
func (a *ArrayProvider[E]) SortSection(idx int, less func(a, b E) bool) error {
	if idx < 0 || idx >= len(a.sections) {
		return outOfRange(model1.SectionPosition(idx))
	}
	items := a.sections[idx].Items
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return less(items[order[i]], items[order[j]])
	})

	sorted := make([]E, len(items))
	ops := make([]model1.ChangeOp, 0, len(items))
	for to, from := range order {
		sorted[to] = items[from]
		if from != to {
			ops = append(ops, model1.MoveRow(model1.At(idx, from), model1.At(idx, to)))
		}
	}
	a.sections[idx].Items = sorted
	a.emit(model1.Batch(ops...), ViewRelated)

	return nil
}

// SetSections replaces the whole content and emits Unknown.
func (a *ArrayProvider[E]) SetSections(sections ...ArraySection[E]) {
	a.reset(sections)
	a.emit(model1.Unknown(), ViewRelated)
}

// Replace swaps the whole content and emits the given change, which
// must describe the transition from the previous content.
func (a *ArrayProvider[E]) Replace(sections []ArraySection[E], c model1.Change) {
	a.reset(sections)
	a.emit(c, ViewRelated)
}

func (a *ArrayProvider[E]) reset(sections []ArraySection[E]) {
	ss := make([]ArraySection[E], 0, len(sections))
	for _, s := range sections {
		ss = append(ss, s.clone())
	}
	a.sections = ss
}

func (a *ArrayProvider[E]) emit(c model1.Change, m EmitMode) {
	a.observable.Emit(c, m)
}

func (a *ArrayProvider[E]) validItem(p model1.Position) bool {
	if p.Section < 0 || p.Section >= len(a.sections) {
		return false
	}
	return p.Item >= 0 && p.Item < len(a.sections[p.Section].Items)
}

// validSlot checks p as an insertion point, i.e. up to and including the
// end of the section once shrink elements have been removed from it.
func (a *ArrayProvider[E]) validSlot(p model1.Position, shrink int) bool {
	if p.Section < 0 || p.Section >= len(a.sections) {
		return false
	}
	return p.Item >= 0 && p.Item <= len(a.sections[p.Section].Items)-shrink
}

func insertAt[T any](ss []T, idx int, v T) []T {
	var zero T
	ss = append(ss, zero)
	copy(ss[idx+1:], ss[idx:])
	ss[idx] = v

	return ss
}

func outOfRange(p model1.Position) error {
	return fmt.Errorf("%w: %s", ErrOutOfRange, p)
}
