package model

import (
	"errors"

	"github.com/a1s/gridbind/internal/model1"
)

var (
	// ErrOutOfRange is returned when a position exceeds the provider extent.
	ErrOutOfRange = errors.New("position out of range")

	// ErrNotImplemented flags an optional capability that was not configured.
	ErrNotImplemented = errors.New("capability not implemented")

	// ErrNotPermitted flags a capability disabled on the editor.
	ErrNotPermitted = errors.New("operation not permitted")
)

// DataSource represents a sectioned collection a view can render.
// Implementations are not safe for concurrent use: all calls and all
// mutations must happen on the UI goroutine.
type DataSource[E any] interface {
	// SectionCount returns the number of sections.
	SectionCount() int

	// ItemCount returns the number of items in a section.
	ItemCount(section int) int

	// ObjectAt returns the element at the given position or an
	// ErrOutOfRange error.
	ObjectAt(model1.Position) (E, error)

	// Observable returns the provider change channel.
	Observable() *Observable
}

// Mutable represents a data source accepting structural edits.
type Mutable[E any] interface {
	DataSource[E]

	// InsertItemWithMode inserts an element and emits an insert change.
	InsertItemWithMode(p model1.Position, e E, m EmitMode) error

	// DeleteItemWithMode removes an element and emits a delete change.
	DeleteItemWithMode(p model1.Position, m EmitMode) (E, error)

	// MoveItemWithMode relocates an element and emits a move change.
	MoveItemWithMode(from, to model1.Position, m EmitMode) error
}

// Dispatcher runs a function on the UI goroutine.
type Dispatcher func(func())

// InlineDispatcher runs the function on the calling goroutine.
func InlineDispatcher(f func()) {
	f()
}

// InRange returns true if p addresses an existing element.
func InRange[E any](ds DataSource[E], p model1.Position) bool {
	if p.Section < 0 || p.Section >= ds.SectionCount() {
		return false
	}
	return p.Item >= 0 && p.Item < ds.ItemCount(p.Section)
}

// Lookup is the tolerant accessor. It returns false instead of failing
// when the position is out of bounds.
func Lookup[E any](ds DataSource[E], p model1.Position) (E, bool) {
	var zero E
	if !InRange(ds, p) {
		return zero, false
	}
	e, err := ds.ObjectAt(p)
	if err != nil {
		return zero, false
	}
	return e, true
}
