package model

import (
	"fmt"

	"github.com/a1s/gridbind/internal/model1"
)

// FactoryFunc builds a new element for the given insertion point.
type FactoryFunc[E any] func(model1.Position) (E, error)

// Editor routes user initiated edits back into a mutable provider.
type Editor[E any] struct {
	// CanMoveItems enables Move. Defaults to true.
	CanMoveItems bool

	// CanEditItems enables Delete. Defaults to true.
	CanEditItems bool

	// CanInsertItems enables Insert. Defaults to true.
	CanInsertItems bool

	// Factory builds inserted elements. Insert fails with
	// ErrNotImplemented when nil.
	Factory FactoryFunc[E]

	provider Mutable[E]
}

// NewEditor returns an editor with every capability enabled.
func NewEditor[E any](p Mutable[E]) *Editor[E] {
	return &Editor[E]{
		CanMoveItems:   true,
		CanEditItems:   true,
		CanInsertItems: true,
		provider:       p,
	}
}

// Provider returns the edited provider.
func (e *Editor[E]) Provider() Mutable[E] {
	return e.provider
}

// CanMove returns true if the element at p may be moved.
func (e *Editor[E]) CanMove(p model1.Position) bool {
	return e.CanMoveItems && InRange(e.provider, p)
}

// CanDelete returns true if the element at p may be deleted.
func (e *Editor[E]) CanDelete(p model1.Position) bool {
	return e.CanEditItems && InRange(e.provider, p)
}

// CanInsert returns true if p is a valid insertion point.
func (e *Editor[E]) CanInsert(p model1.Position) bool {
	if !e.CanInsertItems {
		return false
	}
	if p.Section < 0 || p.Section >= e.provider.SectionCount() {
		return false
	}
	return p.Item >= 0 && p.Item <= e.provider.ItemCount(p.Section)
}

// Move relocates an element. When updateView is false the widget already
// shows the new order, so the change is emitted as ViewUnrelated.
func (e *Editor[E]) Move(from, to model1.Position, updateView bool) error {
	if !e.CanMoveItems {
		return fmt.Errorf("move %s: %w", from, ErrNotPermitted)
	}
	m := ViewRelated
	if !updateView {
		m = ViewUnrelated
	}

	return e.provider.MoveItemWithMode(from, to, m)
}

// Delete removes the element at p.
func (e *Editor[E]) Delete(p model1.Position) error {
	if !e.CanEditItems {
		return fmt.Errorf("delete %s: %w", p, ErrNotPermitted)
	}
	_, err := e.provider.DeleteItemWithMode(p, ViewRelated)

	return err
}

// Insert builds a new element with the factory and inserts it at p.
func (e *Editor[E]) Insert(p model1.Position) error {
	if !e.CanInsertItems {
		return fmt.Errorf("insert %s: %w", p, ErrNotPermitted)
	}
	if e.Factory == nil {
		return fmt.Errorf("insert %s: no element factory: %w", p, ErrNotImplemented)
	}
	if !e.CanInsert(p) {
		return outOfRange(p)
	}
	el, err := e.Factory(p)
	if err != nil {
		return fmt.Errorf("insert %s: %w", p, err)
	}

	return e.provider.InsertItemWithMode(p, el, ViewRelated)
}
