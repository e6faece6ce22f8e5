package ui

import (
	"context"
	"errors"
	"strconv"

	"github.com/a1s/gridbind/internal/model1"
	"github.com/derailed/tview"
)

var (
	// ErrInconsistentBatch is returned by a sink rejecting a batch whose
	// ops do not account for the data source counts.
	ErrInconsistentBatch = errors.New("inconsistent batch")

	// ErrMalformedBatch flags ops referencing impossible positions.
	ErrMalformedBatch = errors.New("malformed batch")

	// ErrNestedBatch is returned when a batch scope is already open.
	ErrNestedBatch = errors.New("batch already in progress")
)

// ChangeSink represents a widget able to replay structural changes.
// Deletes, updates and move sources are expressed against the state
// before the batch; inserts and move targets against the state after it.
type ChangeSink interface {
	// ReloadAll discards all visual state and redraws from the source.
	ReloadAll()

	// PerformBatch runs body as one atomic group. It returns an error if
	// the group was discarded.
	PerformBatch(body func()) error

	// InsertRows inserts rows at post batch positions.
	InsertRows([]model1.Position, model1.AnimationKind)

	// DeleteRows deletes rows at pre batch positions.
	DeleteRows([]model1.Position, model1.AnimationKind)

	// UpdateRows redraws rows at pre batch positions.
	UpdateRows([]model1.Position, model1.AnimationKind)

	// MoveRow relocates a single row.
	MoveRow(from, to model1.Position)

	// InsertSections inserts sections at post batch indexes.
	InsertSections([]int, model1.AnimationKind)

	// DeleteSections deletes sections at pre batch indexes.
	DeleteSections([]int, model1.AnimationKind)

	// UpdateSections redraws sections at pre batch indexes.
	UpdateSections([]int, model1.AnimationKind)

	// MoveSection relocates a single section.
	MoveSection(from, to int)
}

// Source represents the rendered content a sink draws from.
type Source interface {
	// SectionCount returns the number of sections.
	SectionCount() int

	// ItemCount returns the number of rows in a section.
	ItemCount(section int) int

	// RowAt returns the rendered row at p.
	RowAt(model1.Position) (model1.Row, bool)

	// SectionTitle returns the section header text.
	SectionTitle(section int) string

	// SectionFooter returns the section summary, drawn on the title row.
	SectionFooter(section int) string

	// Header returns the column header.
	Header() model1.Header
}

// MenuHint represents a keyboard mnemonic.
type MenuHint struct {
	Mnemonic    string
	Description string
	Visible     bool
}

// IsBlank checks if menu hint is a placeholder.
func (m MenuHint) IsBlank() bool {
	return m.Mnemonic == "" && m.Description == "" && !m.Visible
}

// MenuHints represents a collection of hints.
type MenuHints []MenuHint

// Len returns the hints length.
func (h MenuHints) Len() int {
	return len(h)
}

// Swap swaps two elements.
func (h MenuHints) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Less returns true if first hint is less than second.
func (h MenuHints) Less(i, j int) bool {
	n, err1 := strconv.Atoi(h[i].Mnemonic)
	m, err2 := strconv.Atoi(h[j].Mnemonic)
	switch {
	case err1 == nil && err2 == nil:
		return n < m
	case err1 == nil:
		return true
	case err2 == nil:
		return false
	}
	return h[i].Description < h[j].Description
}

// Hinter represent a menu mnemonic provider.
type Hinter interface {
	// Hints returns a collection of menu hints.
	Hints() MenuHints
}

// Primitive represents a UI primitive.
type Primitive interface {
	tview.Primitive

	// Name returns the view name.
	Name() string
}

// Igniter represents a runnable view.
type Igniter interface {
	// Init initializes a component.
	Init(ctx context.Context) error

	// Start starts a component.
	Start()

	// Stop terminates a component.
	Stop()
}

// Component represents a ui component.
type Component interface {
	Primitive
	Igniter
	Hinter
}
