package model1

import (
	"fmt"
	"strings"
)

// ChangeOp represents a single structural delta. From carries the affected
// position for single-position kinds; To is only set for moves.
type ChangeOp struct {
	Kind OpKind
	From Position
	To   Position
}

func InsertRow(p Position) ChangeOp { return ChangeOp{Kind: OpInsertRow, From: p} }
func DeleteRow(p Position) ChangeOp { return ChangeOp{Kind: OpDeleteRow, From: p} }
func UpdateRow(p Position) ChangeOp { return ChangeOp{Kind: OpUpdateRow, From: p} }

func MoveRow(from, to Position) ChangeOp {
	return ChangeOp{Kind: OpMoveRow, From: from, To: to}
}

func InsertSection(idx int) ChangeOp {
	return ChangeOp{Kind: OpInsertSection, From: SectionPosition(idx)}
}

func DeleteSection(idx int) ChangeOp {
	return ChangeOp{Kind: OpDeleteSection, From: SectionPosition(idx)}
}

func UpdateSection(idx int) ChangeOp {
	return ChangeOp{Kind: OpUpdateSection, From: SectionPosition(idx)}
}

func MoveSection(from, to int) ChangeOp {
	return ChangeOp{Kind: OpMoveSection, From: SectionPosition(from), To: SectionPosition(to)}
}

// IsSection returns true if the op targets whole sections.
func (o ChangeOp) IsSection() bool {
	return o.Kind.IsSection()
}

// IsMove returns true for row or section moves.
func (o ChangeOp) IsMove() bool {
	return o.Kind == OpMoveRow || o.Kind == OpMoveSection
}

func (o ChangeOp) String() string {
	if o.IsMove() {
		return fmt.Sprintf("%s%s->%s", o.Kind, o.From, o.To)
	}
	return fmt.Sprintf("%s%s", o.Kind, o.From)
}

// ApplyOrder is the order in which op kinds are replayed within a single
// batch. Deletes come before inserts at each granularity: deletes and
// move sources are expressed against the pre-batch state, inserts and
// move targets against the post-batch state.
var ApplyOrder = []OpKind{
	OpUpdateRow,
	OpDeleteRow,
	OpInsertRow,
	OpMoveRow,
	OpDeleteSection,
	OpInsertSection,
	OpMoveSection,
	OpUpdateSection,
}

// Change represents the net structural effect of one mutation batch.
type Change struct {
	unknown bool
	ops     []ChangeOp
}

// Unknown returns a change carrying no structural detail. Consumers
// must discard incremental reasoning and reload.
func Unknown() Change {
	return Change{unknown: true}
}

// Batch returns a change made of the given ops. An empty batch is a no-op.
func Batch(ops ...ChangeOp) Change {
	cc := make([]ChangeOp, len(ops))
	copy(cc, ops)
	return Change{ops: cc}
}

// IsUnknown returns true if no structural detail is available.
func (c Change) IsUnknown() bool {
	return c.unknown
}

// IsEmpty returns true for a batch without ops.
func (c Change) IsEmpty() bool {
	return !c.unknown && len(c.ops) == 0
}

// Len returns the number of ops.
func (c Change) Len() int {
	return len(c.ops)
}

// Ops returns a copy of the ops in emission order.
func (c Change) Ops() []ChangeOp {
	out := make([]ChangeOp, len(c.ops))
	copy(out, c.ops)
	return out
}

// Group returns the ops of the given kind in emission order.
func (c Change) Group(k OpKind) []ChangeOp {
	var out []ChangeOp
	for _, o := range c.ops {
		if o.Kind == k {
			out = append(out, o)
		}
	}
	return out
}

// Grouped returns the ops regrouped by ApplyOrder.
func (c Change) Grouped() []ChangeOp {
	out := make([]ChangeOp, 0, len(c.ops))
	for _, k := range ApplyOrder {
		out = append(out, c.Group(k)...)
	}
	return out
}

// Equal compares two changes structurally.
func (c Change) Equal(o Change) bool {
	if c.unknown != o.unknown || len(c.ops) != len(o.ops) {
		return false
	}
	for i := range c.ops {
		if c.ops[i] != o.ops[i] {
			return false
		}
	}
	return true
}

func (c Change) String() string {
	if c.unknown {
		return "unknown"
	}
	ss := make([]string, 0, len(c.ops))
	for _, o := range c.ops {
		ss = append(ss, o.String())
	}
	return "batch(" + strings.Join(ss, " ") + ")"
}
