package model1_test

import (
	"testing"

	"github.com/a1s/gridbind/internal/model1"
	"github.com/stretchr/testify/assert"
)

func TestChangeUnknownVsEmpty(t *testing.T) {
	u, e := model1.Unknown(), model1.Batch()

	assert.True(t, u.IsUnknown())
	assert.False(t, u.IsEmpty())
	assert.False(t, e.IsUnknown())
	assert.True(t, e.IsEmpty())
	assert.False(t, u.Equal(e))
	assert.Equal(t, "unknown", u.String())
	assert.Equal(t, "batch()", e.String())
}

func TestChangeOpEquality(t *testing.T) {
	uu := map[string]struct {
		a, b  model1.ChangeOp
		equal bool
	}{
		"same-insert": {
			a:     model1.InsertRow(model1.At(0, 1)),
			b:     model1.InsertRow(model1.At(0, 1)),
			equal: true,
		},
		"diff-item": {
			a: model1.InsertRow(model1.At(0, 1)),
			b: model1.InsertRow(model1.At(0, 2)),
		},
		"diff-kind": {
			a: model1.InsertRow(model1.At(0, 1)),
			b: model1.DeleteRow(model1.At(0, 1)),
		},
		"same-move": {
			a:     model1.MoveSection(0, 1),
			b:     model1.MoveSection(0, 1),
			equal: true,
		},
		"reversed-move": {
			a: model1.MoveRow(model1.At(0, 0), model1.At(0, 1)),
			b: model1.MoveRow(model1.At(0, 1), model1.At(0, 0)),
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.equal, u.a == u.b)
		})
	}
}

func TestChangeGrouped(t *testing.T) {
	c := model1.Batch(
		model1.UpdateSection(2),
		model1.MoveSection(0, 1),
		model1.InsertSection(0),
		model1.DeleteSection(3),
		model1.MoveRow(model1.At(1, 0), model1.At(1, 2)),
		model1.InsertRow(model1.At(0, 0)),
		model1.DeleteRow(model1.At(0, 4)),
		model1.UpdateRow(model1.At(0, 1)),
		model1.InsertRow(model1.At(0, 3)),
	)

	kinds := make([]model1.OpKind, 0, c.Len())
	for _, o := range c.Grouped() {
		kinds = append(kinds, o.Kind)
	}
	assert.Equal(t, []model1.OpKind{
		model1.OpUpdateRow,
		model1.OpDeleteRow,
		model1.OpInsertRow,
		model1.OpInsertRow,
		model1.OpMoveRow,
		model1.OpDeleteSection,
		model1.OpInsertSection,
		model1.OpMoveSection,
		model1.OpUpdateSection,
	}, kinds)
	assert.Equal(t, []model1.ChangeOp{
		model1.InsertRow(model1.At(0, 0)),
		model1.InsertRow(model1.At(0, 3)),
	}, c.Group(model1.OpInsertRow))
}

func TestChangeOpsIsCopy(t *testing.T) {
	ops := []model1.ChangeOp{model1.InsertRow(model1.At(0, 0))}
	c := model1.Batch(ops...)
	ops[0] = model1.DeleteRow(model1.At(9, 9))

	got := c.Ops()
	got[0] = model1.UpdateRow(model1.At(1, 1))

	assert.Equal(t, model1.InsertRow(model1.At(0, 0)), c.Ops()[0])
}

func TestChangeString(t *testing.T) {
	c := model1.Batch(
		model1.InsertRow(model1.At(0, 1)),
		model1.MoveSection(0, 2),
	)
	assert.Equal(t, "batch(insertRow[0,1] moveSection[0]->[2])", c.String())
}
