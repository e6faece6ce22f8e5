package model_test

import (
	"testing"

	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/stretchr/testify/assert"
)

func section(name string, rows ...model1.Row) model1.Section {
	return model1.Section{Name: name, Rows: rows}
}

func TestDiffSnapshots(t *testing.T) {
	a, b, c := model1.NewRow("a", "1"), model1.NewRow("b", "2"), model1.NewRow("c", "3")

	uu := map[string]struct {
		old, cur model1.Sections
		e        model1.Change
	}{
		"same": {
			old: model1.Sections{section("s", a, b)},
			cur: model1.Sections{section("s", a, b)},
			e:   model1.Batch(),
		},
		"insert": {
			old: model1.Sections{section("s", a, b)},
			cur: model1.Sections{section("s", a, c, b)},
			e:   model1.Batch(model1.InsertRow(model1.At(0, 1))),
		},
		"delete": {
			old: model1.Sections{section("s", a, b, c)},
			cur: model1.Sections{section("s", a, c)},
			e:   model1.Batch(model1.DeleteRow(model1.At(0, 1))),
		},
		"update": {
			old: model1.Sections{section("s", a, b)},
			cur: model1.Sections{section("s", a, model1.NewRow("b", "20"))},
			e:   model1.Batch(model1.UpdateRow(model1.At(0, 1))),
		},
		"move": {
			old: model1.Sections{section("s", a, b, c)},
			cur: model1.Sections{section("s", b, c, a)},
			e: model1.Batch(
				model1.MoveRow(model1.At(0, 1), model1.At(0, 0)),
				model1.MoveRow(model1.At(0, 2), model1.At(0, 1)),
				model1.MoveRow(model1.At(0, 0), model1.At(0, 2)),
			),
		},
		"section-insert": {
			old: model1.Sections{section("s", a)},
			cur: model1.Sections{section("n", b), section("s", a)},
			e:   model1.Batch(model1.InsertSection(0)),
		},
		"section-delete": {
			old: model1.Sections{section("n", b), section("s", a)},
			cur: model1.Sections{section("s", a, c)},
			e: model1.Batch(
				model1.DeleteSection(0),
				model1.InsertRow(model1.At(0, 1)),
			),
		},
		"sections-reordered": {
			old: model1.Sections{section("n", b), section("s", a)},
			cur: model1.Sections{section("s", a), section("n", b)},
			e:   model1.Unknown(),
		},
		"duplicate-ids": {
			old: model1.Sections{section("s", a)},
			cur: model1.Sections{section("s", a, a)},
			e:   model1.Unknown(),
		},
		"duplicate-sections": {
			old: model1.Sections{section("s", a), section("s", b)},
			cur: model1.Sections{section("s", a)},
			e:   model1.Unknown(),
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			c := model.DiffSnapshots(u.old, u.cur)
			assert.True(t, u.e.Equal(c), "want %s got %s", u.e, c)
		})
	}
}
