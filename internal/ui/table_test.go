package ui_test

import (
	"context"
	"testing"

	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/a1s/gridbind/internal/render"
	"github.com/a1s/gridbind/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T, cfg model1.AnimationConfig) (*model.ArrayProvider[model1.Row], *ui.Table, *ui.Animator) {
	t.Helper()

	p := model.NewNamedArrayProvider(
		model.ArraySection[model1.Row]{
			Name:  "fruits",
			Items: model1.Rows{model1.NewRow("a", "apple"), model1.NewRow("b", "banana")},
		},
		model.ArraySection[model1.Row]{
			Name:  "veggies",
			Items: model1.Rows{model1.NewRow("c", "carrot")},
		},
	)
	texts := model.NewSectionTexts[model1.Row](p, func(ds model.DataSource[model1.Row], s int) string {
		return p.SectionName(s)
	}, nil)

	tv := ui.NewTable("produce")
	require.NoError(t, tv.Init(context.Background()))
	tv.SetSource(render.Bind[model1.Row](p, render.NewRow(model1.NewHeader("NAME")), texts))
	a := ui.NewAnimator(tv, cfg, ui.WithStrict(true))
	a.Bind(p.Observable())

	return p, tv, a
}

func TestTableReload(t *testing.T) {
	_, tv, _ := newFixture(t, model1.NewAnimationConfig())

	assert.Equal(t, []int{2, 1}, tv.Counts())
	assert.Equal(t, 6, tv.GetRowCount())
	assert.Equal(t, "NAME", tv.CellText(0, 0))
	assert.Equal(t, "▾ fruits", tv.CellText(1, 0))
	assert.Equal(t, "apple", tv.CellText(2, 0))
	assert.Equal(t, "banana", tv.CellText(3, 0))
	assert.Equal(t, "▾ veggies", tv.CellText(4, 0))
	assert.Equal(t, "carrot", tv.CellText(5, 0))
}

func TestTablePositions(t *testing.T) {
	_, tv, _ := newFixture(t, model1.NewAnimationConfig())

	row, ok := tv.RowFor(model1.At(1, 0))
	assert.True(t, ok)
	assert.Equal(t, 5, row)
	row, ok = tv.RowFor(model1.SectionPosition(1))
	assert.True(t, ok)
	assert.Equal(t, 4, row)
	_, ok = tv.RowFor(model1.At(1, 1))
	assert.False(t, ok)

	p, ok := tv.PositionAt(3)
	assert.True(t, ok)
	assert.Equal(t, model1.At(0, 1), p)
	p, ok = tv.PositionAt(1)
	assert.True(t, ok)
	assert.True(t, p.IsSection())
	_, ok = tv.PositionAt(0)
	assert.False(t, ok)

	tv.SelectPosition(model1.At(0, 1))
	p, ok = tv.SelectedPosition()
	assert.True(t, ok)
	assert.Equal(t, model1.At(0, 1), p)
}

func TestTableInsertHighlight(t *testing.T) {
	cfg := model1.NewAnimationConfig()
	cfg.Insert = model1.AnimationAutomatic
	p, tv, _ := newFixture(t, cfg)

	require.NoError(t, p.InsertItem(model1.At(1, 0), model1.NewRow("d", "daikon")))
	assert.Equal(t, []int{2, 2}, tv.Counts())
	assert.Equal(t, "daikon", tv.CellText(5, 0))
	_, ok := tv.Styled(model1.At(1, 0))
	assert.True(t, ok)
	_, ok = tv.Styled(model1.At(1, 1))
	assert.False(t, ok)
}

func TestTableNoneAnimationKeepsStyle(t *testing.T) {
	p, tv, _ := newFixture(t, model1.NewAnimationConfig())

	require.NoError(t, p.InsertItem(model1.At(0, 0), model1.NewRow("z", "zucchini")))
	_, ok := tv.Styled(model1.At(0, 0))
	assert.False(t, ok)
}

func TestTableUpdateHighlightFollowsRow(t *testing.T) {
	cfg := model1.NewAnimationConfig()
	cfg.Update = model1.AnimationHighlight
	p, tv, _ := newFixture(t, cfg)

	p.Replace([]model.ArraySection[model1.Row]{
		{Name: "fruits", Items: model1.Rows{model1.NewRow("z", "zucchini"), model1.NewRow("a", "apricot"), model1.NewRow("b", "banana")}},
		{Name: "veggies", Items: model1.Rows{model1.NewRow("c", "carrot")}},
	}, model1.Batch(model1.InsertRow(model1.At(0, 0)), model1.UpdateRow(model1.At(0, 0))))

	assert.Equal(t, "apricot", tv.CellText(3, 0))
	_, ok := tv.Styled(model1.At(0, 1))
	assert.True(t, ok)
	_, ok = tv.Styled(model1.At(0, 0))
	assert.False(t, ok)
}

func TestTableSectionOps(t *testing.T) {
	cfg := model1.NewAnimationConfig()
	cfg.InsertSection = model1.AnimationFade
	p, tv, _ := newFixture(t, cfg)

	require.NoError(t, p.MoveSection(0, 1))
	assert.Equal(t, []int{1, 2}, tv.Counts())
	assert.Equal(t, "▾ veggies", tv.CellText(1, 0))

	require.NoError(t, p.InsertSection(0, "nuts", model1.Rows{model1.NewRow("n", "pecan")}))
	assert.Equal(t, []int{1, 1, 2}, tv.Counts())
	_, ok := tv.Styled(model1.SectionPosition(0))
	assert.True(t, ok)
	_, ok = tv.Styled(model1.At(0, 0))
	assert.True(t, ok)

	require.NoError(t, p.DeleteSection(2))
	assert.Equal(t, []int{1, 1}, tv.Counts())
	assert.Equal(t, 5, tv.GetRowCount())
}

func TestTableMoveAcrossSections(t *testing.T) {
	p, tv, _ := newFixture(t, model1.NewAnimationConfig())
	tv.SetMoveAnimation(model1.AnimationHighlight)

	require.NoError(t, p.MoveItem(model1.At(0, 0), model1.At(1, 1)))
	assert.Equal(t, []int{1, 2}, tv.Counts())
	assert.Equal(t, "apple", tv.CellText(5, 0))
	_, ok := tv.Styled(model1.At(1, 1))
	assert.True(t, ok)
}

func TestTableInconsistentBatch(t *testing.T) {
	p, tv, a := newFixture(t, model1.NewAnimationConfig())
	a.Close()

	require.NoError(t, p.InsertItem(model1.At(0, 0), model1.NewRow("x", "xigua")))
	require.NoError(t, p.InsertItem(model1.At(0, 0), model1.NewRow("y", "yuzu")))

	err := tv.PerformBatch(func() {
		tv.InsertRows([]model1.Position{model1.At(0, 0)}, model1.AnimationNone)
	})
	assert.ErrorIs(t, err, ui.ErrInconsistentBatch)
	assert.Equal(t, []int{2, 1}, tv.Counts())
	assert.Equal(t, "apple", tv.CellText(2, 0))

	tv.ReloadAll()
	assert.Equal(t, []int{4, 1}, tv.Counts())
}

func TestTableBatchValidation(t *testing.T) {
	uu := map[string]func(tv *ui.Table){
		"delete-out-of-range": func(tv *ui.Table) {
			tv.DeleteRows([]model1.Position{model1.At(0, 5)}, model1.AnimationNone)
		},
		"delete-twice": func(tv *ui.Table) {
			tv.DeleteRows([]model1.Position{model1.At(0, 0), model1.At(0, 0)}, model1.AnimationNone)
		},
		"section-count": func(tv *ui.Table) {
			tv.DeleteSections([]int{1}, model1.AnimationNone)
		},
		"move-section-bad": func(tv *ui.Table) {
			tv.MoveSection(0, 4)
		},
		"update-missing": func(tv *ui.Table) {
			tv.UpdateRows([]model1.Position{model1.At(3, 0)}, model1.AnimationNone)
		},
	}

	for k := range uu {
		fn := uu[k]
		t.Run(k, func(t *testing.T) {
			_, tv, _ := newFixture(t, model1.NewAnimationConfig())
			assert.ErrorIs(t, tv.PerformBatch(func() { fn(tv) }), ui.ErrInconsistentBatch)
			assert.Equal(t, []int{2, 1}, tv.Counts())
		})
	}
}

func TestTableNestedBatch(t *testing.T) {
	_, tv, _ := newFixture(t, model1.NewAnimationConfig())

	var inner error
	require.NoError(t, tv.PerformBatch(func() {
		inner = tv.PerformBatch(func() {})
	}))
	assert.ErrorIs(t, inner, ui.ErrNestedBatch)
}

func TestTableFallbackThroughAnimator(t *testing.T) {
	p, tv, a := newFixture(t, model1.NewAnimationConfig())
	a.Close()
	_, err := p.DeleteItem(model1.At(0, 0))
	require.NoError(t, err)

	lenient := ui.NewAnimator(tv, model1.NewAnimationConfig())
	lenient.Apply(model1.Batch(model1.UpdateRow(model1.At(0, 0))))
	assert.Equal(t, []int{1, 1}, tv.Counts())
	assert.Equal(t, "banana", tv.CellText(2, 0))
}

func TestTableSingleOpOutsideBatch(t *testing.T) {
	p, tv, a := newFixture(t, model1.NewAnimationConfig())
	a.Close()
	require.NoError(t, p.InsertItem(model1.At(1, 1), model1.NewRow("k", "kale")))

	tv.InsertRows([]model1.Position{model1.At(1, 1)}, model1.AnimationNone)
	assert.Equal(t, []int{2, 2}, tv.Counts())

	require.NoError(t, p.InsertItem(model1.At(1, 0), model1.NewRow("l", "leek")))
	tv.DeleteRows([]model1.Position{model1.At(1, 0)}, model1.AnimationNone)
	assert.Equal(t, []int{2, 3}, tv.Counts())
}

func TestTableKeyActions(t *testing.T) {
	_, tv, _ := newFixture(t, model1.NewAnimationConfig())
	var hit int
	tv.Actions().Add(ui.KeyD, ui.NewKeyAction("Delete", func(*tcell.EventKey) *tcell.EventKey {
		hit++
		return nil
	}, true))

	capture := tv.GetInputCapture()
	assert.Nil(t, capture(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)))
	assert.Equal(t, 1, hit)

	tv.Select(1, 0)
	assert.Nil(t, capture(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)))
	row, _ := tv.GetSelection()
	assert.Equal(t, 2, row)

	evt := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	assert.Equal(t, evt, capture(evt))

	hh := tv.Hints()
	require.Len(t, hh, 1)
	assert.Equal(t, "d", hh[0].Mnemonic)
}

func TestTableSectionFooter(t *testing.T) {
	p := model.NewNamedArrayProvider(
		model.ArraySection[model1.Row]{Name: "fruits", Items: model1.Rows{model1.NewRow("a", "apple", "red")}},
	)
	last := model.FromLast(func(r model1.Row) string { return "last " + r.Field(0) })
	title := func(ds model.DataSource[model1.Row], s int) string { return p.SectionName(s) }

	narrow := ui.NewTable("narrow")
	require.NoError(t, narrow.Init(context.Background()))
	narrow.SetSource(render.Bind[model1.Row](p, render.NewRow(model1.NewHeader("NAME")), model.NewSectionTexts[model1.Row](p, title, last)))
	narrow.ReloadAll()
	assert.Equal(t, "▾ fruits · last apple", narrow.CellText(1, 0))

	wide := ui.NewTable("wide")
	require.NoError(t, wide.Init(context.Background()))
	wide.SetSource(render.Bind[model1.Row](p, render.NewRow(model1.NewHeader("NAME", "COLOR")), model.NewSectionTexts[model1.Row](p, title, last)))
	wide.ReloadAll()
	assert.Equal(t, "▾ fruits", wide.CellText(1, 0))
	assert.Equal(t, "last apple", wide.CellText(1, 1))
}
