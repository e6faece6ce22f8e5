package model1_test

import (
	"strings"
	"testing"

	"github.com/a1s/gridbind/internal/model1"
	"github.com/derailed/tview"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnimationKind(t *testing.T) {
	uu := map[string]struct {
		in  string
		e   model1.AnimationKind
		err bool
	}{
		"blank":     {in: "", e: model1.AnimationNone},
		"fade":      {in: "fade", e: model1.AnimationFade},
		"mixed":     {in: " Highlight ", e: model1.AnimationHighlight},
		"automatic": {in: "automatic", e: model1.AnimationAutomatic},
		"bozo":      {in: "spin", e: model1.AnimationNone, err: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			a, err := model1.ParseAnimationKind(u.in)
			if u.err {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, u.e, a)
		})
	}
}

func TestOpKindIsSection(t *testing.T) {
	assert.False(t, model1.OpMoveRow.IsSection())
	assert.True(t, model1.OpMoveSection.IsSection())
	assert.Equal(t, "updateSection", model1.OpUpdateSection.String())
}

func TestAnimationStyle(t *testing.T) {
	_, _, ok := model1.AnimationStyle(model1.OpInsertRow, model1.AnimationNone)
	assert.False(t, ok)

	c, a, ok := model1.AnimationStyle(model1.OpInsertRow, model1.AnimationAutomatic)
	assert.True(t, ok)
	assert.Equal(t, model1.AddColor, c)
	assert.Equal(t, tcell.AttrNone, a)

	c, a, ok = model1.AnimationStyle(model1.OpUpdateRow, model1.AnimationFade)
	assert.True(t, ok)
	assert.Equal(t, model1.ModColor, c)
	assert.Equal(t, tcell.AttrDim, a)
}

func TestPosition(t *testing.T) {
	assert.Equal(t, model1.At(1, 2), model1.Position{Section: 1, Item: 2})
	assert.True(t, model1.SectionPosition(3).IsSection())
	assert.Equal(t, "[1,2]", model1.At(1, 2).String())
	assert.Equal(t, "[3]", model1.SectionPosition(3).String())
	assert.True(t, model1.At(0, 5).Less(model1.At(1, 0)))
	assert.True(t, model1.At(1, 0).Less(model1.At(1, 1)))
}

func TestRowLess(t *testing.T) {
	h := model1.Header{
		{Name: "NAME"},
		{Name: "SIZE", Attrs: model1.Attrs{Capacity: true}},
	}
	a := model1.NewRow("a", "item10", "1,000")
	b := model1.NewRow("b", "item9", "999")

	assert.False(t, model1.RowLess(h, 0)(a, b))
	assert.True(t, model1.RowLess(h, 0)(b, a))
	assert.True(t, model1.RowLess(h, 1)(b, a))
	assert.True(t, model1.RowLess(h, 5)(a, b))
}

func TestNewHeader(t *testing.T) {
	h := model1.NewHeader("NAME", "QTY"+model1.NumericSuffix)

	assert.Equal(t, []string{"NAME", "QTY"}, h.ColumnNames())
	assert.False(t, h.IsCapacityCol(0))
	assert.True(t, h.IsCapacityCol(1))
	assert.False(t, h.IsCapacityCol(2))
	assert.Equal(t, tview.AlignRight, h[1].Align)
	assert.Equal(t, "12", h[1].Decorate("12"))

	h[0].Decorator = strings.ToUpper
	assert.Equal(t, "APPLE", h[0].Decorate("apple"))
}

func TestAnimationConfigNormalize(t *testing.T) {
	c, err := model1.AnimationConfig{
		Insert: "Fade",
		Update: " HIGHLIGHT ",
		Move:   "Automatic",
	}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, model1.AnimationFade, c.Insert)
	assert.Equal(t, model1.AnimationHighlight, c.Update)
	assert.Equal(t, model1.AnimationAutomatic, c.Move)
	assert.Equal(t, model1.AnimationNone, c.Delete)
	assert.Equal(t, model1.AnimationNone, c.UpdateSection)
	_, _, styled := model1.AnimationStyle(model1.OpInsertRow, c.Insert)
	assert.True(t, styled)

	_, err = model1.AnimationConfig{Delete: "Wobble"}.Normalize()
	assert.Error(t, err)
}

func TestAnimationConfig(t *testing.T) {
	c := model1.NewAnimationConfig()
	assert.Equal(t, model1.AnimationNone, c.For(model1.OpInsertRow))
	assert.Equal(t, model1.AnimationNone, model1.AnimationConfig{}.For(model1.OpDeleteSection))

	c = c.Merge(model1.AnimationConfig{
		Insert:        model1.AnimationFade,
		Move:          model1.AnimationHighlight,
		UpdateSection: model1.AnimationAutomatic,
	})
	assert.Equal(t, model1.AnimationFade, c.For(model1.OpInsertRow))
	assert.Equal(t, model1.AnimationHighlight, c.For(model1.OpMoveRow))
	assert.Equal(t, model1.AnimationHighlight, c.For(model1.OpMoveSection))
	assert.Equal(t, model1.AnimationAutomatic, c.For(model1.OpUpdateSection))
	assert.Equal(t, model1.AnimationNone, c.For(model1.OpDeleteRow))
	assert.NoError(t, c.Validate())

	c.Delete = "wobble"
	assert.Error(t, c.Validate())
}
