package render_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/a1s/gridbind/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	a := model.NewNamedArrayProvider(
		model.ArraySection[model1.Row]{
			Name:  "fruits",
			Items: model1.Rows{model1.NewRow("a", "apple", "red"), model1.NewRow("b", "banana")},
		},
		model.ArraySection[model1.Row]{Name: "empty"},
	)
	texts := model.NewSectionTexts[model1.Row](a,
		model.FromFirst(func(r model1.Row) string { return r.Field(0) }),
		model.Static[model1.Row]("--"),
	)
	s := render.Bind[model1.Row](a, render.NewRow(model1.NewHeader("NAME", "COLOR")), texts)

	assert.Equal(t, 2, s.SectionCount())
	assert.Equal(t, 2, s.ItemCount(0))
	assert.Equal(t, "apple", s.SectionTitle(0))
	assert.Equal(t, "", s.SectionTitle(1))
	assert.Equal(t, "--", s.SectionFooter(1))
	assert.Equal(t, []string{"NAME", "COLOR"}, s.Header().ColumnNames())

	r, ok := s.RowAt(model1.At(0, 1))
	assert.True(t, ok)
	assert.Equal(t, "b", r.ID)
	assert.Equal(t, model1.Fields{"banana", render.NAValue}, r.Fields)

	_, ok = s.RowAt(model1.At(1, 0))
	assert.False(t, ok)
}

func TestRowRenderCaps(t *testing.T) {
	var row model1.Row
	long := strings.Repeat("x", render.MaxCellWidth+10)
	require.NoError(t, render.NewRow(model1.NewHeader("A", "B")).Render(model1.NewRow("a", " big\n  "+long), &row))

	assert.Equal(t, render.MaxCellWidth, utf8.RuneCountInString(row.Fields[0]))
	assert.True(t, strings.HasPrefix(row.Fields[0], "big x"))
	assert.True(t, strings.HasSuffix(row.Fields[0], "…"))
	assert.Equal(t, render.NAValue, row.Fields[1])
}

func TestRowRenderMissingID(t *testing.T) {
	var row model1.Row
	assert.Error(t, render.NewRow(model1.NewHeader("A")).Render(model1.Row{}, &row))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, render.NAValue, render.NA(""))
	assert.Equal(t, "x", render.NA("x"))
	assert.Equal(t, "a b", render.Clean("  a \n b "))
	assert.Equal(t, "abc", render.Truncate("abc", 3))
	assert.Equal(t, "ab…", render.Truncate("abcdef", 3))
	assert.Equal(t, "…", render.Truncate("abcdef", 1))
}
