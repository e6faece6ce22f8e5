package dao_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/a1s/gridbind/internal/dao"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSections() model1.Sections {
	return model1.Sections{
		{Name: "fruits", Rows: model1.Rows{
			model1.NewRow("f1", "apple", "3"),
			model1.NewRow("f2", "pear", "1"),
		}},
		{Name: "veggies", Rows: model1.Rows{
			model1.NewRow("v1", "leek", "7"),
		}},
		{Name: "empty", Rows: model1.Rows{}},
	}
}

func openSQLite(t *testing.T) *dao.SQLiteStore {
	t.Helper()
	s, err := dao.OpenSQLite(filepath.Join(t.TempDir(), "gridbind.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestSQLiteStoreEmpty(t *testing.T) {
	s := openSQLite(t)

	ss, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ss)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, ctx := openSQLite(t), context.Background()

	require.NoError(t, s.Save(ctx, testSections()))
	ss, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSections(), ss)
}

func TestSQLiteStoreSaveReorders(t *testing.T) {
	s, ctx := openSQLite(t), context.Background()
	require.NoError(t, s.Save(ctx, testSections()))

	ss := testSections()
	ss[0].Rows[0], ss[0].Rows[1] = ss[0].Rows[1], ss[0].Rows[0]
	ss[1], ss[2] = ss[2], ss[1]
	require.NoError(t, s.Save(ctx, ss))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, ss, got)
}

func TestSQLiteStoreDelete(t *testing.T) {
	s, ctx := openSQLite(t), context.Background()
	require.NoError(t, s.Save(ctx, testSections()))

	require.NoError(t, s.Delete(ctx, "f1", "bozo"))
	ss, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ss, 3)
	assert.Equal(t, model1.Rows{model1.NewRow("f2", "pear", "1")}, ss[0].Rows)
}

func TestSQLiteStoreClosed(t *testing.T) {
	s := openSQLite(t)
	require.NoError(t, s.Close())

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, dao.ErrClosed)
	assert.NoError(t, s.Close())
}

func TestSeed(t *testing.T) {
	s, ctx := openSQLite(t), context.Background()

	ok, err := dao.Seed(ctx, s, testSections())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dao.Seed(ctx, s, model1.Sections{{Name: "other"}})
	require.NoError(t, err)
	assert.False(t, ok)

	ss, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fruits", ss[0].Name)
}
