package view_test

import (
	"errors"
	"testing"

	"github.com/a1s/gridbind/internal/config"
	"github.com/a1s/gridbind/internal/config/data"
	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/a1s/gridbind/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash(t *testing.T) {
	f := view.NewFlash(nil)

	f.Infof("moved %s", "[0,1]")
	level, msg := f.Last()
	assert.Equal(t, view.FlashInfo, level)
	assert.Equal(t, "moved [0,1]", msg)

	f.Err(nil)
	_, msg = f.Last()
	assert.Equal(t, "moved [0,1]", msg)

	f.Err(errors.New("commit failed"))
	level, _ = f.Last()
	assert.Equal(t, view.FlashErr, level)

	f.Clear()
	_, msg = f.Last()
	assert.Empty(t, msg)
}

func TestStoreInfoLocation(t *testing.T) {
	uu := map[string]struct {
		store data.Store
		e     string
	}{
		"memory": {store: data.NewStore(), e: "memory"},
		"sqlite": {store: data.Store{Source: data.SourceSQLite, Path: "/tmp/g.db"}, e: "/tmp/g.db"},
		"s3":     {store: data.Store{Source: data.SourceS3, Bucket: "b", Key: "k.json"}, e: "s3://b/k.json"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			s := view.NewStoreInfo()
			s.SetInfo(u.store, "0.1.0")
			assert.Equal(t, u.e, s.Location())
		})
	}
}

func TestAppPush(t *testing.T) {
	cfg := config.NewConfig()
	require.NoError(t, cfg.Refine(nil))
	app := view.NewApp(cfg, "0.1.0")
	require.NoError(t, app.Init())

	p := model.NewNamedArrayProvider(model.ArraySection[model1.Row]{Name: "s", Items: produce()})
	g := view.NewGrid("grid", p, model1.NewHeader("NAME"), model1.NewAnimationConfig())
	require.NoError(t, app.Push(g))

	assert.Equal(t, 1, app.Content.Depth())
	assert.True(t, g.Animator().Bound())
	assert.Equal(t, []int{2}, g.Counts())

	var ran bool
	app.QueueUpdateDraw(func() { ran = true })
	assert.True(t, ran)

	app.Stop()
	assert.False(t, g.Animator().Bound())
	ran = false
	app.QueueUpdateDraw(func() { ran = true })
	assert.False(t, ran, "updates after stop are dropped")
}
