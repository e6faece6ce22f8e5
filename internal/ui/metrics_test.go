package ui

import (
	"testing"

	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type nopSink struct {
	err error
}

func (nopSink) ReloadAll()                                         {}
func (s nopSink) PerformBatch(body func()) error                   { body(); return s.err }
func (nopSink) InsertRows([]model1.Position, model1.AnimationKind) {}
func (nopSink) DeleteRows([]model1.Position, model1.AnimationKind) {}
func (nopSink) UpdateRows([]model1.Position, model1.AnimationKind) {}
func (nopSink) MoveRow(model1.Position, model1.Position)           {}
func (nopSink) InsertSections([]int, model1.AnimationKind)         {}
func (nopSink) DeleteSections([]int, model1.AnimationKind)         {}
func (nopSink) UpdateSections([]int, model1.AnimationKind)         {}
func (nopSink) MoveSection(int, int)                               {}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	a := NewAnimator(nopSink{}, model1.NewAnimationConfig(), WithMetrics(m))

	a.Observe(model1.Unknown(), model.ViewRelated)
	a.Observe(model1.Batch(
		model1.InsertRow(model1.At(0, 0)),
		model1.InsertRow(model1.At(0, 1)),
		model1.MoveSection(0, 1),
	), model.ViewRelated)
	a.Observe(model1.Batch(model1.DeleteRow(model1.At(0, 0))), model.ViewUnrelated)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.batches))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.fallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ops.WithLabelValues("insertRow")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ops.WithLabelValues("moveSection")))

	n, err := testutil.GatherAndCount(reg, "gridbind_animator_batches_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetricsFallback(t *testing.T) {
	m := NewMetrics(nil)
	a := NewAnimator(nopSink{err: ErrInconsistentBatch}, model1.NewAnimationConfig(), WithMetrics(m))

	a.Apply(model1.Batch(model1.UpdateSection(0)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.batch()
		m.reload()
		m.fallback()
		m.skip()
		m.op(model1.OpInsertRow, 1)
	})
}
