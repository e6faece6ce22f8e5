package ui

import (
	"fmt"

	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/golang/glog"
)

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithStrict makes malformed batches panic instead of reloading.
func WithStrict(strict bool) AnimatorOption {
	return func(a *Animator) {
		a.strict = strict
	}
}

// WithMetrics records engine activity.
func WithMetrics(m *Metrics) AnimatorOption {
	return func(a *Animator) {
		a.metrics = m
	}
}

// Animator replays provider changes onto a sink. It must be driven from
// the UI goroutine and exclusively owns the sink while a batch is open.
type Animator struct {
	sink    ChangeSink
	config  model1.AnimationConfig
	strict  bool
	metrics *Metrics
	sub     *model.Subscription
}

// NewAnimator returns an unbound animator. The animation config is fixed
// for the animator lifetime.
func NewAnimator(sink ChangeSink, cfg model1.AnimationConfig, opts ...AnimatorOption) *Animator {
	a := Animator{
		sink:   sink,
		config: cfg,
	}
	for _, opt := range opts {
		opt(&a)
	}

	return &a
}

// Config returns the animation config.
func (a *Animator) Config() model1.AnimationConfig {
	return a.config
}

// Bind subscribes to a provider channel, dropping any previous binding,
// and reloads the sink to sync up with the provider current state.
func (a *Animator) Bind(o *model.Observable) {
	a.Close()
	a.sub = o.Subscribe(a.Observe)
	a.reload()
}

// Close releases the channel subscription. It is idempotent.
func (a *Animator) Close() {
	if a.sub == nil {
		return
	}
	a.sub.Unsubscribe()
	a.sub = nil
}

// Bound returns true while the animator owns its channel slot.
func (a *Animator) Bound() bool {
	return a.sub.Active()
}

// Observe implements model.Observer.
func (a *Animator) Observe(c model1.Change, m model.EmitMode) {
	if m == model.ViewUnrelated {
		glog.V(2).Infof("[animator] skipping view unrelated %s\n", c)
		a.metrics.skip()
		return
	}
	a.Apply(c)
}

// Apply replays a change onto the sink.
func (a *Animator) Apply(c model1.Change) {
	switch {
	case c.IsUnknown():
		a.reload()
		return
	case c.IsEmpty():
		return
	}

	if err := a.applyBatch(c); err != nil {
		glog.Warningf("[animator] batch %s discarded: %v\n", c, err)
		a.metrics.fallback()
		a.reload()
	}
}

func (a *Animator) reload() {
	a.metrics.reload()
	a.sink.ReloadAll()
}

func (a *Animator) applyBatch(c model1.Change) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if a.strict {
				panic(e)
			}
			err = fmt.Errorf("%w: %v", ErrMalformedBatch, e)
		}
	}()

	if err := checkOps(c.Ops()); err != nil {
		if a.strict {
			panic(err)
		}
		return err
	}

	a.metrics.batch()
	return a.sink.PerformBatch(func() {
		for _, k := range model1.ApplyOrder {
			a.applyGroup(k, c.Group(k))
		}
	})
}

func (a *Animator) applyGroup(k model1.OpKind, ops []model1.ChangeOp) {
	if len(ops) == 0 {
		return
	}
	anim := a.config.For(k)
	switch k {
	case model1.OpUpdateRow:
		a.sink.UpdateRows(positions(ops), anim)
	case model1.OpDeleteRow:
		a.sink.DeleteRows(positions(ops), anim)
	case model1.OpInsertRow:
		a.sink.InsertRows(positions(ops), anim)
	case model1.OpMoveRow:
		for _, o := range ops {
			a.sink.MoveRow(o.From, o.To)
		}
	case model1.OpDeleteSection:
		a.sink.DeleteSections(sections(ops), anim)
	case model1.OpInsertSection:
		a.sink.InsertSections(sections(ops), anim)
	case model1.OpMoveSection:
		for _, o := range ops {
			a.sink.MoveSection(o.From.Section, o.To.Section)
		}
	case model1.OpUpdateSection:
		a.sink.UpdateSections(sections(ops), anim)
	}
	a.metrics.op(k, len(ops))
}

// checkOps rejects ops whose positions cannot exist.
func checkOps(ops []model1.ChangeOp) error {
	for _, o := range ops {
		if o.Kind&(model1.RowKinds|model1.SectionKinds) == 0 {
			return fmt.Errorf("%w: unknown op %s", ErrMalformedBatch, o)
		}
		pp := []model1.Position{o.From}
		if o.IsMove() {
			pp = append(pp, o.To)
		}
		for _, p := range pp {
			if p.Section < 0 {
				return fmt.Errorf("%w: %s", ErrMalformedBatch, o)
			}
			if o.IsSection() != p.IsSection() || (!p.IsSection() && p.Item < 0) {
				return fmt.Errorf("%w: %s", ErrMalformedBatch, o)
			}
		}
	}

	return nil
}

func positions(ops []model1.ChangeOp) []model1.Position {
	pp := make([]model1.Position, 0, len(ops))
	for _, o := range ops {
		pp = append(pp, o.From)
	}
	return pp
}

func sections(ops []model1.ChangeOp) []int {
	ss := make([]int, 0, len(ops))
	for _, o := range ops {
		ss = append(ss, o.From.Section)
	}
	return ss
}
