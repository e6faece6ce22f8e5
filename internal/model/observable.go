package model

import (
	"github.com/a1s/gridbind/internal/model1"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// EmitMode tells observers whether a change must be reflected visually.
type EmitMode int

const (
	// ViewRelated changes must be applied to the view.
	ViewRelated EmitMode = iota

	// ViewUnrelated changes were already reflected by the widget itself,
	// e.g. a native drag reorder. Non visual observers still act on them.
	ViewUnrelated
)

func (m EmitMode) String() string {
	if m == ViewUnrelated {
		return "view-unrelated"
	}
	return "view-related"
}

// Observer receives one change per mutation batch.
type Observer func(model1.Change, EmitMode)

// Observable is a single slot change channel. Subscribing replaces the
// current observer. Emission is synchronous and changes emitted while the
// slot is empty are dropped.
type Observable struct {
	slot *Subscription
}

// NewObservable returns an empty channel.
func NewObservable() *Observable {
	return &Observable{}
}

// Subscribe installs fn as the sole observer.
func (o *Observable) Subscribe(fn Observer) *Subscription {
	s := Subscription{
		id:    uuid.New(),
		fn:    fn,
		owner: o,
	}
	if o.slot != nil {
		glog.V(2).Infof("[observable] subscription %s replaced by %s\n", o.slot.id, s.id)
	}
	o.slot = &s

	return &s
}

// Observing returns true if an observer is installed.
func (o *Observable) Observing() bool {
	return o.slot != nil
}

// Emit delivers the change to the current observer, if any, and returns
// whether it was delivered.
func (o *Observable) Emit(c model1.Change, m EmitMode) bool {
	s := o.slot
	if s == nil || s.fn == nil {
		return false
	}
	s.fn(c, m)

	return true
}

// Subscription is the token returned by Subscribe.
type Subscription struct {
	id    uuid.UUID
	fn    Observer
	owner *Observable
}

// ID returns the subscription token.
func (s *Subscription) ID() string {
	return s.id.String()
}

// Active returns true while the subscription owns its channel slot.
func (s *Subscription) Active() bool {
	return s != nil && s.owner != nil && s.owner.slot == s
}

// Unsubscribe releases the slot. It is idempotent and never clears an
// observer installed by a later Subscribe.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.owner == nil {
		return
	}
	if s.owner.slot == s {
		s.owner.slot = nil
	}
	s.owner, s.fn = nil, nil
}

// Composite fans a single emission out to several observers, in order.
type Composite []Observer

// Observe implements Observer.
func (c Composite) Observe(ch model1.Change, m EmitMode) {
	for _, fn := range c {
		if fn != nil {
			fn(ch, m)
		}
	}
}
