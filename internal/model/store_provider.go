package model

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/a1s/gridbind/internal/dao"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/golang/glog"
)

const (
	// DefaultRefreshRate is the store polling interval.
	DefaultRefreshRate = 5 * time.Second

	// DefaultCommitTimeout bounds a single store commit.
	DefaultCommitTimeout = 5 * time.Second
)

// StoreProvider is a persisted, query backed provider. Its rows live in
// memory and are committed to the store after each edit. Out of band
// store changes are picked up by Refresh and emitted as diffs.
type StoreProvider struct {
	*ArrayProvider[model1.Row]

	store         dao.Store
	dispatch      Dispatcher
	onCommitErr   func(error)
	commitTimeout time.Duration
	cancelFn      context.CancelFunc
	edits         atomic.Uint64
	mx            sync.Mutex
}

// NewStoreProvider returns an empty provider backed by the given store.
// Call Refresh or Watch to load it.
func NewStoreProvider(s dao.Store) *StoreProvider {
	return &StoreProvider{
		ArrayProvider: NewArrayProvider[model1.Row](),
		store:         s,
		dispatch:      InlineDispatcher,
		commitTimeout: DefaultCommitTimeout,
	}
}

// SetDispatcher sets how refreshed content is handed to the UI goroutine.
func (p *StoreProvider) SetDispatcher(d Dispatcher) {
	if d == nil {
		d = InlineDispatcher
	}
	p.dispatch = d
}

// SetCommitErrorFn registers a hook notified of swallowed commit failures.
func (p *StoreProvider) SetCommitErrorFn(fn func(error)) {
	p.onCommitErr = fn
}

// SetCommitTimeout bounds each store commit.
func (p *StoreProvider) SetCommitTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultCommitTimeout
	}
	p.commitTimeout = d
}

// Snapshot returns the current in-memory content.
func (p *StoreProvider) Snapshot() model1.Sections {
	ss := p.Sections()
	out := make(model1.Sections, 0, len(ss))
	for _, s := range ss {
		out = append(out, model1.Section{Name: s.Name, Rows: model1.Rows(s.Items).Clone()})
	}
	return out
}

// Refresh loads the store and emits the diff against the current content.
// The load runs on the calling goroutine; the swap and emission run
// through the dispatcher. A load that overlaps a local edit is dropped,
// the next refresh picks up the committed content.
func (p *StoreProvider) Refresh(ctx context.Context) error {
	edits := p.edits.Load()
	ss, err := p.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	p.dispatch(func() {
		if p.edits.Load() != edits {
			glog.V(2).Infof("[store] dropped stale refresh\n")
			return
		}
		c := DiffSnapshots(p.Snapshot(), ss)
		glog.V(2).Infof("[store] refresh %s\n", c)
		p.Replace(toArraySections(ss), c)
	})

	return nil
}

// Watch refreshes the provider periodically until ctx is done or Stop is
// called. The initial load error is returned; later failures are logged.
func (p *StoreProvider) Watch(ctx context.Context, every time.Duration) error {
	p.mx.Lock()
	if p.cancelFn != nil {
		p.cancelFn()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	p.cancelFn = cancel
	p.mx.Unlock()

	if err := p.Refresh(watchCtx); err != nil {
		return err
	}
	go p.watchLoop(watchCtx, every)

	return nil
}

func (p *StoreProvider) watchLoop(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = DefaultRefreshRate
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				glog.Errorf("[store] refresh failed: %v\n", err)
			}
		}
	}
}

// Stop terminates the watch loop.
func (p *StoreProvider) Stop() {
	p.mx.Lock()
	defer p.mx.Unlock()

	if p.cancelFn != nil {
		p.cancelFn()
		p.cancelFn = nil
	}
}

// InsertItem inserts a row at pos and persists it.
func (p *StoreProvider) InsertItem(pos model1.Position, r model1.Row) error {
	return p.InsertItemWithMode(pos, r, ViewRelated)
}

// AppendItem adds a row at the end of a section and persists it.
func (p *StoreProvider) AppendItem(section int, r model1.Row) (model1.Position, error) {
	pos := model1.At(section, p.ItemCount(section))
	return pos, p.InsertItem(pos, r)
}

// DeleteItem deletes the row at pos and removes it from the store.
func (p *StoreProvider) DeleteItem(pos model1.Position) (model1.Row, error) {
	return p.DeleteItemWithMode(pos, ViewRelated)
}

// MoveItem moves a row and persists the new ordering.
func (p *StoreProvider) MoveItem(from, to model1.Position) error {
	return p.MoveItemWithMode(from, to, ViewRelated)
}

// InsertItemWithMode inserts a row then persists the new content.
func (p *StoreProvider) InsertItemWithMode(pos model1.Position, r model1.Row, m EmitMode) error {
	if err := p.ArrayProvider.InsertItemWithMode(pos, r, m); err != nil {
		return err
	}
	p.commit("insert", func(ctx context.Context) error {
		return p.store.Save(ctx, p.Snapshot())
	})

	return nil
}

// DeleteItemWithMode deletes a row then removes it from the store.
func (p *StoreProvider) DeleteItemWithMode(pos model1.Position, m EmitMode) (model1.Row, error) {
	r, err := p.ArrayProvider.DeleteItemWithMode(pos, m)
	if err != nil {
		return r, err
	}
	p.commit("delete", func(ctx context.Context) error {
		return p.store.Delete(ctx, r.ID)
	})

	return r, nil
}

// MoveItemWithMode moves a row then persists the new ordering.
func (p *StoreProvider) MoveItemWithMode(from, to model1.Position, m EmitMode) error {
	if err := p.ArrayProvider.MoveItemWithMode(from, to, m); err != nil {
		return err
	}
	p.commit("move", func(ctx context.Context) error {
		return p.store.Save(ctx, p.Snapshot())
	})

	return nil
}

// ReplaceItem swaps a row then persists the new content.
func (p *StoreProvider) ReplaceItem(pos model1.Position, r model1.Row) error {
	if err := p.ArrayProvider.ReplaceItem(pos, r); err != nil {
		return err
	}
	p.commit("update", func(ctx context.Context) error {
		return p.store.Save(ctx, p.Snapshot())
	})

	return nil
}

// SortSection sorts a section then persists the new ordering.
func (p *StoreProvider) SortSection(idx int, less func(a, b model1.Row) bool) error {
	if err := p.ArrayProvider.SortSection(idx, less); err != nil {
		return err
	}
	p.commit("sort", func(ctx context.Context) error {
		return p.store.Save(ctx, p.Snapshot())
	})

	return nil
}

// commit runs a store write. Failures are logged and reported to the
// commit error hook; the in-memory state is not rolled back. The edit
// count moves once the write is done, so any load started before then
// is treated as stale.
func (p *StoreProvider) commit(op string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.commitTimeout)
	defer cancel()
	defer p.edits.Add(1)

	if err := fn(ctx); err != nil {
		err = fmt.Errorf("%s commit failed: %w", op, err)
		glog.Errorf("[store] %v\n", err)
		if p.onCommitErr != nil {
			p.onCommitErr(err)
		}
	}
}

func toArraySections(ss model1.Sections) []ArraySection[model1.Row] {
	out := make([]ArraySection[model1.Row], 0, len(ss))
	for _, s := range ss {
		out = append(out, ArraySection[model1.Row]{Name: s.Name, Items: s.Rows.Clone()})
	}
	return out
}
