package ui

import (
	"fmt"

	"github.com/a1s/gridbind/internal/model1"
)

type rowMove struct {
	from, to model1.Position
}

type sectionMove struct {
	from, to int
}

// pendingBatch collects sink calls until the batch scope closes.
type pendingBatch struct {
	rowUpdates, rowDeletes, rowInserts []model1.Position
	rowMoves                           []rowMove
	secDeletes, secInserts, secUpdates []int
	secMoves                           []sectionMove
	anims                              map[model1.OpKind]model1.AnimationKind
}

func newPendingBatch() *pendingBatch {
	return &pendingBatch{anims: make(map[model1.OpKind]model1.AnimationKind)}
}

func (b *pendingBatch) isEmpty() bool {
	return len(b.rowUpdates)+len(b.rowDeletes)+len(b.rowInserts)+len(b.rowMoves)+
		len(b.secDeletes)+len(b.secInserts)+len(b.secUpdates)+len(b.secMoves) == 0
}

// layout describes the displayed structure once a batch is applied.
type layout struct {
	counts []int

	// newOf maps a pre batch section to its post batch index or -1.
	newOf []int
}

func inconsistent(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInconsistentBatch, fmt.Sprintf(format, args...))
}

// reconcile checks the batch turns the displayed counts into the source
// counts and returns the resulting layout.
func (b *pendingBatch) reconcile(old []int, src Source) (layout, error) {
	n0, n1 := len(old), src.SectionCount()
	l := layout{newOf: make([]int, n0)}

	deleted := make(map[int]struct{}, len(b.secDeletes))
	for _, s := range b.secDeletes {
		if s < 0 || s >= n0 {
			return l, inconsistent("delete section %d of %d", s, n0)
		}
		if _, ok := deleted[s]; ok {
			return l, inconsistent("section %d deleted twice", s)
		}
		deleted[s] = struct{}{}
	}
	taken := make([]bool, n1)
	for _, s := range b.secInserts {
		if s < 0 || s >= n1 {
			return l, inconsistent("insert section %d of %d", s, n1)
		}
		if taken[s] {
			return l, inconsistent("section %d inserted twice", s)
		}
		taken[s] = true
	}
	if n0-len(deleted)+len(b.secInserts) != n1 {
		return l, inconsistent("expected %d sections but source has %d", n0-len(deleted)+len(b.secInserts), n1)
	}

	for i := range l.newOf {
		l.newOf[i] = -1
	}
	moved := make(map[int]struct{}, len(b.secMoves))
	for _, m := range b.secMoves {
		if m.from < 0 || m.from >= n0 || m.to < 0 || m.to >= n1 {
			return l, inconsistent("move section %d->%d", m.from, m.to)
		}
		if _, ok := deleted[m.from]; ok {
			return l, inconsistent("move of deleted section %d", m.from)
		}
		if _, ok := moved[m.from]; ok || taken[m.to] {
			return l, inconsistent("conflicting move section %d->%d", m.from, m.to)
		}
		moved[m.from], taken[m.to] = struct{}{}, true
		l.newOf[m.from] = m.to
	}
	var next int
	for s := 0; s < n0; s++ {
		if _, ok := deleted[s]; ok {
			continue
		}
		if _, ok := moved[s]; ok {
			continue
		}
		for next < n1 && taken[next] {
			next++
		}
		if next >= n1 {
			return l, inconsistent("no room for section %d", s)
		}
		l.newOf[s], taken[next] = next, true
		next++
	}

	updated := make(map[int]struct{}, len(b.secUpdates))
	for _, s := range b.secUpdates {
		if s < 0 || s >= n0 || l.newOf[s] < 0 {
			return l, inconsistent("update of missing section %d", s)
		}
		updated[s] = struct{}{}
	}

	if err := b.checkRows(old, l, src); err != nil {
		return l, err
	}

	l.counts = make([]int, n1)
	for s := 0; s < n1; s++ {
		l.counts[s] = src.ItemCount(s)
	}
	for s, n := range l.newOf {
		if n < 0 {
			continue
		}
		if _, ok := updated[s]; ok {
			continue
		}
		if want := old[s] + b.delta(s, n); want != l.counts[n] {
			return l, inconsistent("section %d expected %d rows but source has %d", n, want, l.counts[n])
		}
	}

	return l, nil
}

// checkRows validates row positions. Pre batch positions must address a
// surviving section, post batch positions an existing one that was not
// inserted by this batch.
func (b *pendingBatch) checkRows(old []int, l layout, src Source) error {
	inserted := make(map[int]struct{}, len(b.secInserts))
	for _, s := range b.secInserts {
		inserted[s] = struct{}{}
	}
	before := func(p model1.Position) bool {
		return p.Section >= 0 && p.Section < len(old) && l.newOf[p.Section] >= 0 &&
			p.Item >= 0 && p.Item < old[p.Section]
	}
	after := func(p model1.Position) bool {
		if p.Section < 0 || p.Section >= src.SectionCount() {
			return false
		}
		if _, ok := inserted[p.Section]; ok {
			return false
		}
		return p.Item >= 0 && p.Item < src.ItemCount(p.Section)
	}

	seen := make(map[model1.Position]struct{})
	for _, p := range b.rowDeletes {
		if !before(p) {
			return inconsistent("delete row %s", p)
		}
		if _, ok := seen[p]; ok {
			return inconsistent("row %s deleted twice", p)
		}
		seen[p] = struct{}{}
	}
	for _, p := range b.rowUpdates {
		if !before(p) {
			return inconsistent("update row %s", p)
		}
	}
	for _, m := range b.rowMoves {
		if !before(m.from) {
			return inconsistent("move row from %s", m.from)
		}
		if _, ok := seen[m.from]; ok {
			return inconsistent("row %s deleted and moved", m.from)
		}
		seen[m.from] = struct{}{}
	}

	targets := make(map[model1.Position]struct{})
	for _, p := range b.rowInserts {
		if !after(p) {
			return inconsistent("insert row %s", p)
		}
		if _, ok := targets[p]; ok {
			return inconsistent("row %s inserted twice", p)
		}
		targets[p] = struct{}{}
	}
	for _, m := range b.rowMoves {
		if !after(m.to) {
			return inconsistent("move row to %s", m.to)
		}
		if _, ok := targets[m.to]; ok {
			return inconsistent("row %s targeted twice", m.to)
		}
		targets[m.to] = struct{}{}
	}

	return nil
}

// delta returns the row count change of pre batch section s, shown at
// post batch index n.
func (b *pendingBatch) delta(s, n int) int {
	var d int
	for _, p := range b.rowDeletes {
		if p.Section == s {
			d--
		}
	}
	for _, p := range b.rowInserts {
		if p.Section == n {
			d++
		}
	}
	for _, m := range b.rowMoves {
		if m.from.Section == s {
			d--
		}
		if m.to.Section == n {
			d++
		}
	}

	return d
}
