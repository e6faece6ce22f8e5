package view_test

import (
	"sync"
	"testing"
	"time"

	"github.com/a1s/gridbind/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loop struct {
	ran []int
	mx  sync.Mutex
}

func (l *loop) post(fn func()) {
	l.mx.Lock()
	defer l.mx.Unlock()
	fn()
}

func (l *loop) add(i int) func() {
	return func() { l.ran = append(l.ran, i) }
}

func (l *loop) seen() []int {
	l.mx.Lock()
	defer l.mx.Unlock()
	return append([]int(nil), l.ran...)
}

func TestUpdateQueueInlineBeforeStart(t *testing.T) {
	var l loop
	q := view.NewUpdateQueue(l.post)

	q.Dispatch(l.add(1))
	assert.Equal(t, []int{1}, l.ran)
	assert.False(t, q.Running())
}

func TestUpdateQueueKeepsOrder(t *testing.T) {
	var l loop
	q := view.NewUpdateQueue(l.post)
	q.Start()
	t.Cleanup(q.Stop)
	assert.True(t, q.Running())

	e := make([]int, 0, 100)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			q.Dispatch(l.add(i))
		}
	}()
	wg.Wait()
	for i := 0; i < 100; i++ {
		e = append(e, i)
	}

	require.Eventually(t, func() bool { return len(l.seen()) == 100 }, time.Second, time.Millisecond)
	assert.Equal(t, e, l.seen())
}

func TestUpdateQueueDropsAfterStop(t *testing.T) {
	var l loop
	q := view.NewUpdateQueue(l.post)
	q.Start()
	q.Stop()
	q.Stop()

	q.Dispatch(l.add(1))
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, l.seen())
	assert.False(t, q.Running())

	q.Start()
	assert.False(t, q.Running())
}
