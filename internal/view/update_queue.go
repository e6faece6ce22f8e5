// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2024 a1s Contributors

package view

import (
	"sync"

	"github.com/golang/glog"
)

type queueState int

const (
	queueIdle queueState = iota
	queueRunning
	queueStopped
)

// UpdateQueue hands UI updates to the event loop one at a time, in the
// order they were dispatched. Before Start updates run inline; after Stop
// they are dropped.
type UpdateQueue struct {
	post    func(func())
	pending []func()
	state   queueState
	wake    chan struct{}
	done    chan struct{}
	mx      sync.Mutex
}

// NewUpdateQueue returns a queue delivering updates through post. post
// may block until the event loop has taken the update.
func NewUpdateQueue(post func(func())) *UpdateQueue {
	return &UpdateQueue{
		post: post,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Start begins delivering queued updates.
func (q *UpdateQueue) Start() {
	q.mx.Lock()
	defer q.mx.Unlock()

	if q.state != queueIdle {
		return
	}
	q.state = queueRunning
	go q.drain()
}

// Stop drops pending and future updates. Stop is idempotent.
func (q *UpdateQueue) Stop() {
	q.mx.Lock()
	defer q.mx.Unlock()

	if q.state == queueStopped {
		return
	}
	q.state, q.pending = queueStopped, nil
	close(q.done)
}

// Running reports whether updates are being delivered.
func (q *UpdateQueue) Running() bool {
	q.mx.Lock()
	defer q.mx.Unlock()

	return q.state == queueRunning
}

// Dispatch implements model.Dispatcher.
func (q *UpdateQueue) Dispatch(fn func()) {
	q.mx.Lock()
	switch q.state {
	case queueIdle:
		q.mx.Unlock()
		fn()
		return
	case queueStopped:
		q.mx.Unlock()
		glog.V(2).Infof("[app] update dropped after stop\n")
		return
	}
	q.pending = append(q.pending, fn)
	q.mx.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *UpdateQueue) drain() {
	for {
		select {
		case <-q.done:
			return
		case <-q.wake:
		}
		for {
			fn, ok := q.next()
			if !ok {
				break
			}
			q.post(fn)
		}
	}
}

func (q *UpdateQueue) next() (func(), bool) {
	q.mx.Lock()
	defer q.mx.Unlock()

	if q.state != queueRunning || len(q.pending) == 0 {
		return nil, false
	}
	fn := q.pending[0]
	q.pending = q.pending[1:]

	return fn, true
}
