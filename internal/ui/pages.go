// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"github.com/derailed/tview"
)

// PageListener is notified when the top page changes.
type PageListener interface {
	// PageChanged is called with the new top component, nil if none.
	PageChanged(top Component)
}

// Pages represents a stack of components. Only the top one is visible.
type Pages struct {
	*tview.Pages

	stack     []Component
	listeners []PageListener
}

// NewPages returns a new page stack.
func NewPages() *Pages {
	return &Pages{Pages: tview.NewPages()}
}

// AddListener registers a page listener.
func (p *Pages) AddListener(l PageListener) {
	p.listeners = append(p.listeners, l)
}

// Push adds a component on top of the stack and starts it.
func (p *Pages) Push(c Component) {
	if top := p.Top(); top != nil {
		top.Stop()
	}
	p.stack = append(p.stack, c)
	p.AddPage(c.Name(), c, true, true)
	p.SwitchToPage(c.Name())
	c.Start()
	p.notify()
}

// Pop removes the top component. It returns false on an empty stack.
func (p *Pages) Pop() bool {
	if len(p.stack) == 0 {
		return false
	}
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	top.Stop()
	p.RemovePage(top.Name())

	if c := p.Top(); c != nil {
		p.SwitchToPage(c.Name())
		c.Start()
	}
	p.notify()

	return true
}

// Top returns the active component or nil.
func (p *Pages) Top() Component {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// Depth returns the stack depth.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset stops and removes every component.
func (p *Pages) Reset() {
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		top.Stop()
		p.RemovePage(top.Name())
	}
	p.notify()
}

func (p *Pages) notify() {
	top := p.Top()
	for _, l := range p.listeners {
		l.PageChanged(top)
	}
}

// Names returns the component names from bottom to top.
func (p *Pages) Names() []string {
	nn := make([]string, 0, len(p.stack))
	for _, c := range p.stack {
		nn = append(nn, c.Name())
	}
	return nn
}
