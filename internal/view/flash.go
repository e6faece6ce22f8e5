// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2024 a1s Contributors

package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/a1s/gridbind/internal/model"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// FlashDelay sets the flash auto-clear delay.
const FlashDelay = 5 * time.Second

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash displays transient status messages.
type Flash struct {
	*tview.TextView

	dispatch model.Dispatcher
	level    FlashLevel
	msg      string
	cancel   context.CancelFunc
	mx       sync.RWMutex
}

// NewFlash returns a flash drawing through d. A nil dispatcher draws on
// the calling goroutine.
func NewFlash(d model.Dispatcher) *Flash {
	if d == nil {
		d = model.InlineDispatcher
	}
	f := Flash{
		TextView: tview.NewTextView(),
		dispatch: d,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)

	return &f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		f.setMessage(FlashErr, err.Error())
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...any) {
	f.setMessage(FlashErr, fmt.Sprintf(format, args...))
}

// Last returns the current message.
func (f *Flash) Last() (FlashLevel, string) {
	f.mx.RLock()
	defer f.mx.RUnlock()

	return f.level, f.msg
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	f.stopTimer()
	f.level, f.msg = FlashInfo, ""
	f.mx.Unlock()

	f.dispatch(func() {
		f.TextView.Clear()
	})
}

func (f *Flash) stopTimer() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	if msg == "" {
		f.Clear()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.mx.Lock()
	f.stopTimer()
	f.level, f.msg, f.cancel = level, msg, cancel
	f.mx.Unlock()

	f.dispatch(func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(level))
		_, _ = fmt.Fprintf(f.TextView, "%s %s", tview.Escape(flashPrefix(level)), tview.Escape(msg))
	})
	go f.autoClear(ctx)
}

func (f *Flash) autoClear(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(FlashDelay):
		f.Clear()
	}
}

func flashColor(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return tcell.ColorYellow
	case FlashErr:
		return tcell.ColorRed
	default:
		return tcell.ColorGreen
	}
}

func flashPrefix(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "[WARN]"
	case FlashErr:
		return "[ERROR]"
	default:
		return "[INFO]"
	}
}
