// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// ConfirmPage names the dialog page.
const ConfirmPage = "confirm"

// Confirm represents a yes/no dialog overlaid on the page stack.
type Confirm struct {
	*tview.Modal

	pages     *Pages
	dangerous bool
	onConfirm func()
	onCancel  func()
}

// NewConfirm returns a confirmation dialog displayed on pages.
func NewConfirm(pages *Pages) *Confirm {
	c := Confirm{
		Modal: tview.NewModal(),
		pages: pages,
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.AddButtons([]string{"Yes", "No"})
	c.SetDoneFunc(c.done)

	return &c
}

// SetMessage sets the dialog text.
func (c *Confirm) SetMessage(msg string) *Confirm {
	c.SetText(msg)
	return c
}

// SetDangerous flags destructive operations.
func (c *Confirm) SetDangerous(b bool) *Confirm {
	c.dangerous = b
	fg, bg := tcell.ColorWhite, tcell.ColorBlue
	if b {
		fg, bg = tcell.ColorRed, tcell.ColorRed
	}
	c.SetTextColor(fg)
	c.SetButtonBackgroundColor(bg)
	c.SetButtonTextColor(tcell.ColorWhite)

	return c
}

// IsDangerous returns true for destructive dialogs.
func (c *Confirm) IsDangerous() bool {
	return c.dangerous
}

// SetOnConfirm sets the callback fired on Yes.
func (c *Confirm) SetOnConfirm(fn func()) *Confirm {
	c.onConfirm = fn
	return c
}

// SetOnCancel sets the callback fired on No or Esc.
func (c *Confirm) SetOnCancel(fn func()) *Confirm {
	c.onCancel = fn
	return c
}

// Show overlays the dialog.
func (c *Confirm) Show() {
	if c.pages != nil {
		c.pages.AddPage(ConfirmPage, c, true, true)
	}
}

// Dismiss removes the dialog.
func (c *Confirm) Dismiss() {
	if c.pages != nil {
		c.pages.RemovePage(ConfirmPage)
	}
}

func (c *Confirm) done(idx int, _ string) {
	c.Dismiss()
	if idx == 0 {
		if c.onConfirm != nil {
			c.onConfirm()
		}
		return
	}
	if c.onCancel != nil {
		c.onCancel()
	}
}
