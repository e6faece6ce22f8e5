// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package view

import (
	"sort"

	"github.com/a1s/gridbind/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

var (
	generalBinds = []HelpBind{
		{"<?>", "Help"},
		{"<esc>", "Back"},
		{"<q>", "Quit"},
		{"<C-r>", "Refresh"},
	}
	navBinds = []HelpBind{
		{"<j>", "Down"},
		{"<k>", "Up"},
		{"<g>", "Top"},
		{"<G>", "Bottom"},
	}
)

// Help displays the keybindings of the active page.
type Help struct {
	*tview.Table

	closeFn func()
}

// NewHelp creates a new help view.
func NewHelp() *Help {
	h := Help{Table: tview.NewTable()}
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)
	h.SetInputCapture(h.keyboard)
	h.Populate(nil)

	return &h
}

// SetCloseFn sets the callback when help is closed.
func (h *Help) SetCloseFn(fn func()) {
	h.closeFn = fn
}

func (h *Help) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	switch {
	case evt.Key() == tcell.KeyEsc, evt.Key() == tcell.KeyEnter,
		evt.Rune() == '?', evt.Rune() == 'q':
		if h.closeFn != nil {
			h.closeFn()
		}
		return nil
	}
	return evt
}

// Populate lays out the general bindings next to the given actions.
func (h *Help) Populate(hh ui.MenuHints) {
	h.Clear()

	actions := make([]HelpBind, 0, len(hh))
	for _, hint := range hh {
		if hint.Visible {
			actions = append(actions, HelpBind{"<" + hint.Mnemonic + ">", hint.Description})
		}
	}
	sort.Slice(actions, func(i, j int) bool {
		return actions[i].Desc < actions[j].Desc
	})

	columns := [][]HelpBind{generalBinds, navBinds, actions}
	headers := []string{"GENERAL", "NAVIGATION", "ACTIONS"}

	var maxRows int
	for _, col := range columns {
		maxRows = max(maxRows, len(col))
	}

	// Each logical column spans key, description and a spacer.
	const colWidth = 3
	for c, col := range columns {
		base := c * colWidth
		h.SetCell(0, base, tview.NewTableCell(headers[c]).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
		for r, b := range col {
			h.SetCell(r+1, base, tview.NewTableCell(b.Key).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(r+1, base+1, tview.NewTableCell(b.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}
		if c < len(columns)-1 {
			for r := 0; r <= maxRows; r++ {
				h.SetCell(r, base+2, tview.NewTableCell("").SetSelectable(false).SetExpansion(1))
			}
		}
	}

	h.SetCell(maxRows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}
