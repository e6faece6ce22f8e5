// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	menuHintFmt = " [yellow::b]<%s>[white::-]%s %s "
	menuRows    = 6
)

// Menu lays out the key hints of the top page in columns of menuRows.
type Menu struct {
	*tview.Table
}

// NewMenu returns a new menu.
func NewMenu() *Menu {
	m := Menu{Table: tview.NewTable()}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)

	return &m
}

// HydrateMenu replaces the menu content with the visible hints.
func (m *Menu) HydrateMenu(hh MenuHints) {
	m.Clear()

	shown := make(MenuHints, 0, len(hh))
	for _, h := range hh {
		if h.Visible && !h.IsBlank() && h.Description != "" {
			shown = append(shown, h)
		}
	}
	sort.Sort(shown)

	for i, col := range columns(shown, menuRows) {
		width := mnemonicWidth(col)
		for row, h := range col {
			c := tview.NewTableCell(formatHint(h, width))
			c.SetBackgroundColor(tcell.ColorDefault)
			m.SetCell(row, i, c)
		}
	}
}

// PageChanged rebuilds the menu from the new top component.
func (m *Menu) PageChanged(top Component) {
	if top == nil {
		m.Clear()
		return
	}
	m.HydrateMenu(top.Hints())
}

// columns splits hints column major, n per column.
func columns(hh MenuHints, n int) []MenuHints {
	cc := make([]MenuHints, 0, len(hh)/n+1)
	for len(hh) > 0 {
		k := min(n, len(hh))
		cc = append(cc, hh[:k])
		hh = hh[k:]
	}

	return cc
}

func mnemonicWidth(hh MenuHints) int {
	var w int
	for _, h := range hh {
		w = max(w, len(h.Mnemonic))
	}

	return w
}

// formatHint pads the mnemonic so descriptions line up within a column.
func formatHint(h MenuHint, width int) string {
	pad := strings.Repeat(" ", max(0, width-len(h.Mnemonic)))
	return fmt.Sprintf(menuHintFmt, h.Mnemonic, pad, h.Description)
}
