// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Crumbs represents the page stack breadcrumbs.
type Crumbs struct {
	*tview.TextView

	pages *Pages
}

// NewCrumbs returns a breadcrumb view tracking pages.
func NewCrumbs(pages *Pages) *Crumbs {
	c := Crumbs{
		TextView: tview.NewTextView(),
		pages:    pages,
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextAlign(tview.AlignLeft)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return &c
}

// PageChanged redraws the crumbs.
func (c *Crumbs) PageChanged(Component) {
	c.refresh(c.pages.Names())
}

func (c *Crumbs) refresh(crumbs []string) {
	c.Clear()
	last := len(crumbs) - 1
	for i, crumb := range crumbs {
		name := strings.ReplaceAll(strings.ToLower(crumb), " ", "")
		if i == last {
			_, _ = fmt.Fprintf(c, "[yellow:black:b] <%s> [-:-:-] ", name)
			continue
		}
		_, _ = fmt.Fprintf(c, "[gray:black:-] <%s> [-:-:-] ", name)
	}
}
