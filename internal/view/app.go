// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2024 a1s Contributors

package view

import (
	"context"
	"fmt"

	"github.com/a1s/gridbind/internal/config"
	"github.com/a1s/gridbind/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	mainPage = "main"
	helpPage = "help"
)

// App represents the main application container.
type App struct {
	*tview.Application

	version string
	cfg     *config.Config
	Main    *tview.Pages
	Content *ui.Pages
	menu    *ui.Menu
	crumbs  *ui.Crumbs
	info    *StoreInfo
	flash   *Flash
	help    *Help
	updates *UpdateQueue
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, version string) *App {
	a := App{
		Application: tview.NewApplication(),
		version:     version,
		cfg:         cfg,
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		menu:        ui.NewMenu(),
		info:        NewStoreInfo(),
		help:        NewHelp(),
	}
	a.updates = NewUpdateQueue(func(fn func()) {
		a.Application.QueueUpdateDraw(fn)
	})
	a.flash = NewFlash(a.QueueUpdateDraw)
	a.crumbs = ui.NewCrumbs(a.Content)
	a.Content.AddListener(a.menu)
	a.Content.AddListener(a.crumbs)
	a.Application.SetInputCapture(a.keyboard)

	return &a
}

// Init builds the application layout.
func (a *App) Init() error {
	if a.cfg == nil || a.cfg.Gridbind == nil {
		return fmt.Errorf("app requires a configuration")
	}
	g := a.cfg.Gridbind
	a.info.SetInfo(g.Store, a.version)
	a.EnableMouse(g.UI.EnableMouse)

	a.Main.AddPage(mainPage, a.buildLayout(g.UI.Headless), true, true)
	a.SetRoot(a.Main, true)
	a.SetFocus(a.Content)

	return nil
}

// Run starts the application.
func (a *App) Run() error {
	a.updates.Start()
	defer a.updates.Stop()

	return a.Application.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	a.updates.Stop()
	a.Content.Reset()
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	return a.updates.Running()
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Push initializes a component and makes it the active page.
func (a *App) Push(c ui.Component) error {
	if err := c.Init(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", c.Name(), err)
	}
	a.Content.Push(c)
	a.SetFocus(c)

	return nil
}

// Confirm overlays a yes/no dialog and runs ok on Yes.
func (a *App) Confirm(msg string, ok func()) {
	top := a.Content.Top()
	restore := func() {
		if top != nil {
			a.SetFocus(top)
		}
	}
	d := ui.NewConfirm(a.Content).
		SetMessage(msg).
		SetDangerous(true).
		SetOnConfirm(func() {
			restore()
			ok()
		}).
		SetOnCancel(restore)
	d.Show()
	a.SetFocus(d)
}

// QueueUpdateDraw runs fn on the UI goroutine in dispatch order. Before
// the event loop starts, fn runs inline; once stopped, fn is dropped.
func (a *App) QueueUpdateDraw(fn func()) {
	a.updates.Dispatch(fn)
}

func (a *App) buildLayout(headless bool) *tview.Flex {
	bottom := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.flash, 1, 0, false).
		AddItem(a.crumbs, 1, 0, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow)
	if !headless {
		header := tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(a.info, 0, 1, false).
			AddItem(a.menu, 0, 3, false)
		main.AddItem(header, 8, 0, false)
	}
	main.AddItem(a.Content, 0, 1, true).
		AddItem(bottom, 2, 0, false)

	return main
}

func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if name, _ := a.Main.GetFrontPage(); name == helpPage {
		return evt
	}
	if name, _ := a.Content.GetFrontPage(); name == ui.ConfirmPage {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyCtrlC:
		a.Stop()
		return nil
	case tcell.KeyCtrlR:
		a.refresh()
		return nil
	case tcell.KeyEsc:
		if a.Content.Depth() > 1 {
			a.Content.Pop()
		}
		return nil
	case tcell.KeyRune:
		switch evt.Rune() {
		case '?':
			a.showHelp()
			return nil
		case 'q':
			a.Stop()
			return nil
		}
	}

	return evt
}

func (a *App) showHelp() {
	var hh ui.MenuHints
	if top := a.Content.Top(); top != nil {
		hh = top.Hints()
	}
	a.help.Populate(hh)
	a.help.SetCloseFn(func() {
		a.Main.RemovePage(helpPage)
		if top := a.Content.Top(); top != nil {
			a.SetFocus(top)
		}
	})
	a.Main.AddPage(helpPage, a.help, true, true)
	a.SetFocus(a.help)
}

func (a *App) refresh() {
	if r, ok := a.Content.Top().(interface{ Refresh() }); ok {
		r.Refresh()
	}
}
