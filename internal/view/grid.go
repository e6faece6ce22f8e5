// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/a1s/gridbind/internal/config/data"
	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/a1s/gridbind/internal/render"
	"github.com/a1s/gridbind/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// RowProvider represents the rows backing a grid.
type RowProvider interface {
	model.Mutable[model1.Row]

	// SectionName returns the section name.
	SectionName(section int) string

	// ReplaceItem swaps the row at p.
	ReplaceItem(p model1.Position, r model1.Row) error

	// SortSection orders a section.
	SortSection(section int, less func(a, b model1.Row) bool) error
}

// Refresher represents a provider able to reload from its backing store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ConfirmFunc asks the user before running ok.
type ConfirmFunc func(msg string, ok func())

// RowEditFunc edits a row out of band and returns the new content.
type RowEditFunc func(r model1.Row, h model1.Header) (model1.Row, error)

// Grid presents a row provider as a sectioned table and routes keyboard
// edits back into it.
type Grid struct {
	*ui.Table

	provider RowProvider
	editor   *model.Editor[model1.Row]
	animator *ui.Animator
	header   model1.Header
	gates    data.FeatureGates
	sortCol  int
	flash    *Flash
	confirm  ConfirmFunc
	editRow  RowEditFunc
}

// NewGrid returns a grid over p.
func NewGrid(name string, p RowProvider, h model1.Header, cfg model1.AnimationConfig, opts ...ui.AnimatorOption) *Grid {
	g := Grid{
		Table:    ui.NewTable(name),
		provider: p,
		editor:   model.NewEditor[model1.Row](p),
		header:   h,
		gates:    data.NewFeatureGates(),
		confirm:  func(_ string, ok func()) { ok() },
	}
	g.editor.Factory = g.newRow
	g.animator = ui.NewAnimator(g.Table, cfg, opts...)
	g.SetMoveAnimation(cfg.For(model1.OpMoveRow))

	return &g
}

// SetFeatureGates restricts the edits the grid offers.
func (g *Grid) SetFeatureGates(f data.FeatureGates) {
	g.gates = f
	g.editor.CanMoveItems = f.Move
	g.editor.CanEditItems = f.Delete
	g.editor.CanInsertItems = f.Insert
}

// SetFlash routes user facing messages.
func (g *Grid) SetFlash(f *Flash) {
	g.flash = f
}

// SetConfirmFn sets how destructive edits get confirmed.
func (g *Grid) SetConfirmFn(fn ConfirmFunc) {
	if fn == nil {
		fn = func(_ string, ok func()) { ok() }
	}
	g.confirm = fn
}

// SetRowEditFn enables out of band row edits.
func (g *Grid) SetRowEditFn(fn RowEditFunc) {
	g.editRow = fn
}

// Editor returns the grid editor.
func (g *Grid) Editor() *model.Editor[model1.Row] {
	return g.editor
}

// Animator returns the grid animator.
func (g *Grid) Animator() *ui.Animator {
	return g.animator
}

// SortColumn returns the column used for sorting.
func (g *Grid) SortColumn() int {
	return g.sortCol
}

// Init initializes the grid.
func (g *Grid) Init(ctx context.Context) error {
	if err := g.Table.Init(ctx); err != nil {
		return err
	}
	texts := model.NewSectionTexts[model1.Row](g.provider, g.sectionTitle, g.sectionFooter)
	g.SetSource(render.Bind[model1.Row](g.provider, render.NewRow(g.header), texts))
	g.bindKeys(g.Actions())

	return nil
}

// Start binds the grid to its provider.
func (g *Grid) Start() {
	g.animator.Bind(g.provider.Observable())
}

// Stop unbinds the grid.
func (g *Grid) Stop() {
	g.animator.Close()
}

func (g *Grid) sectionTitle(ds model.DataSource[model1.Row], s int) string {
	return fmt.Sprintf("%s (%d)", g.provider.SectionName(s), ds.ItemCount(s))
}

// sectionFooter totals the first numeric column of a section.
func (g *Grid) sectionFooter(ds model.DataSource[model1.Row], s int) string {
	col := -1
	for i := range g.header {
		if g.header.IsCapacityCol(i) {
			col = i
			break
		}
	}
	if col < 0 {
		return ""
	}
	var total int64
	for i, cnt := 0, ds.ItemCount(s); i < cnt; i++ {
		r, ok := model.Lookup[model1.Row](ds, model1.At(s, i))
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(strings.ReplaceAll(r.Field(col), ",", ""), 10, 64)
		if err != nil {
			continue
		}
		total += n
	}

	return fmt.Sprintf("Σ %s %d", g.header[col].Name, total)
}

func (g *Grid) bindKeys(aa *ui.KeyActions) {
	aa.Add(ui.KeyR, ui.NewKeyAction("Refresh", g.refreshCmd, true))
	aa.Add(ui.KeyS, ui.NewKeyAction("Sort Column", g.sortColCmd, true))
	if g.gates.Delete {
		aa.Add(ui.KeyD, ui.NewKeyAction("Delete", g.deleteCmd, true))
	}
	if g.gates.Insert {
		aa.Add(ui.KeyI, ui.NewKeyAction("Insert", g.insertCmd, true))
	}
	if g.gates.Move {
		aa.Bulk(ui.KeyMap{
			ui.KeyJ: ui.NewKeyAction("Move Down", g.moveDownCmd, true),
			ui.KeyK: ui.NewKeyAction("Move Up", g.moveUpCmd, true),
		})
	}
	if g.gates.Sort {
		aa.Add(tcell.KeyCtrlS, ui.NewKeyAction("Sort", g.sortCmd, true))
	}
	if g.editRow != nil && g.gates.Edit {
		aa.Add(ui.KeyE, ui.NewKeyAction("Edit", g.editCmd, true))
	}
}

func (g *Grid) deleteCmd(*tcell.EventKey) *tcell.EventKey {
	p, ok := g.SelectedPosition()
	if !ok || p.IsSection() {
		return nil
	}
	r, ok := model.Lookup[model1.Row](g.provider, p)
	if !ok {
		return nil
	}
	g.confirm(fmt.Sprintf("Delete %s?", rowLabel(r)), func() {
		if err := g.editor.Delete(p); err != nil {
			g.report(err)
			return
		}
		g.info("Deleted %s", rowLabel(r))
	})

	return nil
}

func (g *Grid) insertCmd(*tcell.EventKey) *tcell.EventKey {
	p, ok := g.insertionPoint()
	if !ok {
		g.warn("Nothing to insert into")
		return nil
	}
	if err := g.editor.Insert(p); err != nil {
		g.report(err)
		return nil
	}
	g.SelectPosition(p)

	return nil
}

func (g *Grid) moveDownCmd(*tcell.EventKey) *tcell.EventKey {
	p, ok := g.SelectedPosition()
	if !ok || p.IsSection() {
		return nil
	}
	to := model1.At(p.Section, p.Item+1)
	if to.Item >= g.provider.ItemCount(p.Section) {
		if p.Section+1 >= g.provider.SectionCount() {
			return nil
		}
		to = model1.At(p.Section+1, 0)
	}
	g.move(p, to)

	return nil
}

func (g *Grid) moveUpCmd(*tcell.EventKey) *tcell.EventKey {
	p, ok := g.SelectedPosition()
	if !ok || p.IsSection() {
		return nil
	}
	to := model1.At(p.Section, p.Item-1)
	if p.Item == 0 {
		if p.Section == 0 {
			return nil
		}
		to = model1.At(p.Section-1, g.provider.ItemCount(p.Section-1))
	}
	g.move(p, to)

	return nil
}

func (g *Grid) move(from, to model1.Position) {
	if !g.editor.CanMove(from) {
		return
	}
	if err := g.editor.Move(from, to, true); err != nil {
		g.report(err)
		return
	}
	g.SelectPosition(to)
}

func (g *Grid) sortCmd(*tcell.EventKey) *tcell.EventKey {
	p, ok := g.SelectedPosition()
	if !ok || len(g.header) == 0 {
		return nil
	}
	if err := g.provider.SortSection(p.Section, model1.RowLess(g.header, g.sortCol)); err != nil {
		g.report(err)
		return nil
	}
	g.info("Sorted %s by %s", g.provider.SectionName(p.Section), g.header[g.sortCol].Name)

	return nil
}

func (g *Grid) sortColCmd(*tcell.EventKey) *tcell.EventKey {
	if len(g.header) == 0 {
		return nil
	}
	g.sortCol = (g.sortCol + 1) % len(g.header)
	g.info("Sort column %s", g.header[g.sortCol].Name)

	return nil
}

func (g *Grid) editCmd(*tcell.EventKey) *tcell.EventKey {
	p, ok := g.SelectedPosition()
	if !ok || p.IsSection() || g.editRow == nil {
		return nil
	}
	r, ok := model.Lookup[model1.Row](g.provider, p)
	if !ok {
		return nil
	}
	nr, err := g.editRow(r, g.header)
	if err != nil {
		if errors.Is(err, ErrEditorCancelled) || errors.Is(err, ErrNoChanges) {
			g.info("Edit of %s cancelled", rowLabel(r))
			return nil
		}
		g.report(err)
		return nil
	}
	if err := g.provider.ReplaceItem(p, nr); err != nil {
		g.report(err)
	}

	return nil
}

func (g *Grid) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	g.Refresh()
	return nil
}

// Refresh reloads a store backed provider in the background.
func (g *Grid) Refresh() {
	r, ok := g.provider.(Refresher)
	if !ok {
		return
	}
	g.info("Refreshing...")
	go func() {
		if err := r.Refresh(context.Background()); err != nil {
			g.report(err)
		}
	}()
}

func (g *Grid) insertionPoint() (model1.Position, bool) {
	if p, ok := g.SelectedPosition(); ok {
		if p.IsSection() {
			return model1.At(p.Section, 0), true
		}
		return model1.At(p.Section, p.Item+1), true
	}
	if g.provider.SectionCount() == 0 {
		return model1.Position{}, false
	}

	return model1.At(0, g.provider.ItemCount(0)), true
}

func (g *Grid) newRow(model1.Position) (model1.Row, error) {
	id := uuid.NewString()
	ff := make([]string, len(g.header))
	if len(ff) > 0 {
		ff[0] = "new-" + id[:8]
	}

	return model1.NewRow(id, ff...), nil
}

func (g *Grid) report(err error) {
	glog.Errorf("[grid] %s: %v\n", g.Name(), err)
	if g.flash != nil {
		g.flash.Err(err)
	}
}

func (g *Grid) info(format string, args ...any) {
	if g.flash != nil {
		g.flash.Infof(format, args...)
	}
}

func (g *Grid) warn(msg string) {
	if g.flash != nil {
		g.flash.Warn(msg)
	}
}

func rowLabel(r model1.Row) string {
	if len(r.Fields) > 0 && r.Fields[0] != "" {
		return r.Fields[0]
	}
	return r.ID
}
