// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"context"
	"fmt"

	"github.com/a1s/gridbind/internal/model1"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	gtcell "github.com/gdamore/tcell/v2"
	"github.com/golang/glog"
)

const (
	// TitleFmt formats the table title with name and row count.
	TitleFmt = " <%s>[%d] "

	sectionFmt       = "▾ %s"
	sectionFooterFmt = "%s · %s"
)

type cellStyle struct {
	fg    tcell.Color
	attrs tcell.AttrMask
}

// Table renders a sectioned source and replays structural changes. Each
// section shows as a title row followed by its item rows.
type Table struct {
	*tview.Table

	name     string
	source   Source
	actions  *KeyActions
	counts   []int
	rows     []model1.Position
	styles   map[model1.Position]cellStyle
	batch    *pendingBatch
	moveAnim model1.AnimationKind
}

// NewTable returns a new table instance.
func NewTable(name string) *Table {
	return &Table{
		Table:    tview.NewTable(),
		name:     name,
		actions:  NewKeyActions(),
		moveAnim: model1.AnimationNone,
	}
}

// Init initializes the table component.
func (t *Table) Init(context.Context) error {
	t.SetFixed(1, 0)
	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetSelectable(true, false)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetBorderColor(tcell.ColorWhite)
	t.SetInputCapture(t.keyboard)
	t.SetTitle(fmt.Sprintf(TitleFmt, t.name, 0))
	t.showNoData("Loading...")

	return nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Start starts the component.
func (*Table) Start() {}

// Stop stops the component.
func (*Table) Stop() {}

// Actions returns the key actions.
func (t *Table) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *Table) Hints() MenuHints {
	return t.actions.Hints()
}

// SetSource sets the rendered content. Call ReloadAll to draw it.
func (t *Table) SetSource(s Source) {
	t.source = s
}

// SetMoveAnimation sets the highlight used for moved rows.
func (t *Table) SetMoveAnimation(a model1.AnimationKind) {
	t.moveAnim = a
}

// Counts returns the displayed row count per section.
func (t *Table) Counts() []int {
	out := make([]int, len(t.counts))
	copy(out, t.counts)
	return out
}

// ReloadAll implements ChangeSink.
func (t *Table) ReloadAll() {
	t.styles = nil
	t.counts = t.counts[:0]
	if t.source != nil {
		for s, n := 0, t.source.SectionCount(); s < n; s++ {
			t.counts = append(t.counts, t.source.ItemCount(s))
		}
	}
	t.redraw()
}

// PerformBatch implements ChangeSink. The collected ops are validated
// against the source once body returns; an inconsistent batch leaves the
// table untouched.
func (t *Table) PerformBatch(body func()) error {
	if t.batch != nil {
		return ErrNestedBatch
	}
	t.batch = newPendingBatch()
	defer func() { t.batch = nil }()

	body()
	if t.batch.isEmpty() {
		return nil
	}
	if t.source == nil {
		return fmt.Errorf("%w: no source", ErrInconsistentBatch)
	}
	l, err := t.batch.reconcile(t.counts, t.source)
	if err != nil {
		return err
	}
	ids := t.updatedIDs(t.batch.rowUpdates)
	t.counts = l.counts
	t.styles = t.batchStyles(t.batch, l, ids)
	t.redraw()

	return nil
}

// InsertRows implements ChangeSink.
func (t *Table) InsertRows(pp []model1.Position, a model1.AnimationKind) {
	t.record(func(b *pendingBatch) {
		b.rowInserts = append(b.rowInserts, pp...)
		b.anims[model1.OpInsertRow] = a
	})
}

// DeleteRows implements ChangeSink.
func (t *Table) DeleteRows(pp []model1.Position, a model1.AnimationKind) {
	t.record(func(b *pendingBatch) {
		b.rowDeletes = append(b.rowDeletes, pp...)
		b.anims[model1.OpDeleteRow] = a
	})
}

// UpdateRows implements ChangeSink.
func (t *Table) UpdateRows(pp []model1.Position, a model1.AnimationKind) {
	t.record(func(b *pendingBatch) {
		b.rowUpdates = append(b.rowUpdates, pp...)
		b.anims[model1.OpUpdateRow] = a
	})
}

// MoveRow implements ChangeSink.
func (t *Table) MoveRow(from, to model1.Position) {
	t.record(func(b *pendingBatch) {
		b.rowMoves = append(b.rowMoves, rowMove{from: from, to: to})
	})
}

// InsertSections implements ChangeSink.
func (t *Table) InsertSections(ss []int, a model1.AnimationKind) {
	t.record(func(b *pendingBatch) {
		b.secInserts = append(b.secInserts, ss...)
		b.anims[model1.OpInsertSection] = a
	})
}

// DeleteSections implements ChangeSink.
func (t *Table) DeleteSections(ss []int, a model1.AnimationKind) {
	t.record(func(b *pendingBatch) {
		b.secDeletes = append(b.secDeletes, ss...)
		b.anims[model1.OpDeleteSection] = a
	})
}

// UpdateSections implements ChangeSink.
func (t *Table) UpdateSections(ss []int, a model1.AnimationKind) {
	t.record(func(b *pendingBatch) {
		b.secUpdates = append(b.secUpdates, ss...)
		b.anims[model1.OpUpdateSection] = a
	})
}

// MoveSection implements ChangeSink.
func (t *Table) MoveSection(from, to int) {
	t.record(func(b *pendingBatch) {
		b.secMoves = append(b.secMoves, sectionMove{from: from, to: to})
	})
}

// record adds to the open batch or runs a single op batch.
func (t *Table) record(fn func(*pendingBatch)) {
	if t.batch != nil {
		fn(t.batch)
		return
	}
	if err := t.PerformBatch(func() { fn(t.batch) }); err != nil {
		glog.Warningf("[table] %s: %v\n", t.name, err)
		t.ReloadAll()
	}
}

// PositionAt returns the position shown at a table row. Section title
// rows map to a section position.
func (t *Table) PositionAt(row int) (model1.Position, bool) {
	if row <= 0 || row >= len(t.rows) {
		return model1.Position{}, false
	}
	return t.rows[row], true
}

// RowFor returns the table row showing p.
func (t *Table) RowFor(p model1.Position) (int, bool) {
	if p.Section < 0 || p.Section >= len(t.counts) {
		return 0, false
	}
	row := 1
	for s := 0; s < p.Section; s++ {
		row += t.counts[s] + 1
	}
	if p.IsSection() {
		return row, true
	}
	if p.Item < 0 || p.Item >= t.counts[p.Section] {
		return 0, false
	}

	return row + 1 + p.Item, true
}

// SelectedPosition returns the position under the cursor.
func (t *Table) SelectedPosition() (model1.Position, bool) {
	row, _ := t.GetSelection()
	return t.PositionAt(row)
}

// SelectPosition moves the cursor to p.
func (t *Table) SelectPosition(p model1.Position) {
	if row, ok := t.RowFor(p); ok {
		t.Select(row, 0)
	}
}

// CellText returns the text of a table cell.
func (t *Table) CellText(row, col int) string {
	c := t.GetCell(row, col)
	if c == nil {
		return ""
	}
	return c.Text
}

func (t *Table) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := t.GetSelection()
	rowCount := t.GetRowCount()

	switch AsKey(evt) {
	case tcell.KeyDown, tcell.Key('j'):
		if row < rowCount-1 {
			t.Select(row+1, col)
		}
		return nil
	case tcell.KeyUp, tcell.Key('k'):
		if row > 1 {
			t.Select(row-1, col)
		}
		return nil
	case tcell.KeyHome, tcell.Key('g'):
		if rowCount > 1 {
			t.Select(1, col)
		}
		return nil
	case tcell.KeyEnd, tcell.Key('G'):
		if rowCount > 1 {
			t.Select(rowCount-1, col)
		}
		return nil
	}

	if a, ok := t.actions.Get(AsKey(evt)); ok {
		return a.Action(evt)
	}

	return evt
}

func (t *Table) showNoData(msg string) {
	t.Clear()
	t.rows = t.rows[:0]
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(tcell.ColorGray)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	t.SetCell(0, 0, cell)
}

func (t *Table) redraw() {
	if t.source == nil || len(t.counts) == 0 {
		t.showNoData("No data")
		t.SetTitle(fmt.Sprintf(TitleFmt, t.name, 0))
		return
	}

	t.Clear()
	h := t.source.Header()
	t.buildHeader(h)
	t.rows = append(t.rows[:0], model1.Position{Section: -1, Item: model1.SectionItem})

	var total int
	for s, n := range t.counts {
		t.buildSection(len(t.rows), s, len(h))
		t.rows = append(t.rows, model1.SectionPosition(s))
		for i := 0; i < n; i++ {
			p := model1.At(s, i)
			r, ok := t.source.RowAt(p)
			if !ok {
				r = model1.NewRow("", model1.NAValue)
			}
			t.buildRow(len(t.rows), p, r, h)
			t.rows = append(t.rows, p)
		}
		total += n
	}
	t.SetTitle(fmt.Sprintf(TitleFmt, t.name, total))

	if row, _ := t.GetSelection(); row <= 0 || row >= len(t.rows) {
		t.Select(min(1, len(t.rows)-1), 0)
	}
}

func (t *Table) buildHeader(h model1.Header) {
	for col, c := range h {
		cell := tview.NewTableCell(c.Name)
		cell.SetTextColor(tcell.ColorYellow)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(c.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		t.SetCell(0, col, cell)
	}
}

func (t *Table) buildSection(row, s, cols int) {
	title := t.source.SectionTitle(s)
	if title == "" {
		title = fmt.Sprintf("#%d", s)
	}
	st, ok := t.styles[model1.SectionPosition(s)]
	if !ok {
		st = cellStyle{fg: viewColor(model1.SectionColor), attrs: tcell.AttrBold}
	}
	footer := t.source.SectionFooter(s)
	text := fmt.Sprintf(sectionFmt, title)
	if footer != "" && cols < 2 {
		text = fmt.Sprintf(sectionFooterFmt, text, footer)
	}
	cell := tview.NewTableCell(text)
	cell.SetTextColor(st.fg)
	cell.SetAttributes(st.attrs)
	cell.SetBackgroundColor(tcell.ColorDefault)
	cell.SetExpansion(1)
	t.SetCell(row, 0, cell)
	for col := 1; col < cols; col++ {
		t.SetCell(row, col, tview.NewTableCell("").SetBackgroundColor(tcell.ColorDefault))
	}
	if footer != "" && cols >= 2 {
		fc := tview.NewTableCell(footer)
		fc.SetTextColor(tcell.ColorGray)
		fc.SetAlign(tview.AlignRight)
		fc.SetBackgroundColor(tcell.ColorDefault)
		fc.SetExpansion(1)
		t.SetCell(row, cols-1, fc)
	}
}

func (t *Table) buildRow(row int, p model1.Position, r model1.Row, h model1.Header) {
	st, ok := t.styles[p]
	if !ok {
		st = cellStyle{fg: tcell.ColorWhite}
	}
	for col := range h {
		cell := tview.NewTableCell(h[col].Decorate(r.Field(col)))
		cell.SetTextColor(st.fg)
		cell.SetAttributes(st.attrs)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(h[col].Align)
		cell.SetExpansion(1)
		if col == 0 {
			cell.SetReference(r.ID)
		}
		t.SetCell(row, col, cell)
	}
}

// updatedIDs reads the ids of the rows about to be updated off the
// current display.
func (t *Table) updatedIDs(pp []model1.Position) []string {
	ids := make([]string, 0, len(pp))
	for _, p := range pp {
		row, ok := t.RowFor(p)
		if !ok {
			continue
		}
		c := t.GetCell(row, 0)
		if c == nil {
			continue
		}
		if id, ok := c.GetReference().(string); ok && id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

func (t *Table) batchStyles(b *pendingBatch, l layout, updated []string) map[model1.Position]cellStyle {
	ss := make(map[model1.Position]cellStyle)
	mark := func(p model1.Position, k model1.OpKind, a model1.AnimationKind) {
		fg, attrs, ok := model1.AnimationStyle(k, a)
		if ok {
			ss[p] = cellStyle{fg: viewColor(fg), attrs: viewAttrs(attrs)}
		}
	}
	markSection := func(s int, k model1.OpKind, a model1.AnimationKind) {
		mark(model1.SectionPosition(s), k, a)
		for i, n := 0, l.counts[s]; i < n; i++ {
			mark(model1.At(s, i), k, a)
		}
	}

	if len(updated) > 0 {
		byID := make(map[string]struct{}, len(updated))
		for _, id := range updated {
			byID[id] = struct{}{}
		}
		for s, n := range l.counts {
			for i := 0; i < n; i++ {
				p := model1.At(s, i)
				if r, ok := t.source.RowAt(p); ok {
					if _, hit := byID[r.ID]; hit {
						mark(p, model1.OpUpdateRow, b.anims[model1.OpUpdateRow])
					}
				}
			}
		}
	}
	for _, p := range b.rowInserts {
		mark(p, model1.OpInsertRow, b.anims[model1.OpInsertRow])
	}
	for _, m := range b.rowMoves {
		mark(m.to, model1.OpMoveRow, t.moveAnim)
	}
	for _, s := range b.secInserts {
		markSection(s, model1.OpInsertSection, b.anims[model1.OpInsertSection])
	}
	for _, m := range b.secMoves {
		markSection(m.to, model1.OpMoveSection, t.moveAnim)
	}
	for _, s := range b.secUpdates {
		markSection(l.newOf[s], model1.OpUpdateSection, b.anims[model1.OpUpdateSection])
	}

	return ss
}

// Styled returns the highlight color applied to p, if any.
func (t *Table) Styled(p model1.Position) (tcell.Color, bool) {
	st, ok := t.styles[p]
	return st.fg, ok
}

func viewColor(c gtcell.Color) tcell.Color {
	return tcell.NewHexColor(c.Hex())
}

func viewAttrs(a gtcell.AttrMask) tcell.AttrMask {
	out := tcell.AttrNone
	if a&gtcell.AttrBold != 0 {
		out |= tcell.AttrBold
	}
	if a&gtcell.AttrDim != 0 {
		out |= tcell.AttrDim
	}

	return out
}
