package model1

import (
	"fmt"
	"strings"

	"github.com/derailed/tview"
)

// NumericSuffix marks a numeric column in a header spec, e.g. "QTY:num".
const NumericSuffix = ":num"

// Attrs represents column attributes.
type Attrs struct {
	Align     int  // tview alignment
	Capacity  bool // Numeric, sorts by magnitude
	Decorator DecoratorFunc
}

// DecoratorFunc decorates a cell value.
type DecoratorFunc func(string) string

// HeaderColumn represents a table header column.
type HeaderColumn struct {
	Name string
	Attrs
}

func (h HeaderColumn) String() string {
	return fmt.Sprintf("%s [%d::%t]", h.Name, h.Align, h.Capacity)
}

// Decorate returns the display value of a cell in this column.
func (h HeaderColumn) Decorate(v string) string {
	if h.Decorator == nil {
		return v
	}
	return h.Decorator(v)
}

// Header represents a table header.
type Header []HeaderColumn

// NewHeader builds a header from column specs. Specs ending in
// NumericSuffix yield right aligned numeric columns.
func NewHeader(specs ...string) Header {
	h := make(Header, 0, len(specs))
	for _, s := range specs {
		name, numeric := strings.CutSuffix(s, NumericSuffix)
		c := HeaderColumn{Name: name}
		if numeric {
			c.Align, c.Capacity = tview.AlignRight, true
		}
		h = append(h, c)
	}

	return h
}

// IsCapacityCol reports whether col holds numbers.
func (h Header) IsCapacityCol(col int) bool {
	if col < 0 || col >= len(h) {
		return false
	}
	return h[col].Capacity
}

// ColumnNames returns the column names.
func (h Header) ColumnNames() []string {
	if len(h) == 0 {
		return nil
	}
	cc := make([]string, 0, len(h))
	for _, c := range h {
		cc = append(cc, c.Name)
	}

	return cc
}
