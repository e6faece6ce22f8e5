package render

import (
	"fmt"

	"github.com/a1s/gridbind/internal/model1"
)

// Row renders model1 rows as is, one column per field.
type Row struct {
	header model1.Header
}

// NewRow returns a row renderer with the given columns.
func NewRow(h model1.Header) *Row {
	return &Row{header: h}
}

// Header returns the row header.
func (r *Row) Header() model1.Header {
	return r.header
}

// Render copies the row fields, padding missing columns and capping
// each cell at MaxCellWidth.
func (r *Row) Render(o model1.Row, row *model1.Row) error {
	if o.ID == "" {
		return fmt.Errorf("row has no id")
	}
	row.ID = o.ID
	row.Fields = make(model1.Fields, len(r.header))
	for i := range r.header {
		row.Fields[i] = Truncate(NA(Clean(o.Field(i))), MaxCellWidth)
	}

	return nil
}
