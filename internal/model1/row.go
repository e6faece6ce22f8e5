package model1

// Fields represents the rendered columns of a row.
type Fields []string

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	copy(out, f)
	return out
}

// Equal returns true if both field sets are identical.
func (f Fields) Equal(o Fields) bool {
	if len(f) != len(o) {
		return false
	}
	for i := range f {
		if f[i] != o[i] {
			return false
		}
	}
	return true
}

// Row represents a collection of columns
type Row struct {
	ID     string `json:"id" yaml:"id"`
	Fields Fields `json:"fields" yaml:"fields"`
}

func NewRow(id string, fields ...string) Row {
	return Row{ID: id, Fields: Fields(fields).Clone()}
}

func (r Row) Clone() Row {
	return Row{
		ID:     r.ID,
		Fields: r.Fields.Clone(),
	}
}

func (r Row) Len() int {
	return len(r.Fields)
}

// Field returns the column value or NAValue when out of range.
func (r Row) Field(col int) string {
	if col < 0 || col >= len(r.Fields) {
		return NAValue
	}
	return r.Fields[col]
}

// Rows represents a collection of rows
type Rows []Row

func (r Rows) Clone() Rows {
	out := make(Rows, len(r))
	for i, row := range r {
		out[i] = row.Clone()
	}
	return out
}

// IndexOf returns the index of the row with the given id.
func (r Rows) IndexOf(id string) (int, bool) {
	for i, row := range r {
		if row.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Section represents a named group of rows.
type Section struct {
	Name string `json:"name" yaml:"name"`
	Rows Rows   `json:"rows" yaml:"rows"`
}

func (s Section) Clone() Section {
	return Section{Name: s.Name, Rows: s.Rows.Clone()}
}

// Sections represents an ordered collection of sections.
type Sections []Section

func (s Sections) Clone() Sections {
	out := make(Sections, len(s))
	for i, sec := range s {
		out[i] = sec.Clone()
	}
	return out
}

// RowCount returns the total number of rows across sections.
func (s Sections) RowCount() int {
	var n int
	for _, sec := range s {
		n += len(sec.Rows)
	}
	return n
}
