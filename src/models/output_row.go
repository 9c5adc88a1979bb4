package models

// MCell is one (column, rendered value) pair of an output row.
type MCell struct {
	Column string
	Value  string
}

// MOutputRow is an ordered sequence of cells ready to be written as CSV.
type MOutputRow []MCell

// -----------------------------------------------------------------------------

func (r MOutputRow) Header() []string {
	h := make([]string, len(r))
	for i, c := range r {
		h[i] = c.Column
	}
	return h
}

// -----------------------------------------------------------------------------

func (r MOutputRow) Values() []string {
	v := make([]string, len(r))
	for i, c := range r {
		v[i] = c.Value
	}
	return v
}

// -----------------------------------------------------------------------------

// Get returns the value of the named column.
func (r MOutputRow) Get(column string) (string, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return "", false
}
