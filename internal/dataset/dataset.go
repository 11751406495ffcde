package dataset

import (
	"errors"
	"fmt"
)

// DefaultIDColumn is the column holding row identifiers unless configured otherwise.
const DefaultIDColumn = "record"

// ErrUnknownColumn is returned when a rule references a column the dataset does not have.
var ErrUnknownColumn = errors.New("unknown column")

// Dataset is an immutable table of cells with a designated id column.
type Dataset struct {
	header   []string
	index    map[string]int
	rows     [][]Cell
	idColumn string
	ids      []string
}

// New builds a Dataset. Every row must have exactly len(header) cells, header
// names must be unique, and idColumn must be one of them.
func New(header []string, rows [][]Cell, idColumn string) (*Dataset, error) {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}

	idIdx, ok := index[idColumn]
	if !ok {
		return nil, fmt.Errorf("id column %q: %w", idColumn, ErrUnknownColumn)
	}

	ids := make([]string, len(rows))
	for r, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", r, len(row), len(header))
		}
		ids[r] = row[idIdx].String()
	}

	return &Dataset{
		header:   append([]string(nil), header...),
		index:    index,
		rows:     rows,
		idColumn: idColumn,
		ids:      ids,
	}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Columns returns a copy of the header in source order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.header...)
}

// IDColumn returns the name of the row identifier column.
func (d *Dataset) IDColumn() string {
	return d.idColumn
}

// ID returns the identifier of row r.
func (d *Dataset) ID(r int) string {
	return d.ids[r]
}

// IDs returns a copy of all row identifiers in source order.
func (d *Dataset) IDs() []string {
	return append([]string(nil), d.ids...)
}

// Column returns the cells of the named column in row order.
func (d *Dataset) Column(name string) ([]Cell, error) {
	idx, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
	}
	out := make([]Cell, len(d.rows))
	for r, row := range d.rows {
		out[r] = row[idx]
	}
	return out, nil
}

// Select returns the cells of several columns, one slice per name, failing on
// the first unknown column.
func (d *Dataset) Select(names ...string) ([][]Cell, error) {
	out := make([][]Cell, len(names))
	for i, name := range names {
		col, err := d.Column(name)
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return out, nil
}
