package columnar

import (
	"github.com/aristath/marketframe/pkg/errs"
)

// Table is a Schema plus one ChunkedArray per field, all of equal logical
// length (the row count). Any operation producing a Table must preserve
// this invariant: column count equals field count, and every column's
// length equals the row count.
type Table struct {
	schema   *Schema
	columns  []*ChunkedArray
	rowCount int
}

// NewTable builds a Table, validating that every column's length matches
// rowCount and that the column count matches the schema's field count.
func NewTable(schema *Schema, columns []*ChunkedArray) (*Table, error) {
	if len(columns) != schema.NumFields() {
		return nil, errs.Newf(errs.TypeMismatch, "table", "schema has %d fields but %d columns given", schema.NumFields(), len(columns))
	}
	rowCount := 0
	if len(columns) > 0 {
		rowCount = columns[0].Len()
	}
	for i, col := range columns {
		if col.Len() != rowCount {
			return nil, errs.Newf(errs.LengthMismatch, "table", "column %q has length %d, expected %d", schema.Field(i).Name, col.Len(), rowCount)
		}
	}
	return &Table{schema: schema, columns: columns, rowCount: rowCount}, nil
}

// MakeEmptyTable builds a zero-row Table matching schema.
func MakeEmptyTable(schema *Schema) *Table {
	cols := make([]*ChunkedArray, schema.NumFields())
	for i, f := range schema.Fields() {
		cols[i] = NewChunkedArrayFrom(NewNullArray(f.Type, 0))
	}
	t, _ := NewTable(schema, cols)
	return t
}

// MakeNullTable builds an n-row Table matching schema, every cell null.
func MakeNullTable(schema *Schema, n int) *Table {
	cols := make([]*ChunkedArray, schema.NumFields())
	for i, f := range schema.Fields() {
		cols[i] = NewChunkedArrayFrom(NewNullArray(f.Type, n))
	}
	t, _ := NewTable(schema, cols)
	return t
}

func (t *Table) Schema() *Schema  { return t.schema }
func (t *Table) RowCount() int    { return t.rowCount }
func (t *Table) NumColumns() int  { return len(t.columns) }

// Column returns the i-th column.
func (t *Table) Column(i int) *ChunkedArray { return t.columns[i] }

// ColumnByName returns the named column, or nil if absent.
func (t *Table) ColumnByName(name string) *ChunkedArray {
	i := t.schema.FieldByName(name)
	if i < 0 {
		return nil
	}
	return t.columns[i]
}

// Columns returns all columns in schema order.
func (t *Table) Columns() []*ChunkedArray { return append([]*ChunkedArray(nil), t.columns...) }

// WithColumn returns a new Table with an existing column replaced by name,
// or appended if name is not in the schema.
func (t *Table) WithColumn(field Field, col *ChunkedArray) (*Table, error) {
	i := t.schema.FieldByName(field.Name)
	if i >= 0 {
		cols := t.Columns()
		cols[i] = col
		return NewTable(t.schema, cols)
	}
	newSchema, err := t.schema.WithField(field)
	if err != nil {
		return nil, err
	}
	return NewTable(newSchema, append(t.Columns(), col))
}

// Take gathers positions across every column, producing a new Table of
// len(positions) rows.
func (t *Table) Take(positions []int) *Table {
	cols := make([]*ChunkedArray, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.Take(positions)
	}
	out, _ := NewTable(t.schema, cols)
	return out
}

// Slice returns rows [start, stop) across every column.
func (t *Table) Slice(start, stop int) *Table {
	cols := make([]*ChunkedArray, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.Slice(start, stop)
	}
	out, _ := NewTable(t.schema, cols)
	return out
}
