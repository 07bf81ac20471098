package ndframe

import (
	"github.com/aristath/marketframe/pkg/align"
	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/compute"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
	"github.com/aristath/marketframe/pkg/tsindex"
)

// Axis selects the reduction direction for aggregation: Row reduces each
// row across columns, Column reduces each column across rows.
type Axis int

const (
	AxisColumn Axis = iota
	AxisRow
)

// DataFrame pairs a Table with the Index labeling its rows.
type DataFrame struct {
	index *tsindex.Index
	table *columnar.Table
}

// NewDataFrame builds a DataFrame, requiring the table's row count to match
// the index size.
func NewDataFrame(index *tsindex.Index, table *columnar.Table) (*DataFrame, error) {
	if index.Size() != table.RowCount() {
		return nil, errs.Newf(errs.LengthMismatch, "dataframe", "index has %d labels, table has %d rows", index.Size(), table.RowCount())
	}
	return &DataFrame{index: index, table: table}, nil
}

func (d *DataFrame) Index() *tsindex.Index { return d.index }
func (d *DataFrame) Table() *columnar.Table { return d.table }
func (d *DataFrame) RowCount() int         { return d.table.RowCount() }
func (d *DataFrame) NumColumns() int       { return d.table.NumColumns() }

// Column returns a column as a Series sharing the DataFrame's index.
func (d *DataFrame) Column(name string) (*Series, error) {
	col := d.table.ColumnByName(name)
	if col == nil {
		return nil, errs.Newf(errs.LabelNotFound, "column", "no column named %q", name)
	}
	return NewSeries(d.index, col, name)
}

// elementwiseBinary applies kernel to every column against the matching
// column of o (aligning indexes first), producing a new DataFrame over the
// unified index and the union of both schemas.
func (d *DataFrame) elementwiseBinary(kernel string, o *DataFrame, opts compute.Options) (*DataFrame, error) {
	res := align.Align(d.index, o.index)
	fields := align.UnionColumns(d.table.Schema(), o.table.Schema())
	cols := make([]*columnar.ChunkedArray, len(fields))
	for i, f := range fields {
		leftCol := d.table.ColumnByName(f.Name)
		rightCol := o.table.ColumnByName(f.Name)
		switch {
		case leftCol != nil && rightCol != nil:
			l := leftCol.Take(res.LeftTake)
			r := rightCol.Take(res.RightTake)
			out, err := compute.Call(kernel, opts, compute.ArrayDatum(l), compute.ArrayDatum(r))
			if err != nil {
				return nil, err
			}
			cols[i] = out.Arr
		case leftCol != nil:
			cols[i] = leftCol.Take(res.LeftTake)
		default:
			cols[i] = rightCol.Take(res.RightTake)
		}
	}
	schema, err := columnar.NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	table, err := columnar.NewTable(schema, cols)
	if err != nil {
		return nil, err
	}
	return NewDataFrame(res.Index, table)
}

func (d *DataFrame) Add(o *DataFrame) (*DataFrame, error)      { return d.elementwiseBinary("add", o, compute.Options{}) }
func (d *DataFrame) Subtract(o *DataFrame) (*DataFrame, error) { return d.elementwiseBinary("subtract", o, compute.Options{}) }
func (d *DataFrame) Multiply(o *DataFrame) (*DataFrame, error) { return d.elementwiseBinary("multiply", o, compute.Options{}) }
func (d *DataFrame) Divide(o *DataFrame) (*DataFrame, error)   { return d.elementwiseBinary("divide", o, compute.Options{}) }

// scalarBinary broadcasts v against every column.
func (d *DataFrame) scalarBinary(kernel string, v scalar.Scalar, opts compute.Options) (*DataFrame, error) {
	cols := make([]*columnar.ChunkedArray, d.table.NumColumns())
	for i, col := range d.table.Columns() {
		out, err := compute.Call(kernel, opts, compute.ArrayDatum(col), compute.ScalarDatum(v))
		if err != nil {
			return nil, err
		}
		cols[i] = out.Arr
	}
	table, err := columnar.NewTable(d.table.Schema(), cols)
	if err != nil {
		return nil, err
	}
	return NewDataFrame(d.index, table)
}

func (d *DataFrame) AddScalar(v scalar.Scalar) (*DataFrame, error) {
	return d.scalarBinary("add", v, compute.Options{})
}

// Apply dispatches any registered unary kernel elementwise over every
// column, reaching kernels with no dedicated wrapper method.
func (d *DataFrame) Apply(kernel string, opts compute.Options) (*DataFrame, error) {
	cols := make([]*columnar.ChunkedArray, d.table.NumColumns())
	for i, col := range d.table.Columns() {
		out, err := compute.Call(kernel, opts, compute.ArrayDatum(col))
		if err != nil {
			return nil, err
		}
		cols[i] = out.Arr
	}
	table, err := columnar.NewTable(d.table.Schema(), cols)
	if err != nil {
		return nil, err
	}
	return NewDataFrame(d.index, table)
}

// ApplyBinary dispatches any registered binary kernel against other, which
// may be a *DataFrame (aligned by label, union of schemas) or a
// scalar.Scalar (broadcast to every column), reaching kernels with no
// dedicated wrapper method.
func (d *DataFrame) ApplyBinary(kernel string, other any, opts compute.Options) (*DataFrame, error) {
	switch o := other.(type) {
	case *DataFrame:
		return d.elementwiseBinary(kernel, o, opts)
	case scalar.Scalar:
		return d.scalarBinary(kernel, o, opts)
	default:
		return nil, errs.Newf(errs.TypeMismatch, "apply_binary", "unsupported operand type %T", other)
	}
}

// Where keeps elements where cond holds, substituting other's value
// elsewhere, column by column. cond and other follow Series.Where's
// contract per column; a *DataFrame cond or other instead supplies its
// matching column by name.
func (d *DataFrame) Where(cond any, other any) (*DataFrame, error) {
	fields := d.table.Schema().Fields()
	cols := make([]*columnar.ChunkedArray, len(fields))
	for i, f := range fields {
		colSeries, err := NewSeries(d.index, d.table.Column(i), f.Name)
		if err != nil {
			return nil, err
		}
		colCond := cond
		if cdf, ok := cond.(*DataFrame); ok {
			s, err := cdf.Column(f.Name)
			if err != nil {
				return nil, err
			}
			colCond = s
		}
		colOther := other
		if odf, ok := other.(*DataFrame); ok {
			s, err := odf.Column(f.Name)
			if err != nil {
				return nil, err
			}
			colOther = s
		}
		res, err := colSeries.Where(colCond, colOther)
		if err != nil {
			return nil, err
		}
		cols[i] = res.data
	}
	table, err := columnar.NewTable(d.table.Schema(), cols)
	if err != nil {
		return nil, err
	}
	return NewDataFrame(d.index, table)
}

// Aggregate reduces along axis. AxisColumn yields one Series indexed by
// column name (one value per column, reduced over all rows). AxisRow
// yields one Series indexed by the DataFrame's own index (one value per
// row, reduced across that row's columns).
func (d *DataFrame) Aggregate(kernel string, axis Axis, opts compute.Options) (*Series, error) {
	if axis == AxisColumn {
		names := make([]string, d.table.NumColumns())
		vals := make([]scalar.Scalar, d.table.NumColumns())
		for i, col := range d.table.Columns() {
			out, err := compute.Call(kernel, opts, compute.ArrayDatum(col))
			if err != nil {
				return nil, err
			}
			names[i] = d.table.Schema().Field(i).Name
			vals[i] = out.Sc
		}
		bld := columnar.NewBuilder(scalar.Float64, len(vals))
		for _, v := range vals {
			bld.AppendScalar(v)
		}
		idx := tsindex.FromStrings("", names)
		return NewSeries(idx, columnar.NewChunkedArrayFrom(bld.Finish()), kernel)
	}

	n := d.RowCount()
	vals := make([]scalar.Scalar, n)
	for r := 0; r < n; r++ {
		rowBld := columnar.NewBuilder(scalar.Float64, d.table.NumColumns())
		for _, col := range d.table.Columns() {
			rowBld.AppendScalar(col.GetScalar(r))
		}
		rowArr := columnar.NewChunkedArrayFrom(rowBld.Finish())
		out, err := compute.Call(kernel, opts, compute.ArrayDatum(rowArr))
		if err != nil {
			return nil, err
		}
		vals[r] = out.Sc
	}
	bld := columnar.NewBuilder(scalar.Float64, n)
	for _, v := range vals {
		bld.AppendScalar(v)
	}
	return NewSeries(d.index, columnar.NewChunkedArrayFrom(bld.Finish()), kernel)
}

// Head returns the first n rows.
func (d *DataFrame) Head(n int) *DataFrame {
	if n > d.RowCount() {
		n = d.RowCount()
	}
	out, _ := NewDataFrame(d.index.Take(identityRange(n)), d.table.Slice(0, n))
	return out
}

// Tail returns the last n rows.
func (d *DataFrame) Tail(n int) *DataFrame {
	if n > d.RowCount() {
		n = d.RowCount()
	}
	start := d.RowCount() - n
	out, _ := NewDataFrame(d.index.Take(rangeFromTo(start, d.RowCount())), d.table.Slice(start, d.RowCount()))
	return out
}

// ILoc returns the row at position i across every column.
func (d *DataFrame) ILoc(i int) ([]scalar.Scalar, error) {
	if i < 0 || i >= d.RowCount() {
		return nil, errs.Newf(errs.InvalidRange, "iloc", "position %d out of range [0,%d)", i, d.RowCount())
	}
	row := make([]scalar.Scalar, d.table.NumColumns())
	for j, col := range d.table.Columns() {
		row[j] = col.GetScalar(i)
	}
	return row, nil
}

// Loc returns the row at label across every column.
func (d *DataFrame) Loc(label scalar.Scalar) ([]scalar.Scalar, error) {
	pos, err := d.index.GetLoc(label)
	if err != nil {
		return nil, err
	}
	return d.ILoc(pos)
}

// Reindex reorders/extends d to newIndex, filling missing labels with null.
func (d *DataFrame) Reindex(newIndex *tsindex.Index) *DataFrame {
	positions := make([]int, newIndex.Size())
	for i := 0; i < newIndex.Size(); i++ {
		if p, err := d.index.GetLoc(newIndex.Label(i)); err == nil {
			positions[i] = p
		} else {
			positions[i] = -1
		}
	}
	out, _ := NewDataFrame(newIndex, d.table.Take(positions))
	return out
}

// SetIndex replaces d's index with column name's values.
func (d *DataFrame) SetIndex(name string) (*DataFrame, error) {
	col := d.table.ColumnByName(name)
	if col == nil {
		return nil, errs.Newf(errs.LabelNotFound, "set_index", "no column named %q", name)
	}
	labels := make([]scalar.Scalar, col.Len())
	for i := 0; i < col.Len(); i++ {
		labels[i] = col.GetScalar(i)
	}
	return NewDataFrame(tsindex.New(name, labels), d.table)
}

// DropColumns removes named columns.
func (d *DataFrame) DropColumns(names ...string) (*DataFrame, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var fields []columnar.Field
	var cols []*columnar.ChunkedArray
	for i, f := range d.table.Schema().Fields() {
		if drop[f.Name] {
			continue
		}
		fields = append(fields, f)
		cols = append(cols, d.table.Column(i))
	}
	schema, err := columnar.NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	table, err := columnar.NewTable(schema, cols)
	if err != nil {
		return nil, err
	}
	return NewDataFrame(d.index, table)
}

// Drop returns the complement of Loc: every row whose label is not one of
// labels.
func (d *DataFrame) Drop(labels ...scalar.Scalar) (*DataFrame, error) {
	excl := tsindex.New("", labels)
	n := d.RowCount()
	mask := make([]bool, n)
	var positions []int
	for i := 0; i < n; i++ {
		if excl.Contains(d.index.Label(i)) {
			continue
		}
		mask[i] = true
		positions = append(positions, i)
	}
	idx, err := d.index.Filter(mask)
	if err != nil {
		return nil, err
	}
	return NewDataFrame(idx, d.table.Take(positions))
}

// DropNull removes rows where any column is null.
func (d *DataFrame) DropNull() *DataFrame {
	n := d.RowCount()
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		mask[i] = true
		for _, col := range d.table.Columns() {
			if col.IsNull(i) {
				mask[i] = false
				break
			}
		}
	}
	var positions []int
	for i, keep := range mask {
		if keep {
			positions = append(positions, i)
		}
	}
	idx, _ := d.index.Filter(mask)
	out, _ := NewDataFrame(idx, d.table.Take(positions))
	return out
}

// SortIndex returns a new DataFrame with rows reordered by the index's own
// sort order.
func (d *DataFrame) SortIndex(ascending bool) *DataFrame {
	sortedIdx, perm := d.index.SortValues(ascending, true)
	out, _ := NewDataFrame(sortedIdx, d.table.Take(perm))
	return out
}
