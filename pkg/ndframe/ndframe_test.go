package ndframe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/compute"
	"github.com/aristath/marketframe/pkg/scalar"
	"github.com/aristath/marketframe/pkg/tsindex"
)

func intIndex(vs ...int64) *tsindex.Index {
	labels := make([]scalar.Scalar, len(vs))
	for i, v := range vs {
		labels[i] = scalar.NewInt64(v)
	}
	return tsindex.New("", labels)
}

func floatSeries(idx *tsindex.Index, vals []float64) *Series {
	arr := columnar.NewFloat64Array(vals, nil)
	s, _ := NewSeries(idx, columnar.NewChunkedArrayFrom(arr), "v")
	return s
}

func TestSeriesAddAligns(t *testing.T) {
	a := floatSeries(intIndex(1, 2, 3), []float64{1, 2, 3})
	b := floatSeries(intIndex(2, 3, 4), []float64{10, 20, 30})
	out, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, 4, out.Len())
	v0, _ := out.ILoc(0)
	require.True(t, v0.IsNull())
	v1, _ := out.ILoc(1)
	fv, _ := v1.Float64()
	require.Equal(t, 12.0, fv)
}

func TestSeriesWhereDefaultsToNull(t *testing.T) {
	s := floatSeries(intIndex(1, 2, 3), []float64{1, 2, 3})
	out, err := s.Where([]bool{true, false, true}, nil)
	require.NoError(t, err)
	v, _ := out.ILoc(1)
	require.True(t, v.IsNull())
}

func TestSeriesWhereScalarOther(t *testing.T) {
	s := floatSeries(intIndex(1, 2, 3, 4), []float64{1, 2, 3, 4})
	out, err := s.Where([]bool{false, false, true, true}, scalar.NewFloat64(0))
	require.NoError(t, err)
	for i, want := range []float64{0, 0, 3, 4} {
		v, _ := out.ILoc(i)
		fv, _ := v.Float64()
		require.Equal(t, want, fv)
	}
}

func TestSeriesWhereSeriesCondAndOther(t *testing.T) {
	s := floatSeries(intIndex(1, 2, 3), []float64{1, 2, 3})
	cond := &Series{index: intIndex(1, 2, 3), data: columnar.NewChunkedArrayFrom(columnar.NewBoolArray([]bool{true, false, false}, nil)), name: "cond"}
	other := floatSeries(intIndex(1, 2, 3), []float64{100, 200, 300})
	out, err := s.Where(cond, other)
	require.NoError(t, err)
	v0, _ := out.ILoc(0)
	fv0, _ := v0.Float64()
	require.Equal(t, 1.0, fv0)
	v1, _ := out.ILoc(1)
	fv1, _ := v1.Float64()
	require.Equal(t, 200.0, fv1)
}

func TestSeriesWhereCallableCondAndOther(t *testing.T) {
	s := floatSeries(intIndex(1, 2, 3), []float64{1, 2, 3})
	cond := func(v scalar.Scalar) bool { f, _ := v.Float64(); return f >= 2 }
	other := func(v scalar.Scalar) scalar.Scalar { f, _ := v.Float64(); return scalar.NewFloat64(-f) }
	out, err := s.Where(cond, other)
	require.NoError(t, err)
	v0, _ := out.ILoc(0)
	fv0, _ := v0.Float64()
	require.Equal(t, -1.0, fv0)
	v1, _ := out.ILoc(1)
	fv1, _ := v1.Float64()
	require.Equal(t, 2.0, fv1)
}

func TestDataFrameWhereScalarOther(t *testing.T) {
	idx := intIndex(1, 2)
	schema := columnar.MustNewSchema(columnar.Field{Name: "a", Type: scalar.Float64})
	colA := columnar.NewChunkedArrayFrom(columnar.NewFloat64Array([]float64{1, 2}, nil))
	table, err := columnar.NewTable(schema, []*columnar.ChunkedArray{colA})
	require.NoError(t, err)
	df, err := NewDataFrame(idx, table)
	require.NoError(t, err)

	out, err := df.Where([]bool{true, false}, scalar.NewFloat64(0))
	require.NoError(t, err)
	row1, err := out.ILoc(1)
	require.NoError(t, err)
	fv, _ := row1[0].Float64()
	require.Equal(t, 0.0, fv)
}

func TestDataFrameApplyAndApplyBinary(t *testing.T) {
	idx := intIndex(1, 2)
	schema := columnar.MustNewSchema(columnar.Field{Name: "a", Type: scalar.Float64})
	colA := columnar.NewChunkedArrayFrom(columnar.NewFloat64Array([]float64{-1, 4}, nil))
	table, err := columnar.NewTable(schema, []*columnar.ChunkedArray{colA})
	require.NoError(t, err)
	df, err := NewDataFrame(idx, table)
	require.NoError(t, err)

	absDf, err := df.Apply("abs", compute.Options{})
	require.NoError(t, err)
	row0, _ := absDf.ILoc(0)
	fv, _ := row0[0].Float64()
	require.Equal(t, 1.0, fv)

	powered, err := df.ApplyBinary("power", scalar.NewFloat64(2), compute.Options{})
	require.NoError(t, err)
	row1, _ := powered.ILoc(1)
	fv1, _ := row1[0].Float64()
	require.Equal(t, 16.0, fv1)
}

func TestSeriesApplyAndApplyBinary(t *testing.T) {
	s := floatSeries(intIndex(1, 2), []float64{-2, 3})
	out, err := s.Apply("abs", compute.Options{})
	require.NoError(t, err)
	v0, _ := out.ILoc(0)
	fv0, _ := v0.Float64()
	require.Equal(t, 2.0, fv0)

	out2, err := s.ApplyBinary("power", scalar.NewFloat64(2), compute.Options{})
	require.NoError(t, err)
	v1, _ := out2.ILoc(1)
	fv1, _ := v1.Float64()
	require.Equal(t, 9.0, fv1)
}

func TestDataFrameDropRowsByLabel(t *testing.T) {
	idx := intIndex(1, 2, 3)
	schema := columnar.MustNewSchema(columnar.Field{Name: "a", Type: scalar.Float64})
	colA := columnar.NewChunkedArrayFrom(columnar.NewFloat64Array([]float64{1, 2, 3}, nil))
	table, err := columnar.NewTable(schema, []*columnar.ChunkedArray{colA})
	require.NoError(t, err)
	df, err := NewDataFrame(idx, table)
	require.NoError(t, err)

	out, err := df.Drop(scalar.NewInt64(2))
	require.NoError(t, err)
	require.Equal(t, 2, out.RowCount())
	row0, _ := out.ILoc(0)
	fv0, _ := row0[0].Float64()
	require.Equal(t, 1.0, fv0)
	row1, _ := out.ILoc(1)
	fv1, _ := row1[0].Float64()
	require.Equal(t, 3.0, fv1)
}

func TestDataFrameDropColumns(t *testing.T) {
	idx := intIndex(1, 2)
	schema := columnar.MustNewSchema(
		columnar.Field{Name: "a", Type: scalar.Float64},
		columnar.Field{Name: "b", Type: scalar.Float64},
	)
	colA := columnar.NewChunkedArrayFrom(columnar.NewFloat64Array([]float64{1, 2}, nil))
	colB := columnar.NewChunkedArrayFrom(columnar.NewFloat64Array([]float64{3, 4}, nil))
	table, err := columnar.NewTable(schema, []*columnar.ChunkedArray{colA, colB})
	require.NoError(t, err)
	df, err := NewDataFrame(idx, table)
	require.NoError(t, err)

	out, err := df.DropColumns("b")
	require.NoError(t, err)
	require.Equal(t, 1, out.NumColumns())
}

func TestDataFrameAggregateAxis(t *testing.T) {
	idx := intIndex(1, 2)
	schema := columnar.MustNewSchema(
		columnar.Field{Name: "a", Type: scalar.Float64},
		columnar.Field{Name: "b", Type: scalar.Float64},
	)
	colA := columnar.NewChunkedArrayFrom(columnar.NewFloat64Array([]float64{1, 2}, nil))
	colB := columnar.NewChunkedArrayFrom(columnar.NewFloat64Array([]float64{10, 20}, nil))
	table, err := columnar.NewTable(schema, []*columnar.ChunkedArray{colA, colB})
	require.NoError(t, err)
	df, err := NewDataFrame(idx, table)
	require.NoError(t, err)

	colSums, err := df.Aggregate("sum", AxisColumn, compute.Options{SkipNulls: true})
	require.NoError(t, err)
	require.Equal(t, 2, colSums.Len())

	rowSums, err := df.Aggregate("sum", AxisRow, compute.Options{SkipNulls: true})
	require.NoError(t, err)
	require.Equal(t, 2, rowSums.Len())
	v0, _ := rowSums.ILoc(0)
	fv, _ := v0.Float64()
	require.Equal(t, 11.0, fv)
}

func TestSeriesForwardFillBackwardFill(t *testing.T) {
	arr := columnar.NewFloat64Array([]float64{1, 0, 3}, []bool{false, true, false})
	s, _ := NewSeries(intIndex(1, 2, 3), columnar.NewChunkedArrayFrom(arr), "v")
	ff := s.ForwardFill()
	v, _ := ff.ILoc(1)
	fv, _ := v.Float64()
	require.Equal(t, 1.0, fv)

	bf := s.BackwardFill()
	v2, _ := bf.ILoc(1)
	fv2, _ := v2.Float64()
	require.Equal(t, 3.0, fv2)
}
