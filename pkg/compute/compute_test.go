package compute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

func floatArray(vals []float64, nulls []bool) Datum {
	return ArrayDatum(columnar.NewChunkedArrayFrom(columnar.NewFloat64Array(vals, nulls)))
}

func TestAddBroadcastScalar(t *testing.T) {
	arr := floatArray([]float64{1, 2, 3}, nil)
	out, err := Call("add", Options{}, arr, ScalarDatum(scalar.NewFloat64(10)))
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	v, _ := out.GetScalar(1).Float64()
	require.Equal(t, 12.0, v)
}

func TestAddNullPropagation(t *testing.T) {
	arr := floatArray([]float64{1, 2, 3}, []bool{false, true, false})
	out, err := Call("add", Options{}, arr, ScalarDatum(scalar.NewFloat64(1)))
	require.NoError(t, err)
	require.True(t, out.GetScalar(1).IsNull())
}

func TestUnsupportedKernel(t *testing.T) {
	_, err := Call("does_not_exist", Options{}, ScalarDatum(scalar.NewInt64(1)))
	require.True(t, errs.Is(err, errs.UnsupportedKernel))
}

func TestSumSkipNulls(t *testing.T) {
	arr := floatArray([]float64{1, 2, 3}, []bool{false, true, false})
	out, err := Call("sum", Options{SkipNulls: true}, arr)
	require.NoError(t, err)
	v, _ := out.Sc.Float64()
	require.Equal(t, 4.0, v)

	_, err = Call("sum", Options{SkipNulls: false}, arr)
	require.NoError(t, err)
}

func TestCumulativeSum(t *testing.T) {
	arr := floatArray([]float64{1, 2, 3}, nil)
	out, err := Call("cumulative_sum", Options{SkipNulls: true}, arr)
	require.NoError(t, err)
	v0, _ := out.GetScalar(0).Float64()
	v2, _ := out.GetScalar(2).Float64()
	require.Equal(t, 1.0, v0)
	require.Equal(t, 6.0, v2)
}

func TestKleeneAnd(t *testing.T) {
	f := ScalarDatum(scalar.NewBool(false))
	n := ScalarDatum(scalar.Null(scalar.Bool))
	out, err := Call("and_kleene", Options{}, f, n)
	require.NoError(t, err)
	v, _ := out.Sc.Bool()
	require.False(t, out.Sc.IsNull())
	require.False(t, v)
}

func TestCompareNullPropagates(t *testing.T) {
	a := ScalarDatum(scalar.NewInt64(1))
	b := ScalarDatum(scalar.Null(scalar.Int64))
	out, err := Call("equal", Options{}, a, b)
	require.NoError(t, err)
	require.True(t, out.Sc.IsNull())
}
