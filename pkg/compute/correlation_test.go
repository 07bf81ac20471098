package compute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/scalar"
)

func TestCorrelationPerfectlyCorrelated(t *testing.T) {
	a := floatArray([]float64{1, 2, 3, 4, 5}, nil)
	b := floatArray([]float64{2, 4, 6, 8, 10}, nil)
	out, err := Call("correlation", Options{}, a, b)
	require.NoError(t, err)
	v, ok := out.Sc.Float64()
	require.True(t, ok)
	require.InDelta(t, 1.0, v, 1e-9)
}

func TestInverseVarianceWeightsFavorsLowVariance(t *testing.T) {
	variances := floatArray([]float64{1, 4}, nil)
	out, err := Call("inverse_variance_weights", Options{}, variances)
	require.NoError(t, err)
	w0, _ := out.Arr.Combined().GetScalar(0).Float64()
	w1, _ := out.Arr.Combined().GetScalar(1).Float64()
	require.Greater(t, w0, w1)
	require.InDelta(t, 1.0, w0+w1, 1e-9)
}

func TestCorrelationMatrixAndDistance(t *testing.T) {
	schema, err := columnar.NewSchema(
		columnar.Field{Name: "AAA", Type: scalar.Float64},
		columnar.Field{Name: "BBB", Type: scalar.Float64},
	)
	require.NoError(t, err)
	a := columnar.NewFloat64Array([]float64{1, 2, 3, 4}, nil)
	b := columnar.NewFloat64Array([]float64{4, 3, 2, 1}, nil)
	table, err := columnar.NewTable(schema, []*columnar.ChunkedArray{
		columnar.NewChunkedArrayFrom(a),
		columnar.NewChunkedArrayFrom(b),
	})
	require.NoError(t, err)

	corrOut, err := Call("correlation_matrix", Options{}, TableDatum(table))
	require.NoError(t, err)
	require.Equal(t, KindTable, corrOut.Kind)
	require.Equal(t, 2, corrOut.Table.RowCount())

	distOut, err := Call("correlation_distance", Options{}, corrOut)
	require.NoError(t, err)
	require.Equal(t, KindTable, distOut.Kind)

	aaaIdx := distOut.Table.Schema().FieldByName("AAA")
	selfDist, _ := distOut.Table.Column(aaaIdx).GetScalar(0).Float64()
	require.InDelta(t, 0.0, selfDist, 1e-9)
}
