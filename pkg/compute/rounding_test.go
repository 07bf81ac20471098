package compute

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundRespectsNdigits(t *testing.T) {
	arr := floatArray([]float64{3.14159, 2.71828}, nil)

	out, err := Call("round", Options{Ndigits: 2}, arr)
	require.NoError(t, err)
	v0, _ := out.GetScalar(0).Float64()
	v1, _ := out.GetScalar(1).Float64()
	require.Equal(t, 3.14, v0)
	require.Equal(t, 2.72, v1)

	out, err = Call("round", Options{}, arr)
	require.NoError(t, err)
	v0, _ = out.GetScalar(0).Float64()
	require.Equal(t, 3.0, v0)
}

func TestRoundToMultiple(t *testing.T) {
	arr := floatArray([]float64{7.0}, nil)
	out, err := Call("round_to_multiple", Options{Quantile: 5}, arr)
	require.NoError(t, err)
	v, _ := out.GetScalar(0).Float64()
	require.Equal(t, 5.0, v)
}
