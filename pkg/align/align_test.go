package align

import (
	"testing"

	"github.com/stretchr/testify/require"

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

func TestAlignFastPathOnEqualIndexes(t *testing.T) {
	a := intIndex(1, 2, 3)
	b := intIndex(1, 2, 3)
	res := Align(a, b)
	require.Equal(t, []int{0, 1, 2}, res.LeftTake)
	require.Equal(t, []int{0, 1, 2}, res.RightTake)
}

func TestAlignOuterJoin(t *testing.T) {
	a := intIndex(1, 3)
	b := intIndex(2, 3, 4)
	res := Align(a, b)
	require.Equal(t, 4, res.Index.Size())
	for i := 0; i < res.Index.Size(); i++ {
		label, _ := res.Index.Label(i).Int64()
		lp := res.LeftTake[i]
		rp := res.RightTake[i]
		switch label {
		case 1:
			require.Equal(t, 0, lp)
			require.Equal(t, MissingPos, rp)
		case 2:
			require.Equal(t, MissingPos, lp)
			require.Equal(t, 0, rp)
		case 3:
			require.Equal(t, 1, lp)
			require.Equal(t, 1, rp)
		case 4:
			require.Equal(t, MissingPos, lp)
			require.Equal(t, 2, rp)
		}
	}
}
