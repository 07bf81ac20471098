package tsindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/scalar"
)

func ints(vs ...int64) *Index {
	labels := make([]scalar.Scalar, len(vs))
	for i, v := range vs {
		labels[i] = scalar.NewInt64(v)
	}
	return New("", labels)
}

func TestGetLocAndContains(t *testing.T) {
	ix := ints(10, 20, 30)
	require.True(t, ix.Contains(scalar.NewInt64(20)))
	pos, err := ix.GetLoc(scalar.NewInt64(20))
	require.NoError(t, err)
	require.Equal(t, 1, pos)

	_, err = ix.GetLoc(scalar.NewInt64(99))
	require.Error(t, err)
}

func TestSliceLocs(t *testing.T) {
	ix := ints(1, 2, 3, 4, 5)
	start := scalar.NewInt64(2)
	end := scalar.NewInt64(4)
	s, e, err := ix.SliceLocs(&start, &end)
	require.NoError(t, err)
	require.Equal(t, 1, s)
	require.Equal(t, 4, e)
}

func TestTakeAndFilter(t *testing.T) {
	ix := ints(1, 2, 3)
	taken := ix.Take([]int{2, 0})
	require.Equal(t, 2, taken.Size())
	require.True(t, taken.Label(0).Equal(scalar.NewInt64(3)))

	filtered, err := ix.Filter([]bool{true, false, true})
	require.NoError(t, err)
	require.Equal(t, 2, filtered.Size())
}

func TestUnionIntersectionDifference(t *testing.T) {
	a := ints(1, 2, 3)
	b := ints(2, 3, 4)

	u := a.Union(b)
	require.Equal(t, 4, u.Size())
	require.True(t, u.Equals(ints(1, 2, 3, 4)))

	i := a.Intersection(b)
	require.True(t, i.Equals(ints(2, 3)))

	d := a.Difference(b)
	require.True(t, d.Equals(ints(1)))

	sd := a.SymmetricDifference(b)
	require.True(t, sd.Equals(ints(1, 4)))
}

func TestSortValuesAndDropDuplicates(t *testing.T) {
	ix := ints(3, 1, 2, 1)
	sorted, perm := ix.SortValues(true, true)
	require.Equal(t, []int64{1, 1, 2, 3}, labelsToInts(sorted))
	require.Len(t, perm, 4)

	deduped, keep := ix.DropDuplicates()
	require.Equal(t, []int64{3, 1, 2}, labelsToInts(deduped))
	require.Equal(t, []int{0, 1, 2}, keep)
}

func labelsToInts(ix *Index) []int64 {
	out := make([]int64, ix.Size())
	for i := 0; i < ix.Size(); i++ {
		v, _ := ix.Label(i).Int64()
		out[i] = v
	}
	return out
}
