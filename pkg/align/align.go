// Package align implements C5: the sorted-outer-join reindex algorithm the
// NDFrame kernel uses to line up two frames before any binary operation.
package align

import (
	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/tsindex"
)

// MissingPos marks a position with no matching row on one side of the join;
// Table.Take already treats negative positions as "produce null", so this
// is simply the canonical negative sentinel used throughout align.
const MissingPos = -1

// Result is the outcome of aligning two (Index, Table) pairs: the unified
// index and a take-vector for each side mapping unified positions back to
// source rows (MissingPos where a side has no row for that label).
type Result struct {
	Index     *tsindex.Index
	LeftTake  []int
	RightTake []int
}

// Align computes the outer join of left and right's indexes. When the two
// indexes are already equal (same labels, same order) it takes the fast
// path and skips building take-vectors altogether.
func Align(left, right *tsindex.Index) Result {
	if left.Equals(right) {
		identity := make([]int, left.Size())
		for i := range identity {
			identity[i] = i
		}
		return Result{Index: left, LeftTake: identity, RightTake: append([]int(nil), identity...)}
	}

	union := left.Union(right)
	n := union.Size()
	leftTake := make([]int, n)
	rightTake := make([]int, n)
	for i := 0; i < n; i++ {
		label := union.Label(i)
		if p, err := left.GetLoc(label); err == nil {
			leftTake[i] = p
		} else {
			leftTake[i] = MissingPos
		}
		if p, err := right.GetLoc(label); err == nil {
			rightTake[i] = p
		} else {
			rightTake[i] = MissingPos
		}
	}
	return Result{Index: union, LeftTake: leftTake, RightTake: rightTake}
}

// ApplyTable reindexes t by positions, producing a Table with len(positions)
// rows (null rows where positions holds MissingPos).
func ApplyTable(t *columnar.Table, positions []int) *columnar.Table {
	return t.Take(positions)
}

// UnionColumns merges the column sets of two schemas by name: columns that
// appear in both keep the left-hand field definition (types are expected to
// already agree by construction); columns present on only one side are
// carried through with the other side's take-vector producing nulls for the
// missing rows.
func UnionColumns(leftSchema, rightSchema *columnar.Schema) []columnar.Field {
	seen := make(map[string]bool, leftSchema.NumFields()+rightSchema.NumFields())
	fields := make([]columnar.Field, 0, leftSchema.NumFields()+rightSchema.NumFields())
	for _, f := range leftSchema.Fields() {
		if !seen[f.Name] {
			seen[f.Name] = true
			fields = append(fields, f)
		}
	}
	for _, f := range rightSchema.Fields() {
		if !seen[f.Name] {
			seen[f.Name] = true
			fields = append(fields, f)
		}
	}
	return fields
}
