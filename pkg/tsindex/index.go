// Package tsindex implements C3: an ordered, named sequence of typed row
// labels with O(1) membership/lookup and the set/slice operations the
// NDFrame kernel and the market-calendar engine build on.
package tsindex

import (
	"sort"

	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

// Index is immutable once constructed; every mutating-looking method
// returns a new Index.
type Index struct {
	name   string
	labels []scalar.Scalar
	pos    map[any]int // last-wins position map for duplicate labels
}

func hashKey(s scalar.Scalar) any {
	if s.IsNull() {
		return struct{ null bool }{true}
	}
	switch s.Type() {
	case scalar.Int64:
		v, _ := s.Int64()
		return v
	case scalar.Float64:
		v, _ := s.Float64()
		return v
	case scalar.Bool:
		v, _ := s.Bool()
		return v
	case scalar.String:
		v, _ := s.StringValue()
		return v
	case scalar.Timestamp:
		v, _ := s.Timestamp()
		return v.UTC().UnixNano()
	default:
		return s.String()
	}
}

func isOrderable(t scalar.Type) bool {
	switch t {
	case scalar.Int64, scalar.Float64, scalar.String, scalar.Timestamp, scalar.Bool:
		return true
	default:
		return false
	}
}

// New builds an Index over labels, in the given order.
func New(name string, labels []scalar.Scalar) *Index {
	idx := &Index{name: name, labels: append([]scalar.Scalar(nil), labels...), pos: make(map[any]int, len(labels))}
	for i, l := range labels {
		idx.pos[hashKey(l)] = i
	}
	return idx
}

func (ix *Index) Name() string            { return ix.name }
func (ix *Index) Size() int                { return len(ix.labels) }
func (ix *Index) Label(i int) scalar.Scalar { return ix.labels[i] }
func (ix *Index) Labels() []scalar.Scalar  { return append([]scalar.Scalar(nil), ix.labels...) }

func (ix *Index) elemType() scalar.Type {
	for _, l := range ix.labels {
		if l.IsValid() {
			return l.Type()
		}
	}
	return scalar.Invalid
}

// Contains reports whether label is present.
func (ix *Index) Contains(label scalar.Scalar) bool {
	_, ok := ix.pos[hashKey(label)]
	return ok
}

// GetLoc returns the position of label, or an error if absent.
func (ix *Index) GetLoc(label scalar.Scalar) (int, error) {
	if p, ok := ix.pos[hashKey(label)]; ok {
		return p, nil
	}
	return -1, errs.Newf(errs.LabelNotFound, "get_loc", "label %s not found", label.String())
}

// SliceLocs returns [startPos, endPos) covering labels in [start, end]
// inclusive of both bounds, per spec.md §4.3 loc(label slice). A nil start
// means "from the beginning"; a nil end means "to the end". Requires the
// index to be sorted ascending on an orderable type.
func (ix *Index) SliceLocs(start, end *scalar.Scalar) (int, int, error) {
	n := len(ix.labels)
	startPos := 0
	endPos := n
	if start != nil {
		startPos = sort.Search(n, func(i int) bool { return !scalar.Less(ix.labels[i], *start, false) })
	}
	if end != nil {
		endPos = sort.Search(n, func(i int) bool { return scalar.Less(*end, ix.labels[i], false) })
	}
	if endPos < startPos {
		return 0, 0, errs.New(errs.InvalidRange, "slice_locs", "end precedes start")
	}
	return startPos, endPos, nil
}

// Take gathers positions into a new Index; a negative or out-of-range
// position is not rejected and yields a null label in that slot.
func (ix *Index) Take(positions []int) *Index {
	out := make([]scalar.Scalar, len(positions))
	for i, p := range positions {
		if p >= 0 && p < len(ix.labels) {
			out[i] = ix.labels[p]
		}
	}
	return New(ix.name, out)
}

// Filter keeps labels where mask[i] is true.
func (ix *Index) Filter(mask []bool) (*Index, error) {
	if len(mask) != len(ix.labels) {
		return nil, errs.Newf(errs.LengthMismatch, "filter", "mask length %d != index size %d", len(mask), len(ix.labels))
	}
	out := make([]scalar.Scalar, 0, len(ix.labels))
	for i, keep := range mask {
		if keep {
			out = append(out, ix.labels[i])
		}
	}
	return New(ix.name, out), nil
}

// Equals reports whether two indexes contain the same labels in the same
// order.
func (ix *Index) Equals(o *Index) bool {
	if ix.Size() != o.Size() {
		return false
	}
	for i := range ix.labels {
		if !ix.labels[i].Equal(o.labels[i]) {
			return false
		}
	}
	return true
}

func sortScalars(vals []scalar.Scalar) {
	sort.SliceStable(vals, func(i, j int) bool { return scalar.Less(vals[i], vals[j], true) })
}

// Union returns the sorted-ascending union of ix and o when both carry an
// orderable element type; for unorderable labels it returns the
// deduplicated labels in ix-then-o order (preserving first occurrence),
// matching the fallback behavior of ArrowIndex-style object indexes.
func (ix *Index) Union(o *Index) *Index {
	seen := make(map[any]bool, ix.Size()+o.Size())
	var out []scalar.Scalar
	for _, l := range ix.labels {
		k := hashKey(l)
		if !seen[k] {
			seen[k] = true
			out = append(out, l)
		}
	}
	for _, l := range o.labels {
		k := hashKey(l)
		if !seen[k] {
			seen[k] = true
			out = append(out, l)
		}
	}
	et := ix.elemType()
	if et == scalar.Invalid {
		et = o.elemType()
	}
	if isOrderable(et) {
		sortScalars(out)
	}
	return New(ix.name, out)
}

// Intersection returns labels present in both indexes, in ix's order.
func (ix *Index) Intersection(o *Index) *Index {
	var out []scalar.Scalar
	for _, l := range ix.labels {
		if o.Contains(l) {
			out = append(out, l)
		}
	}
	return New(ix.name, out)
}

// Difference returns labels in ix but not in o, in ix's order.
func (ix *Index) Difference(o *Index) *Index {
	var out []scalar.Scalar
	for _, l := range ix.labels {
		if !o.Contains(l) {
			out = append(out, l)
		}
	}
	return New(ix.name, out)
}

// SymmetricDifference returns labels present in exactly one of ix, o.
func (ix *Index) SymmetricDifference(o *Index) *Index {
	a := ix.Difference(o)
	b := o.Difference(ix)
	out := append(a.Labels(), b.Labels()...)
	et := ix.elemType()
	if et == scalar.Invalid {
		et = o.elemType()
	}
	if isOrderable(et) {
		sortScalars(out)
	}
	return New(ix.name, out)
}

// SortValues returns a new Index sorted ascending (or descending), with a
// permutation describing how to reorder any aligned data.
func (ix *Index) SortValues(ascending bool, naLast bool) (*Index, []int) {
	perm := make([]int, len(ix.labels))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		if ascending {
			return scalar.Less(ix.labels[perm[i]], ix.labels[perm[j]], naLast)
		}
		return scalar.Less(ix.labels[perm[j]], ix.labels[perm[i]], !naLast)
	})
	out := make([]scalar.Scalar, len(perm))
	for i, p := range perm {
		out[i] = ix.labels[p]
	}
	return New(ix.name, out), perm
}

// DropDuplicates returns a new Index keeping the first occurrence of each
// label, with a parallel permutation of kept source positions.
func (ix *Index) DropDuplicates() (*Index, []int) {
	seen := make(map[any]bool, len(ix.labels))
	var out []scalar.Scalar
	var perm []int
	for i, l := range ix.labels {
		k := hashKey(l)
		if !seen[k] {
			seen[k] = true
			out = append(out, l)
			perm = append(perm, i)
		}
	}
	return New(ix.name, out), perm
}

// FromRange builds an Index of consecutive int64 labels [0, n).
func FromRange(n int) *Index {
	labels := make([]scalar.Scalar, n)
	for i := range labels {
		labels[i] = scalar.NewInt64(int64(i))
	}
	return New("", labels)
}

// FromStrings builds an object Index over string labels.
func FromStrings(name string, values []string) *Index {
	labels := make([]scalar.Scalar, len(values))
	for i, v := range values {
		labels[i] = scalar.NewString(v)
	}
	return New(name, labels)
}
