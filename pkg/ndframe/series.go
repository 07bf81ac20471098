// Package ndframe implements C6: Series and DataFrame, the one-dimensional
// and two-dimensional labeled containers that compose an Index (C3) with
// columnar data (C1), dispatching elementwise and aggregate operations
// through the compute kernel registry (C4) and aligning mismatched indexes
// through the outer-join engine (C5).
package ndframe

import (
	"sort"

	"github.com/aristath/marketframe/pkg/align"
	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/compute"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
	"github.com/aristath/marketframe/pkg/tsindex"
)

// Series pairs a ChunkedArray with the Index labeling its rows and an
// optional name.
type Series struct {
	index *tsindex.Index
	data  *columnar.ChunkedArray
	name  string
}

// NewSeries builds a Series, requiring the data length to match the index
// size.
func NewSeries(index *tsindex.Index, data *columnar.ChunkedArray, name string) (*Series, error) {
	if index.Size() != data.Len() {
		return nil, errs.Newf(errs.LengthMismatch, "series", "index has %d labels, data has %d rows", index.Size(), data.Len())
	}
	return &Series{index: index, data: data, name: name}, nil
}

func (s *Series) Index() *tsindex.Index     { return s.index }
func (s *Series) Data() *columnar.ChunkedArray { return s.data }
func (s *Series) Name() string              { return s.name }
func (s *Series) Len() int                  { return s.data.Len() }

func (s *Series) datum() compute.Datum { return compute.ArrayDatum(s.data) }

// alignedBinary aligns s and o's indexes (when they differ), dispatches
// kernel over the reindexed data, and wraps the result back into a Series
// over the unified index.
func (s *Series) alignedBinary(kernel string, o *Series, opts compute.Options) (*Series, error) {
	res := align.Align(s.index, o.index)
	leftData := s.data.Take(res.LeftTake)
	rightData := o.data.Take(res.RightTake)
	out, err := compute.Call(kernel, opts, compute.ArrayDatum(leftData), compute.ArrayDatum(rightData))
	if err != nil {
		return nil, err
	}
	return &Series{index: res.Index, data: out.Arr, name: s.name}, nil
}

// scalarBinary broadcasts scalar v against every element of s.
func (s *Series) scalarBinary(kernel string, v scalar.Scalar, opts compute.Options) (*Series, error) {
	out, err := compute.Call(kernel, opts, s.datum(), compute.ScalarDatum(v))
	if err != nil {
		return nil, err
	}
	return &Series{index: s.index, data: out.Arr, name: s.name}, nil
}

func (s *Series) Add(o *Series) (*Series, error)      { return s.alignedBinary("add", o, compute.Options{}) }
func (s *Series) Subtract(o *Series) (*Series, error)  { return s.alignedBinary("subtract", o, compute.Options{}) }
func (s *Series) Multiply(o *Series) (*Series, error)  { return s.alignedBinary("multiply", o, compute.Options{}) }
func (s *Series) Divide(o *Series) (*Series, error)    { return s.alignedBinary("divide", o, compute.Options{}) }
func (s *Series) AddScalar(v scalar.Scalar) (*Series, error) { return s.scalarBinary("add", v, compute.Options{}) }
func (s *Series) Equal(o *Series) (*Series, error)     { return s.alignedBinary("equal", o, compute.Options{}) }
func (s *Series) Less(o *Series) (*Series, error)      { return s.alignedBinary("less", o, compute.Options{}) }
func (s *Series) Greater(o *Series) (*Series, error)   { return s.alignedBinary("greater", o, compute.Options{}) }

// Apply dispatches any registered unary kernel elementwise over s,
// preserving the index, reaching kernels with no dedicated wrapper method
// (rounding, unary math, predicates).
func (s *Series) Apply(kernel string, opts compute.Options) (*Series, error) {
	out, err := compute.Call(kernel, opts, s.datum())
	if err != nil {
		return nil, err
	}
	return &Series{index: s.index, data: out.Arr, name: s.name}, nil
}

// ApplyBinary dispatches any registered binary kernel against other, which
// may be a *Series (aligned by label) or a scalar.Scalar (broadcast),
// reaching kernels with no dedicated wrapper method.
func (s *Series) ApplyBinary(kernel string, other any, opts compute.Options) (*Series, error) {
	switch o := other.(type) {
	case *Series:
		return s.alignedBinary(kernel, o, opts)
	case scalar.Scalar:
		return s.scalarBinary(kernel, o, opts)
	default:
		return nil, errs.Newf(errs.TypeMismatch, "apply_binary", "unsupported operand type %T", other)
	}
}

// Aggregate reduces the Series to a scalar via the named aggregation kernel.
func (s *Series) Aggregate(kernel string, opts compute.Options) (scalar.Scalar, error) {
	out, err := compute.Call(kernel, opts, s.datum())
	if err != nil {
		return scalar.Scalar{}, err
	}
	return out.Sc, nil
}

// Cumulative applies a cumulative kernel elementwise, preserving the index.
func (s *Series) Cumulative(kernel string, opts compute.Options) (*Series, error) {
	out, err := compute.Call(kernel, opts, s.datum())
	if err != nil {
		return nil, err
	}
	return &Series{index: s.index, data: out.Arr, name: s.name}, nil
}

// Map applies fn to every non-null element, preserving nulls.
func (s *Series) Map(fn func(scalar.Scalar) scalar.Scalar) *Series {
	combined := s.data.Combined()
	bld := columnar.NewBuilder(combined.Type(), combined.Len())
	for i := 0; i < combined.Len(); i++ {
		v := combined.GetScalar(i)
		if v.IsNull() {
			bld.AppendScalar(v)
			continue
		}
		bld.AppendScalar(fn(v))
	}
	return &Series{index: s.index, data: columnar.NewChunkedArrayFrom(bld.Finish()), name: s.name}
}

// Head returns the first n rows.
func (s *Series) Head(n int) *Series {
	if n > s.Len() {
		n = s.Len()
	}
	return &Series{index: s.index.Take(identityRange(n)), data: s.data.Slice(0, n), name: s.name}
}

// Tail returns the last n rows.
func (s *Series) Tail(n int) *Series {
	if n > s.Len() {
		n = s.Len()
	}
	start := s.Len() - n
	idx := s.index.Take(rangeFromTo(start, s.Len()))
	return &Series{index: idx, data: s.data.Slice(start, s.Len()), name: s.name}
}

// ILoc returns the row at position i.
func (s *Series) ILoc(i int) (scalar.Scalar, error) {
	if i < 0 || i >= s.Len() {
		return scalar.Scalar{}, errs.Newf(errs.InvalidRange, "iloc", "position %d out of range [0,%d)", i, s.Len())
	}
	return s.data.GetScalar(i), nil
}

// Loc returns the row at label.
func (s *Series) Loc(label scalar.Scalar) (scalar.Scalar, error) {
	pos, err := s.index.GetLoc(label)
	if err != nil {
		return scalar.Scalar{}, err
	}
	return s.data.GetScalar(pos), nil
}

// FillNull replaces every null element with v.
func (s *Series) FillNull(v scalar.Scalar) *Series {
	combined := s.data.Combined()
	bld := columnar.NewBuilder(combined.Type(), combined.Len())
	for i := 0; i < combined.Len(); i++ {
		if combined.IsNull(i) {
			bld.AppendScalar(v)
		} else {
			bld.AppendScalar(combined.GetScalar(i))
		}
	}
	return &Series{index: s.index, data: columnar.NewChunkedArrayFrom(bld.Finish()), name: s.name}
}

// ForwardFill replaces each null with the nearest prior non-null value.
func (s *Series) ForwardFill() *Series {
	combined := s.data.Combined()
	bld := columnar.NewBuilder(combined.Type(), combined.Len())
	var last scalar.Scalar
	haveLast := false
	for i := 0; i < combined.Len(); i++ {
		if combined.IsNull(i) {
			if haveLast {
				bld.AppendScalar(last)
			} else {
				bld.AppendScalar(combined.GetScalar(i))
			}
			continue
		}
		last = combined.GetScalar(i)
		haveLast = true
		bld.AppendScalar(last)
	}
	return &Series{index: s.index, data: columnar.NewChunkedArrayFrom(bld.Finish()), name: s.name}
}

// BackwardFill replaces each null with the nearest following non-null value.
func (s *Series) BackwardFill() *Series {
	combined := s.data.Combined()
	n := combined.Len()
	vals := make([]scalar.Scalar, n)
	var next scalar.Scalar
	haveNext := false
	for i := n - 1; i >= 0; i-- {
		if combined.IsNull(i) {
			if haveNext {
				vals[i] = next
			} else {
				vals[i] = combined.GetScalar(i)
			}
			continue
		}
		next = combined.GetScalar(i)
		haveNext = true
		vals[i] = next
	}
	bld := columnar.NewBuilder(combined.Type(), n)
	for _, v := range vals {
		bld.AppendScalar(v)
	}
	return &Series{index: s.index, data: columnar.NewChunkedArrayFrom(bld.Finish()), name: s.name}
}

// DropNull removes rows whose value is null.
func (s *Series) DropNull() *Series {
	combined := s.data.Combined()
	mask := make([]bool, combined.Len())
	for i := range mask {
		mask[i] = combined.IsValid(i)
	}
	idx, _ := s.index.Filter(mask)
	var positions []int
	for i, keep := range mask {
		if keep {
			positions = append(positions, i)
		}
	}
	return &Series{index: idx, data: s.data.Take(positions), name: s.name}
}

// Where keeps elements where cond holds, substituting other's value
// elsewhere. cond is a []bool mask, a *Series of booleans (aligned to s by
// label; a missing label is treated as false), a scalar.Scalar bool
// broadcast to every position, or a func(scalar.Scalar) bool evaluated
// against s's own values. other is a scalar.Scalar broadcast to every
// replaced position, a *Series of replacements (aligned by label; a missing
// label falls back to null), a func(scalar.Scalar) scalar.Scalar evaluated
// against s's own value at that position, or nil for null substitution.
func (s *Series) Where(cond any, other any) (*Series, error) {
	mask, err := s.resolveCond(cond)
	if err != nil {
		return nil, err
	}
	replacement, err := s.resolveOther(other)
	if err != nil {
		return nil, err
	}
	combined := s.data.Combined()
	bld := columnar.NewBuilder(combined.Type(), combined.Len())
	for i := 0; i < combined.Len(); i++ {
		if mask[i] {
			bld.AppendScalar(combined.GetScalar(i))
		} else {
			bld.AppendScalar(replacement(i))
		}
	}
	return &Series{index: s.index, data: columnar.NewChunkedArrayFrom(bld.Finish()), name: s.name}, nil
}

func (s *Series) resolveCond(cond any) ([]bool, error) {
	n := s.Len()
	switch c := cond.(type) {
	case []bool:
		if len(c) != n {
			return nil, errs.Newf(errs.LengthMismatch, "where", "mask length %d != series length %d", len(c), n)
		}
		return c, nil
	case *Series:
		combined := c.data.Combined()
		mask := make([]bool, n)
		for i := 0; i < n; i++ {
			pos, err := c.index.GetLoc(s.index.Label(i))
			if err != nil {
				continue
			}
			b, _ := combined.GetScalar(pos).Bool()
			mask[i] = b
		}
		return mask, nil
	case scalar.Scalar:
		b, _ := c.Bool()
		mask := make([]bool, n)
		for i := range mask {
			mask[i] = b
		}
		return mask, nil
	case func(scalar.Scalar) bool:
		combined := s.data.Combined()
		mask := make([]bool, n)
		for i := 0; i < n; i++ {
			mask[i] = c(combined.GetScalar(i))
		}
		return mask, nil
	default:
		return nil, errs.Newf(errs.TypeMismatch, "where", "unsupported cond type %T", cond)
	}
}

func (s *Series) resolveOther(other any) (func(int) scalar.Scalar, error) {
	combined := s.data.Combined()
	switch o := other.(type) {
	case nil:
		return func(int) scalar.Scalar { return scalar.Null(combined.Type()) }, nil
	case scalar.Scalar:
		return func(int) scalar.Scalar { return o }, nil
	case *Series:
		oCombined := o.data.Combined()
		return func(i int) scalar.Scalar {
			pos, err := o.index.GetLoc(s.index.Label(i))
			if err != nil {
				return scalar.Null(combined.Type())
			}
			return oCombined.GetScalar(pos)
		}, nil
	case func(scalar.Scalar) scalar.Scalar:
		return func(i int) scalar.Scalar { return o(combined.GetScalar(i)) }, nil
	default:
		return nil, errs.Newf(errs.TypeMismatch, "where", "unsupported other type %T", other)
	}
}

// IsIn reports, per element, whether it equals one of values.
func (s *Series) IsIn(values []scalar.Scalar) *Series {
	combined := s.data.Combined()
	bld := columnar.NewBuilder(scalar.Bool, combined.Len())
	for i := 0; i < combined.Len(); i++ {
		v := combined.GetScalar(i)
		found := false
		for _, candidate := range values {
			if v.Equal(candidate) {
				found = true
				break
			}
		}
		bld.AppendScalar(scalar.NewBool(found))
	}
	return &Series{index: s.index, data: columnar.NewChunkedArrayFrom(bld.Finish()), name: s.name}
}

// SortValues returns a new Series sorted by its own values.
func (s *Series) SortValues(ascending bool) *Series {
	combined := s.data.Combined()
	n := combined.Len()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		if ascending {
			return scalar.Less(combined.GetScalar(perm[i]), combined.GetScalar(perm[j]), true)
		}
		return scalar.Less(combined.GetScalar(perm[j]), combined.GetScalar(perm[i]), true)
	})
	return &Series{index: s.index.Take(perm), data: s.data.Take(perm), name: s.name}
}

func identityRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func rangeFromTo(start, stop int) []int {
	out := make([]int, 0, stop-start)
	for i := start; i < stop; i++ {
		out = append(out, i)
	}
	return out
}
