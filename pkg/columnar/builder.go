package columnar

import (
	"github.com/aristath/marketframe/pkg/scalar"
	"github.com/aristath/marketframe/pkg/temporal"
)

// Builder accumulates scalars of a single type into an Array. It is the
// generic (type-switch) path used by kernels whose output type is only
// known at dispatch time; hot numeric paths build typed slices directly
// instead.
type Builder struct {
	typ  scalar.Type
	i64  []int64
	f64  []float64
	b    []bool
	s    []string
	ts   []temporal.DateTime
	null []bool
}

// NewBuilder creates a Builder for typ, pre-sizing its backing slice to
// capacity.
func NewBuilder(typ scalar.Type, capacity int) *Builder {
	bld := &Builder{typ: typ, null: make([]bool, 0, capacity)}
	switch typ {
	case scalar.Int64:
		bld.i64 = make([]int64, 0, capacity)
	case scalar.Float64:
		bld.f64 = make([]float64, 0, capacity)
	case scalar.Bool:
		bld.b = make([]bool, 0, capacity)
	case scalar.String:
		bld.s = make([]string, 0, capacity)
	case scalar.Timestamp:
		bld.ts = make([]temporal.DateTime, 0, capacity)
	}
	return bld
}

// AppendScalar appends v, which must match the Builder's type (or be
// null). A type-mismatched non-null scalar appends a null instead of
// panicking, since Builder is used in generic dispatch paths where a
// defensive fallback is preferable to a crash.
func (b *Builder) AppendScalar(v scalar.Scalar) {
	if v.IsNull() {
		b.appendNullOfType()
		return
	}
	switch b.typ {
	case scalar.Int64:
		if iv, ok := v.Int64(); ok {
			b.i64 = append(b.i64, iv)
			b.null = append(b.null, false)
			return
		}
	case scalar.Float64:
		if fv, ok := v.Float64(); ok {
			b.f64 = append(b.f64, fv)
			b.null = append(b.null, false)
			return
		}
	case scalar.Bool:
		if bv, ok := v.Bool(); ok {
			b.b = append(b.b, bv)
			b.null = append(b.null, false)
			return
		}
	case scalar.String:
		if sv, ok := v.StringValue(); ok {
			b.s = append(b.s, sv)
			b.null = append(b.null, false)
			return
		}
	case scalar.Timestamp:
		if tv, ok := v.Timestamp(); ok {
			b.ts = append(b.ts, tv)
			b.null = append(b.null, false)
			return
		}
	}
	b.appendNullOfType()
}

func (b *Builder) appendNullOfType() {
	switch b.typ {
	case scalar.Int64:
		b.i64 = append(b.i64, 0)
	case scalar.Float64:
		b.f64 = append(b.f64, 0)
	case scalar.Bool:
		b.b = append(b.b, false)
	case scalar.String:
		b.s = append(b.s, "")
	case scalar.Timestamp:
		b.ts = append(b.ts, temporal.DateTime{})
	}
	b.null = append(b.null, true)
}

// Finish produces the built Array.
func (b *Builder) Finish() Array {
	switch b.typ {
	case scalar.Int64:
		return NewInt64Array(b.i64, b.null)
	case scalar.Float64:
		return NewFloat64Array(b.f64, b.null)
	case scalar.Bool:
		return NewBoolArray(b.b, b.null)
	case scalar.String:
		return NewStringArray(b.s, b.null)
	case scalar.Timestamp:
		return NewTimestampArray(b.ts, b.null)
	default:
		return NewBoolArray(make([]bool, len(b.null)), b.null)
	}
}
