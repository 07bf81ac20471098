// Package columnar implements the C1 columnar primitives: typed Arrays,
// ChunkedArrays, Schema, and Table, with null-bitmap propagation.
//
// There is no Arrow Go binding anywhere in the retrieval pack this module
// was grounded on, so this package is a native Go columnar layer sized to
// exactly the capability surface spec.md §3.1 requires (dense values +
// validity, typed arrays, chunked sequencing) rather than a wrapper around
// a third-party Arrow implementation.
package columnar

import (
	"github.com/aristath/marketframe/pkg/scalar"
	"github.com/aristath/marketframe/pkg/temporal"
)

// Array is a dense, contiguous, typed sequence of values with a validity
// bitmap. Length counts logical rows including nulls.
type Array interface {
	Type() scalar.Type
	Len() int
	IsValid(i int) bool
	IsNull(i int) bool
	GetScalar(i int) scalar.Scalar
	// Take builds a new Array by gathering positions; position < 0 means
	// "missing", which produces a null in the output regardless of the
	// source validity at that slot.
	Take(positions []int) Array
	// Slice returns the half-open range [start, stop) as a new Array
	// sharing no mutable state with the source.
	Slice(start, stop int) Array
}

func validityFromMask(n int, nullMask []bool) []bool {
	valid := make([]bool, n)
	for i := range valid {
		valid[i] = true
	}
	if nullMask != nil {
		for i, isNull := range nullMask {
			if isNull {
				valid[i] = false
			}
		}
	}
	return valid
}

// -------------------- Float64Array --------------------

type Float64Array struct {
	data  []float64
	valid []bool
}

func NewFloat64Array(data []float64, nullMask []bool) *Float64Array {
	return &Float64Array{data: append([]float64(nil), data...), valid: validityFromMask(len(data), nullMask)}
}

func (a *Float64Array) Type() scalar.Type  { return scalar.Float64 }
func (a *Float64Array) Len() int           { return len(a.data) }
func (a *Float64Array) IsValid(i int) bool { return a.valid[i] }
func (a *Float64Array) IsNull(i int) bool  { return !a.valid[i] }
func (a *Float64Array) Value(i int) float64 { return a.data[i] }

func (a *Float64Array) GetScalar(i int) scalar.Scalar {
	if !a.valid[i] {
		return scalar.Null(scalar.Float64)
	}
	return scalar.NewFloat64(a.data[i])
}

func (a *Float64Array) Take(positions []int) Array {
	data := make([]float64, len(positions))
	valid := make([]bool, len(positions))
	for out, pos := range positions {
		if pos < 0 || pos >= len(a.data) {
			continue
		}
		data[out] = a.data[pos]
		valid[out] = a.valid[pos]
	}
	return &Float64Array{data: data, valid: valid}
}

func (a *Float64Array) Slice(start, stop int) Array {
	return &Float64Array{data: append([]float64(nil), a.data[start:stop]...), valid: append([]bool(nil), a.valid[start:stop]...)}
}

// -------------------- Int64Array --------------------

type Int64Array struct {
	data  []int64
	valid []bool
}

func NewInt64Array(data []int64, nullMask []bool) *Int64Array {
	return &Int64Array{data: append([]int64(nil), data...), valid: validityFromMask(len(data), nullMask)}
}

func (a *Int64Array) Type() scalar.Type   { return scalar.Int64 }
func (a *Int64Array) Len() int            { return len(a.data) }
func (a *Int64Array) IsValid(i int) bool  { return a.valid[i] }
func (a *Int64Array) IsNull(i int) bool   { return !a.valid[i] }
func (a *Int64Array) Value(i int) int64   { return a.data[i] }

func (a *Int64Array) GetScalar(i int) scalar.Scalar {
	if !a.valid[i] {
		return scalar.Null(scalar.Int64)
	}
	return scalar.NewInt64(a.data[i])
}

func (a *Int64Array) Take(positions []int) Array {
	data := make([]int64, len(positions))
	valid := make([]bool, len(positions))
	for out, pos := range positions {
		if pos < 0 || pos >= len(a.data) {
			continue
		}
		data[out] = a.data[pos]
		valid[out] = a.valid[pos]
	}
	return &Int64Array{data: data, valid: valid}
}

func (a *Int64Array) Slice(start, stop int) Array {
	return &Int64Array{data: append([]int64(nil), a.data[start:stop]...), valid: append([]bool(nil), a.valid[start:stop]...)}
}

// -------------------- BoolArray --------------------

type BoolArray struct {
	data  []bool
	valid []bool
}

func NewBoolArray(data []bool, nullMask []bool) *BoolArray {
	return &BoolArray{data: append([]bool(nil), data...), valid: validityFromMask(len(data), nullMask)}
}

func (a *BoolArray) Type() scalar.Type  { return scalar.Bool }
func (a *BoolArray) Len() int           { return len(a.data) }
func (a *BoolArray) IsValid(i int) bool { return a.valid[i] }
func (a *BoolArray) IsNull(i int) bool  { return !a.valid[i] }
func (a *BoolArray) Value(i int) bool   { return a.data[i] }

func (a *BoolArray) GetScalar(i int) scalar.Scalar {
	if !a.valid[i] {
		return scalar.Null(scalar.Bool)
	}
	return scalar.NewBool(a.data[i])
}

func (a *BoolArray) Take(positions []int) Array {
	data := make([]bool, len(positions))
	valid := make([]bool, len(positions))
	for out, pos := range positions {
		if pos < 0 || pos >= len(a.data) {
			continue
		}
		data[out] = a.data[pos]
		valid[out] = a.valid[pos]
	}
	return &BoolArray{data: data, valid: valid}
}

func (a *BoolArray) Slice(start, stop int) Array {
	return &BoolArray{data: append([]bool(nil), a.data[start:stop]...), valid: append([]bool(nil), a.valid[start:stop]...)}
}

// -------------------- StringArray --------------------

type StringArray struct {
	data  []string
	valid []bool
}

func NewStringArray(data []string, nullMask []bool) *StringArray {
	return &StringArray{data: append([]string(nil), data...), valid: validityFromMask(len(data), nullMask)}
}

func (a *StringArray) Type() scalar.Type  { return scalar.String }
func (a *StringArray) Len() int           { return len(a.data) }
func (a *StringArray) IsValid(i int) bool { return a.valid[i] }
func (a *StringArray) IsNull(i int) bool  { return !a.valid[i] }
func (a *StringArray) Value(i int) string { return a.data[i] }

func (a *StringArray) GetScalar(i int) scalar.Scalar {
	if !a.valid[i] {
		return scalar.Null(scalar.String)
	}
	return scalar.NewString(a.data[i])
}

func (a *StringArray) Take(positions []int) Array {
	data := make([]string, len(positions))
	valid := make([]bool, len(positions))
	for out, pos := range positions {
		if pos < 0 || pos >= len(a.data) {
			continue
		}
		data[out] = a.data[pos]
		valid[out] = a.valid[pos]
	}
	return &StringArray{data: data, valid: valid}
}

func (a *StringArray) Slice(start, stop int) Array {
	return &StringArray{data: append([]string(nil), a.data[start:stop]...), valid: append([]bool(nil), a.valid[start:stop]...)}
}

// -------------------- TimestampArray --------------------

type TimestampArray struct {
	data  []temporal.DateTime
	valid []bool
}

func NewTimestampArray(data []temporal.DateTime, nullMask []bool) *TimestampArray {
	return &TimestampArray{data: append([]temporal.DateTime(nil), data...), valid: validityFromMask(len(data), nullMask)}
}

func (a *TimestampArray) Type() scalar.Type             { return scalar.Timestamp }
func (a *TimestampArray) Len() int                      { return len(a.data) }
func (a *TimestampArray) IsValid(i int) bool            { return a.valid[i] }
func (a *TimestampArray) IsNull(i int) bool             { return !a.valid[i] }
func (a *TimestampArray) Value(i int) temporal.DateTime { return a.data[i] }

func (a *TimestampArray) GetScalar(i int) scalar.Scalar {
	if !a.valid[i] {
		return scalar.Null(scalar.Timestamp)
	}
	return scalar.NewTimestamp(a.data[i])
}

func (a *TimestampArray) Take(positions []int) Array {
	data := make([]temporal.DateTime, len(positions))
	valid := make([]bool, len(positions))
	for out, pos := range positions {
		if pos < 0 || pos >= len(a.data) {
			continue
		}
		data[out] = a.data[pos]
		valid[out] = a.valid[pos]
	}
	return &TimestampArray{data: data, valid: valid}
}

func (a *TimestampArray) Slice(start, stop int) Array {
	return &TimestampArray{data: append([]temporal.DateTime(nil), a.data[start:stop]...), valid: append([]bool(nil), a.valid[start:stop]...)}
}

// NewNullArray builds an all-null Array of the given type and length.
func NewNullArray(t scalar.Type, n int) Array {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	switch t {
	case scalar.Int64:
		return NewInt64Array(make([]int64, n), mask)
	case scalar.Float64:
		return NewFloat64Array(make([]float64, n), mask)
	case scalar.Bool:
		return NewBoolArray(make([]bool, n), mask)
	case scalar.String:
		return NewStringArray(make([]string, n), mask)
	case scalar.Timestamp:
		return NewTimestampArray(make([]temporal.DateTime, n), mask)
	default:
		return NewBoolArray(make([]bool, n), mask)
	}
}
