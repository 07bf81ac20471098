// Package scalar defines the scalar value and type-tag system shared by the
// columnar layer, the compute dispatcher, and the NDFrame kernel.
package scalar

import (
	"fmt"

	"github.com/aristath/marketframe/pkg/temporal"
)

// Type tags the logical type of a Scalar, Array, or column.
type Type int

const (
	Invalid Type = iota
	Int64
	Float64
	Bool
	String
	Timestamp // temporal.DateTime
)

func (t Type) String() string {
	switch t {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Timestamp:
		return "timestamp"
	default:
		return "invalid"
	}
}

// Scalar is a single typed, possibly-null value. Null() is a distinct
// state from any zero value of the underlying type.
type Scalar struct {
	typ   Type
	valid bool
	i64   int64
	f64   float64
	b     bool
	s     string
	ts    temporal.DateTime
}

// Null builds a null Scalar of the given type.
func Null(t Type) Scalar { return Scalar{typ: t} }

// NewInt64 builds a valid int64 scalar.
func NewInt64(v int64) Scalar { return Scalar{typ: Int64, valid: true, i64: v} }

// NewFloat64 builds a valid float64 scalar.
func NewFloat64(v float64) Scalar { return Scalar{typ: Float64, valid: true, f64: v} }

// NewBool builds a valid bool scalar.
func NewBool(v bool) Scalar { return Scalar{typ: Bool, valid: true, b: v} }

// NewString builds a valid string scalar.
func NewString(v string) Scalar { return Scalar{typ: String, valid: true, s: v} }

// NewTimestamp builds a valid timestamp scalar.
func NewTimestamp(v temporal.DateTime) Scalar { return Scalar{typ: Timestamp, valid: true, ts: v} }

// Type reports the scalar's logical type.
func (s Scalar) Type() Type { return s.typ }

// IsValid reports whether the scalar carries a value (is not Null).
func (s Scalar) IsValid() bool { return s.valid }

// IsNull is the complement of IsValid.
func (s Scalar) IsNull() bool { return !s.valid }

// Int64 returns the underlying value; the second result is false if the
// scalar is null or not an Int64.
func (s Scalar) Int64() (int64, bool) {
	if !s.valid || s.typ != Int64 {
		return 0, false
	}
	return s.i64, true
}

// Float64 returns the underlying value, promoting Int64 scalars. The second
// result is false if the scalar is null or not numeric.
func (s Scalar) Float64() (float64, bool) {
	if !s.valid {
		return 0, false
	}
	switch s.typ {
	case Float64:
		return s.f64, true
	case Int64:
		return float64(s.i64), true
	default:
		return 0, false
	}
}

// Bool returns the underlying value.
func (s Scalar) Bool() (bool, bool) {
	if !s.valid || s.typ != Bool {
		return false, false
	}
	return s.b, true
}

// String returns the underlying value.
func (s Scalar) String() string {
	if !s.valid {
		return "null"
	}
	switch s.typ {
	case Int64:
		return fmt.Sprintf("%d", s.i64)
	case Float64:
		return fmt.Sprintf("%g", s.f64)
	case Bool:
		return fmt.Sprintf("%t", s.b)
	case String:
		return s.s
	case Timestamp:
		return s.ts.String()
	default:
		return "?"
	}
}

// StringValue returns the underlying string, when Type()==String.
func (s Scalar) StringValue() (string, bool) {
	if !s.valid || s.typ != String {
		return "", false
	}
	return s.s, true
}

// Timestamp returns the underlying value.
func (s Scalar) Timestamp() (temporal.DateTime, bool) {
	if !s.valid || s.typ != Timestamp {
		return temporal.DateTime{}, false
	}
	return s.ts, true
}

// Equal reports whether two scalars have the same type and value. Two null
// scalars of the same type are equal to each other; per spec.md's Null
// comparison rule, callers doing element-wise comparison should NOT use
// this for "equal" kernel semantics (Null compares to Null, not to true).
func (s Scalar) Equal(o Scalar) bool {
	if s.typ != o.typ || s.valid != o.valid {
		return false
	}
	if !s.valid {
		return true
	}
	switch s.typ {
	case Int64:
		return s.i64 == o.i64
	case Float64:
		return s.f64 == o.f64
	case Bool:
		return s.b == o.b
	case String:
		return s.s == o.s
	case Timestamp:
		return s.ts.Equal(o.ts)
	default:
		return false
	}
}

// Less provides a total order for orderable scalar types, used by sort and
// index ordering. Nulls sort according to the naLast flag.
func Less(a, b Scalar, naLast bool) bool {
	if a.valid != b.valid {
		if !a.valid {
			return !naLast
		}
		return naLast
	}
	if !a.valid {
		return false
	}
	switch a.typ {
	case Int64:
		return a.i64 < b.i64
	case Float64:
		return a.f64 < b.f64
	case String:
		return a.s < b.s
	case Timestamp:
		return a.ts.Before(b.ts)
	case Bool:
		return !a.b && b.b
	default:
		return false
	}
}
