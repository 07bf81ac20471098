// Package compute implements C4: the named-kernel dispatch layer shared by
// the NDFrame arithmetic/aggregation operations and the ad-hoc analytics
// surface. Kernels are registered by name into a package-level registry,
// grounded on the teacher's sequences/service.go lookup-by-name pattern.
package compute

import (
	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

// DatumKind tags which of the three shapes a Datum carries.
type DatumKind int

const (
	KindScalar DatumKind = iota
	KindArray
	KindTable
)

// Datum is the uniform value a kernel consumes and produces: a Scalar, a
// column (ChunkedArray), or a Table. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Datum struct {
	Kind  DatumKind
	Sc    scalar.Scalar
	Arr   *columnar.ChunkedArray
	Table *columnar.Table
}

func ScalarDatum(s scalar.Scalar) Datum  { return Datum{Kind: KindScalar, Sc: s} }
func ArrayDatum(a *columnar.ChunkedArray) Datum { return Datum{Kind: KindArray, Arr: a} }
func TableDatum(t *columnar.Table) Datum { return Datum{Kind: KindTable, Table: t} }

// Type reports the logical element type of the Datum.
func (d Datum) Type() scalar.Type {
	switch d.Kind {
	case KindScalar:
		return d.Sc.Type()
	case KindArray:
		return d.Arr.Type()
	default:
		return scalar.Invalid
	}
}

// Len reports the row count: 1 for a scalar, the element count for an
// array, the row count for a table.
func (d Datum) Len() int {
	switch d.Kind {
	case KindScalar:
		return 1
	case KindArray:
		return d.Arr.Len()
	case KindTable:
		return d.Table.RowCount()
	default:
		return 0
	}
}

// GetScalar returns the i-th logical value, broadcasting a scalar Datum
// across every i.
func (d Datum) GetScalar(i int) scalar.Scalar {
	switch d.Kind {
	case KindScalar:
		return d.Sc
	case KindArray:
		return d.Arr.GetScalar(i)
	default:
		return scalar.Null(scalar.Invalid)
	}
}

// broadcastLen resolves the common row count of a and b for elementwise
// binary dispatch: scalar Datums broadcast to the other operand's length;
// two non-scalar Datums must agree exactly.
func broadcastLen(op string, a, b Datum) (int, error) {
	if a.Kind == KindScalar {
		return b.Len(), nil
	}
	if b.Kind == KindScalar {
		return a.Len(), nil
	}
	if a.Len() != b.Len() {
		return 0, errs.Newf(errs.LengthMismatch, op, "operands have length %d and %d", a.Len(), b.Len())
	}
	return a.Len(), nil
}
