package compute

import (
	"math"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

// mapNumericPreserving applies intFn to Int64 elements and floatFn to
// Float64 elements, keeping the input's type. Used by abs/negate/sign.
func mapNumericPreserving(op string, d Datum, intFn func(int64) int64, floatFn func(float64) float64) (Datum, error) {
	switch d.Kind {
	case KindScalar:
		s := d.Sc
		if s.IsNull() {
			return ScalarDatum(s), nil
		}
		switch s.Type() {
		case scalar.Int64:
			v, _ := s.Int64()
			return ScalarDatum(scalar.NewInt64(intFn(v))), nil
		case scalar.Float64:
			v, _ := s.Float64()
			return ScalarDatum(scalar.NewFloat64(floatFn(v))), nil
		default:
			return Datum{}, errs.Newf(errs.TypeMismatch, op, "unsupported type %s", s.Type())
		}
	case KindArray:
		typ := d.Arr.Type()
		if typ != scalar.Int64 && typ != scalar.Float64 {
			return Datum{}, errs.Newf(errs.TypeMismatch, op, "unsupported type %s", typ)
		}
		b := columnar.NewBuilder(typ, d.Arr.Len())
		combined := d.Arr.Combined()
		for i := 0; i < combined.Len(); i++ {
			s := combined.GetScalar(i)
			if s.IsNull() {
				b.AppendScalar(s)
				continue
			}
			if typ == scalar.Int64 {
				v, _ := s.Int64()
				b.AppendScalar(scalar.NewInt64(intFn(v)))
			} else {
				v, _ := s.Float64()
				b.AppendScalar(scalar.NewFloat64(floatFn(v)))
			}
		}
		return ArrayDatum(columnar.NewChunkedArrayFrom(b.Finish())), nil
	default:
		return Datum{}, errs.Newf(errs.TypeMismatch, op, "unsupported datum kind")
	}
}

// mapFloat applies fn to every (numeric, promoted to float64) element,
// producing a Float64-typed Datum of the same shape.
func mapFloat(op string, d Datum, fn func(float64) float64) (Datum, error) {
	switch d.Kind {
	case KindScalar:
		v, ok := d.Sc.Float64()
		if d.Sc.IsNull() {
			return ScalarDatum(scalar.Null(scalar.Float64)), nil
		}
		if !ok {
			return Datum{}, errs.Newf(errs.TypeMismatch, op, "unsupported type %s", d.Sc.Type())
		}
		return ScalarDatum(scalar.NewFloat64(fn(v))), nil
	case KindArray:
		b := columnar.NewBuilder(scalar.Float64, d.Arr.Len())
		combined := d.Arr.Combined()
		for i := 0; i < combined.Len(); i++ {
			s := combined.GetScalar(i)
			if s.IsNull() {
				b.AppendScalar(scalar.Null(scalar.Float64))
				continue
			}
			v, ok := s.Float64()
			if !ok {
				return Datum{}, errs.Newf(errs.TypeMismatch, op, "unsupported type %s", s.Type())
			}
			b.AppendScalar(scalar.NewFloat64(fn(v)))
		}
		return ArrayDatum(columnar.NewChunkedArrayFrom(b.Finish())), nil
	default:
		return Datum{}, errs.Newf(errs.TypeMismatch, op, "unsupported datum kind")
	}
}

// mapPredicate applies a null-aware predicate over every element, producing
// a Bool Datum. Unlike mapFloat, the predicate itself decides how to treat
// nulls (e.g. is_null wants true on a null input, not a null output).
func mapPredicate(d Datum, fn func(scalar.Scalar) bool) Datum {
	switch d.Kind {
	case KindScalar:
		return ScalarDatum(scalar.NewBool(fn(d.Sc)))
	case KindArray:
		b := columnar.NewBuilder(scalar.Bool, d.Arr.Len())
		combined := d.Arr.Combined()
		for i := 0; i < combined.Len(); i++ {
			b.AppendScalar(scalar.NewBool(fn(combined.GetScalar(i))))
		}
		return ArrayDatum(columnar.NewChunkedArrayFrom(b.Finish()))
	default:
		return d
	}
}

func registerUnary() {
	Register(Kernel{Name: "abs", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return mapNumericPreserving("abs", a[0], func(v int64) int64 {
			if v < 0 {
				return -v
			}
			return v
		}, math.Abs)
	}})
	Register(Kernel{Name: "negate", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return mapNumericPreserving("negate", a[0], func(v int64) int64 { return -v }, func(v float64) float64 { return -v })
	}})
	Register(Kernel{Name: "sign", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return mapNumericPreserving("sign", a[0], func(v int64) int64 {
			switch {
			case v > 0:
				return 1
			case v < 0:
				return -1
			default:
				return 0
			}
		}, func(v float64) float64 {
			switch {
			case v > 0:
				return 1
			case v < 0:
				return -1
			default:
				return 0
			}
		})
	}})

	floatKernels := map[string]func(float64) float64{
		"exp": math.Exp, "ln": math.Log, "log10": math.Log10, "log2": math.Log2,
		"log1p": math.Log1p, "sqrt": math.Sqrt, "ceil": math.Ceil, "floor": math.Floor,
		"trunc": math.Trunc, "sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
	}
	for name, fn := range floatKernels {
		fn := fn
		Register(Kernel{Name: name, Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
			return mapFloat(name, a[0], fn)
		}})
	}

	Register(Kernel{Name: "is_null", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return mapPredicate(a[0], func(s scalar.Scalar) bool { return s.IsNull() }), nil
	}})
	Register(Kernel{Name: "is_valid", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return mapPredicate(a[0], func(s scalar.Scalar) bool { return s.IsValid() }), nil
	}})
	Register(Kernel{Name: "is_finite", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return mapPredicate(a[0], func(s scalar.Scalar) bool {
			v, ok := s.Float64()
			return ok && !math.IsInf(v, 0) && !math.IsNaN(v)
		}), nil
	}})
	Register(Kernel{Name: "is_inf", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return mapPredicate(a[0], func(s scalar.Scalar) bool {
			v, ok := s.Float64()
			return ok && math.IsInf(v, 0)
		}), nil
	}})
	Register(Kernel{Name: "is_nan", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return mapPredicate(a[0], func(s scalar.Scalar) bool {
			v, ok := s.Float64()
			return ok && math.IsNaN(v)
		}), nil
	}})
	Register(Kernel{Name: "bitwise_not", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return mapNumericPreserving("bitwise_not", a[0], func(v int64) int64 { return ^v }, func(v float64) float64 { return v })
	}})
	Register(Kernel{Name: "not", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		d := a[0]
		switch d.Kind {
		case KindScalar:
			if d.Sc.IsNull() {
				return ScalarDatum(scalar.Null(scalar.Bool)), nil
			}
			v, ok := d.Sc.Bool()
			if !ok {
				return Datum{}, errs.Newf(errs.TypeMismatch, "not", "unsupported type %s", d.Sc.Type())
			}
			return ScalarDatum(scalar.NewBool(!v)), nil
		case KindArray:
			b := columnar.NewBuilder(scalar.Bool, d.Arr.Len())
			combined := d.Arr.Combined()
			for i := 0; i < combined.Len(); i++ {
				s := combined.GetScalar(i)
				if s.IsNull() {
					b.AppendScalar(scalar.Null(scalar.Bool))
					continue
				}
				v, _ := s.Bool()
				b.AppendScalar(scalar.NewBool(!v))
			}
			return ArrayDatum(columnar.NewChunkedArrayFrom(b.Finish())), nil
		default:
			return Datum{}, errs.Newf(errs.TypeMismatch, "not", "unsupported datum kind")
		}
	}})
}
