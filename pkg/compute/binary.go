package compute

import (
	"math"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

// elemAt returns the i-th logical scalar of a Datum of either shape,
// broadcasting a scalar across every i.
func elemAt(d Datum, i int) scalar.Scalar {
	if d.Kind == KindScalar {
		return d.Sc
	}
	return d.Arr.GetScalar(i)
}

func combinedNumericType(at, bt scalar.Type) scalar.Type {
	if at == scalar.Int64 && bt == scalar.Int64 {
		return scalar.Int64
	}
	return scalar.Float64
}

// binaryNumeric applies op elementwise with null-propagates-null semantics,
// producing Int64 when both operands are Int64 and op has an integer form,
// Float64 otherwise.
func binaryNumeric(op string, a, b Datum, intFn func(int64, int64) (int64, error), floatFn func(float64, float64) float64) (Datum, error) {
	n, err := broadcastLen(op, a, b)
	if err != nil {
		return Datum{}, err
	}
	outTyp := combinedNumericType(a.Type(), b.Type())
	if outTyp == scalar.Int64 && intFn == nil {
		outTyp = scalar.Float64
	}
	if a.Kind == KindScalar && b.Kind == KindScalar {
		sa, sb := a.Sc, b.Sc
		if sa.IsNull() || sb.IsNull() {
			return ScalarDatum(scalar.Null(outTyp)), nil
		}
		return scalarNumericResult(op, outTyp, sa, sb, intFn, floatFn)
	}
	bld := columnar.NewBuilder(outTyp, n)
	for i := 0; i < n; i++ {
		sa, sb := elemAt(a, i), elemAt(b, i)
		if sa.IsNull() || sb.IsNull() {
			bld.AppendScalar(scalar.Null(outTyp))
			continue
		}
		r, err := scalarNumericResult(op, outTyp, sa, sb, intFn, floatFn)
		if err != nil {
			return Datum{}, err
		}
		bld.AppendScalar(r.Sc)
	}
	return ArrayDatum(columnar.NewChunkedArrayFrom(bld.Finish())), nil
}

func scalarNumericResult(op string, outTyp scalar.Type, sa, sb scalar.Scalar, intFn func(int64, int64) (int64, error), floatFn func(float64, float64) float64) (Datum, error) {
	if outTyp == scalar.Int64 && intFn != nil {
		ia, _ := sa.Int64()
		ib, _ := sb.Int64()
		v, err := intFn(ia, ib)
		if err != nil {
			return Datum{}, errs.Wrap(errs.TypeMismatch, op, err)
		}
		return ScalarDatum(scalar.NewInt64(v)), nil
	}
	fa, ok1 := sa.Float64()
	fb, ok2 := sb.Float64()
	if !ok1 || !ok2 || floatFn == nil {
		return Datum{}, errs.Newf(errs.TypeMismatch, op, "unsupported operand types %s, %s", sa.Type(), sb.Type())
	}
	return ScalarDatum(scalar.NewFloat64(floatFn(fa, fb))), nil
}

// binaryCompare applies a comparison elementwise, producing Bool with
// null-propagates-null semantics.
func binaryCompare(op string, a, b Datum, cmp func(scalar.Scalar, scalar.Scalar) bool) (Datum, error) {
	n, err := broadcastLen(op, a, b)
	if err != nil {
		return Datum{}, err
	}
	if a.Kind == KindScalar && b.Kind == KindScalar {
		if a.Sc.IsNull() || b.Sc.IsNull() {
			return ScalarDatum(scalar.Null(scalar.Bool)), nil
		}
		return ScalarDatum(scalar.NewBool(cmp(a.Sc, b.Sc))), nil
	}
	bld := columnar.NewBuilder(scalar.Bool, n)
	for i := 0; i < n; i++ {
		sa, sb := elemAt(a, i), elemAt(b, i)
		if sa.IsNull() || sb.IsNull() {
			bld.AppendScalar(scalar.Null(scalar.Bool))
			continue
		}
		bld.AppendScalar(scalar.NewBool(cmp(sa, sb)))
	}
	return ArrayDatum(columnar.NewChunkedArrayFrom(bld.Finish())), nil
}

func boolAt(s scalar.Scalar) (bool, bool) { return s.Bool() }

// binaryBoolStrict applies fn with strict null semantics: either operand
// null makes the result null. Used by and_/or_/xor_.
func binaryBoolStrict(op string, a, b Datum, fn func(bool, bool) bool) (Datum, error) {
	n, err := broadcastLen(op, a, b)
	if err != nil {
		return Datum{}, err
	}
	bld := columnar.NewBuilder(scalar.Bool, n)
	for i := 0; i < n; i++ {
		sa, sb := elemAt(a, i), elemAt(b, i)
		if sa.IsNull() || sb.IsNull() {
			bld.AppendScalar(scalar.Null(scalar.Bool))
			continue
		}
		va, _ := boolAt(sa)
		vb, _ := boolAt(sb)
		bld.AppendScalar(scalar.NewBool(fn(va, vb)))
	}
	if a.Kind == KindScalar && b.Kind == KindScalar {
		return ScalarDatum(bld.Finish().GetScalar(0)), nil
	}
	return ArrayDatum(columnar.NewChunkedArrayFrom(bld.Finish())), nil
}

// kleeneAnd implements three-valued AND: false dominates even over null.
func kleeneAnd(a, b scalar.Scalar) scalar.Scalar {
	av, aok := a.Bool()
	bv, bok := b.Bool()
	if aok && !av {
		return scalar.NewBool(false)
	}
	if bok && !bv {
		return scalar.NewBool(false)
	}
	if a.IsNull() || b.IsNull() {
		return scalar.Null(scalar.Bool)
	}
	return scalar.NewBool(av && bv)
}

// kleeneOr implements three-valued OR: true dominates even over null.
func kleeneOr(a, b scalar.Scalar) scalar.Scalar {
	av, aok := a.Bool()
	bv, bok := b.Bool()
	if aok && av {
		return scalar.NewBool(true)
	}
	if bok && bv {
		return scalar.NewBool(true)
	}
	if a.IsNull() || b.IsNull() {
		return scalar.Null(scalar.Bool)
	}
	return scalar.NewBool(av || bv)
}

func binaryKleene(op string, a, b Datum, fn func(scalar.Scalar, scalar.Scalar) scalar.Scalar) (Datum, error) {
	n, err := broadcastLen(op, a, b)
	if err != nil {
		return Datum{}, err
	}
	if a.Kind == KindScalar && b.Kind == KindScalar {
		return ScalarDatum(fn(a.Sc, b.Sc)), nil
	}
	bld := columnar.NewBuilder(scalar.Bool, n)
	for i := 0; i < n; i++ {
		bld.AppendScalar(fn(elemAt(a, i), elemAt(b, i)))
	}
	return ArrayDatum(columnar.NewChunkedArrayFrom(bld.Finish())), nil
}

func registerBinary() {
	Register(Kernel{Name: "add", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("add", a[0], a[1], func(x, y int64) (int64, error) { return x + y, nil }, func(x, y float64) float64 { return x + y })
	}})
	Register(Kernel{Name: "subtract", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("subtract", a[0], a[1], func(x, y int64) (int64, error) { return x - y, nil }, func(x, y float64) float64 { return x - y })
	}})
	Register(Kernel{Name: "multiply", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("multiply", a[0], a[1], func(x, y int64) (int64, error) { return x * y, nil }, func(x, y float64) float64 { return x * y })
	}})
	Register(Kernel{Name: "divide", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("divide", a[0], a[1], nil, func(x, y float64) float64 { return x / y })
	}})
	Register(Kernel{Name: "modulo", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("modulo", a[0], a[1], func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, errs.New(errs.TypeMismatch, "modulo", "division by zero")
			}
			return x % y, nil
		}, math.Mod)
	}})
	Register(Kernel{Name: "power", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("power", a[0], a[1], nil, math.Pow)
	}})
	Register(Kernel{Name: "logb", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("logb", a[0], a[1], nil, func(x, base float64) float64 { return math.Log(x) / math.Log(base) })
	}})
	Register(Kernel{Name: "atan2", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("atan2", a[0], a[1], nil, math.Atan2)
	}})
	Register(Kernel{Name: "bitwise_and", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("bitwise_and", a[0], a[1], func(x, y int64) (int64, error) { return x & y, nil }, nil)
	}})
	Register(Kernel{Name: "bitwise_or", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("bitwise_or", a[0], a[1], func(x, y int64) (int64, error) { return x | y, nil }, nil)
	}})
	Register(Kernel{Name: "bitwise_xor", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("bitwise_xor", a[0], a[1], func(x, y int64) (int64, error) { return x ^ y, nil }, nil)
	}})
	Register(Kernel{Name: "shift_left", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("shift_left", a[0], a[1], func(x, y int64) (int64, error) { return x << uint(y), nil }, nil)
	}})
	Register(Kernel{Name: "shift_right", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("shift_right", a[0], a[1], func(x, y int64) (int64, error) { return x >> uint(y), nil }, nil)
	}})

	Register(Kernel{Name: "equal", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryCompare("equal", a[0], a[1], func(x, y scalar.Scalar) bool { return x.Equal(y) })
	}})
	Register(Kernel{Name: "not_equal", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryCompare("not_equal", a[0], a[1], func(x, y scalar.Scalar) bool { return !x.Equal(y) })
	}})
	Register(Kernel{Name: "less", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryCompare("less", a[0], a[1], func(x, y scalar.Scalar) bool { return scalar.Less(x, y, false) })
	}})
	Register(Kernel{Name: "less_equal", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryCompare("less_equal", a[0], a[1], func(x, y scalar.Scalar) bool { return !scalar.Less(y, x, false) })
	}})
	Register(Kernel{Name: "greater", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryCompare("greater", a[0], a[1], func(x, y scalar.Scalar) bool { return scalar.Less(y, x, false) })
	}})
	Register(Kernel{Name: "greater_equal", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryCompare("greater_equal", a[0], a[1], func(x, y scalar.Scalar) bool { return !scalar.Less(x, y, false) })
	}})

	Register(Kernel{Name: "and_", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryBoolStrict("and_", a[0], a[1], func(x, y bool) bool { return x && y })
	}})
	Register(Kernel{Name: "or_", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryBoolStrict("or_", a[0], a[1], func(x, y bool) bool { return x || y })
	}})
	Register(Kernel{Name: "xor_", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryBoolStrict("xor_", a[0], a[1], func(x, y bool) bool { return x != y })
	}})
	Register(Kernel{Name: "and_kleene", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryKleene("and_kleene", a[0], a[1], kleeneAnd)
	}})
	Register(Kernel{Name: "or_kleene", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryKleene("or_kleene", a[0], a[1], kleeneOr)
	}})

	// Reverse-operand variants, for right-hand scalar dispatch (e.g. 2 - series).
	Register(Kernel{Name: "subtract_rev", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("subtract_rev", a[1], a[0], func(x, y int64) (int64, error) { return x - y, nil }, func(x, y float64) float64 { return x - y })
	}})
	Register(Kernel{Name: "divide_rev", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return binaryNumeric("divide_rev", a[1], a[0], nil, func(x, y float64) float64 { return x / y })
	}})
}
