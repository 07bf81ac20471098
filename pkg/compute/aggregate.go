package compute

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

// floatValues extracts the non-null elements of an array Datum as a float64
// slice, plus a flag reporting whether any null was seen; callers decide
// from that flag and skipNulls whether the result is null.
func floatValues(d Datum, skipNulls bool) (vals []float64, sawNull bool, err error) {
	if d.Kind != KindArray {
		if d.Kind == KindScalar {
			if d.Sc.IsNull() {
				return nil, true, nil
			}
			v, ok := d.Sc.Float64()
			if !ok {
				return nil, false, errs.Newf(errs.TypeMismatch, "aggregate", "unsupported type %s", d.Sc.Type())
			}
			return []float64{v}, false, nil
		}
		return nil, false, errs.New(errs.TypeMismatch, "aggregate", "aggregation requires a scalar or array operand")
	}
	combined := d.Arr.Combined()
	vals = make([]float64, 0, combined.Len())
	for i := 0; i < combined.Len(); i++ {
		s := combined.GetScalar(i)
		if s.IsNull() {
			sawNull = true
			if !skipNulls {
				continue
			}
			continue
		}
		v, ok := s.Float64()
		if !ok {
			return nil, sawNull, errs.Newf(errs.TypeMismatch, "aggregate", "unsupported type %s", s.Type())
		}
		vals = append(vals, v)
	}
	return vals, sawNull, nil
}

func aggResult(vals []float64, sawNull, skipNulls bool, fn func([]float64) float64) Datum {
	if sawNull && !skipNulls {
		return ScalarDatum(scalar.Null(scalar.Float64))
	}
	if len(vals) == 0 {
		return ScalarDatum(scalar.Null(scalar.Float64))
	}
	return ScalarDatum(scalar.NewFloat64(fn(vals)))
}

func registerAggregate() {
	Register(Kernel{Name: "sum", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, floats.Sum), nil
	}})
	Register(Kernel{Name: "product", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, func(xs []float64) float64 {
			p := 1.0
			for _, x := range xs {
				p *= x
			}
			return p
		}), nil
	}})
	Register(Kernel{Name: "mean", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, stat.Mean), nil
	}})
	Register(Kernel{Name: "min", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, floats.Min), nil
	}})
	Register(Kernel{Name: "max", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, floats.Max), nil
	}})
	Register(Kernel{Name: "stddev", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, func(xs []float64) float64 { return sampleStdDev(xs, o.Ddof) }), nil
	}})
	Register(Kernel{Name: "variance", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, func(xs []float64) float64 { return sampleVariance(xs, o.Ddof) }), nil
	}})
	Register(Kernel{Name: "approximate_median", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, func(xs []float64) float64 { return quantileOf(xs, 0.5) }), nil
	}})
	Register(Kernel{Name: "quantile", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, func(xs []float64) float64 { return quantileOf(xs, o.Quantile) }), nil
	}})
	Register(Kernel{Name: "tdigest", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, sawNull, err := floatValues(a[0], o.SkipNulls)
		if err != nil {
			return Datum{}, err
		}
		return aggResult(vals, sawNull, o.SkipNulls, func(xs []float64) float64 { return quantileOf(xs, o.Quantile) }), nil
	}})

	Register(Kernel{Name: "all", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return boolAggregate(a[0], o.SkipNulls, true, func(acc, v bool) bool { return acc && v })
	}})
	Register(Kernel{Name: "any", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return boolAggregate(a[0], o.SkipNulls, false, func(acc, v bool) bool { return acc || v })
	}})

	Register(Kernel{Name: "count_all", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return ScalarDatum(scalar.NewInt64(int64(a[0].Len()))), nil
	}})
	Register(Kernel{Name: "count_valid", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return ScalarDatum(scalar.NewInt64(int64(countWhere(a[0], true)))), nil
	}})
	Register(Kernel{Name: "count_null", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return ScalarDatum(scalar.NewInt64(int64(countWhere(a[0], false)))), nil
	}})

	Register(Kernel{Name: "first", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return edgeElement(a[0], o.SkipNulls, true)
	}})
	Register(Kernel{Name: "last", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return edgeElement(a[0], o.SkipNulls, false)
	}})

	Register(Kernel{Name: "mode", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return modeOf(a[0], o.N)
	}})
	Register(Kernel{Name: "index", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		return indexOf(a[0], a[1])
	}})
}

func sampleVariance(xs []float64, ddof int) float64 {
	n := len(xs)
	if n-ddof <= 0 {
		return math.NaN()
	}
	mean := stat.Mean(xs, nil)
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss / float64(n-ddof)
}

func sampleStdDev(xs []float64, ddof int) float64 { return math.Sqrt(sampleVariance(xs, ddof)) }

func quantileOf(xs []float64, q float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}

func boolAggregate(d Datum, skipNulls, identity bool, combine func(acc, v bool) bool) (Datum, error) {
	if d.Kind != KindArray {
		v, ok := d.Sc.Bool()
		if d.Sc.IsNull() {
			return ScalarDatum(scalar.Null(scalar.Bool)), nil
		}
		if !ok {
			return Datum{}, errs.Newf(errs.TypeMismatch, "bool-aggregate", "unsupported type %s", d.Sc.Type())
		}
		return ScalarDatum(scalar.NewBool(v)), nil
	}
	combined := d.Arr.Combined()
	acc := identity
	any := false
	for i := 0; i < combined.Len(); i++ {
		s := combined.GetScalar(i)
		if s.IsNull() {
			if !skipNulls {
				return ScalarDatum(scalar.Null(scalar.Bool)), nil
			}
			continue
		}
		v, ok := s.Bool()
		if !ok {
			return Datum{}, errs.Newf(errs.TypeMismatch, "bool-aggregate", "unsupported type %s", s.Type())
		}
		acc = combine(acc, v)
		any = true
	}
	if !any {
		return ScalarDatum(scalar.Null(scalar.Bool)), nil
	}
	return ScalarDatum(scalar.NewBool(acc)), nil
}

func countWhere(d Datum, valid bool) int {
	if d.Kind != KindArray {
		if d.Sc.IsValid() == valid {
			return 1
		}
		return 0
	}
	combined := d.Arr.Combined()
	n := 0
	for i := 0; i < combined.Len(); i++ {
		if combined.IsValid(i) == valid {
			n++
		}
	}
	return n
}

func edgeElement(d Datum, skipNulls, first bool) (Datum, error) {
	if d.Kind != KindArray {
		return ScalarDatum(d.Sc), nil
	}
	combined := d.Arr.Combined()
	n := combined.Len()
	if n == 0 {
		return ScalarDatum(scalar.Null(combined.Type())), nil
	}
	if first {
		for i := 0; i < n; i++ {
			if combined.IsValid(i) || !skipNulls {
				return ScalarDatum(combined.GetScalar(i)), nil
			}
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			if combined.IsValid(i) || !skipNulls {
				return ScalarDatum(combined.GetScalar(i)), nil
			}
		}
	}
	return ScalarDatum(scalar.Null(combined.Type())), nil
}

// modeOf returns the n most frequent non-null values, most frequent first,
// as an array Datum of the input's element type.
func modeOf(d Datum, n int) (Datum, error) {
	if d.Kind != KindArray {
		return Datum{}, errs.New(errs.TypeMismatch, "mode", "mode requires an array operand")
	}
	combined := d.Arr.Combined()
	counts := make(map[string]int)
	reps := make(map[string]scalar.Scalar)
	order := make([]string, 0)
	for i := 0; i < combined.Len(); i++ {
		s := combined.GetScalar(i)
		if s.IsNull() {
			continue
		}
		k := s.String()
		if _, ok := counts[k]; !ok {
			order = append(order, k)
			reps[k] = s
		}
		counts[k]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if n > 0 && n < len(order) {
		order = order[:n]
	}
	bld := columnar.NewBuilder(combined.Type(), len(order))
	for _, k := range order {
		bld.AppendScalar(reps[k])
	}
	return ArrayDatum(columnar.NewChunkedArrayFrom(bld.Finish())), nil
}

// indexOf returns the position of the first occurrence of needle in
// haystack, or a null Int64 if absent.
func indexOf(haystack, needle Datum) (Datum, error) {
	if haystack.Kind != KindArray {
		return Datum{}, errs.New(errs.TypeMismatch, "index", "index requires an array operand")
	}
	combined := haystack.Arr.Combined()
	for i := 0; i < combined.Len(); i++ {
		if combined.GetScalar(i).Equal(needle.Sc) {
			return ScalarDatum(scalar.NewInt64(int64(i))), nil
		}
	}
	return ScalarDatum(scalar.Null(scalar.Int64)), nil
}
