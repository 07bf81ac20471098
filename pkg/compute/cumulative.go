package compute

import (
	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

// cumulative walks d's elements left to right, folding with combine and
// seeding with start. skip_nulls controls whether a null element resets the
// running value to null (false) or is passed through leaving the running
// value unchanged (true).
func cumulative(op string, d Datum, start float64, skipNulls bool, combine func(running, v float64) float64) (Datum, error) {
	if d.Kind != KindArray {
		return Datum{}, errs.Newf(errs.TypeMismatch, op, "cumulative kernels require an array operand")
	}
	combined := d.Arr.Combined()
	bld := columnar.NewBuilder(scalar.Float64, combined.Len())
	running := start
	seeded := true
	for i := 0; i < combined.Len(); i++ {
		s := combined.GetScalar(i)
		if s.IsNull() {
			if skipNulls {
				if seeded {
					bld.AppendScalar(scalar.NewFloat64(running))
				} else {
					bld.AppendScalar(scalar.Null(scalar.Float64))
				}
			} else {
				bld.AppendScalar(scalar.Null(scalar.Float64))
				seeded = false
			}
			continue
		}
		v, ok := s.Float64()
		if !ok {
			return Datum{}, errs.Newf(errs.TypeMismatch, op, "unsupported element type %s", s.Type())
		}
		if !seeded {
			bld.AppendScalar(scalar.Null(scalar.Float64))
			continue
		}
		running = combine(running, v)
		bld.AppendScalar(scalar.NewFloat64(running))
	}
	return ArrayDatum(columnar.NewChunkedArrayFrom(bld.Finish())), nil
}

func registerCumulative() {
	Register(Kernel{Name: "cumulative_sum", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return cumulative("cumulative_sum", a[0], 0, o.SkipNulls, func(r, v float64) float64 { return r + v })
	}})
	Register(Kernel{Name: "cumulative_prod", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		return cumulative("cumulative_prod", a[0], 1, o.SkipNulls, func(r, v float64) float64 { return r * v })
	}})
	Register(Kernel{Name: "cumulative_max", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		first := true
		return cumulative("cumulative_max", a[0], 0, o.SkipNulls, func(r, v float64) float64 {
			if first || v > r {
				first = false
				return v
			}
			return r
		})
	}})
	Register(Kernel{Name: "cumulative_min", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		first := true
		return cumulative("cumulative_min", a[0], 0, o.SkipNulls, func(r, v float64) float64 {
			if first || v < r {
				first = false
				return v
			}
			return r
		})
	}})
	Register(Kernel{Name: "cumulative_mean", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		count := 0.0
		sum := 0.0
		return cumulative("cumulative_mean", a[0], 0, o.SkipNulls, func(r, v float64) float64 {
			sum += v
			count++
			return sum / count
		})
	}})
}
