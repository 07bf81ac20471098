package compute

import (
	talib "github.com/markcheno/go-talib"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

// extensionSeries pulls an array Datum's values as a dense float64 slice,
// with nulls forward-filled from the nearest prior valid value (talib's
// window functions have no null-awareness of their own).
func extensionSeries(op string, d Datum) ([]float64, error) {
	if d.Kind != KindArray {
		return nil, errs.Newf(errs.TypeMismatch, op, "extension kernels require an array operand")
	}
	combined := d.Arr.Combined()
	out := make([]float64, combined.Len())
	last := 0.0
	for i := 0; i < combined.Len(); i++ {
		s := combined.GetScalar(i)
		if v, ok := s.Float64(); ok {
			last = v
		}
		out[i] = last
	}
	return out, nil
}

func floatsToDatum(vals []float64) Datum {
	bld := columnar.NewBuilder(scalar.Float64, len(vals))
	for _, v := range vals {
		bld.AppendScalar(scalar.NewFloat64(v))
	}
	return ArrayDatum(columnar.NewChunkedArrayFrom(bld.Finish()))
}

func registerExtension() {
	Register(Kernel{Name: "sma", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, err := extensionSeries("sma", a[0])
		if err != nil {
			return Datum{}, err
		}
		return floatsToDatum(talib.Sma(vals, o.N)), nil
	}})
	Register(Kernel{Name: "ema", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, err := extensionSeries("ema", a[0])
		if err != nil {
			return Datum{}, err
		}
		return floatsToDatum(talib.Ema(vals, o.N)), nil
	}})
	Register(Kernel{Name: "rsi", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		vals, err := extensionSeries("rsi", a[0])
		if err != nil {
			return Datum{}, err
		}
		return floatsToDatum(talib.Rsi(vals, o.N)), nil
	}})
}
