package compute

import (
	"math"

	"github.com/aristath/marketframe/pkg/errs"
)

// RoundMode selects one of the seven rounding conventions round() supports.
type RoundMode int

const (
	RoundHalfToEven RoundMode = iota
	RoundHalfAwayFromZero
	RoundHalfTowardsZero
	RoundHalfTowardsInfinity
	RoundHalfTowardsNegInfinity
	RoundTowardsInfinity
	RoundTowardsNegInfinity
)

func applyRoundMode(v float64, mode RoundMode) float64 {
	switch mode {
	case RoundHalfToEven:
		return math.RoundToEven(v)
	case RoundHalfAwayFromZero:
		return math.Round(v)
	case RoundHalfTowardsZero:
		if v >= 0 {
			return math.Ceil(v - 0.5)
		}
		return math.Floor(v + 0.5)
	case RoundHalfTowardsInfinity:
		return math.Floor(v + 0.5)
	case RoundHalfTowardsNegInfinity:
		return math.Ceil(v - 0.5)
	case RoundTowardsInfinity:
		return math.Ceil(v)
	case RoundTowardsNegInfinity:
		return math.Floor(v)
	default:
		return math.RoundToEven(v)
	}
}

func roundNdigits(v float64, ndigits int, mode RoundMode) float64 {
	scale := math.Pow(10, float64(ndigits))
	return applyRoundMode(v*scale, mode) / scale
}

func registerRounding() {
	Register(Kernel{Name: "round", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		mode := RoundMode(o.N)
		return mapFloat("round", a[0], func(v float64) float64 { return roundNdigits(v, o.Ndigits, mode) })
	}})
	Register(Kernel{Name: "round_to_multiple", Arity: 1, Fn: func(a []Datum, o Options) (Datum, error) {
		if o.Quantile == 0 {
			return Datum{}, errs.New(errs.TypeMismatch, "round_to_multiple", "multiple must be non-zero")
		}
		multiple := o.Quantile
		mode := RoundMode(o.N)
		return mapFloat("round_to_multiple", a[0], func(v float64) float64 {
			return applyRoundMode(v/multiple, mode) * multiple
		})
	}})
	Register(Kernel{Name: "round_binary", Arity: 2, Fn: func(a []Datum, o Options) (Datum, error) {
		mode := RoundMode(o.N)
		n, err := broadcastLen("round_binary", a[0], a[1])
		if err != nil {
			return Datum{}, err
		}
		_ = n
		return binaryNumeric("round_binary", a[0], a[1], nil, func(v, digits float64) float64 {
			return roundNdigits(v, int(digits), mode)
		})
	}})
}
