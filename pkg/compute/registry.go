package compute

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aristath/marketframe/pkg/errs"
)

// Options carries the flags most kernels accept, such as whether to skip
// nulls during reduction. It has no start value for cumulative kernels:
// those always seed from their fixed identity (0 for sums, 1 for products).
type Options struct {
	SkipNulls bool
	Kleene    bool // not read by any kernel; and_kleene/or_kleene are selected by name
	Ddof      int  // delta degrees of freedom, for variance/stddev
	Quantile  float64
	N         int // window length, for sma/ema/rsi/mode
	Ndigits   int // digit count, for round()
}

// Kernel is a named compute function: fixed arity, fixed call signature.
type Kernel struct {
	Name  string
	Arity int // -1 means variadic
	Fn    func(args []Datum, opts Options) (Datum, error)
}

type registry struct {
	kernels map[string]Kernel
}

var global = &registry{kernels: make(map[string]Kernel)}

// Register adds a kernel to the global registry. Re-registering a name
// overwrites the previous entry, matching the teacher's sequences
// registry's last-wins semantics.
func Register(k Kernel) {
	global.kernels[k.Name] = k
}

// Call dispatches name against args, validating arity before invoking the
// kernel and logging the call with a correlation id.
func Call(name string, opts Options, args ...Datum) (Datum, error) {
	k, ok := global.kernels[name]
	if !ok {
		return Datum{}, errs.Newf(errs.UnsupportedKernel, name, "no kernel registered under this name")
	}
	if k.Arity >= 0 && len(args) != k.Arity {
		return Datum{}, errs.Newf(errs.TypeMismatch, name, "expected %d argument(s), got %d", k.Arity, len(args))
	}
	callID := uuid.NewString()
	logger := log.With().Str("kernel", name).Str("call_id", callID).Logger()
	logger.Debug().Msg("compute kernel dispatch")
	out, err := k.Fn(args, opts)
	if err != nil {
		logger.Debug().Err(err).Msg("compute kernel failed")
		return Datum{}, err
	}
	return out, nil
}

// Registered reports whether a kernel is registered under name.
func Registered(name string) bool {
	_, ok := global.kernels[name]
	return ok
}
