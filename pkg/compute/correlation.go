package compute

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

// correlation and covariance are two-array reduction kernels; the rest of
// this file builds the whole-portfolio operations (correlation_matrix,
// correlation_distance, inverse_variance_weights) that a risk-parity-style
// allocator needs on top of them.

func correlationKernel(args []Datum, opts Options) (Datum, error) {
	x, _, err := floatValues(args[0], opts.SkipNulls)
	if err != nil {
		return Datum{}, err
	}
	y, _, err := floatValues(args[1], opts.SkipNulls)
	if err != nil {
		return Datum{}, err
	}
	if len(x) != len(y) {
		return Datum{}, errs.Newf(errs.LengthMismatch, "correlation", "operands have length %d and %d", len(x), len(y))
	}
	if len(x) == 0 {
		return ScalarDatum(scalar.Null(scalar.Float64)), nil
	}
	c := stat.Correlation(x, y, nil)
	c = math.Max(-1.0, math.Min(1.0, c))
	return ScalarDatum(scalar.NewFloat64(c)), nil
}

func covarianceKernel(args []Datum, opts Options) (Datum, error) {
	x, _, err := floatValues(args[0], opts.SkipNulls)
	if err != nil {
		return Datum{}, err
	}
	y, _, err := floatValues(args[1], opts.SkipNulls)
	if err != nil {
		return Datum{}, err
	}
	if len(x) != len(y) {
		return Datum{}, errs.Newf(errs.LengthMismatch, "covariance", "operands have length %d and %d", len(x), len(y))
	}
	if len(x) == 0 {
		return ScalarDatum(scalar.Null(scalar.Float64)), nil
	}
	return ScalarDatum(scalar.NewFloat64(stat.Covariance(x, y, nil))), nil
}

// inverseVarianceWeightsKernel gives each asset a weight proportional to
// the inverse of its variance, so lower-variance assets receive a larger
// share: w_i = (1/v_i) / sum(1/v_j). Falls back to equal weighting when
// every variance is non-positive.
func inverseVarianceWeightsKernel(args []Datum, opts Options) (Datum, error) {
	vals, _, err := floatValues(args[0], true)
	if err != nil {
		return Datum{}, err
	}
	n := len(vals)
	weights := make([]float64, n)
	var totalInv float64
	for _, v := range vals {
		if v > 0 {
			totalInv += 1.0 / v
		}
	}
	if totalInv == 0 {
		for i := range weights {
			weights[i] = 1.0 / float64(n)
		}
	} else {
		for i, v := range vals {
			if v > 0 {
				weights[i] = (1.0 / v) / totalInv
			}
		}
	}
	return ArrayDatum(columnar.NewChunkedArrayFrom(columnar.NewFloat64Array(weights, nil))), nil
}

// correlationMatrixKernel takes a Table whose columns are each symbol's
// return series and produces a square Table: a "symbol" column plus one
// column per input symbol, correlationMatrix[i][j] = corr(col_i, col_j).
func correlationMatrixKernel(args []Datum, opts Options) (Datum, error) {
	if args[0].Kind != KindTable {
		return Datum{}, errs.New(errs.TypeMismatch, "correlation_matrix", "requires a table operand")
	}
	table := args[0].Table
	schema := table.Schema()
	n := schema.NumFields()

	series := make([][]float64, n)
	for i := 0; i < n; i++ {
		vals, _, err := floatValues(ArrayDatum(table.Column(i)), true)
		if err != nil {
			return Datum{}, err
		}
		series[i] = vals
	}

	symbolCol := make([]string, n)
	corrCols := make([][]float64, n)
	for i := 0; i < n; i++ {
		symbolCol[i] = schema.Field(i).Name
		corrCols[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := 1.0
			if i != j {
				c = stat.Correlation(series[i], series[j], nil)
				c = math.Max(-1.0, math.Min(1.0, c))
			}
			corrCols[i][j] = c
			corrCols[j][i] = c
		}
	}

	return buildSquareMatrixTable(symbolCol, corrCols)
}

// correlationDistanceKernel converts a correlation_matrix-shaped Table into
// a distance matrix: d_ij = sqrt(2 * (1 - corr_ij)).
func correlationDistanceKernel(args []Datum, opts Options) (Datum, error) {
	if args[0].Kind != KindTable {
		return Datum{}, errs.New(errs.TypeMismatch, "correlation_distance", "requires a table operand")
	}
	table := args[0].Table
	schema := table.Schema()
	symbolIdx := schema.FieldByName("symbol")
	if symbolIdx < 0 {
		return Datum{}, errs.New(errs.TypeMismatch, "correlation_distance", `table must have a "symbol" column`)
	}
	n := schema.NumFields() - 1

	symbolCol := make([]string, table.RowCount())
	for i := 0; i < table.RowCount(); i++ {
		sv, _ := table.Column(symbolIdx).GetScalar(i).StringValue()
		symbolCol[i] = sv
	}

	distCols := make([][]float64, n)
	col := 0
	for c := 0; c < schema.NumFields(); c++ {
		if c == symbolIdx {
			continue
		}
		distCols[col] = make([]float64, table.RowCount())
		for row := 0; row < table.RowCount(); row++ {
			corr, _ := table.Column(c).GetScalar(row).Float64()
			corr = math.Max(-1.0, math.Min(1.0, corr))
			distCols[col][row] = math.Sqrt(2.0 * (1.0 - corr))
		}
		col++
	}

	return buildSquareMatrixTable(symbolCol, distCols)
}

func buildSquareMatrixTable(symbols []string, cols [][]float64) (Datum, error) {
	n := len(symbols)
	fields := make([]columnar.Field, 0, n+1)
	chunks := make([]*columnar.ChunkedArray, 0, n+1)

	fields = append(fields, columnar.Field{Name: "symbol", Type: scalar.String})
	chunks = append(chunks, columnar.NewChunkedArrayFrom(columnar.NewStringArray(symbols, nil)))
	for i, name := range symbols {
		fields = append(fields, columnar.Field{Name: name, Type: scalar.Float64})
		chunks = append(chunks, columnar.NewChunkedArrayFrom(columnar.NewFloat64Array(cols[i], nil)))
	}

	schema, err := columnar.NewSchema(fields...)
	if err != nil {
		return Datum{}, err
	}
	table, err := columnar.NewTable(schema, chunks)
	if err != nil {
		return Datum{}, err
	}
	return TableDatum(table), nil
}

func registerCorrelation() {
	Register(Kernel{Name: "correlation", Arity: 2, Fn: correlationKernel})
	Register(Kernel{Name: "covariance", Arity: 2, Fn: covarianceKernel})
	Register(Kernel{Name: "inverse_variance_weights", Arity: 1, Fn: inverseVarianceWeightsKernel})
	Register(Kernel{Name: "correlation_matrix", Arity: 1, Fn: correlationMatrixKernel})
	Register(Kernel{Name: "correlation_distance", Arity: 1, Fn: correlationDistanceKernel})
}
