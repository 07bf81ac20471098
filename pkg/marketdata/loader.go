// Package marketdata loads historical OHLCV bars from Yahoo Finance into
// the columnar/NDFrame kernel, giving C1/C6 a real external data source to
// operate on rather than only synthetic test fixtures.
package marketdata

import (
	"fmt"

	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/ndframe"
	"github.com/aristath/marketframe/pkg/scalar"
	"github.com/aristath/marketframe/pkg/temporal"
	"github.com/aristath/marketframe/pkg/tsindex"
)

var barSchema = columnar.MustNewSchema(
	columnar.Field{Name: "open", Type: scalar.Float64},
	columnar.Field{Name: "high", Type: scalar.Float64},
	columnar.Field{Name: "low", Type: scalar.Float64},
	columnar.Field{Name: "close", Type: scalar.Float64},
	columnar.Field{Name: "adj_close", Type: scalar.Float64},
	columnar.Field{Name: "volume", Type: scalar.Int64},
)

// LoadParams configures a History fetch in terms this module already
// understands (no exposure of the HTTP client's plumbing).
type LoadParams struct {
	Symbol     string
	Period     string // e.g. "1mo", "1y", "max"
	Interval   string // e.g. "1d", "1wk"
	AutoAdjust bool
}

// Load fetches symbol's historical bars and returns them as a DataFrame
// indexed by trading day, with one column per OHLCV field.
func Load(params LoadParams) (*ndframe.DataFrame, error) {
	t, err := ticker.New(params.Symbol)
	if err != nil {
		return nil, fmt.Errorf("marketdata: new ticker %q: %w", params.Symbol, err)
	}

	bars, err := t.History(models.HistoryParams{
		Period:     params.Period,
		Interval:   params.Interval,
		AutoAdjust: params.AutoAdjust,
	})
	if err != nil {
		return nil, fmt.Errorf("marketdata: history %q: %w", params.Symbol, err)
	}

	return BarsToDataFrame(bars)
}

// BarsToDataFrame converts a slice of yfinance bars into a DataFrame
// indexed by bar date, independent of how the bars were fetched (used
// directly by tests with synthetic bars, and by Load against live data).
func BarsToDataFrame(bars []models.Bar) (*ndframe.DataFrame, error) {
	n := len(bars)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closeP := make([]float64, n)
	adjClose := make([]float64, n)
	volume := make([]int64, n)
	labels := make([]scalar.Scalar, n)

	for i, b := range bars {
		open[i] = b.Open
		high[i] = b.High
		low[i] = b.Low
		closeP[i] = b.Close
		adjClose[i] = b.AdjClose
		volume[i] = b.Volume
		labels[i] = scalar.NewTimestamp(temporal.FromTime(b.Date))
	}

	table, err := columnar.NewTable(barSchema, []*columnar.ChunkedArray{
		columnar.NewChunkedArrayFrom(columnar.NewFloat64Array(open, nil)),
		columnar.NewChunkedArrayFrom(columnar.NewFloat64Array(high, nil)),
		columnar.NewChunkedArrayFrom(columnar.NewFloat64Array(low, nil)),
		columnar.NewChunkedArrayFrom(columnar.NewFloat64Array(closeP, nil)),
		columnar.NewChunkedArrayFrom(columnar.NewFloat64Array(adjClose, nil)),
		columnar.NewChunkedArrayFrom(columnar.NewInt64Array(volume, nil)),
	})
	if err != nil {
		return nil, err
	}

	index := tsindex.New("date", labels)
	return ndframe.NewDataFrame(index, table)
}
