package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wnjoon/go-yfinance/pkg/models"
)

func TestBarsToDataFrame(t *testing.T) {
	bars := []models.Bar{
		{Date: time.Date(2023, 7, 3, 0, 0, 0, 0, time.UTC), Open: 190, High: 192, Low: 189, Close: 191, AdjClose: 191, Volume: 1000},
		{Date: time.Date(2023, 7, 5, 0, 0, 0, 0, time.UTC), Open: 191, High: 193, Low: 190, Close: 192.5, AdjClose: 192.5, Volume: 1200},
	}

	df, err := BarsToDataFrame(bars)
	require.NoError(t, err)
	require.Equal(t, 2, df.RowCount())

	closeSeries, err := df.Column("close")
	require.NoError(t, err)
	v, ok := closeSeries.Data().GetScalar(1).Float64()
	require.True(t, ok)
	require.Equal(t, 192.5, v)
}

func TestBarsToDataFrameEmpty(t *testing.T) {
	df, err := BarsToDataFrame(nil)
	require.NoError(t, err)
	require.Equal(t, 0, df.RowCount())
}
