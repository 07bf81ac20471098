package groupby

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/scalar"
)

func sampleTable(t *testing.T) *columnar.Table {
	t.Helper()
	schema, err := columnar.NewSchema(
		columnar.Field{Name: "symbol", Type: scalar.String},
		columnar.Field{Name: "volume", Type: scalar.Int64},
		columnar.Field{Name: "price", Type: scalar.Float64},
	)
	require.NoError(t, err)

	symbol := columnar.NewStringArray([]string{"AAPL", "AAPL", "MSFT", "MSFT", "MSFT"}, nil)
	volume := columnar.NewInt64Array([]int64{100, 200, 50, 75, 25}, nil)
	price := columnar.NewFloat64Array([]float64{150.0, 151.5, 300.0, 301.0, 299.0}, nil)

	tbl, err := columnar.NewTable(schema, []*columnar.ChunkedArray{
		columnar.NewChunkedArrayFrom(symbol),
		columnar.NewChunkedArrayFrom(volume),
		columnar.NewChunkedArrayFrom(price),
	})
	require.NoError(t, err)
	return tbl
}

func TestSQLiteEngineSumAndCount(t *testing.T) {
	tbl := sampleTable(t)
	engine := NewSQLiteEngine()

	out, err := engine.GroupBy(tbl, Spec{
		By: []string{"symbol"},
		Aggregations: []Aggregation{
			{Column: "volume", Func: Sum, As: "total_volume"},
			{Column: "symbol", Func: Count, As: "n"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, out.RowCount())

	symbolIdx := out.Schema().FieldByName("symbol")
	volIdx := out.Schema().FieldByName("total_volume")
	countIdx := out.Schema().FieldByName("n")
	require.GreaterOrEqual(t, symbolIdx, 0)

	got := map[string][2]int64{}
	for i := 0; i < out.RowCount(); i++ {
		sym, _ := out.Column(symbolIdx).GetScalar(i).StringValue()
		vol, _ := out.Column(volIdx).GetScalar(i).Int64()
		n, _ := out.Column(countIdx).GetScalar(i).Int64()
		got[sym] = [2]int64{vol, n}
	}
	require.Equal(t, int64(300), got["AAPL"][0])
	require.Equal(t, int64(2), got["AAPL"][1])
	require.Equal(t, int64(150), got["MSFT"][0])
	require.Equal(t, int64(3), got["MSFT"][1])
}

func TestSQLiteEngineAvg(t *testing.T) {
	tbl := sampleTable(t)
	engine := NewSQLiteEngine()

	out, err := engine.GroupBy(tbl, Spec{
		By:           []string{"symbol"},
		Aggregations: []Aggregation{{Column: "price", Func: Avg, As: "avg_price"}},
	})
	require.NoError(t, err)
	avgIdx := out.Schema().FieldByName("avg_price")
	require.Equal(t, scalar.Float64, out.Schema().Field(avgIdx).Type)
}

func TestSQLiteEngineRejectsUnknownKey(t *testing.T) {
	tbl := sampleTable(t)
	engine := NewSQLiteEngine()
	_, err := engine.GroupBy(tbl, Spec{By: []string{"does_not_exist"}})
	require.Error(t, err)
}
