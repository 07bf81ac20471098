package groupby

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
	"github.com/aristath/marketframe/pkg/temporal"
)

// SQLiteEngine satisfies Engine by materializing a Table into a throwaway
// in-memory SQLite table, running a generated GROUP BY query, and
// rebuilding the result as a Table. Each GroupBy call gets its own
// private, unshared connection (SQLite's `:memory:` DSN is per-connection),
// so concurrent callers never see each other's temp tables.
//
// modernc.org/sqlite is the pure-Go driver, chosen over mattn/go-sqlite3
// for the same GROUP BY concern so this package carries no cgo
// requirement.
type SQLiteEngine struct{}

// NewSQLiteEngine returns a SQLiteEngine. It holds no state; every call
// opens and closes its own connection.
func NewSQLiteEngine() *SQLiteEngine { return &SQLiteEngine{} }

func sqlColumnType(t scalar.Type) (string, error) {
	switch t {
	case scalar.Int64, scalar.Bool, scalar.Timestamp:
		return "INTEGER", nil
	case scalar.Float64:
		return "REAL", nil
	case scalar.String:
		return "TEXT", nil
	default:
		return "", errs.Newf(errs.TypeMismatch, "groupby", "unsupported column type %s", t)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func scalarToSQL(v scalar.Scalar) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch v.Type() {
	case scalar.Int64:
		iv, _ := v.Int64()
		return iv, nil
	case scalar.Float64:
		fv, _ := v.Float64()
		return fv, nil
	case scalar.Bool:
		bv, _ := v.Bool()
		if bv {
			return int64(1), nil
		}
		return int64(0), nil
	case scalar.String:
		sv, _ := v.StringValue()
		return sv, nil
	case scalar.Timestamp:
		ts, _ := v.Timestamp()
		return ts.Time().UnixNano(), nil
	default:
		return nil, errs.Newf(errs.TypeMismatch, "groupby", "unsupported scalar type %s", v.Type())
	}
}

// GroupBy implements Engine.
func (e *SQLiteEngine) GroupBy(table *columnar.Table, spec Spec) (*columnar.Table, error) {
	if len(spec.By) == 0 {
		return nil, errs.Newf(errs.InvalidRange, "groupby", "at least one group-by key is required")
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, errs.Wrap(errs.TypeMismatch, "groupby_open", err)
	}
	defer db.Close()

	schema := table.Schema()
	const sourceTable = "rows"

	var cols []string
	for _, f := range schema.Fields() {
		sqlType, err := sqlColumnType(f.Type)
		if err != nil {
			return nil, err
		}
		cols = append(cols, fmt.Sprintf("%s %s", quoteIdent(f.Name), sqlType))
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", sourceTable, strings.Join(cols, ", "))
	if _, err := db.Exec(createStmt); err != nil {
		return nil, errs.Wrap(errs.TypeMismatch, "groupby_create", err)
	}

	placeholders := make([]string, schema.NumFields())
	names := make([]string, schema.NumFields())
	for i, f := range schema.Fields() {
		placeholders[i] = "?"
		names[i] = quoteIdent(f.Name)
	}
	insertStmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", sourceTable, strings.Join(names, ", "), strings.Join(placeholders, ", "))
	stmt, err := db.Prepare(insertStmt)
	if err != nil {
		return nil, errs.Wrap(errs.TypeMismatch, "groupby_prepare", err)
	}
	defer stmt.Close()

	for row := 0; row < table.RowCount(); row++ {
		args := make([]any, schema.NumFields())
		for col := 0; col < schema.NumFields(); col++ {
			v, err := scalarToSQL(table.Column(col).GetScalar(row))
			if err != nil {
				return nil, err
			}
			args[col] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return nil, errs.Wrap(errs.TypeMismatch, "groupby_insert", err)
		}
	}

	selectCols := make([]string, 0, len(spec.By)+len(spec.Aggregations))
	outFields := make([]columnar.Field, 0, len(spec.By)+len(spec.Aggregations))
	for _, key := range spec.By {
		idx := schema.FieldByName(key)
		if idx < 0 {
			return nil, errs.Newf(errs.LabelNotFound, "groupby", "group-by key %q not found", key)
		}
		selectCols = append(selectCols, quoteIdent(key))
		outFields = append(outFields, schema.Field(idx))
	}
	for _, agg := range spec.Aggregations {
		if agg.Func != Count {
			if idx := schema.FieldByName(agg.Column); idx < 0 {
				return nil, errs.Newf(errs.LabelNotFound, "groupby", "aggregation column %q not found", agg.Column)
			}
		}
		as := agg.As
		if as == "" {
			as = fmt.Sprintf("%s_%s", strings.ToLower(string(agg.Func)), agg.Column)
		}
		selectCols = append(selectCols, fmt.Sprintf("%s(%s) AS %s", agg.Func, quoteIdent(agg.Column), quoteIdent(as)))
		outType, err := aggResultType(table, agg)
		if err != nil {
			return nil, err
		}
		outFields = append(outFields, columnar.Field{Name: as, Type: outType, Nullable: true})
	}

	groupByIdents := make([]string, len(spec.By))
	for i, key := range spec.By {
		groupByIdents[i] = quoteIdent(key)
	}
	query := fmt.Sprintf("SELECT %s FROM %s GROUP BY %s ORDER BY %s",
		strings.Join(selectCols, ", "), sourceTable, strings.Join(groupByIdents, ", "), strings.Join(groupByIdents, ", "))

	rows, err := db.Query(query)
	if err != nil {
		return nil, errs.Wrap(errs.TypeMismatch, "groupby_query", err)
	}
	defer rows.Close()

	outSchema, err := columnar.NewSchema(outFields...)
	if err != nil {
		return nil, err
	}
	builders := make([]*columnar.Builder, len(outFields))
	for i, f := range outFields {
		builders[i] = columnar.NewBuilder(f.Type, table.RowCount())
	}

	scanDest := make([]any, len(outFields))
	scanVals := make([]sql.RawBytes, len(outFields))
	for i := range scanDest {
		scanDest[i] = &scanVals[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanDest...); err != nil {
			return nil, errs.Wrap(errs.TypeMismatch, "groupby_scan", err)
		}
		for i, f := range outFields {
			builders[i].AppendScalar(rawToScalar(scanVals[i], f.Type))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.TypeMismatch, "groupby_rows", err)
	}

	outCols := make([]*columnar.ChunkedArray, len(builders))
	for i, b := range builders {
		outCols[i] = columnar.NewChunkedArrayFrom(b.Finish())
	}
	return columnar.NewTable(outSchema, outCols)
}

// aggResultType infers the output column type: Count always yields Int64;
// Avg always yields Float64 for its fractional result; Sum over Bool yields
// Int64; every other aggregate (Sum over Int64 included) preserves its
// source column's type.
func aggResultType(table *columnar.Table, agg Aggregation) (scalar.Type, error) {
	if agg.Func == Count {
		return scalar.Int64, nil
	}
	idx := table.Schema().FieldByName(agg.Column)
	srcType := table.Schema().Field(idx).Type
	if agg.Func == Avg {
		return scalar.Float64, nil
	}
	if agg.Func == Sum && srcType == scalar.Bool {
		return scalar.Int64, nil
	}
	return srcType, nil
}

func rawToScalar(raw sql.RawBytes, t scalar.Type) scalar.Scalar {
	if raw == nil {
		return scalar.Null(t)
	}
	s := string(raw)
	switch t {
	case scalar.Int64:
		var v int64
		fmt.Sscanf(s, "%d", &v)
		return scalar.NewInt64(v)
	case scalar.Float64:
		var v float64
		fmt.Sscanf(s, "%g", &v)
		return scalar.NewFloat64(v)
	case scalar.Bool:
		return scalar.NewBool(s == "1")
	case scalar.String:
		return scalar.NewString(s)
	case scalar.Timestamp:
		var ns int64
		fmt.Sscanf(s, "%d", &ns)
		return scalar.NewTimestamp(temporal.FromTime(time.Unix(0, ns).UTC()))
	default:
		return scalar.Null(t)
	}
}
