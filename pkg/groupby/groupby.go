// Package groupby implements GROUP BY over a DataFrame by delegating to a
// SQL engine: spec.md treats that engine as an external collaborator and
// specifies only the interface it must present (a grouping key set, an
// aggregation per output column, and a Table-shaped result). Engine is
// that interface; SQLiteEngine is the one concrete backend this module
// ships.
package groupby

import (
	"github.com/aristath/marketframe/pkg/columnar"
)

// AggFunc names a SQL aggregate function applied to one source column.
type AggFunc string

const (
	Sum   AggFunc = "SUM"
	Avg   AggFunc = "AVG"
	Min   AggFunc = "MIN"
	Max   AggFunc = "MAX"
	Count AggFunc = "COUNT"
)

// Aggregation names the output column produced by applying Func to Column.
type Aggregation struct {
	Column string
	Func   AggFunc
	As     string
}

// Spec describes one GROUP BY: the key columns and the aggregations
// computed per group.
type Spec struct {
	By           []string
	Aggregations []Aggregation
}

// Engine groups a Table and returns the grouped result as a new Table: one
// row per distinct combination of the By columns, plus one column per
// Aggregation.
type Engine interface {
	GroupBy(table *columnar.Table, spec Spec) (*columnar.Table, error)
}
