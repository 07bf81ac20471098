// Package jobs runs robfig/cron-driven background refreshes of calendar
// schedule caches, grounded on the teacher's internal/scheduler package
// (sync_prices.go/retry_trades.go were themselves cron-driven jobs against
// a shared Job interface).
package jobs

// Job is a named, runnable unit of scheduled work.
type Job interface {
	Name() string
	Run() error
}
