package jobs

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/marketframe/pkg/market"
	"github.com/aristath/marketframe/pkg/ndframe"
	"github.com/aristath/marketframe/pkg/temporal"
)

// ScheduleCache holds the most recently computed rolling schedule() window
// per exchange name, refreshed by RefreshScheduleJob. Readers calling Get
// take the lock only for the duration of the lookup.
type ScheduleCache struct {
	mu         sync.RWMutex
	byExchange map[string]*ndframe.DataFrame
}

// NewScheduleCache returns an empty cache.
func NewScheduleCache() *ScheduleCache {
	return &ScheduleCache{byExchange: make(map[string]*ndframe.DataFrame)}
}

// Get returns the cached schedule for name, or nil if never populated.
func (c *ScheduleCache) Get(name string) *ndframe.DataFrame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byExchange[name]
}

func (c *ScheduleCache) set(name string, df *ndframe.DataFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byExchange[name] = df
}

// RefreshScheduleJob recomputes each registered exchange's rolling
// schedule() window (today minus Lookback days through today plus
// Lookahead days) and stores the result in Cache, the way the teacher's
// sync_prices job refreshes a price cache on a cron tick.
type RefreshScheduleJob struct {
	log       zerolog.Logger
	Cache     *ScheduleCache
	Calendars map[string]*market.Calendar
	Lookback  int
	Lookahead int
}

// NewRefreshScheduleJob builds the job. calendars maps an exchange name
// (used as the cache key) to its Calendar.
func NewRefreshScheduleJob(log zerolog.Logger, cache *ScheduleCache, calendars map[string]*market.Calendar, lookback, lookahead int) *RefreshScheduleJob {
	return &RefreshScheduleJob{
		log:       log.With().Str("job", "refresh_schedule").Logger(),
		Cache:     cache,
		Calendars: calendars,
		Lookback:  lookback,
		Lookahead: lookahead,
	}
}

func (j *RefreshScheduleJob) Name() string { return "refresh_schedule" }

// Run recomputes the schedule window for every registered exchange.
func (j *RefreshScheduleJob) Run() error {
	today := temporal.DateFromTime(time.Now().UTC())
	start := today.AddDays(-j.Lookback)
	end := today.AddDays(j.Lookahead)

	for name, cal := range j.Calendars {
		sched, err := cal.Schedule(start, end, market.ScheduleOptions{})
		if err != nil {
			j.log.Error().Err(err).Str("exchange", name).Msg("schedule refresh failed")
			continue
		}
		j.Cache.set(name, sched)
		j.log.Debug().Str("exchange", name).Int("rows", sched.RowCount()).Msg("schedule refreshed")
	}
	return nil
}
