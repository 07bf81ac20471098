package jobs

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/exchanges"
	"github.com/aristath/marketframe/pkg/market"
)

func TestRefreshScheduleJobPopulatesCache(t *testing.T) {
	fake, err := exchanges.FakeCalendar()
	require.NoError(t, err)

	cache := NewScheduleCache()
	job := NewRefreshScheduleJob(zerolog.Nop(), cache, map[string]*market.Calendar{"FAKE": fake}, 2, 2)

	require.NoError(t, job.Run())
	require.Equal(t, "refresh_schedule", job.Name())

	sched := cache.Get("FAKE")
	require.NotNil(t, sched)
	require.Greater(t, sched.RowCount(), 0)
	require.Nil(t, cache.Get("UNKNOWN"))
}
