// Command marketframed serves the market-calendar engine over HTTP and
// keeps each configured exchange's rolling schedule warm in a cache
// refreshed on a cron tick.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/marketframe/internal/config"
	"github.com/aristath/marketframe/internal/httpapi"
	"github.com/aristath/marketframe/internal/jobs"
	"github.com/aristath/marketframe/internal/logger"
	"github.com/aristath/marketframe/pkg/exchanges"
	"github.com/aristath/marketframe/pkg/market"
)

func main() {
	log := logger.New(logger.Config{Level: "info", Pretty: true})
	log.Info().Msg("starting marketframed")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	calendars, err := buildCalendars(cfg.Exchanges)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build exchange calendars")
	}

	cache := jobs.NewScheduleCache()
	sched := jobs.New(log)
	sched.Start()
	defer sched.Stop()

	refreshJob := jobs.NewRefreshScheduleJob(log, cache, calendars, cfg.ScheduleLookbackDays, cfg.ScheduleLookaheadDays)
	if err := sched.AddJob(cfg.RefreshCron, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("failed to register schedule refresh job")
	}
	if err := sched.RunNow(refreshJob); err != nil {
		log.Warn().Err(err).Msg("initial schedule refresh failed")
	}

	srv := httpapi.New(httpapi.Config{
		Port:        cfg.Port,
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Calendars:   calendars,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Int("port", cfg.Port).Msg("marketframed started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down marketframed")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("marketframed stopped")
}

// buildCalendars resolves each requested exchange name to its
// pkg/exchanges constructor.
func buildCalendars(names []string) (map[string]*market.Calendar, error) {
	out := make(map[string]*market.Calendar, len(names))
	for _, name := range names {
		cal, err := calendarByName(name)
		if err != nil {
			return nil, err
		}
		out[name] = cal
	}
	return out, nil
}

func calendarByName(name string) (*market.Calendar, error) {
	switch name {
	case "NYSE":
		return exchanges.NYSE()
	case "CME_Bond_Agricultural":
		return exchanges.CMEBondAndAgricultural()
	case "CME_Globex_Crypto":
		return exchanges.CMEGlobexCrypto()
	case "CBOE":
		return exchanges.CBOE()
	case "CFE":
		return exchanges.CFE()
	default:
		return nil, fmt.Errorf("unknown exchange %q", name)
	}
}
