// Package scheduler runs the recurrence driver on a periodic ticker and on
// demand. It owns no business logic: each tick delegates to the
// RecurrenceService and records the outcome in logs and Prometheus counters.
package scheduler

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/advokatia/go-finance-backend/internal/services"
)

var (
	runsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recurrence_runs_total",
		Help: "Total number of recurrence driver runs.",
	})
	generatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recurrence_generated_total",
		Help: "Total number of occurrences materialized.",
	})
	terminatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recurrence_terminated_total",
		Help: "Total number of series terminated.",
	})
	failuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recurrence_failures_total",
		Help: "Total number of records that failed to advance.",
	})
)

func init() {
	prometheus.MustRegister(runsTotal, generatedTotal, terminatedTotal, failuresTotal)
}

// Scheduler triggers recurrence processing once per interval and whenever
// Notify is called. Safe for a single Start call; Notify may be called from
// any goroutine.
type Scheduler struct {
	svc      *services.RecurrenceService
	interval time.Duration
	now      func() time.Time
	notifyCh chan struct{}
}

// New constructs a Scheduler around the given service. interval is typically
// 24h in production and much shorter in tests.
func New(svc *services.RecurrenceService, interval time.Duration) *Scheduler {
	return &Scheduler{
		svc:      svc,
		interval: interval,
		now:      time.Now,
		notifyCh: make(chan struct{}, 1),
	}
}

// Notify triggers an immediate run. Non-blocking if a run is already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// Start blocks until ctx is cancelled, running the driver once immediately
// and then on every tick or notification.
func (s *Scheduler) Start(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("recurrence scheduler started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.run(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("recurrence scheduler stopped")
			return
		case <-ticker.C:
			s.run(ctx)
		case <-s.notifyCh:
			log.Debug().Msg("recurrence scheduler triggered by notification")
			s.run(ctx)
		}
	}
}

// run executes one driver pass and records its outcome.
func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runsTotal.Inc()

	rep, err := s.svc.Run(ctx, s.now())
	if err != nil {
		failuresTotal.Inc()
		log.Error().Err(err).Msg("recurrence run failed")
		return
	}

	generatedTotal.Add(float64(rep.Generated))
	terminatedTotal.Add(float64(rep.Terminated))
	failuresTotal.Add(float64(len(rep.Failures)))

	ev := log.Info()
	if len(rep.Failures) > 0 {
		ev = log.Warn()
	}
	ev.Int("processed", rep.Processed).
		Int("generated", rep.Generated).
		Int("terminated", rep.Terminated).
		Int("skipped", rep.Skipped).
		Int("failed", len(rep.Failures)).
		Msg("recurrence run finished")
}
