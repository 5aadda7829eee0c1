// Package jobs runs the background maintenance work the API needs,
// currently just the nightly overdue invoice sweep.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/thelivecure/admin-api/internal/service/invoice"
	"github.com/thelivecure/admin-api/pkg/metrics"
)

const sweepTimeout = 5 * time.Minute

type Scheduler struct {
	cron     *cron.Cron
	invoices *invoice.Service
}

func NewScheduler(invoices *invoice.Service) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		invoices: invoices,
	}
}

// Start registers the overdue sweep on the given cron schedule and begins
// running jobs.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.sweepOverdue); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("schedule", schedule).Msg("overdue invoice sweep scheduled")
	return nil
}

// Stop waits for any running job before returning.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) sweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	flipped, err := s.invoices.MarkOverdue(ctx)
	if err != nil {
		metrics.OverdueSweepRuns.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("overdue invoice sweep failed")
		return
	}
	metrics.OverdueSweepRuns.WithLabelValues("success").Inc()
	metrics.OverdueSweepFlipped.Add(float64(flipped))
	log.Info().Int64("flipped", flipped).Msg("overdue invoice sweep finished")
}
