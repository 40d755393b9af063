package training

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/seirrozyx11/sikadVoltz-sub000/internal/telemetry/metrics"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// Sweeper periodically runs a check-in over every account with an active
// plan. Each plan is an independent unit of work; concurrency is bounded
// only to be gentle with the storage layer, the per-plan invariants are
// already protected by the service's per-account locks.
type Sweeper struct {
	service  *Service
	metrics  *metrics.Manager
	interval time.Duration
	workers  int
}

func NewSweeper(
	service *Service,
	metricsManager *metrics.Manager,
	interval time.Duration,
	workers int,
) *Sweeper {
	if workers < 1 {
		workers = 1
	}
	return &Sweeper{
		service:  service,
		metrics:  metricsManager,
		interval: interval,
		workers:  workers,
	}
}

// Run blocks until ctx is done, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	log.Debugf("plan sweeper started, interval %s, %d workers", s.interval, s.workers)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugln("plan sweeper stopping")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one detection pass across all active plans. Failed accounts
// are logged and skipped; detection is idempotent, so the next sweep simply
// retries them.
func (s *Sweeper) Sweep(ctx context.Context) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sweeper.training.sweep")
	defer span.End()

	defer func(begin time.Time) {
		s.metrics.HistSweepDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())

	accountIDs, err := s.service.ActiveAccounts(ctx)
	if err != nil {
		log.Errorf("sweep: list active accounts: %s", err)
		span.RecordError(err)
		return
	}
	span.SetAttributes(attribute.Int("accounts", len(accountIDs)))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for _, accountID := range accountIDs {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(accountID string) {
			defer wg.Done()
			defer func() { <-sem }()

			if _, err := s.service.CheckIn(ctx, accountID, time.Now()); err != nil {
				log.Errorf("sweep: check-in [%s]: %s", accountID, err)
			}
		}(accountID)
	}
	wg.Wait()
}
