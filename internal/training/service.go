package training

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seirrozyx11/sikadVoltz-sub000/internal/telemetry/metrics"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=training_test

type planRepo interface {
	SavePlan(ctx context.Context, plan *Plan) (*Plan, error)
	GetActivePlan(ctx context.Context, accountID string) (*Plan, error)
	GetLatestPlan(ctx context.Context, accountID string) (*Plan, error)
	UpdatePlan(ctx context.Context, plan *Plan) error
	AppendAdjustment(ctx context.Context, planID int, record AdjustmentRecord) error
	ListActiveAccountIDs(ctx context.Context) ([]string, error)
}

type snapshotCache interface {
	Get(ctx context.Context, accountID string) (*StatusSnapshot, bool)
	Set(ctx context.Context, accountID string, snapshot StatusSnapshot)
	Invalidate(ctx context.Context, accountID string)
}

// Service orchestrates the scheduler core against the schedule store.
// All mutations of one account's plan are serialized through a per-account
// lock: detection, adjustment and completion each read counters and write
// derived values, so two concurrent check-ins must not interleave.
type Service struct {
	repo      planRepo
	cache     snapshotCache
	generator *Generator
	policy    *Policy
	metrics   *metrics.Manager

	locksMutex   sync.Mutex
	accountLocks map[string]*sync.Mutex
}

func NewService(
	repo planRepo,
	cache snapshotCache,
	generator *Generator,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:         repo,
		cache:        cache,
		generator:    generator,
		policy:       NewPolicy(),
		metrics:      metricsManager,
		accountLocks: make(map[string]*sync.Mutex),
	}
}

func (s *Service) accountLock(accountID string) *sync.Mutex {
	s.locksMutex.Lock()
	defer s.locksMutex.Unlock()
	lock, ok := s.accountLocks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.accountLocks[accountID] = lock
	}
	return lock
}

// GeneratePlan produces and persists a new plan; saving deactivates any
// previously active plan of the account.
func (s *Service) GeneratePlan(ctx context.Context, profile Profile, goal Goal, now time.Time) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.generatePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("account.id", profile.AccountID))

	lock := s.accountLock(profile.AccountID)
	lock.Lock()
	defer lock.Unlock()

	plan, err := s.generator.Generate(profile, goal, now)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.SavePlan(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	s.metrics.CounterPlansGenerated.Inc()
	s.cache.Invalidate(ctx, profile.AccountID)
	return saved, nil
}

// CheckInResult is what one detection+adjustment pass produced.
type CheckInResult struct {
	Plan      *Plan               `json:"plan"`
	Detection DetectionResult     `json:"detection"`
	Decision  *AdjustmentDecision `json:"decision,omitempty"`
}

// CheckIn runs missed-session detection on the account's active plan and,
// when something is newly missed, hands the deficit to the adjustment
// policy. Idempotent for an unchanged wall clock: a repeated call finds
// nothing new and changes nothing.
func (s *Service) CheckIn(ctx context.Context, accountID string, now time.Time) (_ *CheckInResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.checkIn")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("account.id", accountID))

	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	plan, err := s.repo.GetActivePlan(ctx, accountID)
	if err != nil {
		return nil, err
	}

	detection := DetectMissed(plan, now)
	result := &CheckInResult{
		Plan:      plan,
		Detection: detection,
	}
	if len(detection.NewlyMissed) == 0 {
		return result, nil
	}

	s.metrics.CounterSessionsMissed.Add(float64(len(detection.NewlyMissed)))

	decision, err := s.policy.Adjust(plan, now)
	if err != nil {
		// persist the detection even when the adjustment is rejected,
		// otherwise the next check-in double reports the same sessions
		if updateErr := s.repo.UpdatePlan(ctx, plan); updateErr != nil {
			return nil, fmt.Errorf("update plan after rejected adjustment: %w", updateErr)
		}
		s.cache.Invalidate(ctx, accountID)
		return nil, err
	}
	result.Decision = decision

	if err := s.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	switch decision.Outcome {
	case OutcomeRedistributed:
		if decision.Redistribution != nil {
			s.metrics.CounterRedistributions.Inc()
			lastRecord := plan.Adjustments[len(plan.Adjustments)-1]
			if err := s.repo.AppendAdjustment(ctx, plan.ID, lastRecord); err != nil {
				return nil, fmt.Errorf("append adjustment record: %w", err)
			}
		}
	case OutcomeResetRecommended:
		s.metrics.CounterResetsRecommended.Inc()
	}
	if decision.Paused {
		s.metrics.CounterPlansPaused.Inc()
	}

	s.cache.Invalidate(ctx, accountID)
	return result, nil
}

// CompleteSession records real-time progress on the session of the given
// calendar day. Partial progress moves the session to in_progress; reaching
// the effective target completes it. A session already marked missed can
// still be completed as a catch-up, which releases its share of the deficit.
func (s *Service) CompleteSession(
	ctx context.Context,
	accountID string,
	date time.Time,
	hours float64,
	intensity Intensity,
	now time.Time,
) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.completeSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("account.id", accountID),
		attribute.Float64("hours", hours),
	)

	if hours <= 0 {
		return nil, fmt.Errorf("completed hours must be positive")
	}

	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	plan, err := s.repo.GetActivePlan(ctx, accountID)
	if err != nil {
		return nil, err
	}

	session := plan.SessionOn(date)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	wasMissed := session.Status == StatusMissed

	session.CompletedHours += hours
	session.CaloriesBurned += hours * CaloriesPerHourCycling(plan.Goal.CurrentWeightKg, intensity)

	if session.CompletedHours >= session.EffectiveHours() {
		if err := session.Transition(StatusCompleted); err != nil {
			return nil, err
		}
		if wasMissed {
			session.MissedHours = 0
			plan.RecomputeMissedTotals()
		}
		s.metrics.CounterSessionsCompleted.Inc()
	} else if session.Status == StatusPending {
		if err := session.Transition(StatusInProgress); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	s.cache.Invalidate(ctx, accountID)
	return plan, nil
}

// RescheduleSession moves the session of fromDate to toDate: the original
// session is kept with status rescheduled and its origin recorded, and a
// fresh pending session is appended on the new date. Sessions are never
// deleted.
func (s *Service) RescheduleSession(
	ctx context.Context,
	accountID string,
	fromDate, toDate time.Time,
	reason string,
) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.rescheduleSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("account.id", accountID))

	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	plan, err := s.repo.GetActivePlan(ctx, accountID)
	if err != nil {
		return nil, err
	}

	session := plan.SessionOn(fromDate)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if err := session.Transition(StatusRescheduled); err != nil {
		return nil, err
	}
	session.Reschedule = &RescheduleInfo{
		OriginalDate: Midnight(fromDate),
		Reason:       reason,
	}
	// a rescheduled session no longer contributes to the deficit
	session.MissedHours = 0
	plan.RecomputeMissedTotals()

	plan.Sessions = append(plan.Sessions, Session{
		Date:         Midnight(toDate),
		PlannedHours: session.PlannedHours,
		Status:       StatusPending,
	})

	if err := s.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	s.cache.Invalidate(ctx, accountID)
	return plan, nil
}

// ResetPlan regenerates the account's plan from today towards the original
// target date, deactivating the old plan. The usual follow-up to a
// reset_recommended decision.
func (s *Service) ResetPlan(ctx context.Context, profile Profile, now time.Time) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.resetPlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("account.id", profile.AccountID))

	lock := s.accountLock(profile.AccountID)
	lock.Lock()
	defer lock.Unlock()

	oldPlan, err := s.repo.GetLatestPlan(ctx, profile.AccountID)
	if err != nil {
		return nil, err
	}

	newPlan, err := s.generator.Regenerate(profile, oldPlan, now)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.SavePlan(ctx, newPlan)
	if err != nil {
		return nil, fmt.Errorf("save regenerated plan: %w", err)
	}

	s.metrics.CounterPlansGenerated.Inc()
	s.cache.Invalidate(ctx, profile.AccountID)
	return saved, nil
}

// Status returns the derived plan status, served from the snapshot cache
// when fresh.
func (s *Service) Status(ctx context.Context, accountID string, now time.Time) (_ *StatusSnapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("account.id", accountID))

	if snapshot, ok := s.cache.Get(ctx, accountID); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return snapshot, nil
	}

	plan, err := s.repo.GetActivePlan(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snapshot := Snapshot(plan, now)
	s.cache.Set(ctx, accountID, snapshot)
	return &snapshot, nil
}

// ActivePlan loads the account's active plan as-is, without detection.
func (s *Service) ActivePlan(ctx context.Context, accountID string) (*Plan, error) {
	return s.repo.GetActivePlan(ctx, accountID)
}

// ActiveAccounts lists accounts with an active plan, for the sweeper.
func (s *Service) ActiveAccounts(ctx context.Context) ([]string, error) {
	return s.repo.ListActiveAccountIDs(ctx)
}
