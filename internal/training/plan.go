package training

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrProfileIncomplete    = errors.New("profile incomplete")
	ErrUnsafeDeficit        = errors.New("daily calorie deficit above safe limit")
	ErrUnsafeDuration       = errors.New("daily cycling duration above safe limit")
	ErrUnsafeRedistribution = errors.New("redistribution exceeds max daily hours")
	ErrNoPendingSessions    = errors.New("no pending sessions to adjust")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidTransition    = errors.New("invalid session status transition")
)

type SessionStatus string

const (
	StatusPending     SessionStatus = "pending"
	StatusInProgress  SessionStatus = "in_progress"
	StatusCompleted   SessionStatus = "completed"
	StatusMissed      SessionStatus = "missed"
	StatusRescheduled SessionStatus = "rescheduled"
)

type PlanType string

const (
	PlanBelowMinimum PlanType = "below_minimum"
	PlanSafe         PlanType = "safe"
	PlanRecommended  PlanType = "recommended"
	PlanRisky        PlanType = "risky"
	PlanUnsafe       PlanType = "unsafe"
)

// ClassifyPlanType buckets a daily cycling duration into a safety band.
// Both band edges at 0.75 and 1.0 are inclusive on the safe side.
func ClassifyPlanType(dailyCyclingHours float64) PlanType {
	switch {
	case dailyCyclingHours >= 0.75 && dailyCyclingHours <= 1.0:
		return PlanSafe
	case dailyCyclingHours > 1.0 && dailyCyclingHours <= 2.0:
		return PlanRecommended
	case dailyCyclingHours > 2.0 && dailyCyclingHours <= 3.0:
		return PlanRisky
	case dailyCyclingHours > 3.0:
		return PlanUnsafe
	default:
		return PlanBelowMinimum
	}
}

// Goal is immutable once a plan has been generated from it.
type Goal struct {
	CurrentWeightKg float64   `json:"currentWeightKg"`
	TargetWeightKg  float64   `json:"targetWeightKg"`
	StartDate       time.Time `json:"startDate"`
	TargetDate      time.Time `json:"targetDate"`
}

type RescheduleInfo struct {
	OriginalDate time.Time `json:"originalDate"`
	Reason       string    `json:"reason"`
}

type Session struct {
	ID           int             `json:"id"`
	Date         time.Time       `json:"date"`
	PlannedHours float64         `json:"plannedHours"`
	// AdjustedHours is a signed delta applied on top of PlannedHours by
	// the redistribution engine.
	AdjustedHours  float64         `json:"adjustedHours"`
	CompletedHours float64         `json:"completedHours"`
	MissedHours    float64         `json:"missedHours"`
	CaloriesBurned float64         `json:"caloriesBurned"`
	Status         SessionStatus   `json:"status"`
	Reschedule     *RescheduleInfo `json:"reschedule,omitempty"`
}

// EffectiveHours is the hours required to complete this session.
func (s *Session) EffectiveHours() float64 {
	effective := s.PlannedHours + s.AdjustedHours
	if effective < 0 {
		return 0
	}
	return effective
}

// allowedTransitions is the session state machine. Completed and missed
// are not strictly terminal: a missed session can still be completed via
// a catch-up, and rescheduling re-enters pending under a new date.
var allowedTransitions = map[SessionStatus][]SessionStatus{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusMissed, StatusRescheduled},
	StatusInProgress: {StatusCompleted, StatusMissed, StatusRescheduled},
	StatusMissed:     {StatusCompleted, StatusRescheduled},
}

// Transition moves the session to the target status, rejecting any move
// the state machine does not allow. Statuses only move forward; going back
// to pending happens solely through reschedule, which creates a new session.
func (s *Session) Transition(to SessionStatus) error {
	if s.Status == to {
		return nil
	}
	for _, allowed := range allowedTransitions[s.Status] {
		if allowed == to {
			s.Status = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, to)
}

type AdjustmentMethod string

const (
	MethodWeightedRedistribution AdjustmentMethod = "weighted_redistribution"
	MethodResetRecommended       AdjustmentMethod = "reset_recommended"
)

// AdjustmentRecord is append-only, never mutated after creation.
type AdjustmentRecord struct {
	Timestamp      time.Time        `json:"timestamp"`
	MissedHours    float64          `json:"missedHours"`
	NewDailyTarget float64          `json:"newDailyTarget"`
	Reason         string           `json:"reason"`
	Method         AdjustmentMethod `json:"method"`
}

// AutoAdjustmentSettings carries the per-plan policy knobs. Several
// related thresholds are deliberately independent values, not one shared
// constant (pause vs edit-unlock, cap hours).
type AutoAdjustmentSettings struct {
	MaxDailyHours          float64 `json:"maxDailyHours"`
	GracePeriodDays        int     `json:"gracePeriodDays"`
	WeeklyResetThreshold   int     `json:"weeklyResetThreshold"`
	RedistributionCapHours float64 `json:"redistributionCapHours"`
	PauseThreshold         int     `json:"pauseThreshold"`
	EditUnlockThreshold    int     `json:"editUnlockThreshold"`
}

func DefaultAutoAdjustmentSettings() AutoAdjustmentSettings {
	return AutoAdjustmentSettings{
		MaxDailyHours:          3,
		GracePeriodDays:        1,
		WeeklyResetThreshold:   7,
		RedistributionCapHours: 0.75,
		PauseThreshold:         3,
		EditUnlockThreshold:    5,
	}
}

type PlanSummary struct {
	BMR               float64 `json:"bmr"`
	TDEE              float64 `json:"tdee"`
	DailyCalorieGoal  float64 `json:"dailyCalorieGoal"`
	DailyCyclingHours float64 `json:"dailyCyclingHours"`
	TotalCyclingHours float64 `json:"totalCyclingHours"`
}

type Plan struct {
	ID               int                    `json:"id"`
	AccountID        string                 `json:"accountId"`
	Goal             Goal                   `json:"goal"`
	Type             PlanType               `json:"type"`
	TotalDays        int                    `json:"totalDays"`
	Sessions         []Session              `json:"sessions"`
	MissedCount      int                    `json:"missedCount"`
	TotalMissedHours float64                `json:"totalMissedHours"`
	IsActive         bool                   `json:"isActive"`
	Settings         AutoAdjustmentSettings `json:"settings"`
	Adjustments      []AdjustmentRecord     `json:"adjustments"`
	Summary          PlanSummary            `json:"summary"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// SessionOn returns the first session scheduled on the given calendar day,
// skipping sessions already moved away via reschedule.
func (p *Plan) SessionOn(date time.Time) *Session {
	day := Midnight(date)
	for i := range p.Sessions {
		s := &p.Sessions[i]
		if s.Status == StatusRescheduled {
			continue
		}
		if Midnight(s.Date).Equal(day) {
			return s
		}
	}
	return nil
}

// PendingFrom returns pointers to sessions still pending on or after the
// given date, in schedule order.
func (p *Plan) PendingFrom(date time.Time) []*Session {
	day := Midnight(date)
	var pending []*Session
	for i := range p.Sessions {
		s := &p.Sessions[i]
		if s.Status != StatusPending {
			continue
		}
		if Midnight(s.Date).Before(day) {
			continue
		}
		pending = append(pending, s)
	}
	return pending
}

// RecomputeMissedTotals rebuilds MissedCount and TotalMissedHours from the
// session list. Counters are always derived from the source of truth, never
// incrementally accumulated across call sites, so repeated detection passes
// cannot drift.
func (p *Plan) RecomputeMissedTotals() {
	count := 0
	var hours float64
	for i := range p.Sessions {
		if p.Sessions[i].Status == StatusMissed {
			count++
			hours += p.Sessions[i].MissedHours
		}
	}
	p.MissedCount = count
	p.TotalMissedHours = hours
}

// Midnight truncates a time to the start of its calendar day, in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
