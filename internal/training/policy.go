package training

import (
	"fmt"
	"time"
)

type AdjustmentOutcome string

const (
	OutcomeRedistributed    AdjustmentOutcome = "redistribution_applied"
	OutcomeResetRecommended AdjustmentOutcome = "reset_recommended"
)

// AdjustmentDecision is what the policy did (or recommends doing) about a
// plan's accumulated deficit.
type AdjustmentDecision struct {
	Outcome        AdjustmentOutcome     `json:"outcome"`
	MissedCount    int                   `json:"missedCount"`
	MissedHours    float64               `json:"missedHours"`
	NewDailyTarget float64               `json:"newDailyTarget,omitempty"`
	Redistribution *RedistributionResult `json:"redistribution,omitempty"`
	Paused         bool                  `json:"paused"`
	Reason         string                `json:"reason"`
}

// Policy decides between repairing a plan in place and recommending a
// full reset, and records every adjustment it applies.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// Adjust applies the redistribute-vs-reset decision to a plan whose missed
// counters are current (run DetectMissed first).
//
// At or above the weekly reset threshold it recommends a reset and leaves
// the schedule untouched. Below it, the deficit is spread over the
// remaining pending sessions unless the resulting daily target would break
// MaxDailyHours, which fails with ErrUnsafeRedistribution instead of
// silently capping. Independently of the outcome, reaching the pause
// threshold deactivates the plan until the user intervenes.
func (p *Policy) Adjust(plan *Plan, now time.Time) (*AdjustmentDecision, error) {
	settings := plan.Settings

	decision := &AdjustmentDecision{
		MissedCount: plan.MissedCount,
		MissedHours: plan.TotalMissedHours,
	}

	if plan.MissedCount >= settings.PauseThreshold {
		plan.IsActive = false
		decision.Paused = true
	}

	if plan.MissedCount >= settings.WeeklyResetThreshold {
		decision.Outcome = OutcomeResetRecommended
		decision.Reason = fmt.Sprintf(
			"%d missed sessions reached the reset threshold of %d",
			plan.MissedCount, settings.WeeklyResetThreshold,
		)
		return decision, nil
	}

	if plan.TotalMissedHours <= 0 {
		decision.Outcome = OutcomeRedistributed
		decision.Reason = "no deficit to redistribute"
		return decision, nil
	}

	remaining := plan.PendingFrom(now)
	if len(remaining) == 0 {
		return nil, ErrNoPendingSessions
	}

	adjustedRemainingDays := len(remaining) - settings.GracePeriodDays
	if adjustedRemainingDays < 1 {
		adjustedRemainingDays = 1
	}
	originalDaily := plan.Summary.DailyCyclingHours
	newDailyHours := (originalDaily*float64(len(remaining)) + plan.TotalMissedHours) / float64(adjustedRemainingDays)
	if newDailyHours > settings.MaxDailyHours {
		return nil, fmt.Errorf(
			"%w: %.2f h/day over the %.2f h limit",
			ErrUnsafeRedistribution, newDailyHours, settings.MaxDailyHours,
		)
	}

	redistribution := Redistribute(plan.TotalMissedHours, remaining, settings.RedistributionCapHours)

	plan.Summary.DailyCyclingHours = newDailyHours
	plan.Adjustments = append(plan.Adjustments, AdjustmentRecord{
		Timestamp:      now,
		MissedHours:    plan.TotalMissedHours,
		NewDailyTarget: newDailyHours,
		Reason:         fmt.Sprintf("%d missed sessions", plan.MissedCount),
		Method:         MethodWeightedRedistribution,
	})

	decision.Outcome = OutcomeRedistributed
	decision.NewDailyTarget = newDailyHours
	decision.Redistribution = &redistribution
	decision.Reason = fmt.Sprintf(
		"spread %.2f missed hours over %d remaining sessions",
		plan.TotalMissedHours, len(remaining),
	)
	return decision, nil
}

// CanEdit reports whether manual schedule editing is unlocked for the
// plan. The unlock threshold is a separate knob from the pause threshold.
func (p *Policy) CanEdit(plan *Plan) bool {
	return plan.MissedCount >= plan.Settings.EditUnlockThreshold
}
