package training

import (
	"math"
	"time"
)

// DetectionResult lists the sessions a detection pass newly marked missed.
// A second pass with the same wall clock produces an empty set.
type DetectionResult struct {
	NewlyMissed []Session `json:"newlyMissed"`
}

// DetectMissed flips every still-pending session dated before today to
// missed and rebuilds the plan's missed counters from the session list.
// Pure function of (plan, now): mutates only the given plan, touches no
// storage, and is idempotent.
func DetectMissed(plan *Plan, now time.Time) DetectionResult {
	today := Midnight(now)

	var result DetectionResult
	for i := range plan.Sessions {
		s := &plan.Sessions[i]
		if s.Status != StatusPending {
			continue
		}
		if !Midnight(s.Date).Before(today) {
			continue
		}
		if err := s.Transition(StatusMissed); err != nil {
			// pending -> missed is always allowed, keep the loop total anyway
			continue
		}
		s.MissedHours = s.PlannedHours
		result.NewlyMissed = append(result.NewlyMissed, *s)
	}

	plan.RecomputeMissedTotals()
	return result
}

// StatusSnapshot is the derived view of how a plan is going.
type StatusSnapshot struct {
	Day            int     `json:"day"`
	TotalDays      int     `json:"totalDays"`
	CompletedCount int     `json:"completedCount"`
	MissedCount    int     `json:"missedCount"`
	PendingCount   int     `json:"pendingCount"`
	CompletionRate float64 `json:"completionRate"`
	OnTrack        bool    `json:"onTrack"`
	HoursCompleted float64 `json:"hoursCompleted"`
	HoursPlanned   float64 `json:"hoursPlanned"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

// Snapshot derives the plan status for the given wall clock. Day is
// 1-based: the start date itself is day 1.
func Snapshot(plan *Plan, now time.Time) StatusSnapshot {
	today := Midnight(now)
	start := Midnight(plan.Goal.StartDate)
	daysSinceStart := int(today.Sub(start).Hours() / 24)
	if daysSinceStart < 0 {
		daysSinceStart = 0
	}

	snapshot := StatusSnapshot{
		Day:       daysSinceStart + 1,
		TotalDays: plan.TotalDays,
	}
	if snapshot.Day > plan.TotalDays {
		snapshot.Day = plan.TotalDays
	}

	for i := range plan.Sessions {
		s := &plan.Sessions[i]
		snapshot.HoursPlanned += s.PlannedHours
		snapshot.HoursCompleted += s.CompletedHours
		snapshot.CaloriesBurned += s.CaloriesBurned
		switch s.Status {
		case StatusCompleted:
			snapshot.CompletedCount++
		case StatusMissed:
			snapshot.MissedCount++
		case StatusPending, StatusInProgress:
			snapshot.PendingCount++
		}
	}

	elapsed := daysSinceStart + 1
	if elapsed > plan.TotalDays {
		elapsed = plan.TotalDays
	}
	if elapsed > 0 {
		snapshot.CompletionRate = float64(snapshot.CompletedCount) / float64(elapsed)
	}

	allowedMisses := int(math.Floor(float64(daysSinceStart) * 0.1))
	snapshot.OnTrack = snapshot.MissedCount <= allowedMisses

	return snapshot
}
