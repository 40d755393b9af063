package training

import (
	"fmt"
	"math"
	"time"
)

const (
	// kcal of body energy per kg of weight change
	caloriesPerKg = 7700
	// hard safety ceilings, never auto-relaxed
	maxDailyCalorieGoal   = 1000
	hardDailyCeilingHours = 4
)

// Generator turns a profile and a weight goal into a day-by-day session
// schedule, rejecting plans that would violate the safety ceilings.
type Generator struct {
	settings AutoAdjustmentSettings
}

func NewGenerator(settings AutoAdjustmentSettings) *Generator {
	return &Generator{settings: settings}
}

// Generate produces a plan with one pending session per calendar day in
// [goal.StartDate, goal.TargetDate]. It does not persist anything;
// deactivating a previously active plan happens at save time.
func (g *Generator) Generate(profile Profile, goal Goal, now time.Time) (*Plan, error) {
	if !profile.IsComplete() {
		return nil, ErrProfileIncomplete
	}

	start := Midnight(goal.StartDate)
	target := Midnight(goal.TargetDate)
	totalDays := int(math.Ceil(target.Sub(start).Hours() / 24))
	if totalDays < 1 {
		return nil, fmt.Errorf("target date must be at least one day after start date")
	}

	caloriesNeeded := math.Abs(goal.CurrentWeightKg-goal.TargetWeightKg) * caloriesPerKg
	dailyCalorieGoal := caloriesNeeded / float64(totalDays)
	if dailyCalorieGoal > maxDailyCalorieGoal {
		return nil, fmt.Errorf("%w: %.1f kcal/day over %d days", ErrUnsafeDeficit, dailyCalorieGoal, totalDays)
	}

	caloriesPerHour := CaloriesPerHourCycling(profile.WeightKg, IntensityModerate)
	dailyCyclingHours := dailyCalorieGoal / caloriesPerHour
	if dailyCyclingHours > hardDailyCeilingHours {
		return nil, fmt.Errorf("%w: %.2f h/day", ErrUnsafeDuration, dailyCyclingHours)
	}

	bmr := ComputeBMR(profile.WeightKg, profile.HeightCm, profile.Age(now), profile.Gender)
	tdee := ComputeTDEE(bmr, profile.ActivityLevel)

	sessions := make([]Session, 0, totalDays)
	for day := 0; day < totalDays; day++ {
		sessions = append(sessions, Session{
			Date:         start.AddDate(0, 0, day),
			PlannedHours: dailyCyclingHours,
			Status:       StatusPending,
		})
	}

	return &Plan{
		AccountID: profile.AccountID,
		Goal:      goal,
		Type:      ClassifyPlanType(dailyCyclingHours),
		TotalDays: totalDays,
		Sessions:  sessions,
		IsActive:  true,
		Settings:  g.settings,
		Summary: PlanSummary{
			BMR:               bmr,
			TDEE:              tdee,
			DailyCalorieGoal:  dailyCalorieGoal,
			DailyCyclingHours: dailyCyclingHours,
			TotalCyclingHours: dailyCyclingHours * float64(totalDays),
		},
		CreatedAt: now,
	}, nil
}

// Regenerate builds a fresh plan anchored at today, keeping the original
// target date and weight goal. Used after a reset recommendation.
func (g *Generator) Regenerate(profile Profile, old *Plan, now time.Time) (*Plan, error) {
	goal := Goal{
		CurrentWeightKg: old.Goal.CurrentWeightKg,
		TargetWeightKg:  old.Goal.TargetWeightKg,
		StartDate:       Midnight(now),
		TargetDate:      old.Goal.TargetDate,
	}
	return g.Generate(profile, goal, now)
}
