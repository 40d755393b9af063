package training

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityVigorous Intensity = "vigorous"
)

// activityMultipliers is the single source of truth for valid activity
// levels and their TDEE multipliers.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// metValues maps cycling intensity to its MET (Metabolic Equivalent of Task).
var metValues = map[Intensity]float64{
	IntensityLight:    4,
	IntensityModerate: 8,
	IntensityVigorous: 12,
}

type Profile struct {
	AccountID     string        `json:"accountId"`
	WeightKg      float64       `json:"weightKg"`
	HeightCm      float64       `json:"heightCm"`
	BirthDate     time.Time     `json:"birthDate"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
}

// IsComplete reports whether all physiological fields needed for plan
// generation are populated.
func (p Profile) IsComplete() bool {
	return p.WeightKg > 0 &&
		p.HeightCm > 0 &&
		!p.BirthDate.IsZero() &&
		p.Gender != "" &&
		p.ActivityLevel != ""
}

// Age returns the age in whole years, by calendar-year subtraction.
// Intentionally ignores month and day: plans generated for users born
// later in the year must not shift when the computation gets "fixed".
func (p Profile) Age(now time.Time) int {
	return now.Year() - p.BirthDate.Year()
}

// ComputeBMR returns the Basal Metabolic Rate in kcal/day, using the
// revised Harris-Benedict equations.
func ComputeBMR(weightKg, heightCm float64, age int, gender Gender) float64 {
	if gender == GenderFemale {
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
	}
	return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
}

// ComputeTDEE returns the Total Daily Energy Expenditure in kcal/day.
// Unknown activity levels fall back to the moderate multiplier.
func ComputeTDEE(bmr float64, level ActivityLevel) float64 {
	multiplier, ok := activityMultipliers[level]
	if !ok {
		multiplier = activityMultipliers[ActivityModerate]
	}
	return bmr * multiplier
}

// CaloriesPerHourCycling returns the kcal burned per hour of cycling at
// the given intensity, for a rider of the given weight.
func CaloriesPerHourCycling(weightKg float64, intensity Intensity) float64 {
	met, ok := metValues[intensity]
	if !ok {
		met = metValues[IntensityModerate]
	}
	return met * weightKg * 1.05
}
