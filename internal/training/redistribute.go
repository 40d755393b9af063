package training

const (
	// plannedHours share a single session may absorb
	redistributionCapRatio = 0.25
	// spillover loop bounds
	maxSpilloverIterations = 10
	spilloverEpsilon       = 1e-6
)

// RedistributionResult describes how a deficit was spread over the
// remaining sessions.
type RedistributionResult struct {
	// Allocations maps session index (within the pending slice handed in)
	// to the hours added to that session.
	Allocations map[int]float64 `json:"allocations"`
	// NewDailyTargets maps the same indices to the resulting effective hours.
	NewDailyTargets map[int]float64 `json:"newDailyTargets"`
	// DroppedHours is the remainder that could not be placed within the
	// caps and the iteration bound. Callers must surface it, not hide it.
	DroppedHours float64 `json:"droppedHours"`
}

// TotalAllocated sums all per-session allocations.
func (r RedistributionResult) TotalAllocated() float64 {
	var total float64
	for _, alloc := range r.Allocations {
		total += alloc
	}
	return total
}

// Redistribute spreads deficitHours across the given pending sessions:
// weighted-proportional by planned hours, capped per session at
// min(plannedHours*0.25, capHours), with bounded spillover of whatever the
// first pass could not place.
//
// The discipline is full recompute: each allocation overwrites the
// session's AdjustedHours rather than accumulating on top of a previous
// redistribution, so re-running with the same deficit is idempotent.
func Redistribute(deficitHours float64, sessions []*Session, capHours float64) RedistributionResult {
	result := RedistributionResult{
		Allocations:     make(map[int]float64),
		NewDailyTargets: make(map[int]float64),
	}
	if len(sessions) == 0 || deficitHours <= 0 {
		return result
	}

	weights := make([]float64, len(sessions))
	caps := make([]float64, len(sessions))
	var totalWeight float64
	for i, s := range sessions {
		weights[i] = s.PlannedHours
		if weights[i] < 0 {
			weights[i] = 0
		}
		totalWeight += weights[i]

		caps[i] = s.PlannedHours * redistributionCapRatio
		if caps[i] > capHours {
			caps[i] = capHours
		}
	}
	if totalWeight == 0 {
		totalWeight = 1
	}

	alloc := make([]float64, len(sessions))
	remainder := deficitHours
	for i := range sessions {
		share := deficitHours * weights[i] / totalWeight
		if share > caps[i] {
			share = caps[i]
		}
		alloc[i] = share
		remainder -= share
	}

	for iter := 0; iter < maxSpilloverIterations && remainder > spilloverEpsilon; iter++ {
		var spareWeight float64
		for i := range sessions {
			if caps[i]-alloc[i] > spilloverEpsilon {
				spareWeight += weights[i]
			}
		}
		if spareWeight == 0 {
			break
		}

		distributed := false
		for i := range sessions {
			spare := caps[i] - alloc[i]
			if spare <= spilloverEpsilon {
				continue
			}
			share := remainder * weights[i] / spareWeight
			if share > spare {
				share = spare
			}
			if share <= 0 {
				continue
			}
			alloc[i] += share
			remainder -= share
			distributed = true
		}
		if !distributed {
			break
		}
	}

	if remainder > spilloverEpsilon {
		result.DroppedHours = remainder
	}

	for i, s := range sessions {
		s.AdjustedHours = alloc[i]
		result.Allocations[i] = alloc[i]
		result.NewDailyTargets[i] = s.EffectiveHours()
	}

	return result
}
