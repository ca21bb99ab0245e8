package service

// Measurements holds the candidate scalars derived from one session's
// per-set sequences. A nil input sequence means the axis is absent and
// yields no candidates for it; an empty or all-zero sequence still counts
// as an observation of zero.
type Measurements struct {
	hasReps   bool
	maxReps   float64
	totalReps float64

	hasTime   bool
	maxTime   float64
	totalTime float64

	hasSets bool
	sets    float64
}

// ExtractMeasurements derives candidate values from the supplied per-set
// repetition and duration sequences. Pure; no side effects.
func ExtractMeasurements(repsPerSet, secondsPerSet []int) Measurements {
	var m Measurements

	if repsPerSet != nil {
		m.hasReps = true
		m.maxReps, m.totalReps = maxAndSum(repsPerSet)
		m.hasSets = true
		m.sets = float64(len(repsPerSet))
	}

	if secondsPerSet != nil {
		m.hasTime = true
		m.maxTime, m.totalTime = maxAndSum(secondsPerSet)
		if !m.hasSets {
			m.hasSets = true
			m.sets = float64(len(secondsPerSet))
		}
	}

	return m
}

// Candidate returns the value matching a goal kind and whether the
// session carried the axis that kind measures.
func (m Measurements) Candidate(goalKind string) (float64, bool) {
	switch goalKind {
	case GoalKindMaxReps:
		return m.maxReps, m.hasReps
	case GoalKindTotalReps:
		return m.totalReps, m.hasReps
	case GoalKindMaxTime:
		return m.maxTime, m.hasTime
	case GoalKindTotalTime:
		return m.totalTime, m.hasTime
	case GoalKindSetsCompleted:
		return m.sets, m.hasSets
	default:
		return 0, false
	}
}

func maxAndSum(values []int) (maxVal, sum float64) {
	for _, v := range values {
		fv := float64(v)
		sum += fv
		if fv > maxVal {
			maxVal = fv
		}
	}
	return maxVal, sum
}
