package workout

import "math"

// MetersPerMile converts source distances (meters) to the miles used in
// summaries.
const MetersPerMile = 1609.344

// ComputeRunMetrics derives overall distance/pace/HR for a continuous run
// (easy, long, continuous tempo) from aggregate stats. Returns
// ErrZeroDistance instead of an infinite pace.
func ComputeRunMetrics(distanceMeters, movingSeconds, averageHR float64) (*ContinuousMetrics, error) {
	miles := distanceMeters / MetersPerMile
	if miles <= 0 {
		return nil, ErrZeroDistance
	}
	return &ContinuousMetrics{
		DistanceMiles:      miles,
		PaceSecondsPerMile: movingSeconds / miles,
		AverageHeartrate:   int(math.Round(averageHR)),
	}, nil
}

// ComputeIntervalMetrics derives per-interval paces for an interval or
// VO2max session. Each lap's pace is computed individually from its own
// distance and time, never back-solved from the aggregate average.
func ComputeIntervalMetrics(workLaps []Lap) (*IntervalMetrics, error) {
	if len(workLaps) == 0 {
		return nil, ErrNoWorkLaps
	}

	paces := make([]float64, 0, len(workLaps))
	var sumMeters, sumHR float64
	var hrCount int
	for _, lap := range workLaps {
		miles := lap.Distance / MetersPerMile
		if miles <= 0 {
			return nil, ErrZeroDistance
		}
		paces = append(paces, lap.MovingTime/miles)
		sumMeters += lap.Distance
		if lap.AverageHeartrate > 0 {
			sumHR += lap.AverageHeartrate
			hrCount++
		}
	}

	avgHR := 0
	if hrCount > 0 {
		avgHR = int(math.Round(sumHR / float64(hrCount)))
	}

	return &IntervalMetrics{
		IntervalCount:            len(workLaps),
		DistancePerIntervalMiles: sumMeters / float64(len(workLaps)) / MetersPerMile,
		IndividualPaceSeconds:    paces,
		AverageHeartrate:         avgHR,
	}, nil
}

// ComputeRepetitionMetrics infers the set/rep structure of a repetition
// workout: roles are assigned, work and recovery distances are rounded to
// standard distances, and the pattern detector compresses them into either
// a uniform rep or a ladder. Returns ErrNoWorkLaps when no lap qualifies as
// work, which indicates the activity should never have been routed here.
func ComputeRepetitionMetrics(laps []Lap) (*RepetitionMetrics, error) {
	roles := ClassifyRoles(laps)

	var workDistances, recoveryDistances []float64
	betweenSetMeters := 0.0
	betweenSetCount := 0
	for i, role := range roles {
		switch role {
		case RoleWork:
			workDistances = append(workDistances, RoundToStandardDistance(laps[i].Distance))
		case RoleRecovery:
			recoveryDistances = append(recoveryDistances, RoundToStandardDistance(laps[i].Distance))
		case RoleBetweenSetRecovery:
			if betweenSetCount == 0 {
				betweenSetMeters = RoundToStandardDistance(laps[i].Distance)
			}
			betweenSetCount++
		}
	}

	if len(workDistances) == 0 {
		return nil, ErrNoWorkLaps
	}

	metrics := &RepetitionMetrics{BetweenSetRecoveryMeters: betweenSetMeters}

	workPattern := FindRepeatingPattern(workDistances)
	switch {
	case workPattern != nil && len(workPattern.Unit) == 1:
		// Uniform reps: explicit between-set recoveries delimit the sets.
		metrics.WorkDistance = UniformDistance(workPattern.Unit[0])
		metrics.Sets = 1
		if betweenSetCount > 0 {
			metrics.Sets = betweenSetCount + 1
		}
		metrics.RepsPerSet = roundedDiv(len(workDistances), metrics.Sets)

	case workPattern != nil:
		// Ladder: the unit is the set, its repetitions are the set count.
		metrics.WorkDistance = LadderDistance(workPattern.Unit)
		metrics.RepsPerSet = len(workPattern.Unit)
		metrics.Sets = workPattern.Sets
		if betweenSetCount > 0 {
			metrics.Sets = betweenSetCount + 1
		}

	default:
		// No pattern: describe the work as a single averaged distance.
		metrics.WorkDistance = UniformDistance(roundedMean(workDistances))
		metrics.Sets = 1
		if betweenSetCount > 0 {
			metrics.Sets = betweenSetCount + 1
		}
		metrics.RepsPerSet = roundedDiv(len(workDistances), metrics.Sets)
	}

	recoveryPattern := FindRepeatingPattern(recoveryDistances)
	switch {
	case recoveryPattern != nil && len(recoveryPattern.Unit) > 1:
		metrics.RecoveryDistance = LadderDistance(recoveryPattern.Unit)
	case len(recoveryDistances) > 0:
		metrics.RecoveryDistance = UniformDistance(roundedMean(recoveryDistances))
	default:
		// No recovery laps recorded: assume jog recoveries equal to the work.
		metrics.RecoveryDistance = metrics.WorkDistance
	}

	return metrics, nil
}

func roundedDiv(n, d int) int {
	if d <= 0 {
		return n
	}
	return int(math.Round(float64(n) / float64(d)))
}

func roundedMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return RoundToStandardDistance(sum / float64(len(values)))
}
