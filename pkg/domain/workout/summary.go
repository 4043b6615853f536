package workout

import (
	"fmt"
	"math"
	"strings"
)

// FormatSummary renders the canonical one-line summary for a result. It
// picks the right sub-formatter from the metrics the result carries.
func FormatSummary(result *WorkoutAnalysisResult) string {
	switch {
	case result.Repetition != nil:
		return FormatRepetitionSummary(result.Repetition)
	case result.Interval != nil:
		return FormatIntervalSummary(result.Type, result.Interval)
	case result.Continuous != nil:
		return FormatContinuousSummary(result.Type, result.Continuous)
	default:
		return ""
	}
}

// FormatContinuousSummary renders easy/long/tempo runs:
//
//	T 3.1 mi @ avg 6:38/mi
//	E 11 mi @ 8:59/mi (HR 130)
func FormatContinuousSummary(t WorkoutType, m *ContinuousMetrics) string {
	if t == TypeContinuousTempo {
		return fmt.Sprintf("T %s mi @ avg %s/mi", formatMiles(m.DistanceMiles), formatPace(m.PaceSecondsPerMile))
	}
	return fmt.Sprintf("%s %s mi @ %s/mi (HR %d)",
		t.Letter(), formatMiles(m.DistanceMiles), formatPace(m.PaceSecondsPerMile), m.AverageHeartrate)
}

// FormatIntervalSummary renders interval sessions with every rep's pace:
//
//	T 4 x 1.0 @ 6:45, 6:48, 6:51, 6:49
func FormatIntervalSummary(t WorkoutType, m *IntervalMetrics) string {
	paces := make([]string, len(m.IndividualPaceSeconds))
	for i, p := range m.IndividualPaceSeconds {
		paces[i] = formatPace(p)
	}
	return fmt.Sprintf("%s %d x %s @ %s",
		t.Letter(), m.IntervalCount, formatMiles(m.DistancePerIntervalMiles), strings.Join(paces, ", "))
}

// FormatRepetitionSummary renders set/rep structure:
//
//	8 x 200m R w/200m jog
//	2 x(8 x 200m R w/200m jog) w/800m jog
//	3 x (200m, 200m, 400m) R w/ equal jog recovery
func FormatRepetitionSummary(m *RepetitionMetrics) string {
	if m.WorkDistance.IsLadder() {
		steps := make([]string, len(m.WorkDistance.Ladder))
		for i, d := range m.WorkDistance.Ladder {
			steps[i] = fmt.Sprintf("%dm", int(d))
		}
		s := fmt.Sprintf("%d x (%s) R w/ equal jog recovery", m.Sets, strings.Join(steps, ", "))
		if m.BetweenSetRecoveryMeters > 0 {
			s += fmt.Sprintf(" w/%dm jog", int(m.BetweenSetRecoveryMeters))
		}
		return s
	}

	work := int(m.WorkDistance.Meters)
	recovery := int(recoveryScalar(m.RecoveryDistance))
	if m.Sets <= 1 {
		return fmt.Sprintf("%d x %dm R w/%dm jog", m.RepsPerSet, work, recovery)
	}
	return fmt.Sprintf("%d x(%d x %dm R w/%dm jog) w/%dm jog",
		m.Sets, m.RepsPerSet, work, recovery, int(m.BetweenSetRecoveryMeters))
}

// recoveryScalar collapses a recovery shape to one number for the uniform
// summary grammar. A ladder recovery paired with uniform work is rare; its
// first step stands in for the whole.
func recoveryScalar(d DistanceShape) float64 {
	if d.IsLadder() {
		return d.Ladder[0]
	}
	return d.Meters
}

// formatMiles renders distance per the summary policy: whole miles from 10
// up, one decimal below.
func formatMiles(miles float64) string {
	if miles >= 10 {
		return fmt.Sprintf("%.0f", math.Round(miles))
	}
	return fmt.Sprintf("%.1f", miles)
}

// formatPace renders seconds-per-mile as M:SS.
func formatPace(secondsPerMile float64) string {
	total := int(math.Round(secondsPerMile))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
