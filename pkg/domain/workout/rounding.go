package workout

import "math"

// standardDistances is the ladder of conventional track/road rep distances,
// in meters. Order matters: ties between equally-near values resolve to the
// first one found.
var standardDistances = []float64{100, 200, 300, 400, 600, 800, 1000, 1200, 1600}

// standardDistanceTolerance is the relative error within which a raw GPS
// distance snaps to a conventional distance (205m reads as a 200m rep).
const standardDistanceTolerance = 0.15

// RoundToStandardDistance snaps meters to the nearest conventional rep
// distance when within tolerance, otherwise rounds to the nearest 100m.
// Total function: non-positive input returns 0.
func RoundToStandardDistance(meters float64) float64 {
	if meters <= 0 {
		return 0
	}

	closest := standardDistances[0]
	bestDiff := math.Abs(meters - closest)
	for _, d := range standardDistances[1:] {
		if diff := math.Abs(meters - d); diff < bestDiff {
			bestDiff = diff
			closest = d
		}
	}

	if bestDiff/meters < standardDistanceTolerance {
		return closest
	}
	return math.Round(meters/100) * 100
}
