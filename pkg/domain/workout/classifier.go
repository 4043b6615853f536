package workout

import (
	"context"
	"errors"
	"math"
)

// Whole-activity classification thresholds.
const (
	longRunMinMeters  = 16093.44 // 10 miles
	longRunMinSeconds = 5400.0   // 90 minutes

	repetitionMinWorkLaps = 6
	surgeSpeedDelta       = 1.5 // m/s between consecutive laps

	intervalMinMeters          = 900.0
	intervalMaxMeters          = 1700.0
	intervalRecoveryMaxMeters  = 150.0
	intervalRecoveryMaxSeconds = 90.0

	thresholdMinHR = 150.0

	tempoBlockMinSeconds = 600.0
	tempoBlockMaxSeconds = 2400.0

	easyMinHR = 115.0
	easyMaxHR = 145.0
)

// ClassifyType applies the ordered rule set over lap roles and aggregate
// stats and picks exactly one workout type. The second return value marks
// the unclassifiable-default-to-easy case.
//
// Ordering rationale: repetition workouts have deceptively moderate
// averages, so lap-level structure is checked before anything that trusts
// aggregates. Lap-level pace-zone evidence (everything in zones 1-2 at an
// easy heart rate) likewise outranks the long-run distance threshold: a
// zone-1 90-minute jog is an easy run, not a quality long run.
func ClassifyType(activity *Activity, roles []LapRole) (WorkoutType, bool) {
	if activity == nil {
		return TypeEasy, false
	}
	if len(activity.Laps) == 0 || hasDegenerateLaps(activity.Laps) {
		// Aggregate-only fallback; nothing structural can be trusted.
		return TypeEasy, false
	}

	if isRepetitionWorkout(activity.Laps, roles) {
		return TypeRepetition, false
	}

	if allLapsEasyZones(activity) {
		return TypeEasy, false
	}

	if activity.Distance >= longRunMinMeters || activity.MovingTime >= longRunMinSeconds {
		return TypeLong, false
	}

	if work := intervalWorkLaps(activity.Laps); len(work) >= 2 && hasShortIntervalRecoveries(activity.Laps) {
		if majorityZone(activity.Laps, work, 4) {
			return TypeVO2max, false
		}
		return TypeIntervalTempo, false
	}

	if hasTempoBlock(activity.Laps) {
		return TypeContinuousTempo, false
	}

	return TypeEasy, !looksEasy(activity)
}

func hasDegenerateLaps(laps []Lap) bool {
	for _, lap := range laps {
		if lap.Distance <= 0 || lap.MovingTime <= 0 {
			return true
		}
	}
	return false
}

// isRepetitionWorkout looks for the alternating short-fast / short-slow
// signature: at least 6 work laps, most of them adjacent to a recovery lap
// with a speed differential above the surge threshold.
func isRepetitionWorkout(laps []Lap, roles []LapRole) bool {
	workCount := 0
	for _, r := range roles {
		if r == RoleWork {
			workCount++
		}
	}
	if workCount < repetitionMinWorkLaps {
		return false
	}

	interleaved := 0
	for i, r := range roles {
		if r != RoleWork {
			continue
		}
		if i > 0 && isRestRole(roles[i-1]) && speedDelta(laps[i], laps[i-1]) > surgeSpeedDelta {
			interleaved++
			continue
		}
		if i+1 < len(roles) && isRestRole(roles[i+1]) && speedDelta(laps[i], laps[i+1]) > surgeSpeedDelta {
			interleaved++
		}
	}
	return interleaved*2 >= workCount
}

func isRestRole(r LapRole) bool {
	return r == RoleRecovery || r == RoleBetweenSetRecovery
}

func speedDelta(a, b Lap) float64 {
	return math.Abs(a.AverageSpeed - b.AverageSpeed)
}

// allLapsEasyZones reports whether recorded pace zones all sit in zones 1-2
// with an easy-range aggregate heart rate. Requires at least one zoned lap;
// activities without zone data fall through to the aggregate rules.
func allLapsEasyZones(activity *Activity) bool {
	zoned := 0
	for _, lap := range activity.Laps {
		if lap.PaceZone == 0 {
			continue
		}
		zoned++
		if lap.PaceZone > 2 {
			return false
		}
	}
	if zoned == 0 {
		return false
	}
	hr := activity.AverageHeartrate
	return hr == 0 || (hr >= easyMinHR && hr <= easyMaxHR)
}

// intervalWorkLaps returns the indices of laps that look like cruise or
// VO2max intervals: 900-1700m at threshold heart rate in pace zone 3-4.
func intervalWorkLaps(laps []Lap) []int {
	var work []int
	for i, lap := range laps {
		if lap.Distance >= intervalMinMeters && lap.Distance <= intervalMaxMeters &&
			lap.AverageHeartrate >= thresholdMinHR &&
			(lap.PaceZone == 3 || lap.PaceZone == 4) {
			work = append(work, i)
		}
	}
	return work
}

// hasShortIntervalRecoveries checks that consecutive interval work laps are
// separated by short standing/jog recoveries (<150m or <90s).
func hasShortIntervalRecoveries(laps []Lap) bool {
	work := intervalWorkLaps(laps)
	if len(work) < 2 {
		return false
	}
	for n := 0; n < len(work)-1; n++ {
		found := false
		for i := work[n] + 1; i < work[n+1]; i++ {
			if laps[i].Distance < intervalRecoveryMaxMeters || laps[i].MovingTime < intervalRecoveryMaxSeconds {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func majorityZone(laps []Lap, work []int, zone int) bool {
	hits := 0
	for _, i := range work {
		if laps[i].PaceZone == zone {
			hits++
		}
	}
	return hits*2 > len(work)
}

// hasTempoBlock finds >=2 contiguous laps, each over 1km at threshold
// effort (HR >=150, zone 3-4), totalling 10-40 minutes. One short tail lap
// of the same effort immediately after the block counts toward it.
func hasTempoBlock(laps []Lap) bool {
	isTempoEffort := func(lap Lap) bool {
		return lap.AverageHeartrate >= thresholdMinHR &&
			(lap.PaceZone == 3 || lap.PaceZone == 4)
	}

	for start := 0; start < len(laps); start++ {
		if laps[start].Distance <= boundaryMinMeters || !isTempoEffort(laps[start]) {
			continue
		}
		count := 1
		duration := laps[start].MovingTime
		end := start + 1
		for ; end < len(laps); end++ {
			if laps[end].Distance > boundaryMinMeters && isTempoEffort(laps[end]) {
				count++
				duration += laps[end].MovingTime
				continue
			}
			break
		}
		// Optional short tail at the same effort.
		if end < len(laps) && isTempoEffort(laps[end]) && laps[end].Distance <= boundaryMinMeters {
			duration += laps[end].MovingTime
		}
		if count >= 2 && duration >= tempoBlockMinSeconds && duration <= tempoBlockMaxSeconds {
			return true
		}
	}
	return false
}

// looksEasy is the sanity check on the default branch: heart rate mostly in
// the easy band and no surging between laps.
func looksEasy(activity *Activity) bool {
	hr := activity.AverageHeartrate
	if hr != 0 && (hr < easyMinHR || hr > easyMaxHR) {
		return false
	}
	for i := 1; i < len(activity.Laps); i++ {
		if speedDelta(activity.Laps[i], activity.Laps[i-1]) > surgeSpeedDelta {
			return false
		}
	}
	return true
}

// RuleClassifier is the deterministic, rule-based Classifier. It is pure:
// the same activity always yields the same result.
type RuleClassifier struct{}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify runs the full pipeline: lap roles, type selection, type-specific
// metrics, then the rendered summary and title. Degenerate activities
// degrade to an easy-run result with no metrics rather than failing;
// calculator contract violations propagate.
func (c *RuleClassifier) Classify(ctx context.Context, activity *Activity) (*WorkoutAnalysisResult, error) {
	if activity == nil {
		return nil, errors.New("workout: nil activity")
	}

	roles := ClassifyRoles(activity.Laps)
	workoutType, lowConfidence := ClassifyType(activity, roles)

	result := &WorkoutAnalysisResult{
		Type:          workoutType,
		Roles:         roles,
		Title:         workoutType.Title(),
		LowConfidence: lowConfidence,
	}

	switch workoutType {
	case TypeEasy, TypeLong, TypeContinuousTempo:
		metrics, err := ComputeRunMetrics(activity.Distance, activity.MovingTime, activity.AverageHeartrate)
		if err != nil {
			// Nothing measurable at all. Keep the easy default, flag it.
			result.Type = TypeEasy
			result.Title = TypeEasy.Title()
			result.LowConfidence = true
			return result, nil
		}
		result.Continuous = metrics
		result.Summary = FormatContinuousSummary(result.Type, metrics)

	case TypeIntervalTempo, TypeVO2max:
		var work []Lap
		for _, i := range intervalWorkLaps(activity.Laps) {
			work = append(work, activity.Laps[i])
		}
		metrics, err := ComputeIntervalMetrics(work)
		if err != nil {
			return nil, err
		}
		result.Interval = metrics
		result.Summary = FormatIntervalSummary(result.Type, metrics)

	case TypeRepetition:
		metrics, err := ComputeRepetitionMetrics(activity.Laps)
		if err != nil {
			return nil, err
		}
		result.Repetition = metrics
		result.Summary = FormatRepetitionSummary(metrics)
	}

	return result, nil
}
