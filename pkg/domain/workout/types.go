// Package workout classifies a run, represented as an ordered sequence of
// laps, into a structural workout type (long, easy, tempo, intervals,
// repetitions) and derives the numbers needed to render a one-line summary.
//
// Everything in this package is pure and stateless: one Activity in, one
// WorkoutAnalysisResult out. Network fetching, token handling and the
// description write-back live in pkg/strava and pkg/analyzer.
package workout

import "context"

// Lap is one auto- or manually-recorded segment of a run. Units follow the
// Strava API: meters, seconds, m/s, bpm. HeartRate and PaceZone are zero
// when the source activity has no sensor data for them.
type Lap struct {
	Distance         float64 // meters
	MovingTime       float64 // seconds
	AverageSpeed     float64 // m/s
	AverageHeartrate float64 // bpm, 0 if absent
	MaxHeartrate     float64 // bpm, 0 if absent
	PaceZone         int     // 1-4+, 0 if absent
}

// Activity is the whole-run record. Aggregate distance/time come from the
// source service and are not necessarily the exact sum over laps, because
// auto-lap boundaries drop fractional seconds and meters.
type Activity struct {
	ID               int64
	Name             string
	Distance         float64 // meters
	MovingTime       float64 // seconds
	AverageSpeed     float64 // m/s
	MaxSpeed         float64 // m/s
	AverageHeartrate float64 // bpm, 0 if absent
	MaxHeartrate     float64 // bpm, 0 if absent
	Laps             []Lap   // temporal order, order is significant
}

// LapRole tags the structural function of a single lap within the run.
type LapRole int

const (
	RoleUnclassified LapRole = iota
	RoleWarmup
	RoleWork
	RoleRecovery
	RoleBetweenSetRecovery
	RoleCooldown
)

func (r LapRole) String() string {
	switch r {
	case RoleWarmup:
		return "warmup"
	case RoleWork:
		return "work"
	case RoleRecovery:
		return "recovery"
	case RoleBetweenSetRecovery:
		return "between_set_recovery"
	case RoleCooldown:
		return "cooldown"
	default:
		return "unclassified"
	}
}

// WorkoutType is the single structural category assigned to an activity.
type WorkoutType int

const (
	TypeEasy WorkoutType = iota
	TypeLong
	TypeContinuousTempo
	TypeIntervalTempo
	TypeVO2max
	TypeRepetition
)

func (t WorkoutType) String() string {
	switch t {
	case TypeLong:
		return "long"
	case TypeContinuousTempo:
		return "continuous_tempo"
	case TypeIntervalTempo:
		return "interval_tempo"
	case TypeVO2max:
		return "vo2max"
	case TypeRepetition:
		return "repetition"
	default:
		return "easy"
	}
}

// Letter is the log-book shorthand used as the summary prefix.
func (t WorkoutType) Letter() string {
	switch t {
	case TypeLong:
		return "L"
	case TypeContinuousTempo, TypeIntervalTempo:
		return "T"
	case TypeVO2max:
		return "I"
	case TypeRepetition:
		return "R"
	default:
		return "E"
	}
}

// Title is the human-readable workout name used for the activity title.
func (t WorkoutType) Title() string {
	switch t {
	case TypeLong:
		return "Long Run"
	case TypeContinuousTempo:
		return "Tempo Run"
	case TypeIntervalTempo:
		return "Tempo Intervals"
	case TypeVO2max:
		return "VO2max Intervals"
	case TypeRepetition:
		return "Repetition Workout"
	default:
		return "Easy Run"
	}
}

// RepeatingPattern is the shortest unit whose repetition accounts for a
// sequence of rounded lap distances, plus the number of complete
// repetitions observed. A truncated final repetition is tolerated but not
// counted in Sets.
type RepeatingPattern struct {
	Unit []float64
	Sets int
}

// DistanceShape is the tagged variant for work/recovery distances: either
// one uniform distance or a repeating ladder of distances.
type DistanceShape struct {
	Ladder []float64 // nil for uniform shapes
	Meters float64   // uniform distance; 0 when Ladder is set
}

// UniformDistance builds a single-distance shape.
func UniformDistance(meters float64) DistanceShape {
	return DistanceShape{Meters: meters}
}

// LadderDistance builds a repeating non-uniform shape.
func LadderDistance(seq []float64) DistanceShape {
	return DistanceShape{Ladder: seq}
}

// IsLadder reports whether the shape is a multi-distance ladder.
func (d DistanceShape) IsLadder() bool {
	return len(d.Ladder) > 0
}

// ContinuousMetrics describes a steady run (easy, long, continuous tempo).
type ContinuousMetrics struct {
	DistanceMiles      float64
	PaceSecondsPerMile float64
	AverageHeartrate   int
}

// IntervalMetrics describes a cruise-interval or VO2max session. Paces are
// computed per work lap, never back-solved from aggregates.
type IntervalMetrics struct {
	IntervalCount            int
	DistancePerIntervalMiles float64
	IndividualPaceSeconds    []float64
	AverageHeartrate         int
}

// RepetitionMetrics describes a short-rep workout in terms of its set/rep
// structure.
type RepetitionMetrics struct {
	Sets                     int
	RepsPerSet               int
	WorkDistance             DistanceShape
	RecoveryDistance         DistanceShape
	BetweenSetRecoveryMeters float64
}

// WorkoutAnalysisResult is the full classification output. Exactly one of
// the metrics fields is set, keyed by Type; all may be nil when the input
// was too degenerate to compute metrics from.
type WorkoutAnalysisResult struct {
	Type       WorkoutType
	Roles      []LapRole
	Continuous *ContinuousMetrics
	Interval   *IntervalMetrics
	Repetition *RepetitionMetrics
	Summary    string
	Title      string

	// LowConfidence marks the unclassifiable-default-to-easy path: none of
	// the structural rules fired and the aggregates do not look like a
	// normal easy run either. Callers may route these to a fallback
	// Classifier.
	LowConfidence bool
}

// Classifier is the capability interface for anything that can turn an
// activity into an analysis result. The deterministic rule engine
// (RuleClassifier) is the canonical implementation; alternative
// implementations (e.g. model-backed) sit behind the same interface and
// are selected by the caller, never inside the rule engine itself.
type Classifier interface {
	Classify(ctx context.Context, activity *Activity) (*WorkoutAnalysisResult, error)
}
