package workout

import (
	"errors"
	"math"
	"testing"
)

func TestComputeRunMetrics(t *testing.T) {
	m, err := ComputeRunMetrics(5011.28, 1238, 171.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(m.DistanceMiles-3.1139) > 0.001 {
		t.Errorf("distance: got %v miles", m.DistanceMiles)
	}
	if math.Abs(m.PaceSecondsPerMile-397.6) > 0.5 {
		t.Errorf("pace: got %v sec/mi", m.PaceSecondsPerMile)
	}
	if m.AverageHeartrate != 171 {
		t.Errorf("heart rate: got %d", m.AverageHeartrate)
	}
}

func TestComputeRunMetrics_ZeroDistance(t *testing.T) {
	if _, err := ComputeRunMetrics(0, 1238, 150); !errors.Is(err, ErrZeroDistance) {
		t.Errorf("expected ErrZeroDistance, got %v", err)
	}
}

func TestComputeIntervalMetrics(t *testing.T) {
	laps := []Lap{
		{Distance: 1609.344, MovingTime: 390, AverageHeartrate: 158},
		{Distance: 1609.344, MovingTime: 395, AverageHeartrate: 162},
		{Distance: 1609.344, MovingTime: 400, AverageHeartrate: 166},
	}
	m, err := ComputeIntervalMetrics(laps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IntervalCount != 3 {
		t.Errorf("count: got %d", m.IntervalCount)
	}
	if math.Abs(m.DistancePerIntervalMiles-1.0) > 0.001 {
		t.Errorf("distance per interval: got %v", m.DistancePerIntervalMiles)
	}
	// Paces are per lap, not an aggregate average.
	want := []float64{390, 395, 400}
	for i, p := range m.IndividualPaceSeconds {
		if math.Abs(p-want[i]) > 0.01 {
			t.Errorf("pace %d: got %v, want %v", i, p, want[i])
		}
	}
	if m.AverageHeartrate != 162 {
		t.Errorf("heart rate: got %d, want 162", m.AverageHeartrate)
	}
}

func TestComputeIntervalMetrics_Contract(t *testing.T) {
	if _, err := ComputeIntervalMetrics(nil); !errors.Is(err, ErrNoWorkLaps) {
		t.Errorf("expected ErrNoWorkLaps, got %v", err)
	}
	laps := []Lap{{Distance: 0, MovingTime: 90}}
	if _, err := ComputeIntervalMetrics(laps); !errors.Is(err, ErrZeroDistance) {
		t.Errorf("expected ErrZeroDistance, got %v", err)
	}
}

func TestComputeRepetitionMetrics_TwoUniformSets(t *testing.T) {
	m, err := ComputeRepetitionMetrics(twoSetRepetitionActivity().Laps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Sets != 2 || m.RepsPerSet != 8 {
		t.Errorf("expected 2x8, got %dx%d", m.Sets, m.RepsPerSet)
	}
	if m.WorkDistance.Meters != 200 {
		t.Errorf("work: got %+v", m.WorkDistance)
	}
	if m.RecoveryDistance.Meters != 200 {
		t.Errorf("recovery: got %+v", m.RecoveryDistance)
	}
	if m.BetweenSetRecoveryMeters != 800 {
		t.Errorf("set break: got %v", m.BetweenSetRecoveryMeters)
	}
}

func TestComputeRepetitionMetrics_SingleSet(t *testing.T) {
	var laps []Lap
	for i := 0; i < 8; i++ {
		laps = append(laps, workLap(200), jogLap(200))
	}
	m, err := ComputeRepetitionMetrics(laps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Sets != 1 || m.RepsPerSet != 8 {
		t.Errorf("expected 1x8, got %dx%d", m.Sets, m.RepsPerSet)
	}
	if m.BetweenSetRecoveryMeters != 0 {
		t.Errorf("expected no set break, got %v", m.BetweenSetRecoveryMeters)
	}
}

func TestComputeRepetitionMetrics_Ladder(t *testing.T) {
	var laps []Lap
	for i := 0; i < 3; i++ {
		laps = append(laps, workLap(200), jogLap(200))
		laps = append(laps, workLap(200), jogLap(200))
		laps = append(laps, workLap(400), jogLap(400))
	}
	m, err := ComputeRepetitionMetrics(laps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.WorkDistance.IsLadder() {
		t.Fatalf("expected ladder work distance, got %+v", m.WorkDistance)
	}
	want := []float64{200, 200, 400}
	if len(m.WorkDistance.Ladder) != len(want) {
		t.Fatalf("ladder: got %v, want %v", m.WorkDistance.Ladder, want)
	}
	for i, d := range m.WorkDistance.Ladder {
		if d != want[i] {
			t.Errorf("ladder[%d]: got %v, want %v", i, d, want[i])
		}
	}
	if m.Sets != 3 || m.RepsPerSet != 3 {
		t.Errorf("expected 3 sets of 3, got %d sets of %d", m.Sets, m.RepsPerSet)
	}
}

func TestComputeRepetitionMetrics_NoPatternFallsBackToMean(t *testing.T) {
	laps := []Lap{
		workLap(200), jogLap(200),
		workLap(300), jogLap(200),
		workLap(600), jogLap(200),
		workLap(400), jogLap(200),
		workLap(200), jogLap(200),
		workLap(300), jogLap(200),
	}
	m, err := ComputeRepetitionMetrics(laps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.WorkDistance.IsLadder() {
		t.Fatalf("expected uniform fallback, got ladder %v", m.WorkDistance.Ladder)
	}
	// Mean of rounded work distances (2000/6 ≈ 333) snaps to 300.
	if m.WorkDistance.Meters != 300 {
		t.Errorf("expected mean work distance 300, got %v", m.WorkDistance.Meters)
	}
}

func TestComputeRepetitionMetrics_NoRecoveryLapsInheritWork(t *testing.T) {
	laps := []Lap{
		workLap(200), workLap(200), workLap(200),
		workLap(200), workLap(200), workLap(200),
	}
	m, err := ComputeRepetitionMetrics(laps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.RecoveryDistance.Meters != 200 {
		t.Errorf("recovery should fall back to the work distance, got %+v", m.RecoveryDistance)
	}
}

func TestComputeRepetitionMetrics_NoWorkLapsIsHardFailure(t *testing.T) {
	laps := []Lap{slowLap(1609), slowLap(1609)}
	if _, err := ComputeRepetitionMetrics(laps); !errors.Is(err, ErrNoWorkLaps) {
		t.Errorf("expected ErrNoWorkLaps, got %v", err)
	}
}
