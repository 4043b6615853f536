package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapwise/server/pkg/domain/workout"
	"github.com/lapwise/server/pkg/strava"
)

// fakeStrava is an in-memory StravaAPI capturing the write-back.
type fakeStrava struct {
	activity strava.Activity
	laps     []strava.Lap
	updates  []strava.UpdatableActivity
}

func (f *fakeStrava) GetActivity(ctx context.Context, id int64) (*strava.Activity, error) {
	a := f.activity
	return &a, nil
}

func (f *fakeStrava) GetActivityLaps(ctx context.Context, id int64) ([]strava.Lap, error) {
	return f.laps, nil
}

func (f *fakeStrava) UpdateActivity(ctx context.Context, id int64, update strava.UpdatableActivity) error {
	f.updates = append(f.updates, update)
	f.activity.Description = update.Description
	if update.Name != "" {
		f.activity.Name = update.Name
	}
	return nil
}

func easyRunFake() *fakeStrava {
	laps := make([]strava.Lap, 11)
	for i := range laps {
		zone := 1
		if i%2 == 0 {
			zone = 2
		}
		laps[i] = strava.Lap{
			LapIndex: i + 1, Distance: 1609.3, MovingTime: 539.1,
			AverageSpeed: 2.985, AverageHeartrate: 130, PaceZone: zone,
		}
	}
	return &fakeStrava{
		activity: strava.Activity{
			ID: 42, Name: "Morning Run", Type: "Run",
			Distance: 17714.6, MovingTime: 5930, AverageHeartrate: 130,
			Description: "Felt great today.",
		},
		laps: laps,
	}
}

func TestAnalyzeActivity_WritesSummarySection(t *testing.T) {
	api := easyRunFake()
	a := New(nil, nil)

	result, err := a.AnalyzeActivity(context.Background(), api, 42, Options{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, workout.TypeEasy, result.Type)

	require.Len(t, api.updates, 1)
	assert.Equal(t, "Felt great today.\n\n🏃 Workout:\nE 11 mi @ 8:59/mi (HR 130)", api.updates[0].Description)
	assert.Empty(t, api.updates[0].Name, "title untouched without RenameActivity")
}

func TestAnalyzeActivity_ReanalysisReplacesSection(t *testing.T) {
	api := easyRunFake()
	a := New(nil, nil)

	_, err := a.AnalyzeActivity(context.Background(), api, 42, Options{})
	require.NoError(t, err)
	_, err = a.AnalyzeActivity(context.Background(), api, 42, Options{})
	require.NoError(t, err)

	require.Len(t, api.updates, 2)
	assert.Equal(t, api.updates[0].Description, api.updates[1].Description)
}

func TestAnalyzeActivity_RenamesWhenOptedIn(t *testing.T) {
	api := easyRunFake()
	a := New(nil, nil)

	_, err := a.AnalyzeActivity(context.Background(), api, 42, Options{RenameActivity: true})
	require.NoError(t, err)
	require.Len(t, api.updates, 1)
	assert.Equal(t, "Easy Run", api.updates[0].Name)
}

func TestAnalyzeActivity_SkipsNonRun(t *testing.T) {
	api := easyRunFake()
	api.activity.Type = "Ride"
	a := New(nil, nil)

	result, err := a.AnalyzeActivity(context.Background(), api, 42, Options{})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, api.updates)
}

// fakeClassifier returns a canned result or error.
type fakeClassifier struct {
	result *workout.WorkoutAnalysisResult
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, activity *workout.Activity) (*workout.WorkoutAnalysisResult, error) {
	f.calls++
	return f.result, f.err
}

// lowConfidenceFake yields a short hard run with no pace zones, which the
// rules can only default to easy with low confidence.
func lowConfidenceFake() *fakeStrava {
	return &fakeStrava{
		activity: strava.Activity{ID: 7, Type: "Run", Distance: 3000, MovingTime: 900, AverageHeartrate: 160},
		laps: []strava.Lap{
			{LapIndex: 1, Distance: 1000, MovingTime: 300, AverageSpeed: 3.33, AverageHeartrate: 158},
			{LapIndex: 2, Distance: 1000, MovingTime: 300, AverageSpeed: 3.33, AverageHeartrate: 160},
			{LapIndex: 3, Distance: 1000, MovingTime: 300, AverageSpeed: 3.33, AverageHeartrate: 162},
		},
	}
}

func TestAnalyzeActivity_ModelFallback(t *testing.T) {
	fallback := &fakeClassifier{
		result: &workout.WorkoutAnalysisResult{
			Type:    workout.TypeContinuousTempo,
			Title:   workout.TypeContinuousTempo.Title(),
			Summary: "T 1.9 mi @ avg 8:03/mi",
		},
	}
	a := New(fallback, nil)

	result, err := a.AnalyzeActivity(context.Background(), lowConfidenceFake(), 7, Options{UseModelFallback: true})
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, workout.TypeContinuousTempo, result.Type)
}

func TestAnalyzeActivity_FallbackRequiresOptIn(t *testing.T) {
	fallback := &fakeClassifier{}
	a := New(fallback, nil)

	result, err := a.AnalyzeActivity(context.Background(), lowConfidenceFake(), 7, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, fallback.calls)
	assert.Equal(t, workout.TypeEasy, result.Type)
	assert.True(t, result.LowConfidence)
}

func TestAnalyzeActivity_FallbackErrorKeepsRuleResult(t *testing.T) {
	fallback := &fakeClassifier{err: errors.New("model unavailable")}
	a := New(fallback, nil)

	result, err := a.AnalyzeActivity(context.Background(), lowConfidenceFake(), 7, Options{UseModelFallback: true})
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, workout.TypeEasy, result.Type)
	assert.True(t, result.LowConfidence)
}
