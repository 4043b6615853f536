// Package analyzer orchestrates the classification pipeline: fetch an
// activity from Strava, classify it, and write the summary back into the
// activity's description.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lapwise/server/pkg/description"
	"github.com/lapwise/server/pkg/domain/workout"
	"github.com/lapwise/server/pkg/infrastructure/oauth"
	storage "github.com/lapwise/server/pkg/storage/firestore"
	"github.com/lapwise/server/pkg/strava"
)

// SummaryHeader marks the analyzer's section in the activity description.
// Re-analysis replaces this section instead of appending another copy.
const SummaryHeader = "🏃 Workout:"

// StravaAPI is the slice of the Strava client the analyzer depends on.
type StravaAPI interface {
	GetActivity(ctx context.Context, activityID int64) (*strava.Activity, error)
	GetActivityLaps(ctx context.Context, activityID int64) ([]strava.Lap, error)
	UpdateActivity(ctx context.Context, activityID int64, update strava.UpdatableActivity) error
}

// Options are the per-athlete analysis settings.
type Options struct {
	// RenameActivity overwrites the activity title with the workout title.
	RenameActivity bool
	// UseModelFallback routes low-confidence results through the model
	// classifier when one is configured.
	UseModelFallback bool
}

// Analyzer classifies a single activity and writes the result back.
type Analyzer struct {
	rules    workout.Classifier
	fallback workout.Classifier
	logger   *slog.Logger
}

// New builds an analyzer around the rule classifier. fallback may be nil,
// which disables model fallback regardless of athlete settings.
func New(fallback workout.Classifier, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		rules:    workout.NewRuleClassifier(),
		fallback: fallback,
		logger:   logger,
	}
}

// AnalyzeActivity runs the full pipeline for one activity. Non-run
// activities are skipped and return a nil result with no error.
func (a *Analyzer) AnalyzeActivity(ctx context.Context, api StravaAPI, activityID int64, opts Options) (*workout.WorkoutAnalysisResult, error) {
	activity, err := api.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(activity.Type, "Run") {
		a.logger.Info("skipping non-run activity",
			"activity_id", activityID,
			"type", activity.Type,
		)
		return nil, nil
	}

	laps, err := api.GetActivityLaps(ctx, activityID)
	if err != nil {
		return nil, err
	}

	result, err := a.rules.Classify(ctx, strava.ToWorkoutActivity(activity, laps))
	if err != nil {
		return nil, fmt.Errorf("classify activity %d: %w", activityID, err)
	}

	if result.LowConfidence && opts.UseModelFallback && a.fallback != nil {
		fallbackResult, err := a.fallback.Classify(ctx, strava.ToWorkoutActivity(activity, laps))
		if err != nil {
			// Keep the rule result; fallback is best-effort.
			a.logger.Warn("model fallback failed, keeping rule result",
				"activity_id", activityID,
				"error", err,
			)
		} else {
			result = fallbackResult
		}
	}

	update := strava.UpdatableActivity{
		Description: description.ReplaceSection(activity.Description, SummaryHeader, SummaryHeader+"\n"+result.Summary),
	}
	if opts.RenameActivity {
		update.Name = result.Title
	}
	if err := api.UpdateActivity(ctx, activityID, update); err != nil {
		return nil, err
	}

	a.logger.Info("activity analyzed",
		"activity_id", activityID,
		"type", result.Type.String(),
		"summary", result.Summary,
		"low_confidence", result.LowConfidence,
	)
	return result, nil
}

// Service binds the analyzer to athlete records: it resolves credentials
// from storage and builds an authenticated Strava client per event.
type Service struct {
	db           *storage.Client
	clientID     string
	clientSecret string
	analyzer     *Analyzer
	logger       *slog.Logger
}

func NewService(db *storage.Client, clientID, clientSecret string, fallback workout.Classifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:           db,
		clientID:     clientID,
		clientSecret: clientSecret,
		analyzer:     New(fallback, logger),
		logger:       logger,
	}
}

// ProcessEvent handles one webhook activity event end to end.
func (s *Service) ProcessEvent(ctx context.Context, athleteID, activityID int64) error {
	rec, err := s.db.GetAthlete(ctx, athleteID)
	if err != nil {
		return fmt.Errorf("load athlete %d: %w", athleteID, err)
	}

	source := oauth.NewFirestoreTokenSource(s.db, s.clientID, s.clientSecret, athleteID)
	api := strava.NewClient(oauth.NewHTTPClient(source))

	_, err = s.analyzer.AnalyzeActivity(ctx, api, activityID, Options{
		RenameActivity:   rec.RenameActivities,
		UseModelFallback: rec.UseModelFallback,
	})
	return err
}
