// Package ai provides a Gemini-backed workout classifier. It is used as a
// fallback when the rule-based classifier reports low confidence, and only
// for athletes who opted in to model fallback.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lapwise/server/pkg/domain/workout"
)

const defaultModel = "gemini-2.0-flash"

// GeminiClassifier asks a Gemini model to name the workout type from the lap
// breakdown. The model only picks the type; metrics and summary rendering
// stay deterministic.
type GeminiClassifier struct {
	apiKey string
	model  string
	logger *slog.Logger
}

func NewGeminiClassifier(apiKey string, logger *slog.Logger) *GeminiClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiClassifier{apiKey: apiKey, model: defaultModel, logger: logger}
}

// Classify sends the activity's lap table to Gemini and maps the answer onto
// a workout type. The low-confidence path has already exhausted structural
// evidence, so the result carries aggregate metrics only.
func (c *GeminiClassifier) Classify(ctx context.Context, activity *workout.Activity) (*workout.WorkoutAnalysisResult, error) {
	if activity == nil {
		return nil, fmt.Errorf("ai: nil activity")
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("ai: Gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(20)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(activity)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	rawOutput := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			rawOutput += string(text)
		}
	}

	workoutType, err := parseWorkoutType(rawOutput)
	if err != nil {
		return nil, err
	}
	c.logger.Info("model fallback classified activity",
		"activity_id", activity.ID,
		"type", workoutType.String(),
	)

	result := &workout.WorkoutAnalysisResult{
		Type:  workoutType,
		Roles: workout.ClassifyRoles(activity.Laps),
		Title: workoutType.Title(),
	}
	metrics, err := workout.ComputeRunMetrics(activity.Distance, activity.MovingTime, activity.AverageHeartrate)
	if err != nil {
		return nil, err
	}
	result.Continuous = metrics
	result.Summary = workout.FormatContinuousSummary(workoutType, metrics)
	return result, nil
}

func buildPrompt(activity *workout.Activity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %.0fm in %.0fs, avg HR %.0f\n", activity.Distance, activity.MovingTime, activity.AverageHeartrate)
	for i, lap := range activity.Laps {
		fmt.Fprintf(&b, "Lap %d: %.0fm, %.0fs, %.2fm/s, HR %.0f, zone %d\n",
			i+1, lap.Distance, lap.MovingTime, lap.AverageSpeed, lap.AverageHeartrate, lap.PaceZone)
	}

	return fmt.Sprintf(`You are a running coach. Classify the run below into exactly one category.

%s
Categories:
- easy: relaxed aerobic run
- long: extended aerobic run (90+ minutes or 10+ miles)
- tempo: sustained threshold block
- interval: cruise intervals at threshold with short recoveries
- vo2max: hard intervals near max aerobic effort
- repetition: short fast reps with jog recoveries

Respond with ONLY the category name, nothing else.`, b.String())
}

func parseWorkoutType(raw string) (workout.WorkoutType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return workout.TypeEasy, nil
	case "long":
		return workout.TypeLong, nil
	case "tempo":
		return workout.TypeContinuousTempo, nil
	case "interval":
		return workout.TypeIntervalTempo, nil
	case "vo2max":
		return workout.TypeVO2max, nil
	case "repetition":
		return workout.TypeRepetition, nil
	}
	return workout.TypeEasy, fmt.Errorf("ai: unrecognized workout type %q", strings.TrimSpace(raw))
}
