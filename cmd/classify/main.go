// classify runs the classification pipeline offline against a local file:
// either a Garmin FIT file or a JSON dump of a Strava activity with laps.
//
// Usage:
//
//	classify -fit activity.fit
//	classify -json activity.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/lapwise/server/pkg/domain/workout"
	"github.com/lapwise/server/pkg/fitparse"
	"github.com/lapwise/server/pkg/strava"
)

// jsonInput mirrors what `GET /activities/{id}` plus its laps endpoint
// return, so a saved API response can be replayed locally.
type jsonInput struct {
	Activity strava.Activity `json:"activity"`
	Laps     []strava.Lap    `json:"laps"`
}

func main() {
	fitPath := flag.String("fit", "", "path to a FIT activity file")
	jsonPath := flag.String("json", "", "path to a JSON activity dump")
	showRoles := flag.Bool("roles", false, "print the per-lap role breakdown")
	flag.Parse()

	if (*fitPath == "") == (*jsonPath == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -fit or -json is required")
		flag.Usage()
		os.Exit(2)
	}

	activity, err := loadActivity(*fitPath, *jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	result, err := workout.NewRuleClassifier().Classify(context.Background(), activity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Type:    %s\n", result.Type)
	fmt.Printf("Title:   %s\n", result.Title)
	fmt.Printf("Summary: %s\n", result.Summary)
	if result.LowConfidence {
		fmt.Println("Note:    low confidence - defaulted to easy")
	}

	if *showRoles {
		fmt.Println()
		for i, role := range result.Roles {
			lap := activity.Laps[i]
			fmt.Printf("Lap %2d: %7.1fm %6.1fs %5.2fm/s  %s\n",
				i+1, lap.Distance, lap.MovingTime, lap.AverageSpeed, role)
		}
	}
}

func loadActivity(fitPath, jsonPath string) (*workout.Activity, error) {
	if fitPath != "" {
		data, err := os.ReadFile(fitPath)
		if err != nil {
			return nil, err
		}
		return fitparse.ParseActivity(data)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var in jsonInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse %s: %w", jsonPath, err)
	}
	return strava.ToWorkoutActivity(&in.Activity, in.Laps), nil
}
