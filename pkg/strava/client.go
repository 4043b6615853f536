// Package strava is a minimal client for the Strava v3 API: fetch an
// activity with its laps, write back a title and description. Auth is the
// caller's concern via the injected HTTP client (see pkg/infrastructure/oauth).
package strava

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lapwise/server/pkg/domain/workout"
	"github.com/lapwise/server/pkg/infrastructure/httputil"
)

const defaultBaseURL = "https://www.strava.com/api/v3"

// Client is an API client for Strava.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient wraps an authenticated HTTP client. A nil client falls back to
// a plain client with a sane timeout (useful only against test servers).
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: defaultBaseURL, client: httpClient}
}

// WithBaseURL overrides the API root, for tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// Activity is the detailed activity representation returned by Strava.
type Activity struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Distance         float64 `json:"distance"`     // meters
	MovingTime       float64 `json:"moving_time"`  // seconds
	AverageSpeed     float64 `json:"average_speed"` // m/s
	MaxSpeed         float64 `json:"max_speed"`     // m/s
	AverageHeartrate float64 `json:"average_heartrate,omitempty"`
	MaxHeartrate     float64 `json:"max_heartrate,omitempty"`
	Description      string  `json:"description,omitempty"`
}

// Lap is one lap of an activity.
type Lap struct {
	LapIndex         int     `json:"lap_index"`
	Distance         float64 `json:"distance"`
	MovingTime       float64 `json:"moving_time"`
	AverageSpeed     float64 `json:"average_speed"`
	AverageHeartrate float64 `json:"average_heartrate,omitempty"`
	MaxHeartrate     float64 `json:"max_heartrate,omitempty"`
	PaceZone         int     `json:"pace_zone,omitempty"`
}

// UpdatableActivity carries the writable fields of an activity update.
type UpdatableActivity struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// GetActivity fetches the detailed activity record.
func (c *Client) GetActivity(ctx context.Context, activityID int64) (*Activity, error) {
	var out Activity
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/activities/%d", activityID), nil, &out); err != nil {
		return nil, fmt.Errorf("get activity %d: %w", activityID, err)
	}
	return &out, nil
}

// GetActivityLaps fetches the activity's laps in temporal order.
func (c *Client) GetActivityLaps(ctx context.Context, activityID int64) ([]Lap, error) {
	var out []Lap
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/activities/%d/laps", activityID), nil, &out); err != nil {
		return nil, fmt.Errorf("get laps for activity %d: %w", activityID, err)
	}
	return out, nil
}

// UpdateActivity writes a new name and/or description.
func (c *Client) UpdateActivity(ctx context.Context, activityID int64, update UpdatableActivity) error {
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/activities/%d", activityID), update, nil); err != nil {
		return fmt.Errorf("update activity %d: %w", activityID, err)
	}
	return nil
}

// FetchWorkoutActivity pulls the activity and its laps and converts them to
// the domain model the classifier consumes.
func (c *Client) FetchWorkoutActivity(ctx context.Context, activityID int64) (*workout.Activity, error) {
	activity, err := c.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	laps, err := c.GetActivityLaps(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return ToWorkoutActivity(activity, laps), nil
}

// ToWorkoutActivity maps API representations onto the domain model,
// preserving lap order.
func ToWorkoutActivity(a *Activity, laps []Lap) *workout.Activity {
	out := &workout.Activity{
		ID:               a.ID,
		Name:             a.Name,
		Distance:         a.Distance,
		MovingTime:       a.MovingTime,
		AverageSpeed:     a.AverageSpeed,
		MaxSpeed:         a.MaxSpeed,
		AverageHeartrate: a.AverageHeartrate,
		MaxHeartrate:     a.MaxHeartrate,
		Laps:             make([]workout.Lap, 0, len(laps)),
	}
	for _, lap := range laps {
		out.Laps = append(out.Laps, workout.Lap{
			Distance:         lap.Distance,
			MovingTime:       lap.MovingTime,
			AverageSpeed:     lap.AverageSpeed,
			AverageHeartrate: lap.AverageHeartrate,
			MaxHeartrate:     lap.MaxHeartrate,
			PaceZone:         lap.PaceZone,
		})
	}
	return out
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := httputil.ParseErrorResponse(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
