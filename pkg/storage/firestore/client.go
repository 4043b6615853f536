// Package firestore is the typed storage layer for athlete records. The
// core classification pipeline never touches it; only the webhook service
// and the OAuth token source do.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
)

const athletesCollection = "athletes"

// AthleteRecord is one connected Strava athlete: OAuth credentials plus
// per-athlete analysis settings.
type AthleteRecord struct {
	AthleteID    int64     `firestore:"athlete_id"`
	AccessToken  string    `firestore:"access_token"`
	RefreshToken string    `firestore:"refresh_token"`
	TokenExpiry  time.Time `firestore:"token_expiry"`

	// RenameActivities controls whether the analyzer overwrites the
	// activity title in addition to the description section.
	RenameActivities bool `firestore:"rename_activities"`

	// UseModelFallback opts the athlete in to the model-backed classifier
	// for low-confidence results.
	UseModelFallback bool `firestore:"use_model_fallback"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// Client wraps a Firestore connection with typed accessors.
type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) athleteDoc(athleteID int64) *firestore.DocumentRef {
	return c.fs.Collection(athletesCollection).Doc(fmt.Sprintf("%d", athleteID))
}

// GetAthlete loads one athlete record by Strava athlete id.
func (c *Client) GetAthlete(ctx context.Context, athleteID int64) (*AthleteRecord, error) {
	snap, err := c.athleteDoc(athleteID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get athlete %d: %w", athleteID, err)
	}
	var rec AthleteRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("decode athlete %d: %w", athleteID, err)
	}
	return &rec, nil
}

// SaveAthlete writes a full athlete record, stamping UpdatedAt.
func (c *Client) SaveAthlete(ctx context.Context, rec *AthleteRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = rec.UpdatedAt
	}
	if _, err := c.athleteDoc(rec.AthleteID).Set(ctx, rec); err != nil {
		return fmt.Errorf("save athlete %d: %w", rec.AthleteID, err)
	}
	return nil
}

// UpdateTokens persists a refreshed token pair without touching settings.
func (c *Client) UpdateTokens(ctx context.Context, athleteID int64, access, refresh string, expiry time.Time) error {
	_, err := c.athleteDoc(athleteID).Update(ctx, []firestore.Update{
		{Path: "access_token", Value: access},
		{Path: "refresh_token", Value: refresh},
		{Path: "token_expiry", Value: expiry},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update tokens for athlete %d: %w", athleteID, err)
	}
	return nil
}

// DeleteAthlete removes a record when the athlete revokes access.
func (c *Client) DeleteAthlete(ctx context.Context, athleteID int64) error {
	if _, err := c.athleteDoc(athleteID).Delete(ctx); err != nil {
		return fmt.Errorf("delete athlete %d: %w", athleteID, err)
	}
	return nil
}
