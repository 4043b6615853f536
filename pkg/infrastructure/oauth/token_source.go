// Package oauth supplies authenticated HTTP clients for the Strava API.
// Tokens live in Firestore; refresh goes through the standard OAuth2
// refresh-token grant.
package oauth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"

	storage "github.com/lapwise/server/pkg/storage/firestore"
)

// stravaTokenURL is Strava's OAuth2 token endpoint.
const stravaTokenURL = "https://www.strava.com/oauth/token"

// expirySkew refreshes tokens slightly before they actually expire, so an
// in-flight request never carries a token that dies mid-request.
const expirySkew = time.Minute

// Token is the credential triple handed to the transport.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// TokenSource returns a valid token. Implementations must be safe for
// concurrent use by multiple goroutines.
type TokenSource interface {
	Token(context.Context) (*Token, error)
	ForceRefresh(context.Context) (*Token, error)
}

// FirestoreTokenSource reads an athlete's token from Firestore, refreshes
// it through the OAuth2 refresh grant when near expiry, and writes the new
// pair back.
type FirestoreTokenSource struct {
	db        *storage.Client
	conf      *oauth2.Config
	athleteID int64
	mu        sync.Mutex
}

func NewFirestoreTokenSource(db *storage.Client, clientID, clientSecret string, athleteID int64) *FirestoreTokenSource {
	return &FirestoreTokenSource{
		db:        db,
		athleteID: athleteID,
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: stravaTokenURL},
		},
	}
}

// Token returns the stored token, refreshing proactively when it is about
// to expire.
func (s *FirestoreTokenSource) Token(ctx context.Context) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.db.GetAthlete(ctx, s.athleteID)
	if err != nil {
		return nil, err
	}
	if time.Until(rec.TokenExpiry) > expirySkew {
		return &Token{
			AccessToken:  rec.AccessToken,
			RefreshToken: rec.RefreshToken,
			Expiry:       rec.TokenExpiry,
		}, nil
	}
	return s.refreshLocked(ctx, rec.RefreshToken)
}

// ForceRefresh refreshes regardless of stored expiry. Used by the transport
// after a 401, which means the stored expiry was wrong.
func (s *FirestoreTokenSource) ForceRefresh(ctx context.Context) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.db.GetAthlete(ctx, s.athleteID)
	if err != nil {
		return nil, err
	}
	return s.refreshLocked(ctx, rec.RefreshToken)
}

func (s *FirestoreTokenSource) refreshLocked(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("athlete %d has no refresh token; re-authorization required", s.athleteID)
	}

	ts := s.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	fresh, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token for athlete %d: %w", s.athleteID, err)
	}

	// Strava rotates refresh tokens; fall back to the old one if the
	// response omitted it.
	newRefresh := fresh.RefreshToken
	if newRefresh == "" {
		newRefresh = refreshToken
	}
	if err := s.db.UpdateTokens(ctx, s.athleteID, fresh.AccessToken, newRefresh, fresh.Expiry); err != nil {
		return nil, err
	}

	return &Token{AccessToken: fresh.AccessToken, RefreshToken: newRefresh, Expiry: fresh.Expiry}, nil
}

// StaticTokenSource wraps a fixed access token, for CLI use and tests.
type StaticTokenSource struct {
	AccessToken string
}

func (s StaticTokenSource) Token(context.Context) (*Token, error) {
	return &Token{AccessToken: s.AccessToken}, nil
}

func (s StaticTokenSource) ForceRefresh(context.Context) (*Token, error) {
	return nil, fmt.Errorf("static token cannot be refreshed")
}
