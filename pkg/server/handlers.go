package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/lapwise/server/pkg/infrastructure/sentry"
)

// WebhookEvent is Strava's push notification payload.
type WebhookEvent struct {
	ObjectType     string            `json:"object_type"` // "activity" or "athlete"
	ObjectID       int64             `json:"object_id"`
	AspectType     string            `json:"aspect_type"` // "create", "update", "delete"
	OwnerID        int64             `json:"owner_id"`
	SubscriptionID int64             `json:"subscription_id"`
	EventTime      int64             `json:"event_time"`
	Updates        map[string]string `json:"updates,omitempty"`
}

// handleVerification answers Strava's subscription handshake: echo
// hub.challenge back when the verify token matches.
func (s *Server) handleVerification(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") != "subscribe" || q.Get("hub.verify_token") != s.verifyToken {
		s.log.Warn("webhook verification rejected", "mode", q.Get("hub.mode"))
		http.Error(w, "verification failed", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"hub.challenge": q.Get("hub.challenge")})
}

// handleEvent accepts a webhook event and processes it in the background.
// Strava expects a 200 within 2 seconds, so analysis never blocks the
// response.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var event WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	eventsReceived.WithLabelValues(event.AspectType).Inc()

	deliveryID := uuid.New().String()
	log := s.log.With(
		"delivery_id", deliveryID,
		"object_type", event.ObjectType,
		"object_id", event.ObjectID,
		"aspect_type", event.AspectType,
		"owner_id", event.OwnerID,
	)

	if event.ObjectType != "activity" || (event.AspectType != "create" && event.AspectType != "update") {
		log.Info("ignoring webhook event")
		w.WriteHeader(http.StatusOK)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()

		if err := s.processor.ProcessEvent(ctx, event.OwnerID, event.ObjectID); err != nil {
			eventsFailed.Inc()
			log.Error("event processing failed", "error", err)
			sentry.CaptureException(err, map[string]interface{}{
				"delivery_id": deliveryID,
				"activity_id": event.ObjectID,
				"athlete_id":  event.OwnerID,
			}, s.log)
			return
		}
		eventsProcessed.Inc()
		log.Info("event processed")
	}()

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
