package kafka

import (
	"time"

	"jamjam-delivery/internal/lifecycle"
)

// TransitionDTO is the wire form of a single order transition.
type TransitionDTO struct {
	SessionID string    `json:"session_id"`
	Type      string    `json:"type"`
	Stage     string    `json:"stage"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

// FromEvent converts a lifecycle event into its wire form.
func FromEvent(sessionID string, ev lifecycle.Event) TransitionDTO {
	return TransitionDTO{
		SessionID: sessionID,
		Type:      string(ev.Type),
		Stage:     string(ev.Stage),
		Status:    string(ev.Status),
		At:        ev.At,
	}
}
