package lifecycle

import (
	"time"

	"jamjam-delivery/internal/domain"
)

// EventType identifies a discrete transition event emitted by the flow.
type EventType string

// List of emitted event types.
const (
	EventStageChanged       EventType = "stage_changed"
	EventStatusChanged      EventType = "status_changed"
	EventBroadcastCancelled EventType = "broadcast_cancelled"
	EventPaymentProcessed   EventType = "payment_processed"
	EventDelivered          EventType = "delivered"
	EventReset              EventType = "reset"
)

// Event is a transition notification for collaborators (event transport,
// completion notifier, metrics). It carries the post-transition state.
type Event struct {
	Type   EventType             `json:"type"`
	Stage  domain.Stage          `json:"stage"`
	Status domain.DeliveryStatus `json:"status"`
	At     time.Time             `json:"at"`
}

// Sink consumes flow events. Sinks run while the flow lock is held and
// must not call back into the flow.
type Sink func(Event)
