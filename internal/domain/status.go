package domain

import "regexp"

type (
	// Stage marks the discrete position of an order in the booking flow.
	Stage string
	// DeliveryStatus is the physical-progress axis, distinct from Stage.
	DeliveryStatus string
	// SegmentStatus is the progress state of a single route segment.
	SegmentStatus string
)

// List of booking flow stages, in canonical order.
const (
	StageBooking          Stage = "booking"
	StageContactDetails   Stage = "contact_details"
	StageRiderMatching    Stage = "rider_matching"
	StageDeliveryOptions  Stage = "delivery_options"
	StageInsuranceOptions Stage = "insurance_options"
	StageWhoPays          Stage = "who_pays"
	StageCollectCash      Stage = "collect_cash"
	StagePayment          Stage = "payment"
	StageTracking         Stage = "tracking"
	StageDelivered        Stage = "delivered"
)

// List of possible delivery statuses, in progression order.
const (
	StatusIdle      DeliveryStatus = "idle"
	StatusSearching DeliveryStatus = "searching"
	StatusAssigned  DeliveryStatus = "assigned"
	StatusPickedUp  DeliveryStatus = "picked_up"
	StatusInTransit DeliveryStatus = "in_transit"
	StatusDelivered DeliveryStatus = "delivered"
)

// List of possible segment statuses.
const (
	SegmentPending    SegmentStatus = "pending"
	SegmentInProgress SegmentStatus = "in_progress"
	SegmentCompleted  SegmentStatus = "completed"
)

var statusOrder = [...]DeliveryStatus{
	StatusIdle, StatusSearching, StatusAssigned, StatusPickedUp, StatusInTransit, StatusDelivered,
}

// Rank returns the position of the status in the fixed progression order,
// or -1 for an unknown status.
func (s DeliveryStatus) Rank() int {
	for i, v := range statusOrder {
		if s == v {
			return i
		}
	}
	return -1
}

// Valid checks if the DeliveryStatus is valid.
func (s DeliveryStatus) Valid() bool {
	return s.Rank() >= 0
}

// CanAdvanceTo reports whether moving to next is a forward step. The status
// axis never regresses except via a full reset; forward skips are allowed.
func (s DeliveryStatus) CanAdvanceTo(next DeliveryStatus) bool {
	a, b := s.Rank(), next.Rank()
	return a >= 0 && b >= 0 && b >= a
}

var allowedStages = [...]Stage{
	StageBooking, StageContactDetails, StageRiderMatching,
	StageDeliveryOptions, StageInsuranceOptions, StageWhoPays,
	StageCollectCash, StagePayment, StageTracking, StageDelivered,
}

// Valid checks if the Stage is valid.
func (s Stage) Valid() bool {
	for _, v := range allowedStages {
		if s == v {
			return true
		}
	}
	return false
}

// rePhone accepts local or international numbers with optional space
// grouping, e.g. "0551234567" or "+233 55 234 5678".
var rePhone = regexp.MustCompile(`^\+?[0-9](?:[0-9 ]{5,17})[0-9]$`)

// ValidatePhone validates the phone number format.
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
