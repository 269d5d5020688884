package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rider is a candidate delivery rider from the static catalog.
// Catalog entries are immutable during a session.
type Rider struct {
	ID               string
	Name             string
	Rating           float64
	Trips            int
	Distance         string
	Phone            string
	Vehicle          string
	LicensePlate     string
	EstimatedArrival string
	PricePerSegment  decimal.Decimal
}

// RiderAssignment pairs an accepted rider with exactly one route segment.
type RiderAssignment struct {
	Rider      Rider
	Segment    RouteSegment
	AcceptedAt time.Time
}

// ValidAssignments reports whether the assigned segment numbers form a
// permutation of 1..required with no gaps or duplicates.
func ValidAssignments(assignments []RiderAssignment, required int) bool {
	if len(assignments) != required {
		return false
	}
	seen := make(map[int]bool, required)
	for _, a := range assignments {
		n := a.Segment.Number
		if n < 1 || n > required || seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}
