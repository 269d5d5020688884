// Package catalog holds the static candidate-rider catalog. Entries are
// fixed mock data and immutable during a session.
package catalog

import (
	"github.com/shopspring/decimal"

	"jamjam-delivery/internal/domain"
)

var riders = []domain.Rider{
	{
		ID:               "1",
		Name:             "James Wilson",
		Rating:           4.9,
		Trips:            1240,
		Distance:         "1.2 km",
		Phone:            "+233 55 234 5678",
		Vehicle:          "Yamaha MT-07",
		LicensePlate:     "ABC 123",
		EstimatedArrival: "5 mins",
		PricePerSegment:  decimal.New(850, -2),
	},
	{
		ID:               "2",
		Name:             "Sarah Chen",
		Rating:           4.8,
		Trips:            856,
		Distance:         "0.8 km",
		Phone:            "+233 55 876 5432",
		Vehicle:          "Honda CBR 650R",
		LicensePlate:     "XYZ 789",
		EstimatedArrival: "3 mins",
		PricePerSegment:  decimal.New(900, -2),
	},
	{
		ID:               "3",
		Name:             "Marcus Rodriguez",
		Rating:           4.7,
		Trips:            520,
		Distance:         "2.5 km",
		Phone:            "+233 55 345 6789",
		Vehicle:          "Kawasaki Ninja 400",
		LicensePlate:     "DEF 456",
		EstimatedArrival: "8 mins",
		PricePerSegment:  decimal.New(775, -2),
	},
	{
		ID:               "4",
		Name:             "Emily Watson",
		Rating:           4.9,
		Trips:            1050,
		Distance:         "1.5 km",
		Phone:            "+233 55 567 8901",
		Vehicle:          "Suzuki GSX-R750",
		LicensePlate:     "GHI 012",
		EstimatedArrival: "6 mins",
		PricePerSegment:  decimal.New(825, -2),
	},
}

// Riders returns a copy of the candidate pool in catalog order.
func Riders() []domain.Rider {
	out := make([]domain.Rider, len(riders))
	copy(out, riders)
	return out
}

// ByID returns the rider with the given id, or nil.
func ByID(id string) *domain.Rider {
	for i := range riders {
		if riders[i].ID == id {
			r := riders[i]
			return &r
		}
	}
	return nil
}

// Size returns the number of catalog riders.
func Size() int { return len(riders) }
