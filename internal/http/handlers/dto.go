package handlers

import (
	"github.com/shopspring/decimal"

	"jamjam-delivery/internal/domain"
	"jamjam-delivery/internal/lifecycle"
)

type bookingRequest struct {
	Pickup      string             `json:"pickup"`
	Dropoff     string             `json:"dropoff"`
	Weight      domain.WeightClass `json:"weight"`
	PackageType domain.PackageType `json:"package_type,omitempty"`
}

type contactRequest struct {
	SenderPhone    string `json:"sender_phone"`
	RecipientPhone string `json:"recipient_phone"`
	BackupPhone    string `json:"backup_phone,omitempty"`
}

type insuranceRequest struct {
	DeclaredValue decimal.Decimal `json:"declared_value"`
	Cost          decimal.Decimal `json:"cost"`
}

type optionRequest struct {
	Option domain.DeliveryOption `json:"option"`
}

type payerRequest struct {
	Payer domain.Payer `json:"payer"`
}

type collectCashRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PayoutDetails string          `json:"payout_details"`
}

type paymentMethodRequest struct {
	Method domain.PaymentMethod `json:"method"`
}

type paymentResultRequest struct {
	Success bool `json:"success"`
}

type chatRequest struct {
	Text string `json:"text"`
}

type segmentDTO struct {
	Number           int                  `json:"number"`
	StartPoint       string               `json:"start_point"`
	EndPoint         string               `json:"end_point"`
	DistanceKm       string               `json:"distance_km"`
	EstimatedTimeMin int                  `json:"estimated_time_min"`
	Status           domain.SegmentStatus `json:"status"`
}

type riderDTO struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Rating           float64 `json:"rating"`
	Trips            int     `json:"trips"`
	Distance         string  `json:"distance"`
	Phone            string  `json:"phone"`
	Vehicle          string  `json:"vehicle"`
	LicensePlate     string  `json:"license_plate"`
	EstimatedArrival string  `json:"estimated_arrival"`
	PricePerSegment  string  `json:"price_per_segment"`
}

type assignmentDTO struct {
	Rider      riderDTO   `json:"rider"`
	Segment    segmentDTO `json:"segment"`
	AcceptedAt string     `json:"accepted_at"`
}

type snapshotResponse struct {
	ID     string                `json:"id"`
	Stage  domain.Stage          `json:"stage"`
	Status domain.DeliveryStatus `json:"status"`

	Pickup      string             `json:"pickup,omitempty"`
	Dropoff     string             `json:"dropoff,omitempty"`
	Weight      domain.WeightClass `json:"weight"`
	PackageType domain.PackageType `json:"package_type,omitempty"`

	SenderPhone          string `json:"sender_phone,omitempty"`
	RecipientPhone       string `json:"recipient_phone,omitempty"`
	RecipientBackupPhone string `json:"recipient_backup_phone,omitempty"`

	MultiRider     bool `json:"multi_rider"`
	RequiredRiders int  `json:"required_riders"`
	CurrentSegment int  `json:"current_segment"`

	Option        domain.DeliveryOption `json:"option,omitempty"`
	HasInsurance  bool                  `json:"has_insurance"`
	DeclaredValue string                `json:"declared_value,omitempty"`
	InsuranceCost string                `json:"insurance_cost,omitempty"`
	BasePrice     string                `json:"base_price"`
	TotalPrice    string                `json:"total_price"`

	Payer              domain.Payer `json:"payer,omitempty"`
	CollectCash        bool         `json:"collect_cash"`
	CollectCashAmount  string       `json:"collect_cash_amount,omitempty"`
	CollectCashDetails string       `json:"collect_cash_details,omitempty"`

	PaymentMethod     domain.PaymentMethod `json:"payment_method,omitempty"`
	ProcessingPayment bool                 `json:"processing_payment"`

	Segments      []segmentDTO            `json:"segments"`
	Assignments   []assignmentDTO         `json:"assignments"`
	SelectedRider *riderDTO               `json:"selected_rider,omitempty"`
	Chat          []lifecycle.ChatMessage `json:"chat"`
}
