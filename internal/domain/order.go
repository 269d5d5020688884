package domain

import "github.com/shopspring/decimal"

type (
	// WeightClass is the declared weight class of the package.
	WeightClass string
	// PackageType is an optional package handling category.
	PackageType string
	// DeliveryOption is the chosen delivery speed tier.
	DeliveryOption string
	// PaymentMethod is the chosen payment instrument.
	PaymentMethod string
	// Payer is the party that pays for the delivery.
	Payer string
)

// List of weight classes.
const (
	WeightSmall      WeightClass = "small"
	WeightMedium     WeightClass = "medium"
	WeightLarge      WeightClass = "large"
	WeightExtraLarge WeightClass = "extra-large"
	WeightVeryHeavy  WeightClass = "very-heavy"
)

// List of package types. Empty means unspecified.
const (
	PackageFragile PackageType = "fragile"
	PackageFood    PackageType = "food"
)

// List of delivery options.
const (
	OptionExpress  DeliveryOption = "express"
	OptionStandard DeliveryOption = "standard"
	OptionEconomy  DeliveryOption = "economy"
)

// List of payment methods.
const (
	PayCash        PaymentMethod = "cash"
	PayMobileMoney PaymentMethod = "momo"
	PayCard        PaymentMethod = "card"
)

// List of payers.
const (
	PayerSender    Payer = "sender"
	PayerRecipient Payer = "recipient"
)

var allowedWeights = [...]WeightClass{
	WeightSmall, WeightMedium, WeightLarge, WeightExtraLarge, WeightVeryHeavy,
}

// Valid checks if the WeightClass is valid.
func (w WeightClass) Valid() bool {
	for _, v := range allowedWeights {
		if w == v {
			return true
		}
	}
	return false
}

// Valid checks if the PackageType is valid; empty is allowed.
func (p PackageType) Valid() bool {
	return p == "" || p == PackageFragile || p == PackageFood
}

// Valid checks if the DeliveryOption is valid.
func (o DeliveryOption) Valid() bool {
	return o == OptionExpress || o == OptionStandard || o == OptionEconomy
}

// Valid checks if the PaymentMethod is valid.
func (m PaymentMethod) Valid() bool {
	return m == PayCash || m == PayMobileMoney || m == PayCard
}

// Valid checks if the Payer is valid.
func (p Payer) Valid() bool {
	return p == PayerSender || p == PayerRecipient
}

// Order is the single order instance driven through the booking flow.
// Created on booking submission, mutated through every stage transition,
// replaced by a fresh idle order on reset.
type Order struct {
	Pickup      string
	Dropoff     string
	Weight      WeightClass
	PackageType PackageType

	Stage  Stage
	Status DeliveryStatus

	SenderPhone          string
	RecipientPhone       string
	RecipientBackupPhone string

	MultiRider     bool
	RequiredRiders int
	CurrentSegment int

	Option        DeliveryOption
	HasInsurance  bool
	DeclaredValue decimal.Decimal
	InsuranceCost decimal.Decimal
	BasePrice     decimal.Decimal
	TotalPrice    decimal.Decimal

	Payer              Payer
	CollectCash        bool
	CollectCashAmount  decimal.Decimal
	CollectCashDetails string

	PaymentMethod     PaymentMethod
	ProcessingPayment bool
}

// NewOrder returns the initial idle order.
func NewOrder() Order {
	return Order{
		Stage:          StageBooking,
		Status:         StatusIdle,
		Weight:         WeightSmall,
		RequiredRiders: 1,
		CurrentSegment: 1,
	}
}
