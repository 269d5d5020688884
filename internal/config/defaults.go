package config

import "time"

const defaultPort = 8080

var defaultPprof = Pprof{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Limit:      20,
	Window:     time.Second,
	TTL:        3 * time.Minute,
	MaxBuckets: 10000,
}

var defaultKafka = Kafka{}

var defaultNotify = Notify{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultSession = Session{
	TTL:           30 * time.Minute,
	SweepInterval: time.Minute,
}

var defaultTiming = Timing{
	OfferStagger:      2 * time.Second,
	AcceptDelay:       time.Second,
	FinalizeDelay:     1500 * time.Millisecond,
	PaymentProcessing: 2 * time.Second,
	AssignDelay:       2 * time.Second,
	PickupDelay:       5 * time.Second,
	TransitDelay:      5 * time.Second,
	MultiTransitDelay: 3 * time.Second,
	DeliverDelay:      8 * time.Second,
	SegmentCadence:    8 * time.Second,
	ChatReplyDelay:    2 * time.Second,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultPprof returns the default (disabled) pprof settings.
func DefaultPprof() Pprof {
	return defaultPprof
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultKafka returns the default (disabled) Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultNotify returns the default notifier settings.
func DefaultNotify() Notify {
	return defaultNotify
}

// DefaultSession returns the default session settings.
func DefaultSession() Session {
	return defaultSession
}

// DefaultTiming returns the production simulation delays.
func DefaultTiming() Timing {
	return defaultTiming
}
