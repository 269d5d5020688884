package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores delivery service settings.
type Config struct {
	Port      int
	Pprof     Pprof
	RateLimit RateLimit
	Kafka     Kafka
	Notify    Notify
	Session   Session
	Timing    Timing
}

// Pprof stores pprof endpoint settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// RateLimit stores per-client HTTP rate limit settings.
type RateLimit struct {
	Enabled    bool
	Limit      int
	Window     time.Duration
	TTL        time.Duration // evict idle client buckets after this
	MaxBuckets int           // cap on tracked clients
}

// Kafka stores transition-event producer settings. Empty brokers or topic
// disable the producer.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Notify stores the delivery-completion webhook settings. An empty URL
// disables the notifier.
type Notify struct {
	URL         string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Session stores session lifecycle settings.
type Session struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// Timing stores every simulated delay of the order flow. Shorten these to
// compress the simulation.
type Timing struct {
	OfferStagger      time.Duration
	AcceptDelay       time.Duration
	FinalizeDelay     time.Duration
	PaymentProcessing time.Duration
	AssignDelay       time.Duration
	PickupDelay       time.Duration
	TransitDelay      time.Duration
	MultiTransitDelay time.Duration
	DeliverDelay      time.Duration
	SegmentCadence    time.Duration
	ChatReplyDelay    time.Duration
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		Pprof:     DefaultPprof(),
		RateLimit: DefaultRateLimit(),
		Kafka:     DefaultKafka(),
		Notify:    DefaultNotify(),
		Session:   DefaultSession(),
		Timing:    DefaultTiming(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}

	if v := os.Getenv("PPROF_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PPROF_ENABLED: %q", v)
		}
		cfg.Pprof.Enabled = b
	}
	if v := os.Getenv("PPROF_ADDR"); v != "" {
		cfg.Pprof.Addr = v
	}
	cfg.Pprof.User = os.Getenv("PPROF_USER")
	cfg.Pprof.Pass = os.Getenv("PPROF_PASS")

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_ENABLED: %q", v)
		}
		cfg.RateLimit.Enabled = b
	}
	if err := intEnv("RATE_LIMIT", &cfg.RateLimit.Limit); err != nil {
		return nil, err
	}
	if err := durationEnv("RATE_LIMIT_WINDOW", &cfg.RateLimit.Window); err != nil {
		return nil, err
	}
	if err := durationEnv("RATE_LIMIT_TTL", &cfg.RateLimit.TTL); err != nil {
		return nil, err
	}
	if err := intEnv("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets); err != nil {
		return nil, err
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}

	if v := os.Getenv("NOTIFY_URL"); v != "" {
		cfg.Notify.URL = v
	}
	if err := intEnv("NOTIFY_MAX_ATTEMPTS", &cfg.Notify.MaxAttempts); err != nil {
		return nil, err
	}
	if err := durationEnv("NOTIFY_BASE_DELAY", &cfg.Notify.BaseDelay); err != nil {
		return nil, err
	}
	if err := durationEnv("NOTIFY_MAX_DELAY", &cfg.Notify.MaxDelay); err != nil {
		return nil, err
	}

	if err := durationEnv("SESSION_TTL", &cfg.Session.TTL); err != nil {
		return nil, err
	}
	if err := durationEnv("SESSION_SWEEP_INTERVAL", &cfg.Session.SweepInterval); err != nil {
		return nil, err
	}

	for name, dst := range map[string]*time.Duration{
		"TIMING_OFFER_STAGGER":      &cfg.Timing.OfferStagger,
		"TIMING_ACCEPT_DELAY":       &cfg.Timing.AcceptDelay,
		"TIMING_FINALIZE_DELAY":     &cfg.Timing.FinalizeDelay,
		"TIMING_PAYMENT_PROCESSING": &cfg.Timing.PaymentProcessing,
		"TIMING_ASSIGN_DELAY":       &cfg.Timing.AssignDelay,
		"TIMING_PICKUP_DELAY":       &cfg.Timing.PickupDelay,
		"TIMING_TRANSIT_DELAY":      &cfg.Timing.TransitDelay,
		"TIMING_MULTI_TRANSIT":      &cfg.Timing.MultiTransitDelay,
		"TIMING_DELIVER_DELAY":      &cfg.Timing.DeliverDelay,
		"TIMING_SEGMENT_CADENCE":    &cfg.Timing.SegmentCadence,
		"TIMING_CHAT_REPLY_DELAY":   &cfg.Timing.ChatReplyDelay,
	} {
		if err := durationEnv(name, dst); err != nil {
			return nil, err
		}
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Notify.MaxAttempts < 1 {
		return nil, fmt.Errorf("invalid NOTIFY_MAX_ATTEMPTS: %d", cfg.Notify.MaxAttempts)
	}
	return cfg, nil
}

func intEnv(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", name, v)
	}
	*dst = n
	return nil
}

func durationEnv(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", name, v)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
