package config_test

import (
	"os"
	"testing"
	"time"

	"jamjam-delivery/internal/config"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	t.Cleanup(func() {
		pflag.CommandLine = old
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT", "PPROF_ENABLED", "PPROF_ADDR", "PPROF_USER", "PPROF_PASS",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT", "RATE_LIMIT_WINDOW",
		"RATE_LIMIT_TTL", "RATE_LIMIT_MAX_BUCKETS",
		"KAFKA_BROKERS", "KAFKA_TOPIC",
		"NOTIFY_URL", "NOTIFY_MAX_ATTEMPTS", "NOTIFY_BASE_DELAY", "NOTIFY_MAX_DELAY",
		"SESSION_TTL", "SESSION_SWEEP_INTERVAL",
		"TIMING_SEGMENT_CADENCE", "TIMING_PAYMENT_PROCESSING",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 8080, cfg.Port)
	require.False(t, cfg.Pprof.Enabled)
	require.Equal(t, "127.0.0.1:6060", cfg.Pprof.Addr)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 20, cfg.RateLimit.Limit)
	require.Equal(t, 3*time.Minute, cfg.RateLimit.TTL)
	require.Equal(t, 10000, cfg.RateLimit.MaxBuckets)
	require.Empty(t, cfg.Kafka.Brokers)
	require.Empty(t, cfg.Notify.URL)
	require.Equal(t, 4, cfg.Notify.MaxAttempts)
	require.Equal(t, 30*time.Minute, cfg.Session.TTL)
	require.Equal(t, 8*time.Second, cfg.Timing.SegmentCadence)
	require.Equal(t, 2*time.Second, cfg.Timing.PaymentProcessing)
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_TTL", "90s")
	t.Setenv("RATE_LIMIT_MAX_BUCKETS", "500")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("KAFKA_TOPIC", "order-transitions")
	t.Setenv("NOTIFY_URL", "https://hooks.example/delivered")
	t.Setenv("NOTIFY_MAX_ATTEMPTS", "2")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("TIMING_SEGMENT_CADENCE", "100ms")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 9090, cfg.Port)
	require.False(t, cfg.RateLimit.Enabled)
	require.Equal(t, 90*time.Second, cfg.RateLimit.TTL)
	require.Equal(t, 500, cfg.RateLimit.MaxBuckets)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "order-transitions", cfg.Kafka.Topic)
	require.Equal(t, "https://hooks.example/delivered", cfg.Notify.URL)
	require.Equal(t, 2, cfg.Notify.MaxAttempts)
	require.Equal(t, 5*time.Minute, cfg.Session.TTL)
	require.Equal(t, 100*time.Millisecond, cfg.Timing.SegmentCadence)
}

func TestLoad_InvalidPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "70000")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidDuration(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("TIMING_PAYMENT_PROCESSING", "soon")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidAttempts(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("NOTIFY_MAX_ATTEMPTS", "0")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}
