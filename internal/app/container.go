// Package app assembles the delivery service: configuration, logging,
// metrics, flow sessions and the HTTP surface, wired through a dig container.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"jamjam-delivery/internal/config"
	"jamjam-delivery/internal/gateway/notify"
	"jamjam-delivery/internal/http/handlers"
	"jamjam-delivery/internal/http/middleware/ratelimit"
	"jamjam-delivery/internal/http/pprofserver"
	"jamjam-delivery/internal/http/router"
	"jamjam-delivery/internal/logx"
	"jamjam-delivery/internal/session"
	"jamjam-delivery/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{logFatalf: log.Fatalf}
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("domain: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		func() *log.Logger { return log.Default() },
		config.Load,
		NewLogger,
		provideMetrics,
	)
}

type notifierIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newNotifier(in notifierIn) *notify.WebhookGateway {
	n := in.Cfg.Notify
	return notify.NewWebhookGateway(n.URL, nil, in.Logger, in.Retries, notify.RetryConfig{
		MaxAttempts: n.MaxAttempts,
		BaseDelay:   n.BaseDelay,
		MaxDelay:    n.MaxDelay,
	})
}

type managerIn struct {
	dig.In

	Factory session.FlowFactory
	Logger  logx.Logger
	Started prometheus.Counter `name:"sessions_started_total"`
}

func newSessionManager(in managerIn) *session.Manager {
	return session.NewManager(in.Factory, in.Logger, in.Started)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) (*kafka.Producer, error) {
			return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		},
		newNotifier,
		newFlowFactory,
		newSessionManager,
	)
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Limit:      rl.Limit,
		Window:     rl.Window,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

type rateLimitIn struct {
	dig.In

	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}

type pprofServerOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func newPprofServer(cfg *config.Config) pprofServerOut {
	if !cfg.Pprof.Enabled {
		return pprofServerOut{}
	}
	return pprofServerOut{Server: &http.Server{
		Addr: cfg.Pprof.Addr,
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		handlers.New,
		func(mgr *session.Manager) *handlers.SessionHandler {
			return handlers.NewSessionHandler(mgr)
		},
		router.New,
		serverProvider,
		newPprofServer,
	)
}
