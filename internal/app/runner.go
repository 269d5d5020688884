package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"jamjam-delivery/internal/config"
	"jamjam-delivery/internal/session"
	"jamjam-delivery/internal/transport/kafka"
)

// MustRun starts the HTTP servers using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In

	Ctx      context.Context
	Cfg      *config.Config
	Logger   *log.Logger
	Server   *http.Server
	Pprof    *http.Server `name:"pprof_server" optional:"true"`
	Manager  *session.Manager
	Producer *kafka.Producer
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startServer(in.Server, in.Logger, "service-delivery")
		if in.Pprof != nil {
			startServer(in.Pprof, in.Logger, "pprof")
		}
		go in.Manager.Run(in.Ctx, in.Cfg.Session.TTL, in.Cfg.Session.SweepInterval)

		waitForShutdown(in.Ctx, in.Logger)
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		closeResources(in, in.Logger)
		return nil
	})
}

func startServer(server *http.Server, logger *log.Logger, name string) {
	go func() {
		logger.Printf("%s listening on %s", name, server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("%s listen error: %v", name, err)
		}
	}()
}

func waitForShutdown(ctx context.Context, logger *log.Logger) {
	<-ctx.Done()
	logger.Println("shutting down service-delivery...")
}

func gracefulShutdown(srv *http.Server, logger *log.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
}

func closeResources(in runIn, logger *log.Logger) {
	if err := in.Server.Close(); err != nil {
		logger.Printf("server close error: %v", err)
	}
	if in.Pprof != nil {
		if err := in.Pprof.Close(); err != nil {
			logger.Printf("pprof close error: %v", err)
		}
	}
	if err := in.Producer.Close(); err != nil {
		logger.Printf("producer close error: %v", err)
	}
}
