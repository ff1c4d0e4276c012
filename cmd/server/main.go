package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iudanet/deltasync/internal/bandwidth"
	"github.com/iudanet/deltasync/internal/batch"
	"github.com/iudanet/deltasync/internal/clock"
	"github.com/iudanet/deltasync/internal/config"
	"github.com/iudanet/deltasync/internal/entity"
	entitysqlite "github.com/iudanet/deltasync/internal/entity/sqlite"
	"github.com/iudanet/deltasync/internal/fallback"
	"github.com/iudanet/deltasync/internal/keystore"
	"github.com/iudanet/deltasync/internal/keystore/boltdb"
	"github.com/iudanet/deltasync/internal/keystore/memory"
	"github.com/iudanet/deltasync/internal/keystore/redis"
	"github.com/iudanet/deltasync/internal/metrics"
	"github.com/iudanet/deltasync/internal/quality"
	"github.com/iudanet/deltasync/internal/server"
	"github.com/iudanet/deltasync/internal/statesync"
	"github.com/iudanet/deltasync/internal/transport/ws"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := cfg.Log.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.Info("DeltaSync server starting",
		"version", Version,
		"store", cfg.Store.Backend,
		"addr", cfg.HTTP.Addr,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	kv, err := openKeystore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Error("Failed to close keystore", "error", err)
		}
	}()

	entities, err := entitysqlite.New(ctx, cfg.Entity.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open entity store: %w", err)
	}
	defer func() {
		if err := entities.Close(); err != nil {
			logger.Error("Failed to close entity store", "error", err)
		}
	}()

	runtime, err := quality.NewProcessProvider()
	if err != nil {
		// без метрик процесса здоровье системы считается по клиентам
		logger.Warn("Process metrics unavailable", "error", err)
		runtime = nil
	}

	bus := quality.NewBus(m)
	defer bus.Close()

	monitor, err := quality.NewMonitor(kv, runtimeProvider(runtime), bus, m, logger, cfg.Quality)
	if err != nil {
		return err
	}

	queue := batch.New(cfg.Queue, logger, m)
	svc := statesync.New(statesync.Deps{
		Clocks:    clock.NewStore(kv, logger, cfg.Store.ClockTTL),
		Entities:  entity.NewCache(entities, queue, logger, cfg.Entity.Cache),
		Queue:     queue,
		Monitor:   monitor,
		Fallback:  fallback.New(monitor, kv, bus, m, logger, cfg.Fallback),
		Bandwidth: bandwidth.NewValidator(kv, monitor, m, logger, cfg.Bandwidth.TargetReduction),
		Metrics:   m,
		Logger:    logger,
	}, cfg.Sync)

	hub := ws.NewHub(svc, m, logger, cfg.WS)
	svc.SetBroadcaster(hub)

	svc.Start(ctx)

	router := server.NewRouter(svc, hub, logger, server.Options{
		Gatherer:   reg,
		Version:    Version,
		JWTSecret:  []byte(cfg.Auth.JWTSecret),
		RateLimit:  cfg.RateLimit.Requests,
		RateWindow: cfg.RateLimit.Window,
	})
	srv := server.New(server.Config{
		Addr:            cfg.HTTP.Addr,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, router, logger)

	serveErr := srv.Run(ctx)

	// WebSocket-соединения не завершаются через http.Server.Shutdown
	hub.Close()

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	closeErr := svc.Close(closeCtx)

	logger.Info("DeltaSync server stopped")
	return errors.Join(serveErr, closeErr)
}

// runtimeProvider не дает передать типизированный nil в интерфейс
func runtimeProvider(p *quality.ProcessProvider) quality.RuntimeProvider {
	if p == nil {
		return nil
	}
	return p
}

func openKeystore(ctx context.Context, cfg config.StoreConfig) (keystore.Store, error) {
	switch cfg.Backend {
	case config.BackendBolt:
		kv, err := boltdb.New(cfg.BoltPath, cfg.SweepInterval)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt keystore: %w", err)
		}
		return kv, nil
	case config.BackendRedis:
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		kv, err := redis.New(pingCtx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open redis keystore: %w", err)
		}
		return kv, nil
	default:
		return memory.New(cfg.SweepInterval), nil
	}
}

func printVersion() {
	fmt.Printf("DeltaSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
