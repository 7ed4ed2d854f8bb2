package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"provision/internal/audit"
	httpapi "provision/internal/http"
	"provision/internal/listing/cache"
	"provision/internal/listing/handler"
	listingmetrics "provision/internal/listing/metrics"
	"provision/internal/listing/service"
	"provision/internal/listing/store"
	"provision/internal/platform/config"
	"provision/internal/platform/httpserver"
	"provision/internal/platform/logger"
	"provision/internal/platform/metrics"
	"provision/internal/platform/postgres"
	"provision/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	platformMetrics := metrics.New()
	domainMetrics := listingmetrics.New(platformMetrics.Registry())

	var (
		st        store.Store
		stClose   func()
		storeTag  = "memory"
		readiness []httpapi.ReadinessCheck
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err.Error())
			os.Exit(1)
		}
		pg := store.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("schema migration failed", "error", err.Error())
			os.Exit(1)
		}
		st = pg
		stClose = func() { _ = db.Close() }
		storeTag = "postgres"
		readiness = append(readiness, httpapi.ReadinessCheck{Name: "postgres", Check: db.PingContext})
	} else {
		st = store.NewMemory()
	}
	if stClose != nil {
		defer stClose()
	}

	opts := []service.Option{service.WithMetrics(domainMetrics)}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithCache(cache.NewRedis(redisClient.Client, cfg.CacheTTL)))
		readiness = append(readiness, httpapi.ReadinessCheck{Name: "redis", Check: redisClient.Health})
	}

	var auditor audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer kafka.Close()
		auditor = kafka
	} else {
		auditor = audit.NewLogPublisher(log)
	}
	opts = append(opts, service.WithAudit(auditor))

	svc := service.New(st, log, opts...)
	router := httpapi.NewRouter(handler.New(svc, log), httpapi.RouterConfig{
		Logger:    log,
		Metrics:   platformMetrics,
		StaticDir: cfg.StaticDir,
		Readiness: readiness,
	})

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("server started",
		"addr", cfg.Addr,
		"store", storeTag,
		"cache_enabled", redisClient != nil,
		"kafka_enabled", len(cfg.KafkaBrokers) > 0,
	)

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err.Error())
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}
