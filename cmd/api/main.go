package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/appointment-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/appointment-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/appointment-scheduler/internal/logger"
	"github.com/BruksfildServices01/appointment-scheduler/internal/metrics"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/routes"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
	"github.com/BruksfildServices01/appointment-scheduler/internal/tracing"
)

const serviceName = "appointment-scheduler"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(serviceName, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔭 TRACING
	// ======================================================
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.OTelEnabled,
		ServiceName: serviceName,
		Endpoint:    cfg.OTelEndpoint,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	// ======================================================
	// 🗄️ DATABASE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	// ======================================================
	// 📝 AUDIT (gorm + kafka opcional)
	// ======================================================
	auditStore := audit.NewGormSink(db)
	sinks := []audit.Sink{auditStore}

	if brokers := audit.SplitBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		writer := audit.NewKafkaWriter(brokers, cfg.KafkaAuditTopic)
		defer writer.Close()
		sinks = append(sinks, audit.NewKafkaSink(writer))
		log.Info("kafka audit publishing enabled", "topic", cfg.KafkaAuditTopic)
	}

	dispatcher := audit.NewDispatcher(log, sinks...)

	// ======================================================
	// 🚦 RATE LIMIT (redis opcional)
	// ======================================================
	var limiter middleware.WindowCounter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, public rate limit disabled", "err", err)
		} else {
			limiter = middleware.NewRedisCounter(rdb)
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Logger:       log,
		Clock:        timezone.System,
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Hours:        infraRepo.NewBusinessHoursGormRepository(db),
		AuditLogs:    auditStore,
		Audit:        dispatcher,
		Metrics:      m,
		RateLimiter:  limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	// ======================================================
	// 🛑 GRACEFUL SHUTDOWN
	// ======================================================
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "err", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error("audit drain", "err", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", "err", err)
	}

	return nil
}
