package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/hotelops/hotel-api/internal/config"
	"github.com/hotelops/hotel-api/internal/notifier"
	"github.com/hotelops/hotel-api/internal/repository/postgres"
	"github.com/hotelops/hotel-api/internal/worker"
	"github.com/hotelops/hotel-api/pkg/logger"
	"github.com/hotelops/hotel-api/pkg/messaging/redis"
	"github.com/hotelops/hotel-api/pkg/metrics"
	"github.com/hotelops/hotel-api/pkg/realtime"
)

func setupHealthCheck(logg *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			logg.Fatal(err, "health check server failed")
		}
	}()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logg := logger.NewLogger(nil)
	m := metrics.NewMetrics("hotel_api", "worker")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	base := postgres.NewBaseRepository(db, m)
	hotelRepo := postgres.NewHotelRepository(base)
	userRepo := postgres.NewUserRepository(base)
	notificationRepo := postgres.NewNotificationRepository(base)

	// The worker only publishes to the fanout channel; API instances
	// hold the websocket sessions and run the subscriber side.
	hub := realtime.NewHub(logg, m)
	transport := realtime.NewTransport(broker, hub, logg, m)

	clock := notifier.SystemClock()
	directory := notifier.NewDirectory(userRepo)
	resolver := notifier.NewResolver(directory)
	suppressor := notifier.NewSuppressor(notificationRepo, hotelRepo, clock)
	dispatcher := notifier.NewDispatcher(notificationRepo, resolver, suppressor, transport, clock, logg, m)

	scheduler := notifier.NewScheduler(notificationRepo, dispatcher, clock, notifier.SchedulerConfig{
		TickInterval: cfg.Notifier.TickInterval,
		BatchSize:    cfg.Notifier.BatchSize,
	}, logg, m)

	retention := worker.NewRetentionWorker(notificationRepo, cfg.Notifier.RetentionDays, time.Hour, logg)

	setupHealthCheck(logg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logg.Info("shutting down")
		cancel()
	}()

	go retention.Start(ctx)
	scheduler.Start(ctx)
}
