package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hotelops/hotel-api/internal/config"
	"github.com/hotelops/hotel-api/internal/email"
	"github.com/hotelops/hotel-api/internal/handler"
	authHandler "github.com/hotelops/hotel-api/internal/handler/auth"
	bookingHandler "github.com/hotelops/hotel-api/internal/handler/booking"
	guestserviceHandler "github.com/hotelops/hotel-api/internal/handler/guestservice"
	hotelHandler "github.com/hotelops/hotel-api/internal/handler/hotel"
	housekeepingHandler "github.com/hotelops/hotel-api/internal/handler/housekeeping"
	inventoryHandler "github.com/hotelops/hotel-api/internal/handler/inventory"
	maintenanceHandler "github.com/hotelops/hotel-api/internal/handler/maintenance"
	notificationHandler "github.com/hotelops/hotel-api/internal/handler/notification"
	roomHandler "github.com/hotelops/hotel-api/internal/handler/room"
	userHandler "github.com/hotelops/hotel-api/internal/handler/user"
	wsHandler "github.com/hotelops/hotel-api/internal/handler/ws"
	"github.com/hotelops/hotel-api/internal/middleware"
	"github.com/hotelops/hotel-api/internal/notifier"
	"github.com/hotelops/hotel-api/internal/notifier/hooks"
	"github.com/hotelops/hotel-api/internal/repository/postgres"
	"github.com/hotelops/hotel-api/internal/router"
	authService "github.com/hotelops/hotel-api/internal/service/auth"
	bookingService "github.com/hotelops/hotel-api/internal/service/booking"
	guestserviceService "github.com/hotelops/hotel-api/internal/service/guestservice"
	hotelService "github.com/hotelops/hotel-api/internal/service/hotel"
	housekeepingService "github.com/hotelops/hotel-api/internal/service/housekeeping"
	inventoryService "github.com/hotelops/hotel-api/internal/service/inventory"
	maintenanceService "github.com/hotelops/hotel-api/internal/service/maintenance"
	notificationService "github.com/hotelops/hotel-api/internal/service/notification"
	roomService "github.com/hotelops/hotel-api/internal/service/room"
	userService "github.com/hotelops/hotel-api/internal/service/user"
	"github.com/hotelops/hotel-api/pkg/auth"
	"github.com/hotelops/hotel-api/pkg/logger"
	"github.com/hotelops/hotel-api/pkg/messaging/redis"
	"github.com/hotelops/hotel-api/pkg/metrics"
	"github.com/hotelops/hotel-api/pkg/realtime"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logg := logger.NewLogger(nil)
	m := metrics.NewMetrics("hotel_api", "api")

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Repositories
	base := postgres.NewBaseRepository(db, m)
	hotelRepo := postgres.NewHotelRepository(base)
	userRepo := postgres.NewUserRepository(base)
	roomRepo := postgres.NewRoomRepository(base)
	bookingRepo := postgres.NewBookingRepository(base)
	housekeepingRepo := postgres.NewHousekeepingRepository(base)
	maintenanceRepo := postgres.NewMaintenanceRepository(base)
	guestServiceRepo := postgres.NewGuestServiceRepository(base)
	inventoryRepo := postgres.NewInventoryRepository(base)
	notificationRepo := postgres.NewNotificationRepository(base)

	// Realtime delivery: one redis subscription per instance, fanned
	// out to the locally connected websocket sessions.
	hub := realtime.NewHub(logg, m)
	go hub.Heartbeat(30 * time.Second)

	transport := realtime.NewTransport(broker, hub, logg, m)
	go func() {
		if err := transport.Run(ctx); err != nil && ctx.Err() == nil {
			logg.Fatal(err, "realtime fanout subscription failed")
		}
	}()

	// Notification pipeline
	clock := notifier.SystemClock()
	directory := notifier.NewDirectory(userRepo)
	resolver := notifier.NewResolver(directory)
	suppressor := notifier.NewSuppressor(notificationRepo, hotelRepo, clock)
	dispatcher := notifier.NewDispatcher(notificationRepo, resolver, suppressor, transport, clock, logg, m)
	emitter := hooks.NewEmitter(dispatcher, directory, hotelRepo, logg)

	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessExpiry:  time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
		Issuer:        "hotel-api",
	})

	var emailSvc email.Service = email.NoopService{}
	if cfg.Email.Host != "" {
		emailSvc = email.NewSMTPService(cfg.Email, logg)
	}

	// Services
	authSvc := authService.NewService(userRepo, jwtSvc, emailSvc, logg)
	hotelSvc := hotelService.NewService(hotelRepo)
	userSvc := userService.NewService(userRepo)
	roomSvc := roomService.NewService(roomRepo, emitter)
	bookingSvc := bookingService.NewService(bookingRepo, roomRepo, emitter)
	housekeepingSvc := housekeepingService.NewService(housekeepingRepo, emitter)
	maintenanceSvc := maintenanceService.NewService(maintenanceRepo, emitter)
	guestServiceSvc := guestserviceService.NewService(guestServiceRepo, emitter)
	inventorySvc := inventoryService.NewService(inventoryRepo, emitter)
	notificationSvc := notificationService.NewService(notificationRepo)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	r := router.NewRouter(authMiddleware, router.Handlers{
		Auth:         authHandler.NewHandler(authSvc),
		Hotel:        hotelHandler.NewHandler(hotelSvc),
		User:         userHandler.NewHandler(userSvc),
		Room:         roomHandler.NewHandler(roomSvc),
		Booking:      bookingHandler.NewHandler(bookingSvc),
		Housekeeping: housekeepingHandler.NewHandler(housekeepingSvc),
		Maintenance:  maintenanceHandler.NewHandler(maintenanceSvc),
		GuestService: guestserviceHandler.NewHandler(guestServiceSvc),
		Inventory:    inventoryHandler.NewHandler(inventorySvc),
		Notification: notificationHandler.NewHandler(notificationSvc),
		WS:           wsHandler.NewHandler(hub, logg),
		Ops:          handler.NewHandler(db),
	}, router.Config{
		CORSConfig: middleware.DefaultCORSConfig(),
		Timeout:    time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		logg.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal(err, "server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logg.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error(err, "forced shutdown")
	}
}
