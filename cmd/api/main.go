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
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/vaxtrack/booking-api/internal/config"
	"github.com/vaxtrack/booking-api/internal/email"
	adminHandler "github.com/vaxtrack/booking-api/internal/handler/admin"
	authHandler "github.com/vaxtrack/booking-api/internal/handler/auth"
	bookingHandler "github.com/vaxtrack/booking-api/internal/handler/booking"
	catalogHandler "github.com/vaxtrack/booking-api/internal/handler/catalog"
	healthHandler "github.com/vaxtrack/booking-api/internal/handler/health"
	insuranceHandler "github.com/vaxtrack/booking-api/internal/handler/insurance"
	inventoryHandler "github.com/vaxtrack/booking-api/internal/handler/inventory"
	notificationHandler "github.com/vaxtrack/booking-api/internal/handler/notification"
	reviewHandler "github.com/vaxtrack/booking-api/internal/handler/review"
	uploadHandler "github.com/vaxtrack/booking-api/internal/handler/upload"
	"github.com/vaxtrack/booking-api/internal/middleware"
	"github.com/vaxtrack/booking-api/internal/payment"
	"github.com/vaxtrack/booking-api/internal/repository/postgres"
	"github.com/vaxtrack/booking-api/internal/router"
	adminService "github.com/vaxtrack/booking-api/internal/service/admin"
	authService "github.com/vaxtrack/booking-api/internal/service/auth"
	bookingService "github.com/vaxtrack/booking-api/internal/service/booking"
	catalogService "github.com/vaxtrack/booking-api/internal/service/catalog"
	insuranceService "github.com/vaxtrack/booking-api/internal/service/insurance"
	inventoryService "github.com/vaxtrack/booking-api/internal/service/inventory"
	notificationService "github.com/vaxtrack/booking-api/internal/service/notification"
	reviewService "github.com/vaxtrack/booking-api/internal/service/review"
	"github.com/vaxtrack/booking-api/internal/session"
	"github.com/vaxtrack/booking-api/pkg/logger"
	"github.com/vaxtrack/booking-api/pkg/security"
)

func main() {
	logger.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create upload directory")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	vaccineRepo := postgres.NewVaccineRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	insuranceRepo := postgres.NewInsuranceRepository(db)

	// Session store: Redis when configured, process-local otherwise.
	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	var sessionStore session.Store
	if cfg.Session.RedisURL != "" {
		sessionStore, err = session.NewRedisStore(cfg.Session.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		log.Info().Msg("using Redis session store")
	} else {
		sessionStore = session.NewMemoryStore(10 * time.Minute)
		log.Info().Msg("using in-memory session store")
	}
	tokenCodec := session.NewTokenCodec(cfg.Session.Secret)

	var emailSvc email.Service
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP)
	} else {
		emailSvc = email.NewNoopService()
		log.Info().Msg("no SMTP relay configured, notifications stay in-app only")
	}

	paymentProvider := payment.NewStripeClient(cfg.Payment.StripeSecretKey)

	// Services
	notificationSvc := notificationService.NewService(notificationRepo, userRepo, emailSvc)
	authSvc := authService.NewService(
		userRepo,
		hospitalRepo,
		security.NewBcryptHasher(bcrypt.DefaultCost),
		sessionStore,
		tokenCodec,
		sessionTTL,
	)
	catalogSvc := catalogService.NewService(vaccineRepo, hospitalRepo, doctorRepo, inventoryRepo)
	bookingSvc := bookingService.NewService(
		inventoryRepo,
		appointmentRepo,
		paymentProvider,
		notificationSvc,
		cfg.Server.BaseURL,
		cfg.Payment.Currency,
	)
	inventorySvc := inventoryService.NewService(hospitalRepo, inventoryRepo)
	reviewSvc := reviewService.NewService(reviewRepo, hospitalRepo)
	insuranceSvc := insuranceService.NewService(insuranceRepo)
	adminSvc := adminService.NewService(userRepo, hospitalRepo, vaccineRepo)

	// Handlers
	uploads := uploadHandler.NewHandler(cfg.Server.UploadDir)
	handlers := router.Handlers{
		Auth:         authHandler.NewHandler(authSvc),
		Catalog:      catalogHandler.NewHandler(catalogSvc),
		Booking:      bookingHandler.NewHandler(bookingSvc),
		Inventory:    inventoryHandler.NewHandler(inventorySvc, uploads),
		Notification: notificationHandler.NewHandler(notificationSvc),
		Review:       reviewHandler.NewHandler(reviewSvc),
		Insurance:    insuranceHandler.NewHandler(insuranceSvc),
		Admin:        adminHandler.NewHandler(adminSvc),
		Upload:       uploads,
		Health:       healthHandler.NewHandler(db),
	}

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, tokenCodec)
	r := router.New(authMiddleware, handlers, router.Config{
		RateLimit:  rate.Limit(cfg.RateLimit.RPS),
		RateBurst:  cfg.RateLimit.Burst,
		CORSConfig: middleware.DefaultCORSConfig(),
		UploadDir:  cfg.Server.UploadDir,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
