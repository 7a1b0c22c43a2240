package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nbfilms/studio-api/internal/application"
	"github.com/nbfilms/studio-api/internal/config"
	"github.com/nbfilms/studio-api/internal/domain/booking"
	"github.com/nbfilms/studio-api/internal/handler"
	"github.com/nbfilms/studio-api/internal/imagehost"
	"github.com/nbfilms/studio-api/internal/notification"
	"github.com/nbfilms/studio-api/internal/platform/auth"
	"github.com/nbfilms/studio-api/internal/platform/database"
	"github.com/nbfilms/studio-api/internal/platform/health"
	"github.com/nbfilms/studio-api/internal/platform/kafka"
	"github.com/nbfilms/studio-api/internal/platform/logger"
	"github.com/nbfilms/studio-api/internal/platform/middleware"
	"github.com/nbfilms/studio-api/internal/repository"
)

const (
	serviceName        = "studio-api"
	accessTokenTTL     = 15 * time.Minute
	refreshTokenTTL    = 7 * 24 * time.Hour
	dateReservationTTL = 2 * time.Minute
	shutdownTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.BookingModel{},
			&repository.ServiceModel{},
			&repository.RatingModel{},
			&repository.CategoryModel{},
			&repository.GalleryImageModel{},
			&repository.FounderModel{},
			&repository.ContactModel{},
			&repository.AdminModel{},
		); err != nil {
			log.Fatal("auto migration failed", zap.Error(err))
		}
	} else {
		if err := database.RunMigrations(cfg.Database.URL(), cfg.MigrationsPath, log); err != nil {
			log.Fatal("migrations failed", zap.Error(err))
		}
	}

	redisClient, err := database.ConnectRedis(cfg.Redis, log)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = producer.Close() }()

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, accessTokenTTL, refreshTokenTTL)

	bookingRepo := repository.NewGormBookingRepository(db)
	serviceRepo := repository.NewGormServiceRepository(db)
	ratingRepo := repository.NewGormRatingRepository(db)
	galleryRepo := repository.NewGormGalleryRepository(db)
	founderRepo := repository.NewGormFounderRepository(db)
	contactRepo := repository.NewGormContactRepository(db)
	adminRepo := repository.NewGormAdminRepository(db)
	dateGuard := repository.NewRedisDateReservation(redisClient, dateReservationTTL)

	feed := booking.NewFeed()
	notifier := notification.NewClient(cfg.MailerURL)
	uploader := imagehost.NewClient(cfg.ImgbbKey)

	bookingService := application.NewBookingService(bookingRepo, dateGuard, serviceRepo, feed, notifier, producer, log)
	catalogService := application.NewCatalogService(serviceRepo, ratingRepo, uploader, producer, log)
	galleryService := application.NewGalleryService(galleryRepo, uploader, log)
	studioService := application.NewStudioService(founderRepo, contactRepo, uploader, log)
	authService := application.NewAuthService(adminRepo, jwtManager, log)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(log),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(log),
		middleware.CORSMiddleware(),
		middleware.SecurityHeadersMiddleware(),
	)

	health.NewHandler(db, serviceName).RegisterRoutes(router)

	bookingHandler := handler.NewBookingHandler(bookingService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	studioHandler := handler.NewStudioHandler(studioService)
	authHandler := handler.NewAuthHandler(authService)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	bookingHandler.RegisterPublicRoutes(v1)
	catalogHandler.RegisterPublicRoutes(v1)
	galleryHandler.RegisterPublicRoutes(v1)
	studioHandler.RegisterPublicRoutes(v1)

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	bookingHandler.RegisterAdminRoutes(admin)
	catalogHandler.RegisterAdminRoutes(admin)
	galleryHandler.RegisterAdminRoutes(admin)
	studioHandler.RegisterAdminRoutes(admin)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
