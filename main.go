// File: pawroute/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawroute/config"
	"pawroute/cron"
	"pawroute/database"
	bookingRepoPkg "pawroute/database/repository/booking"
	breadcrumbRepoPkg "pawroute/database/repository/breadcrumb"
	dogRepoPkg "pawroute/database/repository/dog"
	sessionRepoPkg "pawroute/database/repository/session"
	userRepoPkg "pawroute/database/repository/user"
	walkerRepoPkg "pawroute/database/repository/walker"
	"pawroute/handlers"
	"pawroute/routes"
	"pawroute/services/booking"
	"pawroute/services/notification"
	"pawroute/services/storage"
	"pawroute/services/user"
	"pawroute/services/walk"
	"pawroute/services/walker"
	"pawroute/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitPositionCache()
	utils.FirebaseInit()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetPositionCacheClient()},
		database.MongoClient,
	)

	storageService, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	walkerRepo := walkerRepoPkg.NewMongoWalkerRepo()
	dogRepo := dogRepoPkg.NewMongoDogRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	breadcrumbRepo := breadcrumbRepoPkg.NewMongoBreadcrumbRepo()

	// live tracking stack.
	positionRedis := utils.GetPositionCacheClient()
	geolocator := &walk.RedisGeolocator{Client: positionRedis, MaxAge: config.PositionMaxAge()}
	publisher := &walk.RedisPublisher{Client: positionRedis}
	trackerPool := walk.NewTrackerPool(breadcrumbRepo, geolocator, publisher, config.SampleInterval())
	sessionManager := &walk.SessionManager{Sessions: sessionRepo, Bookings: bookingRepo}
	feed := &walk.Feed{Crumbs: breadcrumbRepo, Redis: positionRedis, Window: config.AppConfig.TrailWindow}

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	walkerService := &walker.DefaultWalkerService{Repo: walkerRepo}

	notificationService, err := notification.NewDefaultNotificationService(userRepo, walkerRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	go cron.InitReminderWorker(notificationService)
	reminderScheduler := cron.NewReminderScheduler()

	bookingService := &booking.DefaultBookingService{
		Repo:            bookingRepo,
		DogRepo:         dogRepo,
		WalkerRepo:      walkerRepo,
		Sessions:        sessionManager,
		Trackers:        trackerPool,
		Notifier:        notificationService,
		Reminders:       reminderScheduler,
		PlatformFeeRate: config.PlatformFeeRate(),
		ReminderLead:    time.Duration(config.AppConfig.ReminderLeadMin) * time.Minute,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		User:    handlers.NewUserHandler(userService),
		Walker:  handlers.NewWalkerHandler(walkerService),
		Dog:     handlers.NewDogHandler(dogRepo, storageService),
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Walk:    handlers.NewWalkHandler(sessionManager, trackerPool, geolocator, feed, logger),
		Admin:   handlers.NewAdminHandler(userRepo, walkerRepo, bookingRepo),

		UserRepo:   userRepo,
		WalkerRepo: walkerRepo,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	trackerPool.StopAll()
	if err := reminderScheduler.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close reminder scheduler: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
