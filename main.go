package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"suplient/config"
	"suplient/cron"
	"suplient/database"
	bookingRepoPkg "suplient/database/repository/booking"
	integrationRepoPkg "suplient/database/repository/integration"
	notificationRepoPkg "suplient/database/repository/notification"
	rosterRepoPkg "suplient/database/repository/roster"
	"suplient/handlers"
	"suplient/routes"
	"suplient/services/integration"
	"suplient/services/notification"
	"suplient/services/scheduling"
	"suplient/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	rosterRepo := rosterRepoPkg.NewMongoRosterRepo()
	integrationRepo := integrationRepoPkg.NewMongoIntegrationRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// services.
	integrationService := integration.NewIntegrationService(
		bookingRepo,
		integrationRepo,
		rosterRepo,
		utils.GetCacheClient(),
		integration.NewGoogleCalendarProvider(),
		integration.NewZoomProvider(),
		integration.NewTeamsProvider(),
	)

	schedulingService := scheduling.NewSchedulingService(bookingRepo, integrationService)

	pushSender := notification.NewPushSender(rosterRepo, notificationRepo)
	notificationService := notification.NewNotificationService(rosterRepo, pushSender)

	reminderScheduler := cron.NewReminderScheduler()
	cron.InitReminderWorker(bookingRepo, notificationService)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	handlerBundle := handlers.NewHandlerBundle(
		schedulingService,
		integrationService,
		notificationService,
		bookingRepo,
		reminderScheduler,
	)
	router := routes.SetupRouter(handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Wait for an interrupt and drain in-flight requests before exiting.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
