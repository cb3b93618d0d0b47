package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/api"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/autoconfig"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/channel"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/config"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/database"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/reminder"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/render"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/scheduler"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/settings"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/systemconfig"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting fleet reminder service")

	// Connect to database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrations completed")

	// Create components
	store := settings.NewStore(db, logger)
	resolver := systemconfig.NewResolver(cfg, store, logger)
	initializer := autoconfig.NewInitializer(store, resolver, logger)

	// Seed default configurations on first run
	initializer.Initialize(ctx)

	senders := map[string]channel.Sender{
		"email":    channel.NewEmailSender(cfg.EmailAPIURL, resolver.EffectiveEmail),
		"whatsapp": channel.NewWhatsAppSender(cfg.WhatsAppGatewayURL, resolver.EffectiveWhatsApp),
		"telegram": channel.NewTelegramSender(resolver.EffectiveTelegram),
	}
	reminderService := reminder.NewService(db, render.NewTextRenderer(), senders, logger)

	// Start the daily scheduler
	sched := scheduler.New(store, logger)
	sched.Initialize(reminderService.RunDailyCheck)
	defer sched.Stop()

	// HTTP server
	r := gin.Default()
	r.Use(corsMiddleware())
	registerRoutes(r, db, store, resolver, initializer, sched, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("http server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}

	logger.Info("service stopped")
}

func registerRoutes(
	r *gin.Engine,
	db *database.DB,
	store *settings.Store,
	resolver *systemconfig.Resolver,
	initializer *autoconfig.Initializer,
	sched *scheduler.Scheduler,
	cfg *config.Config,
) {
	relayHandler := api.NewRelayHandler(cfg.WhatsAppGatewayURL)
	systemHandler := api.NewSystemHandler(initializer, resolver)
	schedulerHandler := api.NewSchedulerHandler(sched)
	settingsHandler := api.NewSettingsHandler(store, sched)
	reminderHandler := api.NewReminderHandler(db)
	vehicleHandler := api.NewVehicleHandler(db)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/whatsapp/send", relayHandler.SendWhatsApp)

		apiGroup.GET("/system/status", systemHandler.GetSystemStatus)
		apiGroup.GET("/config/status", systemHandler.GetConfigStatus)
		apiGroup.POST("/system/reconfigure", systemHandler.ForceReconfigure)

		apiGroup.GET("/scheduler/status", schedulerHandler.GetStatus)
		apiGroup.POST("/scheduler/run", schedulerHandler.RunCheck)
		apiGroup.POST("/scheduler/restart", schedulerHandler.Restart)

		apiGroup.GET("/settings", settingsHandler.GetSettings)
		apiGroup.PUT("/settings/email", settingsHandler.UpdateEmailSettings)
		apiGroup.PUT("/settings/whatsapp", settingsHandler.UpdateWhatsAppSettings)
		apiGroup.PUT("/settings/telegram", settingsHandler.UpdateTelegramSettings)
		apiGroup.PUT("/settings/general", settingsHandler.UpdateGeneralSettings)

		apiGroup.GET("/reminders", reminderHandler.ListReminders)
		apiGroup.POST("/reminders", reminderHandler.CreateReminder)
		apiGroup.PUT("/reminders/:id", reminderHandler.UpdateReminder)
		apiGroup.DELETE("/reminders/:id", reminderHandler.DeleteReminder)
		apiGroup.GET("/logs", reminderHandler.ListDeliveryLogs)

		apiGroup.GET("/vehicles", vehicleHandler.ListVehicles)
		apiGroup.POST("/vehicles", vehicleHandler.CreateVehicle)
		apiGroup.PUT("/vehicles/:id", vehicleHandler.UpdateVehicle)
		apiGroup.DELETE("/vehicles/:id", vehicleHandler.DeleteVehicle)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func setupLogger(level, format string) *slog.Logger {
	var handler slog.Handler
	logLevel := parseLevel(level)

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		// Pretty colored output for console
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
			NoColor:    false,
		})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
