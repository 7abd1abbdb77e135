package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"image-calendar-generator/config"
	_ "image-calendar-generator/docs" // Swagger docs
	eventHTTP "image-calendar-generator/internal/event/delivery/http"
	"image-calendar-generator/internal/event/usecase"
	"image-calendar-generator/internal/httpserver"
	"image-calendar-generator/internal/middleware"
	"image-calendar-generator/pkg/datemath"
	"image-calendar-generator/pkg/gcalendar"
	"image-calendar-generator/pkg/googleauth"
	"image-calendar-generator/pkg/log"
	"image-calendar-generator/pkg/openai"
	"image-calendar-generator/pkg/retry"
)

// @title       Image Calendar Generator API
// @description Turns photos of flyers and invitations into Google Calendar events using a vision LLM.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Image Calendar Generator...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Vision model: %s", cfg.Vision.Model)

	// 3. DateMath parser
	dateMathParser, dtErr := datemath.NewParser(cfg.Pipeline.DefaultTimezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Pipeline.DefaultTimezone, dtErr)
		dateMathParser, _ = datemath.NewParser("UTC")
	}

	// 4. Vision client
	visionClient := openai.NewClient(cfg.Vision.APIKey)
	if cfg.Vision.APIURL != "" {
		visionClient.SetAPIURL(cfg.Vision.APIURL)
	}
	if cfg.Vision.Model != "" {
		visionClient.SetModel(cfg.Vision.Model)
	}
	if cfg.Vision.Timeout > 0 {
		visionClient.SetTimeout(cfg.Vision.Timeout)
	}

	// 5. Google Calendar credentials. The service is useless without
	// them, so a broken credentials file stops startup.
	credsData, err := os.ReadFile(cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		logger.Errorf(ctx, "Failed to read Google credentials %q: %v", cfg.GoogleCalendar.CredentialsPath, err)
		return
	}
	oauthConf, err := google.ConfigFromJSON(credsData, calendar.CalendarEventsScope)
	if err != nil {
		logger.Errorf(ctx, "Failed to parse Google credentials: %v", err)
		return
	}

	store := googleauth.NewStore(logger, oauthConf, cfg.GoogleCalendar.TokenPath, googleauth.CLIConsent{}, retry.Policy{
		MaxAttempts: cfg.Pipeline.RetryAttempts,
		BaseDelay:   cfg.Pipeline.RetryDelay,
	})
	if err := store.Load(); err != nil {
		logger.Errorf(ctx, "Failed to load stored Google token: %v", err)
		return
	}
	if !store.Authorized() {
		logger.Warn(ctx, "No Google Calendar authorization yet")
		logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to complete the consent flow")
	}

	calendarClient, err := gcalendar.New(ctx, store.TokenSource(ctx))
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize Google Calendar client: %v", err)
		return
	}

	// 6. Event UseCase
	eventUC := usecase.New(logger, visionClient, calendarClient, store, dateMathParser, usecase.Config{
		Timezone:          cfg.Pipeline.DefaultTimezone,
		CalendarID:        cfg.GoogleCalendar.CalendarID,
		DefaultDuration:   cfg.Pipeline.DefaultEventDuration,
		MaxImageBytes:     cfg.Pipeline.MaxImageBytes,
		AllowedImageTypes: cfg.Pipeline.AllowedImageTypes,
		RetryAttempts:     cfg.Pipeline.RetryAttempts,
		RetryDelay:        cfg.Pipeline.RetryDelay,
	})

	// 7. Delivery + middleware
	eventHandler := eventHTTP.New(logger, eventUC)
	mw := middleware.New(logger, cfg.CORS, cfg.RateLimit)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		EventHandler: eventHandler,
		Middleware:   mw,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
