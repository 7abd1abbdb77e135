// Command gcal-auth runs the one-time Google Calendar consent flow and
// saves the resulting token where the API server expects it.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"image-calendar-generator/config"
	"image-calendar-generator/pkg/googleauth"
	"image-calendar-generator/pkg/log"
	"image-calendar-generator/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:    "info",
		Mode:     "debug",
		Encoding: "console",
	})

	ctx := context.Background()

	credsData, err := os.ReadFile(cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		fmt.Printf("Failed to read credentials file %q: %v\n", cfg.GoogleCalendar.CredentialsPath, err)
		fmt.Println("Download the OAuth client JSON from Google Cloud Console and place it there first.")
		os.Exit(1)
	}

	oauthConf, err := google.ConfigFromJSON(credsData, calendar.CalendarEventsScope)
	if err != nil {
		fmt.Printf("Failed to parse credentials: %v\n", err)
		os.Exit(1)
	}

	store := googleauth.NewStore(logger, oauthConf, cfg.GoogleCalendar.TokenPath, googleauth.CLIConsent{}, retry.Policy{MaxAttempts: 1})

	if err := store.BeginConsent(ctx); err != nil {
		fmt.Printf("Consent flow failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("✅ Token saved to %s\n", cfg.GoogleCalendar.TokenPath)
	fmt.Println("The API server can now create calendar events.")
}
