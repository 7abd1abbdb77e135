package usecase

import (
	"context"
	"time"

	"image-calendar-generator/pkg/datemath"
	"image-calendar-generator/pkg/gcalendar"
	pkgLog "image-calendar-generator/pkg/log"
	"image-calendar-generator/pkg/openai"
	"image-calendar-generator/pkg/retry"
)

// CalendarClient is the slice of the calendar API the pipeline uses.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// CredentialSource lets the pipeline force a token refresh when the
// calendar API rejects a request the local token state said was fine.
type CredentialSource interface {
	InvalidateAccessToken()
}

// Config tunes the pipeline. Zero values get sane defaults in New.
type Config struct {
	Timezone          string
	CalendarID        string
	DefaultDuration   time.Duration
	MaxImageBytes     int64
	AllowedImageTypes []string
	RetryAttempts     int
	RetryDelay        time.Duration
}

type implUseCase struct {
	l        pkgLog.Logger
	vision   openai.IOpenAI
	calendar CalendarClient
	creds    CredentialSource
	dateMath *datemath.Parser
	cfg      Config
}

// New creates a new event UseCase instance.
func New(
	l pkgLog.Logger,
	vision openai.IOpenAI,
	calendar CalendarClient,
	creds CredentialSource,
	dateMath *datemath.Parser,
	cfg Config,
) *implUseCase {
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = time.Hour
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	return &implUseCase{
		l:        l,
		vision:   vision,
		calendar: calendar,
		creds:    creds,
		dateMath: dateMath,
		cfg:      cfg,
	}
}

// retryPolicy builds the per-call retry policy from config.
func (uc *implUseCase) retryPolicy(retryable func(error) bool) retry.Policy {
	return retry.Policy{
		MaxAttempts: uc.cfg.RetryAttempts,
		BaseDelay:   uc.cfg.RetryDelay,
		Retryable:   retryable,
	}
}
