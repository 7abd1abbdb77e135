package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"image-calendar-generator/internal/event"
	"image-calendar-generator/internal/model"
	"image-calendar-generator/pkg/gcalendar"
	"image-calendar-generator/pkg/googleauth"
)

// ProcessImage implements event.UseCase. Stages run strictly in order
// so no provider is called for input an earlier stage already rejected.
func (uc *implUseCase) ProcessImage(ctx context.Context, input event.ProcessImageInput) (event.ProcessImageOutput, error) {
	img, err := uc.validateImage(input)
	if err != nil {
		return event.ProcessImageOutput{}, err
	}

	draft, err := uc.extractEvent(ctx, img)
	if err != nil {
		return event.ProcessImageOutput{}, err
	}

	now := time.Now().In(uc.dateMath.Location())
	ev, err := uc.normalizeEvent(ctx, draft, now)
	if err != nil {
		return event.ProcessImageOutput{}, err
	}

	created, err := uc.createCalendarEvent(ctx, ev)
	if err != nil {
		return event.ProcessImageOutput{}, err
	}

	uc.l.Infof(ctx, "created calendar event %s (%s)", created.ID, created.HtmlLink)

	return event.ProcessImageOutput{
		Event: ev,
		Created: model.CreatedEvent{
			ID:       created.ID,
			HTMLLink: created.HtmlLink,
		},
	}, nil
}

// createCalendarEvent inserts the event, retrying transient provider
// failures. One extra round is allowed after invalidating the cached
// access token, covering tokens revoked server-side between refreshes.
func (uc *implUseCase) createCalendarEvent(ctx context.Context, ev model.Event) (*gcalendar.Event, error) {
	req := gcalendar.CreateEventRequest{
		CalendarID:  uc.cfg.CalendarID,
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		StartTime:   ev.Start,
		EndTime:     ev.End,
		Timezone:    ev.Timezone,
	}

	pol := uc.retryPolicy(func(err error) bool {
		if errors.Is(err, googleauth.ErrReauthRequired) {
			return false
		}
		return gcalendar.IsTransient(err)
	})

	var created *gcalendar.Event
	insert := func(ctx context.Context) error {
		c, callErr := uc.calendar.CreateEvent(ctx, req)
		if callErr != nil {
			return callErr
		}
		created = c
		return nil
	}

	err := pol.Do(ctx, insert)
	if err != nil && gcalendar.IsAuthError(err) {
		uc.l.Warnf(ctx, "calendar rejected credentials, refreshing token and retrying once")
		uc.creds.InvalidateAccessToken()
		err = pol.Do(ctx, insert)
	}
	if err != nil {
		if errors.Is(err, googleauth.ErrReauthRequired) {
			return nil, err
		}
		if gcalendar.IsAuthError(err) {
			return nil, fmt.Errorf("%w: %v", googleauth.ErrReauthRequired, err)
		}
		return nil, fmt.Errorf("%w: calendar event creation failed: %w", event.ErrProviderFailure, err)
	}

	return created, nil
}
