package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"image-calendar-generator/internal/event"
	"image-calendar-generator/internal/model"
	"image-calendar-generator/pkg/datemath"
	"image-calendar-generator/pkg/openai"
)

// defaultEventTitle fills in when the image shows no usable title.
const defaultEventTitle = "Untitled event"

// normalizeEvent turns the model's free-form draft into a concrete
// calendar event. The start time is mandatory; everything else
// degrades gracefully.
func (uc *implUseCase) normalizeEvent(ctx context.Context, draft openai.ExtractedEvent, now time.Time) (model.Event, error) {
	parser := uc.dateMath
	timezone := uc.cfg.Timezone

	// A timezone named by the image wins over the configured default.
	// An unknown name is ignored, not fatal.
	if tz := strings.TrimSpace(draft.Timezone); tz != "" {
		if p, err := datemath.NewParser(tz); err == nil {
			parser = p
			timezone = tz
		} else {
			uc.l.Warnf(ctx, "ignoring unknown timezone %q from model: %v", tz, err)
		}
	}

	base := now.In(parser.Location())

	startText := strings.TrimSpace(draft.StartText)
	if startText == "" {
		return model.Event{}, event.ErrMissingOrInvalidStart
	}
	start, err := parser.ParseDateTime(startText, base)
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: %v", event.ErrMissingOrInvalidStart, err)
	}

	end := start.Add(uc.cfg.DefaultDuration)
	if endText := strings.TrimSpace(draft.EndText); endText != "" {
		parsedEnd, endErr := parser.ParseDateTime(endText, base)
		switch {
		case endErr != nil:
			// An end we cannot read is treated as absent rather than
			// failing an otherwise valid event.
			uc.l.Warnf(ctx, "unparseable end time %q, using default duration: %v", endText, endErr)
		case !parsedEnd.After(start):
			return model.Event{}, fmt.Errorf("%w: start %s, end %s",
				event.ErrInvalidTimeRange, start.Format(time.RFC3339), parsedEnd.Format(time.RFC3339))
		default:
			end = parsedEnd
		}
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		title = defaultEventTitle
	}

	return model.Event{
		Title:       title,
		Start:       start,
		End:         end,
		Timezone:    timezone,
		Location:    strings.TrimSpace(draft.Location),
		Description: strings.TrimSpace(draft.Description),
	}, nil
}
