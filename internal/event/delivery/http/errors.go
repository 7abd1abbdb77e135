package http

import (
	"errors"
	"net/http"

	"image-calendar-generator/internal/event"
	"image-calendar-generator/pkg/googleauth"
	"image-calendar-generator/pkg/openai"
	"image-calendar-generator/pkg/response"
)

// mapError translates pipeline errors into an HTTP status and a
// message safe to show the uploader. Unknown errors collapse to 500
// without leaking detail.
func (h *handler) mapError(err error) (int, string) {
	switch {
	case errors.Is(err, event.ErrEmptyImage),
		errors.Is(err, event.ErrUnsupportedImageType),
		errors.Is(err, event.ErrImageTooLarge):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, event.ErrUnparseableResponse):
		return http.StatusUnprocessableEntity, "could not find a calendar event in the image"
	case errors.Is(err, event.ErrMissingOrInvalidStart):
		return http.StatusUnprocessableEntity, "the image does not show a usable start time"
	case errors.Is(err, event.ErrInvalidTimeRange):
		return http.StatusUnprocessableEntity, "the event in the image ends before it starts"

	case openai.IsRateLimited(err):
		return http.StatusTooManyRequests, "the vision provider is rate limiting requests, try again shortly"

	case errors.Is(err, googleauth.ErrReauthRequired):
		return http.StatusServiceUnavailable, "calendar authorization expired, an operator must re-run the consent flow"

	case errors.Is(err, event.ErrProviderFailure):
		return http.StatusBadGateway, "an upstream provider failed, try again"

	default:
		return http.StatusInternalServerError, response.DefaultErrorMessage
	}
}
