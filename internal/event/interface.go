package event

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// ProcessImage runs the full pipeline: validate the upload, extract
	// event fields with the vision model, normalize times, create the
	// calendar event.
	ProcessImage(ctx context.Context, input ProcessImageInput) (ProcessImageOutput, error)
}
