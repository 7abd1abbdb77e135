package event

import "image-calendar-generator/internal/model"

// --- UseCase Inputs ---

type ProcessImageInput struct {
	Data        []byte
	ContentType string
	Filename    string
}

// --- UseCase Outputs ---

type ProcessImageOutput struct {
	Event   model.Event
	Created model.CreatedEvent
}
