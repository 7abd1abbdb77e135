package model

import "time"

// RawImage is an uploaded image exactly as received, before any
// validation.
type RawImage struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Event is a fully normalized calendar event: concrete start and end
// instants in a known timezone, ready for the calendar API.
type Event struct {
	Title       string
	Start       time.Time
	End         time.Time
	Timezone    string
	Location    string
	Description string
}

// CreatedEvent identifies an event accepted by the calendar provider.
type CreatedEvent struct {
	ID       string
	HTMLLink string
}
