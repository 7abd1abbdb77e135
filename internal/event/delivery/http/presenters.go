package http

import (
	"time"

	"image-calendar-generator/internal/event"
)

// --- Request DTOs ---

type processImageReq struct {
	data        []byte
	contentType string
	filename    string
}

func (r processImageReq) toInput() event.ProcessImageInput {
	return event.ProcessImageInput{
		Data:        r.data,
		ContentType: r.contentType,
		Filename:    r.filename,
	}
}

// --- Response DTOs ---

type eventResp struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Timezone    string `json:"timezone"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

type processImageResp struct {
	Success   bool      `json:"success"`
	EventID   string    `json:"event_id,omitempty"`
	EventLink string    `json:"event_link"`
	Event     eventResp `json:"event"`
}

func (h *handler) newProcessImageResp(out event.ProcessImageOutput) processImageResp {
	return processImageResp{
		Success:   true,
		EventID:   out.Created.ID,
		EventLink: out.Created.HTMLLink,
		Event: eventResp{
			Title:       out.Event.Title,
			Start:       out.Event.Start.Format(time.RFC3339),
			End:         out.Event.End.Format(time.RFC3339),
			Timezone:    out.Event.Timezone,
			Location:    out.Event.Location,
			Description: out.Event.Description,
		},
	}
}
