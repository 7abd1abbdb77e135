package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"image-calendar-generator/internal/event"
	"image-calendar-generator/pkg/datemath"
	"image-calendar-generator/pkg/gcalendar"
	"image-calendar-generator/pkg/openai"

	"image-calendar-generator/internal/event/usecase"
)

// mock dependencies

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// visionReply scripts one CreateChatCompletion call. The last reply
// repeats for any further calls.
type visionReply struct {
	content string
	err     error
}

type mockVision struct {
	replies []visionReply
	calls   int
	lastReq openai.ChatRequest
}

func (m *mockVision) CreateChatCompletion(ctx context.Context, req openai.ChatRequest) (*openai.ChatResponse, error) {
	m.calls++
	m.lastReq = req

	var r visionReply
	if len(m.replies) > 0 {
		r = m.replies[0]
		if len(m.replies) > 1 {
			m.replies = m.replies[1:]
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return &openai.ChatResponse{
		ID: "chatcmpl-test",
		Choices: []openai.Choice{
			{Message: openai.AssistantMessage{Role: "assistant", Content: r.content}, FinishReason: "stop"},
		},
	}, nil
}

func (m *mockVision) Model() string { return "gpt-4o-test" }

type mockCalendar struct {
	errs    []error // consumed one per call; nil entry or exhaustion means success
	calls   int
	lastReq gcalendar.CreateEventRequest
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	m.calls++
	m.lastReq = req

	var err error
	if len(m.errs) > 0 {
		err = m.errs[0]
		m.errs = m.errs[1:]
	}
	if err != nil {
		return nil, err
	}
	return &gcalendar.Event{
		ID:        "event-123",
		Summary:   req.Summary,
		Location:  req.Location,
		HtmlLink:  "https://calendar.google.com/event-uri",
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, nil
}

type mockCreds struct {
	invalidations int
}

func (m *mockCreds) InvalidateAccessToken() { m.invalidations++ }

const testTimezone = "Europe/Madrid"

func newPipeline(t *testing.T, vision *mockVision, cal *mockCalendar, creds *mockCreds) event.UseCase {
	t.Helper()

	parser, err := datemath.NewParser(testTimezone)
	if err != nil {
		t.Fatalf("parser: %v", err)
	}

	return usecase.New(&mockLogger{}, vision, cal, creds, parser, usecase.Config{
		Timezone:          testTimezone,
		DefaultDuration:   time.Hour,
		MaxImageBytes:     10 << 20,
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		RetryAttempts:     2,
		RetryDelay:        time.Millisecond,
	})
}

// jpegImage returns bytes http.DetectContentType sniffs as image/jpeg.
func jpegImage() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}, make([]byte, 64)...)
}

func jpegInput() event.ProcessImageInput {
	return event.ProcessImageInput{Data: jpegImage(), ContentType: "image/jpeg", Filename: "flyer.jpg"}
}

// draftJSON renders an extraction draft the way the model would.
func draftJSON(t *testing.T, draft openai.ExtractedEvent) string {
	t.Helper()
	data, err := json.Marshal(draft)
	if err != nil {
		t.Fatalf("marshal draft: %v", err)
	}
	return string(data)
}
