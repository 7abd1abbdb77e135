package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"image-calendar-generator/internal/event"
	"image-calendar-generator/internal/model"
	"image-calendar-generator/pkg/openai"
)

const (
	extractionTemperature = 0.2 // low temperature for deterministic JSON output
	extractionMaxTokens   = 1024
)

// extractEvent sends the image to the vision model and parses its JSON
// answer into an event draft. Transient provider failures and rate
// limits are retried; an answer that cannot be parsed is not.
func (uc *implUseCase) extractEvent(ctx context.Context, img model.RawImage) (openai.ExtractedEvent, error) {
	now := time.Now().In(uc.dateMath.Location())
	prompt := openai.BuildEventExtractionPrompt(uc.cfg.Timezone, now.Format(time.RFC3339))

	dataURL := fmt.Sprintf("data:%s;base64,%s",
		img.ContentType,
		base64.StdEncoding.EncodeToString(img.Data))

	req := openai.ChatRequest{
		Messages: []openai.ChatMessage{
			{
				Role: "user",
				Content: []openai.ContentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &openai.ImageURL{URL: dataURL}},
				},
			},
		},
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	}

	pol := uc.retryPolicy(func(err error) bool {
		return openai.IsTransient(err) || openai.IsRateLimited(err)
	})

	var resp *openai.ChatResponse
	err := pol.Do(ctx, func(ctx context.Context) error {
		r, callErr := uc.vision.CreateChatCompletion(ctx, req)
		if callErr != nil {
			return callErr
		}
		resp = r
		return nil
	})
	if err != nil {
		return openai.ExtractedEvent{}, fmt.Errorf("%w: vision request failed: %w", event.ErrProviderFailure, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return openai.ExtractedEvent{}, fmt.Errorf("%w: empty model answer", event.ErrUnparseableResponse)
	}

	responseText := resp.Choices[0].Message.Content
	uc.l.Debugf(ctx, "vision raw response: %s", responseText)

	cleaned := sanitizeJSONResponse(responseText)

	var draft openai.ExtractedEvent
	if unmarshalErr := json.Unmarshal([]byte(cleaned), &draft); unmarshalErr != nil {
		uc.l.Errorf(ctx, "failed to parse vision response. Raw=%q Cleaned=%q", responseText, cleaned)
		return openai.ExtractedEvent{}, fmt.Errorf("%w: %v", event.ErrUnparseableResponse, unmarshalErr)
	}

	return draft, nil
}
