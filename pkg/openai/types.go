package openai

// ChatRequest is the request body for the chat completions API.
// Model is filled in by the client when empty.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage is a single conversation message. Content is a list of
// parts so text and images can travel in one user message.
type ChatMessage struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart holds either a text segment or an image reference.
type ContentPart struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries the image as an https or base64 data URL.
type ImageURL struct {
	URL string `json:"url"`
}

// ChatResponse is the response body from the chat completions API.
type ChatResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is a single completion candidate.
type Choice struct {
	Index        int              `json:"index"`
	Message      AssistantMessage `json:"message"`
	FinishReason string           `json:"finish_reason"`
}

// AssistantMessage is the model's reply. Content is plain text here;
// the API returns a string for assistant messages.
type AssistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ExtractedEvent is the event draft the vision model returns for an
// image. Every field may be empty; nothing is trusted until the
// pipeline normalizes it.
type ExtractedEvent struct {
	Title       string `json:"title"`
	StartText   string `json:"start_text"`
	EndText     string `json:"end_text"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
}
