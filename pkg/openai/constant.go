package openai

import "time"

const (
	// DefaultModel is the default vision-capable model.
	DefaultModel = "gpt-4o"

	// DefaultAPIURL is the default OpenAI API endpoint.
	DefaultAPIURL = "https://api.openai.com/v1"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 60 * time.Second
)
