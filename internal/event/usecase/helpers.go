package usecase

import (
	"regexp"
	"strings"
)

// sanitizeJSONResponse removes markdown code fences and leading/trailing
// prose that LLMs often add around JSON output.
func sanitizeJSONResponse(text string) string {
	// Remove ```json ... ``` or ``` ... ``` blocks
	re := regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// No code block: find the first { and last }
	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}
