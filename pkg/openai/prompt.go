package openai

import "fmt"

// EventExtractionPrompt is the instruction sent with every image. The
// model must answer with one JSON object whose fields are all optional;
// the pipeline treats anything absent or malformed as missing.
const EventExtractionPrompt = `You are an event extraction assistant. Analyze the attached image of a flyer, screenshot or invitation and extract the single event it describes.

RULES:
1. Return ONLY a valid JSON object. No markdown, no code blocks, no explanation text.
2. The object has exactly these fields (use an empty string when the image does not show a value):
   - "title": short event title
   - "start_text": when the event starts. Prefer RFC3339 ("2026-09-04T15:00:00") when the image shows an unambiguous date and time; otherwise copy the phrasing as written (e.g. "Tomorrow at 3pm", "next friday 19:00").
   - "end_text": when the event ends, same format as start_text. Empty if the image shows no end time.
   - "location": venue or address
   - "description": any other useful details from the image
   - "timezone": IANA timezone name, ONLY if the image names a timezone or city that implies one unambiguously
3. Do not invent values. A missing field is an empty string, never a guess.
4. Resolve relative dates ("tomorrow", "next Friday") against the current time given below when the image makes the absolute date clear; otherwise copy them verbatim.

EXAMPLE OUTPUT:
{
  "title": "Team Sync",
  "start_text": "Tomorrow at 3pm",
  "end_text": "Tomorrow at 4pm",
  "location": "Room 5",
  "description": "",
  "timezone": ""
}`

// BuildEventExtractionPrompt builds the full prompt for event extraction.
func BuildEventExtractionPrompt(defaultTimezone, currentTime string) string {
	return fmt.Sprintf("%s\n\nCURRENT TIME (for resolving relative dates): %s\nDEFAULT TIMEZONE: %s\n\nNow extract the event from the attached image and return ONLY the JSON object.",
		EventExtractionPrompt, currentTime, defaultTimezone)
}
