package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser converts date/time text extracted from images into absolute
// time.Time values in a fixed IANA timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/Madrid"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// absoluteLayouts are tried in order against the raw text. Layouts
// without an offset are interpreted in the parser's timezone.
var absoluteLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02",
	"January 2, 2006 3:04 PM",
	"January 2, 2006 15:04",
	"January 2, 2006",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"01/02/2006 15:04",
	"01/02/2006",
}

var (
	// day phrase followed by a clock: "tomorrow at 3pm", "next monday 15:00"
	dayClockRe = regexp.MustCompile(`^(.+?)(?:\s+at)?\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
	// clock alone: "3pm", "15:00"
	clockOnlyRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
	inDurationRe = regexp.MustCompile(`in (\d+) (day|days|week|weeks|month|months)`)
)

// ParseDateTime resolves free-form date/time text into an absolute instant.
// An RFC3339 string keeps its own offset; other absolute layouts and all
// relative phrases resolve in the parser's timezone against baseTime.
// Unrecognized text is an error, never a guessed value.
func (p *Parser) ParseDateTime(text string, baseTime time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("empty date/time text")
	}

	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return t, nil
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, text, p.location); err == nil {
			return t, nil
		}
	}

	return p.parseRelative(text, baseTime)
}

// parseRelative handles phrases like "tomorrow at 3pm", "next friday 19:00",
// "in 2 weeks" and bare clocks ("15:00" means today at 15:00).
func (p *Parser) parseRelative(text string, baseTime time.Time) (time.Time, error) {
	lower := strings.ToLower(text)

	if m := clockOnlyRe.FindStringSubmatch(lower); m != nil && (m[2] != "" || m[3] != "") {
		hour, min, err := clockFrom(m[1], m[2], m[3])
		if err != nil {
			return baseTime, err
		}
		return p.startOfDay(baseTime).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute), nil
	}

	if m := dayClockRe.FindStringSubmatch(lower); m != nil && (m[3] != "" || m[4] != "") {
		day, dayErr := p.Parse(m[1], baseTime)
		if dayErr == nil {
			hour, min, err := clockFrom(m[2], m[3], m[4])
			if err != nil {
				return baseTime, err
			}
			return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute), nil
		}
	}

	return p.Parse(lower, baseTime)
}

// Parse converts a relative day phrase to midnight of that day.
// The baseTime is used as the reference point (usually time.Now()).
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))

	switch relative {
	case "today", "tonight":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	}

	if strings.HasPrefix(relative, "in ") {
		return p.parseInDuration(relative, baseTime)
	}

	if strings.HasPrefix(relative, "next ") {
		return p.nextWeekday(strings.TrimPrefix(relative, "next "), baseTime)
	}

	// Bare weekday names mean the upcoming occurrence.
	if _, ok := weekdays[relative]; ok {
		return p.nextWeekday(relative, baseTime)
	}

	return baseTime, fmt.Errorf("unrecognized date expression: %q", relative)
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(relative string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", relative)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"):
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}

	return baseTime, fmt.Errorf("unknown time unit: %q", unit)
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// nextWeekday resolves a weekday name to its next occurrence after baseTime.
func (p *Parser) nextWeekday(dayName string, baseTime time.Time) (time.Time, error) {
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	currentWeekday := baseTime.In(p.location).Weekday()
	daysUntil := int(targetWeekday - currentWeekday)
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
}

// clockFrom converts matched clock groups into a 24h hour and minute.
func clockFrom(hourStr, minStr, meridiem string) (int, int, error) {
	hour, _ := strconv.Atoi(hourStr)
	min := 0
	if minStr != "" {
		min, _ = strconv.Atoi(minStr)
	}

	switch meridiem {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || min > 59 {
		return 0, 0, fmt.Errorf("invalid clock value %s:%02d", hourStr, min)
	}
	return hour, min, nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
