package datemath_test

import (
	"testing"
	"time"

	"image-calendar-generator/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Europe/Madrid")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		relative string
		want     time.Time
		wantErr  bool
	}{
		{
			name:     "Today",
			relative: "today",
			want:     startOfBase,
		},
		{
			name:     "Tomorrow",
			relative: "tomorrow",
			want:     startOfBase.AddDate(0, 0, 1),
		},
		{
			name:     "Yesterday",
			relative: "yesterday",
			want:     startOfBase.AddDate(0, 0, -1),
		},
		{
			name:     "In 3 days",
			relative: "in 3 days",
			want:     startOfBase.AddDate(0, 0, 3),
		},
		{
			name:     "In 2 weeks",
			relative: "in 2 weeks",
			want:     startOfBase.AddDate(0, 0, 14),
		},
		{
			name:     "In 1 month",
			relative: "in 1 month",
			want:     startOfBase.AddDate(0, 1, 0),
		},
		{
			name:     "Invalid duration pattern",
			relative: "in a few days",
			want:     baseTime,
			wantErr:  true,
		},
		{
			name:     "Next Monday (from Wed)",
			relative: "next monday",
			want:     startOfBase.AddDate(0, 0, 5), // Wed(3) to Mon(1) is +5 days
		},
		{
			name:     "Next Wednesday (from Wed)",
			relative: "next wednesday",
			want:     startOfBase.AddDate(0, 0, 7), // 1 week later
		},
		{
			name:     "Bare weekday means upcoming",
			relative: "friday",
			want:     startOfBase.AddDate(0, 0, 2),
		},
		{
			name:     "Unrecognized text is an error",
			relative: "some random day",
			want:     baseTime,
			wantErr:  true,
		},
		{
			name:     "Invalid Next Weekday",
			relative: "next funday",
			want:     baseTime,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.relative, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	la, _ := time.LoadLocation("America/Los_Angeles")
	parser, _ := datemath.NewParser("America/Los_Angeles")
	baseTime := time.Date(2024, 5, 1, 9, 0, 0, 0, la) // Wednesday morning

	tests := []struct {
		name    string
		text    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "RFC3339 keeps its own offset",
			text: "2024-06-15T10:00:00+02:00",
			want: time.Date(2024, 6, 15, 10, 0, 0, 0, time.FixedZone("", 2*3600)),
		},
		{
			name: "ISO without offset resolves in parser zone",
			text: "2024-06-15T10:00:00",
			want: time.Date(2024, 6, 15, 10, 0, 0, 0, la),
		},
		{
			name: "Date with space and clock",
			text: "2024-06-15 18:30",
			want: time.Date(2024, 6, 15, 18, 30, 0, 0, la),
		},
		{
			name: "Bare date is midnight",
			text: "2024-06-15",
			want: time.Date(2024, 6, 15, 0, 0, 0, 0, la),
		},
		{
			name: "Long month name",
			text: "June 15, 2024 6:30 PM",
			want: time.Date(2024, 6, 15, 18, 30, 0, 0, la),
		},
		{
			name: "Tomorrow with meridiem clock",
			text: "Tomorrow at 3pm",
			want: time.Date(2024, 5, 2, 15, 0, 0, 0, la),
		},
		{
			name: "Tomorrow with clock, no 'at'",
			text: "tomorrow 4pm",
			want: time.Date(2024, 5, 2, 16, 0, 0, 0, la),
		},
		{
			name: "Next weekday with 24h clock",
			text: "next friday 19:00",
			want: time.Date(2024, 5, 3, 19, 0, 0, 0, la),
		},
		{
			name: "Bare clock resolves to same day",
			text: "15:00",
			want: time.Date(2024, 5, 1, 15, 0, 0, 0, la),
		},
		{
			name: "Noon is not midnight",
			text: "today at 12pm",
			want: time.Date(2024, 5, 1, 12, 0, 0, 0, la),
		},
		{
			name: "Midnight meridiem",
			text: "tomorrow at 12am",
			want: time.Date(2024, 5, 2, 0, 0, 0, 0, la),
		},
		{
			name:    "Empty text",
			text:    "   ",
			wantErr: true,
		},
		{
			name:    "Gibberish",
			text:    "see reverse for details",
			wantErr: true,
		},
		{
			name:    "Invalid clock",
			text:    "tomorrow at 29:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ParseDateTime(tt.text, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateTime(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDateTime(%q) got = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	got := parser.EndOfDay(base)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() got = %v, want %v", got, want)
	}
}
