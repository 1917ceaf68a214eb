package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	valid := map[string]string{
		"YYYY-MM-DD":     "2006-01-02",
		"DD/MM/YYYY":     "02/01/2006",
		"MMMM D, YYYY":   "January 2, 2006",
		"MMM YY":         "Jan 06",
		"M/D":            "1/2",
		"Date: YYYY":     "2ate: 2006", // unescaped D is the day
		"[Date]: YYYY":   "Date: 2006",
		"[YYYY]-MM":      "YYYY-01",
		"YYYY[]MM":       "200601",
		"[a[b]c":         "a[bc",
		"---":            "---",
		"(YYYY) edition": "(2006) edition",
	}
	for format, want := range valid {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(format)
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", format, err)
			}
			if got != want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", format, got, want)
			}
		})
	}

	for _, format := range []string{"", "[Date YYYY", strings.Repeat("Y", MaxDateFormatLength+1)} {
		if _, err := ParseDateFormat(format); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDateFormat(%q) error = %v, want ErrInvalidDateFormat", format, err)
		}
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{
			name: "no placeholder passes through",
			text: "Second edition",
			want: "Second edition",
		},
		{
			name: "bare placeholder uses ISO format",
			text: "Printed {date}",
			want: "Printed 2026-03-07",
		},
		{
			name: "custom format",
			text: "{date:DD/MM/YYYY}",
			want: "07/03/2026",
		},
		{
			name: "preset is case insensitive",
			text: "Draft of {date:LONG}",
			want: "Draft of March 7, 2026",
		},
		{
			name: "escaped literal inside format",
			text: "{date:[Week of] MMM D}",
			want: "Week of Mar 7",
		},
		{
			name: "several placeholders",
			text: "{date:YYYY} / {date:MM}",
			want: "2026 / 03",
		},
		{
			name: "unrelated braces are kept",
			text: "{version} {date:YY}",
			want: "{version} 26",
		},
		{
			name:    "empty format",
			text:    "{date:}",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "unclosed bracket",
			text:    "{date:[oops}",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Expand(tt.text, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expand(%q) error = %v, want %v", tt.text, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expand(%q) unexpected error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
