//nolint:testpackage // Testing unexported functions parseYear and parseDate
package api

import (
	"fmt"
	"testing"
	"time"
)

func TestParseYear(t *testing.T) {
	maxYear := time.Now().Year() + 1
	rangeMsg := fmt.Sprintf("Year must be between 2000 and %d", maxYear)

	tests := []struct {
		name     string
		raw      string
		wantYear int
		wantMsg  string
	}{
		{"valid year", "2024", 2024, ""},
		{"lower bound", "2000", 2000, ""},
		{"upper bound next year", fmt.Sprintf("%d", maxYear), maxYear, ""},
		{"missing", "", 0, "Year parameter is required"},
		{"not a number", "abcd", 0, "Year must be an integer"},
		{"too early", "1999", 0, rangeMsg},
		{"too late", fmt.Sprintf("%d", maxYear+1), 0, rangeMsg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, msg := parseYear(tt.raw)
			if year != tt.wantYear {
				t.Errorf("parseYear(%q) year = %d, want %d", tt.raw, year, tt.wantYear)
			}
			if msg != tt.wantMsg {
				t.Errorf("parseYear(%q) msg = %q, want %q", tt.raw, msg, tt.wantMsg)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantDate string
		wantMsg  string
	}{
		{"valid date", "0101", "0101", ""},
		{"end of year", "1231", "1231", ""},
		{"missing", "", "", "Date parameter is required"},
		{"too short", "101", "", "Date must be in MMDD format"},
		{"too long", "01011", "", "Date must be in MMDD format"},
		{"not digits", "ab01", "", "Date must be in MMDD format"},
		{"month zero", "0015", "", "Month must be between 01 and 12"},
		{"month thirteen", "1301", "", "Month must be between 01 and 12"},
		{"day zero", "0100", "", "Day must be between 01 and 31"},
		{"day thirty two", "0132", "", "Day must be between 01 and 31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, msg := parseDate(tt.raw)
			if date != tt.wantDate {
				t.Errorf("parseDate(%q) date = %q, want %q", tt.raw, date, tt.wantDate)
			}
			if msg != tt.wantMsg {
				t.Errorf("parseDate(%q) msg = %q, want %q", tt.raw, msg, tt.wantMsg)
			}
		})
	}
}
