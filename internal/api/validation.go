package api

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Earliest year the Santapan Harian archive goes back to.
const minYear = 2000

var datePattern = regexp.MustCompile(`^\d{4}$`)

// parseYear validates the year query parameter. The upper bound admits
// next year so editions published ahead of print stay reachable. A non
// empty message means validation failed and carries the client-facing
// reason.
func parseYear(raw string) (int, string) {
	if raw == "" {
		return 0, "Year parameter is required"
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "Year must be an integer"
	}

	maxYear := time.Now().Year() + 1
	if year < minYear || year > maxYear {
		return 0, fmt.Sprintf("Year must be between %d and %d", minYear, maxYear)
	}

	return year, ""
}

// parseDate validates the MMDD date query parameter.
func parseDate(raw string) (string, string) {
	if raw == "" {
		return "", "Date parameter is required"
	}

	if !datePattern.MatchString(raw) {
		return "", "Date must be in MMDD format"
	}

	month, _ := strconv.Atoi(raw[:2])
	if month < 1 || month > 12 {
		return "", "Month must be between 01 and 12"
	}

	day, _ := strconv.Atoi(raw[2:])
	if day < 1 || day > 31 {
		return "", "Day must be between 01 and 31"
	}

	return raw, ""
}
