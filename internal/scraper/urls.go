package scraper

import "fmt"

const (
	// printURLFormat is the print-friendly edition of a devotional. It
	// carries far less navigation chrome than the canonical page, so it is
	// always tried first.
	printURLFormat = "https://www.sabda.org/publikasi/e-sh/cetak/?tahun=%d&edisi=%s"

	// canonicalURLFormat is the regular archive page, used as a fallback
	// when the print edition is unavailable or yields no content.
	canonicalURLFormat = "https://www.sabda.org/publikasi/e-sh/%d/%s/%s"

	dateDigits = 4
)

// NormalizeDate left-pads a numeric MMDD date to four digits, so "101"
// becomes "0101". Longer values pass through unchanged.
func NormalizeDate(date string) string {
	for len(date) < dateDigits {
		date = "0" + date
	}
	return date
}

// PrintURL builds the print-edition URL for a devotional.
func PrintURL(year int, date string) string {
	return fmt.Sprintf(printURLFormat, year, NormalizeDate(date))
}

// CanonicalURL builds the archive URL for a devotional. The MMDD date is
// split into separate month and day path segments.
func CanonicalURL(year int, date string) string {
	date = NormalizeDate(date)
	return fmt.Sprintf(canonicalURLFormat, year, date[:2], date[2:])
}
