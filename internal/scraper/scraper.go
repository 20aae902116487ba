// Package scraper fetches daily devotionals from SABDA.org and extracts
// their content from the page markup.
package scraper

import (
	"context"
	"fmt"

	"github.com/jonesrussell/gosabda/internal/domain"
	"github.com/jonesrussell/gosabda/internal/logger"
)

// PageFetcher downloads a single page body.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// Interface defines the scraping service contract.
type Interface interface {
	Scrape(ctx context.Context, year int, date string) (*domain.Devotional, string, error)
}

// Service coordinates fetching and extraction for a devotional. The print
// edition is tried first; the archive page serves as fallback when the
// print page fails or comes back without body paragraphs.
type Service struct {
	fetcher PageFetcher
	logger  logger.Interface
}

// NewService creates a scraping service.
func NewService(fetcher PageFetcher, log logger.Interface) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  log,
	}
}

// Ensure Service implements Interface.
var _ Interface = (*Service)(nil)

// Scrape retrieves the devotional for a year and MMDD date. It returns the
// extracted content together with the URL it came from. Content without a
// scripture reference or paragraphs is still returned, with a warning, as
// long as one of the pages could be read at all.
func (s *Service) Scrape(ctx context.Context, year int, date string) (*domain.Devotional, string, error) {
	date = NormalizeDate(date)

	printURL := PrintURL(year, date)
	content, err := s.scrapeURL(ctx, printURL)
	if err == nil && len(content.DevotionalContent) > 0 {
		s.warnLowQuality(content, printURL)
		return content, printURL, nil
	}
	if err != nil {
		s.logger.Warn("Print page failed, trying archive page", "url", printURL, "error", err)
	} else {
		s.logger.Warn("Print page had no paragraphs, trying archive page", "url", printURL)
	}

	canonicalURL := CanonicalURL(year, date)
	fallback, fallbackErr := s.scrapeURL(ctx, canonicalURL)
	if fallbackErr == nil && len(fallback.DevotionalContent) > 0 {
		s.warnLowQuality(fallback, canonicalURL)
		return fallback, canonicalURL, nil
	}

	// Neither page produced paragraphs. Whatever extracted at all is still
	// better than a hard failure.
	if err == nil {
		s.warnLowQuality(content, printURL)
		return content, printURL, nil
	}
	if fallbackErr == nil {
		s.warnLowQuality(fallback, canonicalURL)
		return fallback, canonicalURL, nil
	}

	return nil, "", fmt.Errorf("scrape %d/%s: %w", year, date, fallbackErr)
}

// scrapeURL fetches one page and runs extraction over it.
func (s *Service) scrapeURL(ctx context.Context, pageURL string) (*domain.Devotional, error) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return Extract(body)
}

// warnLowQuality logs when extraction found neither a scripture reference
// nor body paragraphs.
func (s *Service) warnLowQuality(content *domain.Devotional, pageURL string) {
	if content.LowQuality() {
		s.logger.Warn("Scraped content may be low quality", "url", pageURL)
	}
}
