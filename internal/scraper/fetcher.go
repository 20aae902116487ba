package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/gosabda/internal/config"
	"github.com/jonesrussell/gosabda/internal/logger"
)

// minResponseBytes is the smallest body that can plausibly hold a
// devotional page. Shorter responses are error pages or redirect stubs.
const minResponseBytes = 512

// randomUserAgents is a small set of desktop browser user agents rotated
// per request.
var randomUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
}

// Fetcher downloads devotional pages with polite pacing. The base
// collector holds the shared backend and rate limit; each Fetch works on a
// clone so callbacks never accumulate across requests.
type Fetcher struct {
	base     *colly.Collector
	delayMin time.Duration
	delayMax time.Duration
	logger   logger.Interface
}

// NewFetcher creates a Fetcher from scraper configuration.
func NewFetcher(cfg *config.ScraperConfig, log logger.Interface) (*Fetcher, error) {
	base := colly.NewCollector(
		colly.UserAgent(randomUserAgents[0]),
		colly.IgnoreRobotsTxt(),
		// Revisits are routine here: the same URL is fetched again whenever
		// its cache entry expires.
		colly.AllowURLRevisit(),
	)
	base.SetRequestTimeout(cfg.Timeout)

	if err := base.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
	}); err != nil {
		return nil, fmt.Errorf("failed to set rate limit: %w", err)
	}

	return &Fetcher{
		base:     base,
		delayMin: cfg.DelayMin,
		delayMax: cfg.DelayMax,
		logger:   log,
	}, nil
}

// Fetch downloads a single page and returns its body. A randomized delay
// runs before the request, and responses below minResponseBytes are
// rejected.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := f.politeDelay(ctx); err != nil {
		return nil, err
	}

	c := f.base.Clone()

	c.OnRequest(func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
			return
		default:
		}

		r.Headers.Set("User-Agent", randomUserAgents[rand.Intn(len(randomUserAgents))])
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "id-ID,id;q=0.9,en-US;q=0.8,en;q=0.7")
		r.Headers.Set("DNT", "1")
		r.Headers.Set("Upgrade-Insecure-Requests", "1")
		r.Headers.Set("Sec-Fetch-Dest", "document")
		r.Headers.Set("Sec-Fetch-Mode", "navigate")
		r.Headers.Set("Sec-Fetch-Site", "none")
		r.Headers.Set("Sec-Fetch-User", "?1")
		r.Headers.Set("Cache-Control", "max-age=0")

		f.logger.Debug("Fetching page", "url", r.URL.String())
	})

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		f.logger.Debug("Page fetched", "url", r.Request.URL.String(), "status", r.StatusCode, "bytes", len(r.Body))
		body = r.Body
	})

	if err := c.Visit(pageURL); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	// An aborted request surfaces as a nil error with an empty body.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if len(body) < minResponseBytes {
		return nil, fmt.Errorf("fetch %s: response too small (%d bytes)", pageURL, len(body))
	}

	return body, nil
}

// politeDelay sleeps a random duration between the configured minimum and
// maximum, or returns early when the context is cancelled.
func (f *Fetcher) politeDelay(ctx context.Context) error {
	delay := f.delayMin
	if f.delayMax > f.delayMin {
		delay += time.Duration(rand.Int63n(int64(f.delayMax - f.delayMin)))
	}
	if delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
