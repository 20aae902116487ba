// Package scrape implements the one-shot devotional fetch command.
package scrape

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/gosabda/cmd/common"
	"github.com/jonesrussell/gosabda/internal/scraper"
)

// Command returns the scrape command.
func Command() *cobra.Command {
	var (
		year int
		date string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch one devotional and print it as JSON",
		Long: `Fetches the Santapan Harian edition for the given year and MMDD date
directly from SABDA.org and prints the extracted content as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, year, date)
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "edition year (YYYY)")
	cmd.Flags().StringVar(&date, "date", now.Format("0102"), "edition date (MMDD)")

	return cmd
}

// runScrape executes the scrape command with the provided parameters.
func runScrape(cmd *cobra.Command, year int, date string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	fetcher, err := scraper.NewFetcher(&deps.Config.Scraper, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}

	content, sourceURL, err := scraper.NewService(fetcher, deps.Logger).Scrape(cmd.Context(), year, date)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	deps.Logger.Info("Devotional scraped",
		"url", sourceURL,
		"paragraphs", content.ParagraphCount,
		"words", content.WordCount,
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(content); err != nil {
		return fmt.Errorf("failed to encode devotional: %w", err)
	}

	return nil
}
