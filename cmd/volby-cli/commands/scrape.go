package commands

import (
	"fmt"
	"log/slog"
	"time"
	"volby-scraper/internal/dataset"
	"volby-scraper/internal/export"
	"volby-scraper/internal/scrapers/volby"
	"volby-scraper/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	scrapeDb         *string
	scrapePreview    *int
	scrapeSkipFailed *bool
)

func init() {
	scrapeDb = scrapeCmd.Flags().String("db", "", "Also store the results in this SQLite database.")
	scrapePreview = scrapeCmd.Flags().Int("preview", 0, "Print the first N rows of the dataset before writing it.")
	scrapeSkipFailed = scrapeCmd.Flags().Bool("skip-failed", false, "Skip localities whose result page cannot be fetched instead of aborting.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <district_url> <output.csv> [--db <path/to/results.db>]",
	Short: "Scrapes the results of every locality in a district and writes them as CSV.",
	Example: "volby-cli scrape " +
		"'https://www.volby.cz/pls/ps2017nss/ps32?xjazyk=CZ&xkraj=2&xnumnuts=2101' vysledky.csv",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		districtUrl, destination := args[0], args[1]

		cfg, client, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("skip-failed") {
			cfg.SkipFailed = *scrapeSkipFailed
		}

		t1 := time.Now()
		result, err := client.ScrapeDistrict(cmd.Context(), districtUrl, volby.ScrapeOptions{
			SkipFailed: cfg.SkipFailed,
		})
		if err != nil {
			return fmt.Errorf("scrape district: %w", err)
		}
		records := dataset.Normalize(result.Records)

		if *scrapePreview > 0 && len(records) > 0 {
			export.Preview(cmd.OutOrStdout(), records, *scrapePreview)
		}

		written, err := export.NewCSV(telemetry.SlogAPI{}).Export(cmd.Context(), records, destination)
		if err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		if !written {
			slog.Info("nothing to export", "destination", destination)
		} else {
			slog.Info("data saved", "destination", destination)
		}

		if *scrapeDb != "" {
			err = exportSQLite(cmd, records)
			if err != nil {
				return err
			}
		}

		slog.Info(
			"scrape finished",
			"localities", len(records),
			"skipped", len(result.Skipped),
			"seconds", time.Since(t1).Seconds(),
		)
		return nil
	},
}

func exportSQLite(cmd *cobra.Command, records []*dataset.Record) error {
	db, err := export.OpenSQLite(*scrapeDb)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	written, err := export.NewSQLite(db, telemetry.SlogAPI{}).Export(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("export sqlite: %w", err)
	}
	if written {
		slog.Info("data stored", "db", *scrapeDb)
	}
	return nil
}
