package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	"volby-scraper/internal/fetcher"
	"volby-scraper/internal/scrapers/volby"
	"volby-scraper/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	baseUrl    *string

	tel telemetry.Telemetry
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "volby.json5", "The configuration file to read.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log requests and parsing details.")
	baseUrl = rootCmd.PersistentFlags().String("base-url", "", "The prefix locality links are relative to, overrides the config.")
}

var rootCmd = &cobra.Command{
	Use:           "volby-cli",
	Short:         "volby-cli scrapes per-locality election results of a district into a CSV file.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)

		var err error
		tel, err = telemetry.SetupFromEnv(cmd.Context(), "volby-cli")
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no telemetry.json5 found, telemetry is disabled")
			return
		}
		if err != nil {
			slog.Warn("failed to setup telemetry", "err", err)
			return
		}
		if tel.MeterProvider != nil {
			telemetry.InstrumentPerfStats(cmd.Context(), time.Second*10)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdownTelemetry()
	},
}

func shutdownTelemetry() {
	if !tel.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := tel.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}
	tel = telemetry.Telemetry{}
}

// setup reads the config, applies flag overrides and builds the scraper.
func setup(cmd *cobra.Command) (Config, volby.Client, error) {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return Config{}, volby.Client{}, err
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseUrl = *baseUrl
	}

	api := telemetry.SlogAPI{}
	client := volby.NewClient(
		fetcher.NewClient(cfg.fetcherOptions(), api),
		cfg.BaseUrl,
		api,
	)
	return cfg, client, nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		shutdownTelemetry()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
