package commands

import (
	"fmt"
	"os"
	"time"
	"volby-scraper/internal/fetcher"
	"volby-scraper/internal/scrapers/volby"
	"volby-scraper/lib/configutil"
)

type Config struct {
	BaseUrl          string `json:"base_url"`
	UserAgent        string `json:"user_agent"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	SkipFailed       bool   `json:"skip_failed"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:        volby.DefaultBaseUrl,
		UserAgent:      "volby-scraper/1.0",
		TimeoutSeconds: 30,
	}
}

// loadConfig reads `path` (and its .local override) over the defaults. Keys
// the files set win even when zero, `timeout_seconds: 0` disables the timeout.
// A missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	err := configutil.ReadConfigOnto(path, &cfg)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) fetcherOptions() fetcher.Options {
	return fetcher.Options{
		UserAgent:        c.UserAgent,
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		CloudflareBypass: c.CloudflareBypass,
	}
}
