package volby

import (
	"volby-scraper/internal/fetcher"
	"volby-scraper/lib/telemetry"
)

// DefaultBaseUrl is the prefix locality links are relative to.
const DefaultBaseUrl = "https://www.volby.cz/pls/ps2017nss/"

const (
	report_client_resolve_localities = "client.resolve-localities"
	report_client_extract_result     = "client.extract-result"
	report_client_scrape_district    = "client.scrape-district"
)

type Client struct {
	fetcher fetcher.Fetcher
	baseUrl string
	tel     telemetry.API
}

// NewClient creates a Client that fetches through `f`. Locality links found
// on index pages are prefixed with `baseUrl`, DefaultBaseUrl is used when it
// is empty.
func NewClient(f fetcher.Fetcher, baseUrl string, tel telemetry.API) Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return Client{
		fetcher: f,
		baseUrl: baseUrl,
		tel:     telemetry.NewScopedAPI("volby", tel),
	}
}

func (c Client) BaseUrl() string {
	return c.baseUrl
}
