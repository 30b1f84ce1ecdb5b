package fetcher

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("volby-scraper/internal/fetcher")
var meter = otel.Meter("volby-scraper/internal/fetcher")

var fetchDuration, _ = meter.Int64Histogram(
	"fetch_duration_ms",
)
