package volby

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("volby-scraper/internal/scrapers/volby")
var meter = otel.Meter("volby-scraper/internal/scrapers/volby")

var localitiesProcessed, _ = meter.Int64Counter(
	"localities_processed",
)
