package volby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"volby-scraper/internal/dataset"
	"volby-scraper/internal/fetcher"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type ScrapeOptions struct {
	// SkipFailed drops a locality whose result page cannot be fetched instead
	// of aborting the whole run. The index page is always required.
	SkipFailed bool
}

type ScrapeResult struct {
	// Records holds one raw, not yet normalized record per scraped locality,
	// in index order.
	Records []*dataset.Record
	// Skipped lists localities dropped under ScrapeOptions.SkipFailed.
	Skipped []Locality
}

// ScrapeDistrict resolves the localities of a district and extracts the result
// of each one, strictly one after another. Without SkipFailed the first
// failed fetch aborts the run and no records are returned.
func (c Client) ScrapeDistrict(ctx context.Context, indexUrl string, opts ScrapeOptions) (ScrapeResult, error) {
	ctx, span := tracer.Start(ctx, "ScrapeDistrict")
	defer span.End()

	slog.InfoContext(ctx, "resolving localities", "url", indexUrl)
	localities, err := c.ResolveLocalities(ctx, indexUrl)
	if err != nil {
		span.SetStatus(codes.Error, "failed to resolve localities")
		return ScrapeResult{}, err
	}
	slog.InfoContext(ctx, "found localities", "count", len(localities))
	c.tel.ReportCount(report_client_scrape_district, int64(len(localities)))

	result := ScrapeResult{
		Records: make([]*dataset.Record, 0, len(localities)),
	}
	for i, locality := range localities {
		slog.InfoContext(
			ctx, "processing locality",
			"progress", fmt.Sprintf("%d/%d", i+1, len(localities)),
			"code", locality.Code,
			"name", locality.Name,
		)

		votes, err := c.ExtractResult(ctx, locality.DetailUrl)
		var fetchErr *fetcher.FetchError
		if err != nil && opts.SkipFailed && errors.As(err, &fetchErr) && ctx.Err() == nil {
			c.tel.ReportWarning(report_client_scrape_district, "skipped locality", locality.Code, err)
			result.Skipped = append(result.Skipped, locality)
			continue
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to extract locality")
			return ScrapeResult{}, fmt.Errorf("locality %s (%s): %w", locality.Code, locality.Name, err)
		}

		record := dataset.NewRecord()
		record.Set(dataset.FieldCode, locality.Code)
		record.Set(dataset.FieldLocation, locality.Name)
		record.Merge(votes)
		result.Records = append(result.Records, record)

		localitiesProcessed.Add(ctx, 1)
	}

	span.SetAttributes(
		attribute.Int("records", len(result.Records)),
		attribute.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}
