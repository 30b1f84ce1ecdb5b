package volby

import (
	"context"
	"fmt"
	"volby-scraper/internal/dataset"
	"volby-scraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type column struct {
	index int
	field string
}

// summaryColumns maps cell positions of the summary row to fields.
var summaryColumns = []column{
	{index: 3, field: dataset.FieldRegistered},
	{index: 4, field: dataset.FieldEnvelopes},
	{index: 7, field: dataset.FieldValid},
}

// summaryMinCells is the smallest row treated as the summary row, caption and
// header rows of the summary table are always shorter.
const summaryMinCells = 8

// party rows are `<th>position</th><th>name</th><td>position</td><td>votes</td>...`
const (
	partyNameHeader = 1
	partyVotesCell  = 1
	partyMinHeaders = 2
	partyMinCells   = 2
)

// ExtractResult fetches the result page of one locality and flattens it into
// a record holding the summary counts and one field per party.
func (c Client) ExtractResult(ctx context.Context, detailUrl string) (*dataset.Record, error) {
	ctx, span := tracer.Start(ctx, "ExtractResult")
	defer span.End()
	span.SetAttributes(attribute.String("url", detailUrl))

	doc, err := c.fetcher.Fetch(ctx, detailUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch result page")
		return nil, fmt.Errorf("extract result: %w", err)
	}

	record := ParseResult(doc)

	summaryFields := 0
	for _, col := range summaryColumns {
		if record.Has(col.field) {
			summaryFields++
		}
	}
	if summaryFields < len(summaryColumns) {
		c.tel.ReportWarning(report_client_extract_result, "missing summary row", detailUrl)
	}
	if record.Len() == summaryFields {
		c.tel.ReportWarning(report_client_extract_result, "no party results", detailUrl)
	}
	span.SetAttributes(attribute.Int("fields", record.Len()))

	return record, nil
}

// ParseResult reads a result page. The first table is the summary table, every
// table after it is a party table. Layout anomalies never fail, they leave
// the affected fields out of the record.
func ParseResult(doc *goquery.Document) *dataset.Record {
	record := dataset.NewRecord()

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return record
	}

	parseSummary(tables.First(), record)
	tables.Slice(1, tables.Length()).Each(func(_ int, table *goquery.Selection) {
		parseParties(table, record)
	})

	return record
}

func parseSummary(table *goquery.Selection, record *dataset.Record) {
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := htmlutil.CellTexts(row, "td")
		if len(cells) < summaryMinCells {
			return
		}
		for _, col := range summaryColumns {
			record.Set(col.field, htmlutil.CleanNumber(cells[col.index]))
		}
	})
}

func parseParties(table *goquery.Selection, record *dataset.Record) {
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		headers := htmlutil.CellTexts(row, "th")
		cells := htmlutil.CellTexts(row, "td")
		if len(headers) < partyMinHeaders || len(cells) < partyMinCells {
			return
		}

		party := headers[partyNameHeader]
		if party == "" {
			return
		}
		record.Set(party, htmlutil.CleanNumber(cells[partyVotesCell]))
	})
}
