package volby

import (
	"context"
	"errors"
	"testing"
	"volby-scraper/internal/dataset"
	"volby-scraper/internal/fetcher"
	"volby-scraper/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestParseResultSummary(t *testing.T) {
	doc := parseDoc(t, resultPage(
		summaryTable("1", "1", "100,00", "1 000", "800", "80,00", "800", "790"),
	))

	record := ParseResult(doc)
	require.Equal(t, map[string]string{
		"registered": "1000",
		"envelopes":  "800",
		"valid":      "790",
	}, record.Map())
	require.Equal(t, []string{"registered", "envelopes", "valid"}, record.Keys())
}

func TestParseResultCleansNumbers(t *testing.T) {
	doc := parseDoc(t, resultPage(
		summaryTable("1", "1", "100,00", "12&nbsp;345", " 9 876 ", "80,00", "9876", "9&nbsp;801", "99,24"),
		partyTable(partyRow{position: "1", name: "ODS", votes: "1&nbsp;204"}),
	))

	record := ParseResult(doc)
	require.Equal(t, map[string]string{
		"registered": "12345",
		"envelopes":  "9876",
		"valid":      "9801",
		"ODS":        "1204",
	}, record.Map())
}

func TestParseResultShortRowsExtractNothing(t *testing.T) {
	doc := parseDoc(t, resultPage(
		summaryTable("1", "1", "100,00", "1 000", "800", "80,00", "800"),
	))

	record := ParseResult(doc)
	require.Equal(t, 0, record.Len())
}

func TestParseResultLastSummaryRowWins(t *testing.T) {
	doc := parseDoc(t, resultPage(`<table>
		<tr><td>a</td><td>b</td><td>c</td><td>1</td><td>2</td><td>f</td><td>g</td><td>3</td></tr>
		<tr><td>a</td><td>b</td><td>c</td><td>4</td><td>5</td><td>f</td><td>g</td><td>6</td></tr>
	</table>`))

	record := ParseResult(doc)
	require.Equal(t, map[string]string{
		"registered": "4",
		"envelopes":  "5",
		"valid":      "6",
	}, record.Map())
}

func TestParseResultParties(t *testing.T) {
	doc := parseDoc(t, resultPage(
		summaryTable("1", "1", "100,00", "1 000", "800", "80,00", "800", "790"),
		partyTable(
			partyRow{position: "1", name: "Občanská demokratická strana", votes: "100"},
			partyRow{position: "2", name: "  ", votes: "7"},
			partyRow{position: "3", name: "ANO 2011", votes: "50"},
		),
		partyTable(
			partyRow{position: "4", name: "Česká pirátská strana", votes: "30"},
			partyRow{position: "3", name: "ANO 2011", votes: "55"},
		),
	))

	record := ParseResult(doc)
	require.Equal(t, []string{
		"registered", "envelopes", "valid",
		"Občanská demokratická strana", "ANO 2011", "Česká pirátská strana",
	}, record.Keys())

	votes, _ := record.Get("ANO 2011")
	require.Equal(t, "55", votes)
	votes, _ = record.Get("Česká pirátská strana")
	require.Equal(t, "30", votes)
}

func TestParseResultIgnoresPartyRowsInSummaryTable(t *testing.T) {
	doc := parseDoc(t, resultPage(
		`<table><tr><th>1</th><th>ODS</th><td>1</td><td>100</td></tr></table>`,
	))
	require.Equal(t, 0, ParseResult(doc).Len())
}

func TestParseResultWithoutTables(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>Stránka nenalezena</p></body></html>`)
	require.Equal(t, 0, ParseResult(doc).Len())
}

func TestExtractResult(t *testing.T) {
	detailUrl := testBaseUrl + "ps311?xobec=500054"
	pages := fetcher.Static{
		detailUrl: resultPage(
			summaryTable("1", "1", "100,00", "1 000", "800", "80,00", "800", "790"),
			partyTable(partyRow{position: "1", name: "ODS", votes: "100"}),
		),
		testBaseUrl + "ps311?xobec=empty": resultPage(`<table></table>`),
	}
	rec := &telemetry.Recorder{}
	client := NewClient(pages, testBaseUrl, rec)

	record, err := client.ExtractResult(context.Background(), detailUrl)
	require.NoError(t, err)
	votes, ok := record.Get("ODS")
	require.True(t, ok)
	require.Equal(t, "100", votes)
	require.Empty(t, rec.Find("warning", report_client_extract_result))

	record, err = client.ExtractResult(context.Background(), testBaseUrl+"ps311?xobec=empty")
	require.NoError(t, err)
	require.False(t, record.Has(dataset.FieldValid))
	require.Len(t, rec.Find("warning", report_client_extract_result), 2)

	_, err = client.ExtractResult(context.Background(), testBaseUrl+"ps311?xobec=missing")
	var fetchErr *fetcher.FetchError
	require.True(t, errors.As(err, &fetchErr))
}
