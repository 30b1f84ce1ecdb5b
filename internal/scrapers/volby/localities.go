package volby

import (
	"context"
	"fmt"
	"strings"
	"volby-scraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Locality is one municipality listed on a district index page.
type Locality struct {
	Code      string
	Name      string
	DetailUrl string
}

// ResolveLocalities fetches a district index page and returns its localities
// in page order.
func (c Client) ResolveLocalities(ctx context.Context, indexUrl string) ([]Locality, error) {
	ctx, span := tracer.Start(ctx, "ResolveLocalities")
	defer span.End()

	doc, err := c.fetcher.Fetch(ctx, indexUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch index page")
		return nil, fmt.Errorf("resolve localities: %w", err)
	}

	localities := c.ParseLocalities(doc)
	span.SetAttributes(attribute.Int("localities", len(localities)))
	if len(localities) == 0 {
		c.tel.ReportWarning(report_client_resolve_localities, "no locality rows", indexUrl)
	}
	return localities, nil
}

// ParseLocalities picks the locality rows out of an index page. A row counts
// only when it has at least two cells and its first cell holds a link, this
// drops header rows, separators and district totals.
func (c Client) ParseLocalities(doc *goquery.Document) []Locality {
	localities := []Locality{}
	seen := map[string]bool{}

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		link := cells.First().Find("a").First()
		if link.Length() == 0 {
			return
		}

		code := strings.TrimSpace(htmlutil.GetText(cells.Get(0)))
		name := strings.TrimSpace(htmlutil.GetText(cells.Get(1)))

		href, ok := link.Attr("href")
		if !ok {
			c.tel.ReportWarning(report_client_resolve_localities, "link without href", code, name)
			return
		}
		if seen[code] {
			c.tel.ReportWarning(report_client_resolve_localities, "duplicate locality code", code, name)
		}
		seen[code] = true

		localities = append(localities, Locality{
			Code:      code,
			Name:      name,
			DetailUrl: c.baseUrl + href,
		})
	})

	return localities
}
