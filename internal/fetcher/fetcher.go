package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"
	"volby-scraper/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const (
	report_client_fetch = "client.fetch"
)

// ErrStatus is wrapped by a FetchError whose response came back with a
// non-2xx status.
var ErrStatus = errors.New("non-success response status")

// FetchError is returned when a page could not be retrieved, either because
// the transport failed (StatusCode is 0) or because the server answered with
// a non-2xx status.
type FetchError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Url, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Url, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves a page and parses it into a document tree.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

type Options struct {
	UserAgent string
	// zero means no timeout is set on the client
	Timeout time.Duration
	// wraps the transport so requests look like they come from a browser
	CloudflareBypass bool
}

type Client struct {
	http *resty.Client
	tel  telemetry.API
}

// NewClient creates a resty backed Fetcher. Retries are never enabled, a
// failed request is returned to the caller as is.
func NewClient(opts Options, tel telemetry.API) Client {
	client := resty.New()
	client.SetRetryCount(0)
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	telemetry.InstrumentResty(client, "volby-scraper/http", tel)

	return Client{
		http: client,
		tel:  tel,
	}
}

func (c Client) Fetch(ctx context.Context, link string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	start := time.Now()
	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	fetchDuration.Record(
		ctx,
		time.Since(start).Milliseconds(),
		metric.WithAttributes(attribute.Bool("ok", err == nil && res.IsSuccess())),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		c.tel.ReportBroken(report_client_fetch, link, err)
		return nil, &FetchError{Url: link, Err: err}
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, res.Status())
		c.tel.ReportBroken(report_client_fetch, link, res.Status())
		return nil, &FetchError{
			Url:        link,
			StatusCode: res.StatusCode(),
			Err:        ErrStatus,
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		c.tel.ReportBroken(report_client_fetch, link, fmt.Errorf("parse html: %w", err))
		return nil, fmt.Errorf("parse html %s: %w", link, err)
	}
	return doc, nil
}
