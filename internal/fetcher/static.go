package fetcher

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Static serves documents from memory, keyed by URL. A URL that is not
// present fails with a 404 FetchError, the way a live server would.
type Static map[string]string

func (s Static) Fetch(ctx context.Context, link string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Url: link, Err: err}
	}
	page, ok := s[link]
	if !ok {
		return nil, &FetchError{
			Url:        link,
			StatusCode: http.StatusNotFound,
			Err:        ErrStatus,
		}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}
