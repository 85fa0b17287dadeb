package metainspect

import (
	"context"
	"net/http"
	"time"
)

// Response holds the raw result of fetching a page.
type Response struct {
	// URL is the final URL after redirects.
	URL         string        `json:"url" yaml:"url"`
	StatusCode  int           `json:"statusCode" yaml:"statusCode"`
	Header      http.Header   `json:"header" yaml:"header"`
	ContentType string        `json:"contentType" yaml:"contentType"`
	Body        []byte        `json:"-" yaml:"-"`
	FetchedAt   time.Time     `json:"fetchedAt" yaml:"fetchedAt"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// Fetcher retrieves a single page.
type Fetcher interface {
	// Fetch performs one request for the URL and returns the response when
	// the status code is 200.
	//
	// Returns ENETWORK on transport failures, ESTATUS for any other status
	// code and ETOOLARGE when the body exceeds the configured limit.
	// The context controls cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases resources held by the fetcher.
	Close() error
}
