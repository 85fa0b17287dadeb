package mock

import (
	"context"

	"github.com/fwojciec/metainspect"
)

var _ metainspect.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of metainspect.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*metainspect.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*metainspect.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
