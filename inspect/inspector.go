package inspect

import (
	"context"
	"log/slog"

	"github.com/fwojciec/metainspect"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages InspectAll fetches at once
// when no positive concurrency is given.
const DefaultConcurrency = 4

// Inspector fetches a page, parses it and extracts every metadata field.
//
// Inspector keeps no per-call state, so Inspect may be called from several
// goroutines at once; each call owns its own document and extraction.
type Inspector struct {
	fetcher metainspect.Fetcher
	parser  metainspect.Parser
	logger  *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger used for per-field debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// NewInspector creates an Inspector that fetches with fetcher and parses
// with parser.
func NewInspector(fetcher metainspect.Fetcher, parser metainspect.Parser, opts ...Option) *Inspector {
	i := &Inspector{
		fetcher: fetcher,
		parser:  parser,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inspect normalizes rawURL, fetches and parses the page, and returns a
// fully populated Result.
//
// Any failure is returned before extraction starts; a partial Result is
// never returned.
func (i *Inspector) Inspect(ctx context.Context, rawURL string) (*metainspect.Result, error) {
	target, err := ParseTarget(rawURL)
	if err != nil {
		return nil, err
	}

	resp, err := i.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		return nil, err
	}

	doc, err := i.parser.Parse(resp.Body, resp.ContentType)
	if err != nil {
		return nil, err
	}

	result := metainspect.NewResult(target)
	result.Response = resp
	return NewExtraction(doc, target.RootURL, i.logger).Populate(result), nil
}

// Outcome is the result of inspecting one URL as part of InspectAll.
type Outcome struct {
	URL    string
	Result *metainspect.Result
	Err    error
}

// InspectAll inspects every URL with at most concurrency inspections in
// flight. Outcomes are returned in input order. A failed URL does not stop
// the others.
func (i *Inspector) InspectAll(ctx context.Context, urls []string, concurrency int) []Outcome {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make([]Outcome, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for idx, u := range urls {
		g.Go(func() error {
			result, err := i.Inspect(ctx, u)
			outcomes[idx] = Outcome{URL: u, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
