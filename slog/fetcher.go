// Package slog provides log/slog decorators for metainspect services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/metainspect"
)

// Ensure LoggingFetcher implements metainspect.Fetcher.
var _ metainspect.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   metainspect.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next metainspect.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *metainspect.Response, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
		}
		if resp != nil {
			attrs = append(attrs, "status", resp.StatusCode, "bytes", len(resp.Body))
		}
		if err != nil {
			attrs = append(attrs, "code", metainspect.ErrorCode(err), "err", err)
			f.logger.Warn("fetch", attrs...)
			return
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
