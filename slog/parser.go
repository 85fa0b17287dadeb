package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/metainspect"
)

// Ensure LoggingParser implements metainspect.Parser.
var _ metainspect.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   metainspect.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next metainspect.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) Parse(body []byte, contentType string) (doc metainspect.Document, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse",
			"bytes", len(body),
			"contentType", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(body, contentType)
}
