package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blocklib"
)

// Ensure LoggingConverter implements blocklib.DocumentConverter.
var _ blocklib.DocumentConverter = (*LoggingConverter)(nil)

// LoggingConverter wraps a DocumentConverter with debug logging.
type LoggingConverter struct {
	next   blocklib.DocumentConverter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next blocklib.DocumentConverter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the operation.
func (c *LoggingConverter) Convert(ctx context.Context, sourceURL string, doc *blocklib.LibraryDocument) (data []byte, err error) {
	defer func(begin time.Time) {
		c.logger.Info("convert",
			"block", doc.Name,
			"sections", len(doc.Sections),
			"url", sourceURL,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(ctx, sourceURL, doc)
}

// Extension delegates to the wrapped converter.
func (c *LoggingConverter) Extension() string {
	return c.next.Extension()
}
