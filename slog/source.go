package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blocklib"
)

// Ensure LoggingURLSource implements blocklib.URLSource.
var _ blocklib.URLSource = (*LoggingURLSource)(nil)

// LoggingURLSource wraps a URLSource with debug logging.
type LoggingURLSource struct {
	next   blocklib.URLSource
	logger *slog.Logger
}

// NewLoggingURLSource creates a new LoggingURLSource.
func NewLoggingURLSource(next blocklib.URLSource, logger *slog.Logger) *LoggingURLSource {
	return &LoggingURLSource{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped source and logs the operation.
func (s *LoggingURLSource) DiscoverURLs(ctx context.Context) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page discovery",
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx)
}
