package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/geolens"
)

var _ geolens.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer logs each analysis with the scores it produced.
type LoggingAnalyzer struct {
	next   geolens.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer decorates next with result logging.
func NewLoggingAnalyzer(next geolens.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the scores.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, content *geolens.Content) (report *geolens.Report, err error) {
	begin := time.Now()
	defer func() {
		ref := ""
		if content != nil {
			ref = content.Ref
		}
		fields := []any{"ref", ref}
		if report != nil {
			fields = append(fields, "seo", report.SEO.Score, "geo", report.GEO.Score)
		}
		fields = append(fields, "duration", time.Since(begin), "err", err)
		a.logger.Info("analyze", fields...)
	}()
	return a.next.Analyze(ctx, content)
}
