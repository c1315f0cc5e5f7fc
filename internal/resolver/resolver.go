package resolver

import (
	"context"
	"log/slog"

	"github.com/yourorg/flatdash/internal/observability/metrics"
)

// Source tells a caller whether a result came from the live database or the
// demo fixtures, without it having to inspect logs.
type Source string

const (
	SourceLive Source = "live"
	SourceDemo Source = "demo"
)

// ReasonUnconfigured marks a fallback taken without any live attempt because
// the data source is not configured. Not an error, a recognized mode.
const ReasonUnconfigured = "unconfigured"

// Result is the explicit two-branch outcome of a resolved fetch: live data,
// or demo data with the reason the fallback was taken.
type Result[T any] struct {
	Data   T
	Source Source
	Reason string
}

// Demo reports whether the result was served from demo fixtures
func (r Result[T]) Demo() bool {
	return r.Source == SourceDemo
}

// Resolve runs one fetch under the fallback policy. An unconfigured data
// source skips the live attempt entirely; a live error is logged and
// substituted with demo data, never re-raised. One attempt, no retry.
func Resolve[T any](ctx context.Context, configured bool, op string, logger *slog.Logger, live func(context.Context) (T, error), demo func() T) Result[T] {
	if logger == nil {
		logger = slog.Default()
	}

	if !configured {
		logger.Debug("data source not configured, serving demo data",
			slog.String("operation", op),
		)
		metrics.ObserveFallback(op, "unconfigured")
		return Result[T]{Data: demo(), Source: SourceDemo, Reason: ReasonUnconfigured}
	}

	data, err := live(ctx)
	if err != nil {
		logger.Error("live fetch failed, serving demo data",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		metrics.ObserveFallback(op, "error")
		return Result[T]{Data: demo(), Source: SourceDemo, Reason: err.Error()}
	}

	return Result[T]{Data: data, Source: SourceLive}
}
