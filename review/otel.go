package review

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/redline-ai/sdk/llm"
)

// otelMetrics holds the OpenTelemetry metric instruments for the review
// pipeline. These are created once during Reviewer construction and
// reused for every review.
type otelMetrics struct {
	// stageTokens records total tokens consumed per stage call
	stageTokens metric.Int64Histogram

	// stageCounter increments for each stage call, tagged with outcome
	stageCounter metric.Int64Counter

	// reviewCounter increments for each completed or failed review
	reviewCounter metric.Int64Counter
}

// initOTelMetrics creates the metric instruments. Called once when a
// MeterProvider is configured.
func (r *Reviewer) initOTelMetrics() (*otelMetrics, error) {
	if r.otelMeter == nil {
		return nil, nil
	}

	metrics := &otelMetrics{}
	var err error

	metrics.stageTokens, err = r.otelMeter.Int64Histogram(
		"review.stage.tokens",
		metric.WithDescription("Tokens consumed by one pipeline stage call"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create stage token histogram: %w", err)
	}

	metrics.stageCounter, err = r.otelMeter.Int64Counter(
		"review.stage.count",
		metric.WithDescription("Number of pipeline stage calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create stage counter: %w", err)
	}

	metrics.reviewCounter, err = r.otelMeter.Int64Counter(
		"review.count",
		metric.WithDescription("Number of contract reviews"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create review counter: %w", err)
	}

	return metrics, nil
}

// startReviewSpan opens the root span for one review run.
// Returns the original context with a no-op span when no tracer is set.
func (r *Reviewer) startReviewSpan(ctx context.Context, reviewID string) (context.Context, trace.Span) {
	if r.otelTracer == nil {
		return ctx, noopSpan()
	}
	return r.otelTracer.Start(ctx, "review.run",
		trace.WithAttributes(attribute.String("review.id", reviewID)))
}

// startStageSpan opens a span for one pipeline stage call.
func (r *Reviewer) startStageSpan(ctx context.Context, stage Stage) (context.Context, trace.Span) {
	if r.otelTracer == nil {
		return ctx, noopSpan()
	}
	return r.otelTracer.Start(ctx, "review.stage."+stage.String(),
		trace.WithAttributes(attribute.String("review.stage", stage.String())))
}

// recordStageSuccess records span and metric data for a successful stage call.
func (r *Reviewer) recordStageSuccess(ctx context.Context, span trace.Span, stage Stage, usage llm.TokenUsage) {
	span.SetAttributes(attribute.Int("review.stage.total_tokens", usage.TotalTokens))
	span.SetStatus(codes.Ok, "")

	if r.otelMetrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("stage", stage.String()),
		attribute.String("outcome", "success"),
	)
	r.otelMetrics.stageTokens.Record(ctx, int64(usage.TotalTokens),
		metric.WithAttributes(attribute.String("stage", stage.String())))
	r.otelMetrics.stageCounter.Add(ctx, 1, attrs)
}

// recordStageError records span and metric data for a failed stage call.
func (r *Reviewer) recordStageError(ctx context.Context, span trace.Span, stage Stage, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if r.otelMetrics == nil {
		return
	}
	r.otelMetrics.stageCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage.String()),
		attribute.String("outcome", "error"),
	))
}

// recordReviewOutcome counts a finished review run.
func (r *Reviewer) recordReviewOutcome(ctx context.Context, success bool) {
	if r.otelMetrics == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.otelMetrics.reviewCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// noopSpan returns a span that records nothing, used when tracing is disabled.
func noopSpan() trace.Span {
	return trace.SpanFromContext(context.Background())
}
