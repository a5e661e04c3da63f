package review

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	sdk "github.com/redline-ai/sdk"
	"github.com/redline-ai/sdk/llm"
)

// Reviewer orchestrates the five-stage contract review pipeline.
//
// The inference client is an explicit dependency so tests can substitute
// deterministic stubs. A Reviewer holds no per-review state: every call
// to RunReview works on its own accumulator, so one Reviewer may serve
// concurrent reviews.
type Reviewer struct {
	client llm.Client
	stages map[Stage]StageConfig
	logger *slog.Logger

	// newID and now are injectable for deterministic tests.
	newID func() string
	now   func() time.Time

	// tracker aggregates token usage across all reviews served by this
	// Reviewer. Per-review totals are computed from snapshots around a run.
	tracker llm.TokenTracker

	// Optional OpenTelemetry instrumentation. Nil-safe when unset.
	otelTracer  trace.Tracer
	otelMeter   metric.Meter
	otelMetrics *otelMetrics
}

// ReviewerOption is a functional option for configuring a Reviewer.
type ReviewerOption func(*Reviewer)

// WithLogger sets the structured logger used by the pipeline.
func WithLogger(logger *slog.Logger) ReviewerOption {
	return func(r *Reviewer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStageConfig overrides the model/temperature assignment for one stage.
func WithStageConfig(stage Stage, cfg StageConfig) ReviewerOption {
	return func(r *Reviewer) {
		r.stages[stage] = cfg
	}
}

// WithIDGenerator overrides report ID generation. The default generates
// random UUIDs; tests inject a fixed generator for reproducible reports.
func WithIDGenerator(gen func() string) ReviewerOption {
	return func(r *Reviewer) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) ReviewerOption {
	return func(r *Reviewer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithTokenTracker sets the tracker that accumulates token usage.
func WithTokenTracker(tracker llm.TokenTracker) ReviewerOption {
	return func(r *Reviewer) {
		if tracker != nil {
			r.tracker = tracker
		}
	}
}

// WithTracer enables OpenTelemetry spans around each pipeline stage.
func WithTracer(tracer trace.Tracer) ReviewerOption {
	return func(r *Reviewer) {
		r.otelTracer = tracer
	}
}

// WithMeterProvider enables OpenTelemetry metrics for stage durations
// and review counts.
func WithMeterProvider(provider metric.MeterProvider) ReviewerOption {
	return func(r *Reviewer) {
		if provider != nil {
			r.otelMeter = provider.Meter("github.com/redline-ai/sdk/review")
		}
	}
}

// NewReviewer creates a Reviewer backed by the given inference client.
func NewReviewer(client llm.Client, opts ...ReviewerOption) *Reviewer {
	r := &Reviewer{
		client:  client,
		stages:  defaultStageConfigs(),
		logger:  slog.Default(),
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
		tracker: llm.NewTokenTracker(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.otelMeter != nil {
		metrics, err := r.initOTelMetrics()
		if err != nil {
			r.logger.Warn("failed to initialize otel metrics", "error", err)
		} else {
			r.otelMetrics = metrics
		}
	}

	return r
}

func (r *Reviewer) stageConfig(stage Stage) StageConfig {
	return r.stages[stage]
}

// RunReview executes the complete contract review pipeline.
//
// The returned report is always non-nil and its Success field is the
// discriminant: when false, Error is set and ContractAnalysis,
// ExecutiveSummary, and NextSteps are absent. Only an empty-input
// validation failure or a clause-detection failure produces a false
// Success (and a non-nil error); failures in later stages degrade that
// stage's slot and the review still completes.
func (r *Reviewer) RunReview(ctx context.Context, contractText string) (*ReviewReport, error) {
	const op = "Reviewer.RunReview"

	report := &ReviewReport{
		ID:        r.newID(),
		CreatedAt: r.now(),
	}

	if strings.TrimSpace(contractText) == "" {
		report.Error = sdk.ErrNoContractText.Error()
		return report, sdk.NewValidationError(op, sdk.ErrNoContractText)
	}

	// Per-run usage accumulator; the Reviewer-level tracker keeps the
	// cumulative totals across reviews.
	run := llm.NewTokenTracker()

	ctx, reviewSpan := r.startReviewSpan(ctx, report.ID)
	defer reviewSpan.End()

	r.logger.Info("starting contract review",
		"review_id", report.ID,
		"text_length", len(contractText))

	// Stage 1: clause detection. Every later prompt depends on its
	// output, so a failure here aborts the review.
	clauses, err := r.detectClauses(ctx, run, contractText)
	if err != nil {
		r.logger.Error("clause detection failed, aborting review",
			"review_id", report.ID,
			"error", err)
		report.Error = err.Error()
		r.recordReviewOutcome(ctx, false)
		return report, err
	}
	r.logger.Info("clause detection complete",
		"review_id", report.ID,
		"clauses", len(clauses.DetectedClauses))

	// Stage 2: risk analysis, seeded with the detected clauses.
	risks, err := r.analyzeRisks(ctx, run, contractText, clauses.DetectedClauses)
	if err != nil {
		r.logger.Warn("risk analysis failed, continuing with degraded default",
			"review_id", report.ID,
			"error", err)
		risks = degradedRiskAnalysis(err)
	}

	// Stage 3: language clarity, independent of earlier stages.
	clarity, err := r.assessClarity(ctx, run, contractText)
	if err != nil {
		r.logger.Warn("clarity assessment failed, continuing with degraded default",
			"review_id", report.ID,
			"error", err)
		clarity = degradedClarityAssessment(err)
	}

	// Stage 4: redline suggestions, seeded with clauses and risks.
	redlines, err := r.suggestRedlines(ctx, run, contractText, &risks, clauses.DetectedClauses)
	if err != nil {
		r.logger.Warn("redline generation failed, continuing with degraded default",
			"review_id", report.ID,
			"error", err)
		redlines = degradedRedlineReport(err)
	}

	// Stage 5: prioritization. Local derivation, cannot fail.
	plan := PrioritizeChanges(redlines.RedlineSuggestions)

	report.Success = true
	report.ContractAnalysis = &ContractAnalysis{
		ClauseDetection:      clauses,
		RiskAnalysis:         risks,
		LanguageClarity:      clarity,
		RedlineSuggestions:   redlines,
		ChangePrioritization: plan,
	}
	report.ExecutiveSummary = buildExecutiveSummary(&clauses, &risks, &redlines)
	report.NextSteps = buildNextSteps(&risks, &redlines)

	report.TokenUsage = run.Total()

	r.recordReviewOutcome(ctx, true)
	r.logger.Info("contract review complete",
		"review_id", report.ID,
		"risk_level", report.ExecutiveSummary.OverallAssessment.RiskLevel,
		"total_tokens", report.TokenUsage.TotalTokens)

	return report, nil
}

func (r *Reviewer) detectClauses(ctx context.Context, run *llm.DefaultTokenTracker, contractText string) (ClauseDetection, error) {
	var out ClauseDetection
	err := r.completeJSON(ctx, run, StageClauseDetection,
		clauseSystemPrompt, buildClausePrompt(contractText), &out)
	return out, err
}

func (r *Reviewer) analyzeRisks(ctx context.Context, run *llm.DefaultTokenTracker, contractText string, clauses []DetectedClause) (RiskAnalysis, error) {
	var out RiskAnalysis
	err := r.completeJSON(ctx, run, StageRiskAnalysis,
		riskSystemPrompt, buildRiskPrompt(contractText, clauses), &out)
	return out, err
}

func (r *Reviewer) assessClarity(ctx context.Context, run *llm.DefaultTokenTracker, contractText string) (ClarityAssessment, error) {
	var out ClarityAssessment
	err := r.completeJSON(ctx, run, StageLanguageClarity,
		"", buildClarityPrompt(contractText), &out)
	return out, err
}

func (r *Reviewer) suggestRedlines(ctx context.Context, run *llm.DefaultTokenTracker, contractText string, risks *RiskAnalysis, clauses []DetectedClause) (RedlineReport, error) {
	var out RedlineReport
	err := r.completeJSON(ctx, run, StageRedlineSuggestions,
		redlineSystemPrompt, buildRedlinePrompt(contractText, risks, clauses), &out)
	return out, err
}

// TokenUsage returns a snapshot of cumulative token usage across all
// reviews served by this Reviewer, broken down by stage.
func (r *Reviewer) TokenUsage() llm.Snapshot {
	if t, ok := r.tracker.(*llm.DefaultTokenTracker); ok {
		return t.Snapshot()
	}
	stages := make(map[string]llm.TokenUsage)
	for _, stage := range r.tracker.Stages() {
		stages[stage] = r.tracker.ByStage(stage)
	}
	return llm.Snapshot{Stages: stages, Total: r.tracker.Total()}
}
