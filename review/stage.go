package review

import (
	"context"
	"fmt"

	sdk "github.com/redline-ai/sdk"
	"github.com/redline-ai/sdk/llm"
	"github.com/redline-ai/sdk/parser"
)

// Stage identifies one step of the fixed five-step pipeline.
type Stage string

const (
	// StageClauseDetection identifies key legal clauses. Hard prerequisite:
	// its failure aborts the whole review.
	StageClauseDetection Stage = "clause_detection"

	// StageRiskAnalysis identifies legal and business risks.
	StageRiskAnalysis Stage = "risk_analysis"

	// StageLanguageClarity assesses language clarity and vague terms.
	StageLanguageClarity Stage = "language_clarity"

	// StageRedlineSuggestions proposes specific contract changes.
	StageRedlineSuggestions Stage = "redline_suggestions"

	// StageChangePrioritization partitions suggested changes into
	// negotiation phases. Purely local, no inference call.
	StageChangePrioritization Stage = "change_prioritization"
)

// Stages lists all pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{
		StageClauseDetection,
		StageRiskAnalysis,
		StageLanguageClarity,
		StageRedlineSuggestions,
		StageChangePrioritization,
	}
}

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// StageConfig selects the model and sampling temperature for one stage.
type StageConfig struct {
	// Model is the inference model identifier (e.g., "gpt-4o-mini").
	Model string

	// Temperature is the sampling temperature for the stage.
	Temperature float64

	// MaxTokens caps the response length. Zero means the provider default.
	MaxTokens int
}

// defaultStageConfigs returns the stock model/temperature assignment:
// the cheaper model for clause extraction and redlining, the stronger
// model for risk and clarity analysis.
func defaultStageConfigs() map[Stage]StageConfig {
	return map[Stage]StageConfig{
		StageClauseDetection:    {Model: "gpt-4o-mini", Temperature: 0.1},
		StageRiskAnalysis:       {Model: "gpt-4o", Temperature: 0.1},
		StageLanguageClarity:    {Model: "gpt-4o", Temperature: 0.1},
		StageRedlineSuggestions: {Model: "gpt-4o-mini", Temperature: 0.2},
	}
}

// DefaultStageConfig returns the stock configuration for one stage.
// The local prioritization stage has no configuration and yields the
// zero value.
func DefaultStageConfig(stage Stage) StageConfig {
	return defaultStageConfigs()[stage]
}

// completeJSON performs one inference call for a stage and decodes the
// JSON response body into out. Token usage is recorded against the stage
// name. Any failure (transport, non-2xx, unparseable content) is wrapped
// as an inference-kind ReviewError carrying the stage in its context.
func (r *Reviewer) completeJSON(ctx context.Context, run *llm.DefaultTokenTracker, stage Stage, system, user string, out interface{ normalize() }) error {
	cfg := r.stageConfig(stage)

	messages := make([]llm.Message, 0, 2)
	if system != "" {
		messages = append(messages, llm.SystemMessage(system))
	}
	messages = append(messages, llm.UserMessage(user))

	opts := []llm.CompletionOption{
		llm.WithModel(cfg.Model),
		llm.WithTemperature(cfg.Temperature),
		llm.WithJSONResponse(),
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(cfg.MaxTokens))
	}
	req := llm.NewCompletionRequest(messages, opts...)

	ctx, span := r.startStageSpan(ctx, stage)
	defer span.End()

	resp, err := r.client.Complete(ctx, req)
	if err != nil {
		r.recordStageError(ctx, span, stage, err)
		return sdk.NewInferenceError("Reviewer."+stage.String(),
			fmt.Errorf("%w: %v", sdk.ErrInferenceFailed, err)).
			WithContext(map[string]any{"stage": stage.String()})
	}

	run.Add(stage.String(), resp.Usage)
	r.tracker.Add(stage.String(), resp.Usage)
	r.recordStageSuccess(ctx, span, stage, resp.Usage)

	if err := parser.Decode(resp.Content, out); err != nil {
		return sdk.NewInferenceError("Reviewer."+stage.String(),
			fmt.Errorf("%w: %v", sdk.ErrMalformedResponse, err)).
			WithContext(map[string]any{"stage": stage.String()})
	}
	out.normalize()
	return nil
}

// Degraded defaults substituted when a soft stage fails. The review
// continues with these in place of the stage's real output, with the
// failure recorded on the result's Error field.

func degradedRiskAnalysis(err error) RiskAnalysis {
	return RiskAnalysis{
		Risks: []Risk{},
		OverallRiskAssessment: RiskAssessment{
			KeyConcerns: []string{},
		},
		Error: err.Error(),
	}
}

func degradedClarityAssessment(err error) ClarityAssessment {
	return ClarityAssessment{
		ClarityIssues: []ClarityIssue{},
		ClarityScore:  0,
		Summary:       "Language clarity analysis failed",
		Error:         err.Error(),
	}
}

func degradedRedlineReport(err error) RedlineReport {
	return RedlineReport{
		RedlineSuggestions: []RedlineSuggestion{},
		NewClausesNeeded:   []NewClause{},
		NegotiationStrategy: NegotiationStrategy{
			KeyPositions:    []string{},
			FallbackOptions: []string{},
			DealBreakers:    []string{},
		},
		Error: err.Error(),
	}
}
