package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/redline-ai/sdk"
	"github.com/redline-ai/sdk/llm"
)

// stubClient returns canned responses in call order and records every
// request it receives.
type stubClient struct {
	calls     []*llm.CompletionRequest
	responses []stubResponse
}

type stubResponse struct {
	content string
	usage   llm.TokenUsage
	err     error
}

func (s *stubClient) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls = append(s.calls, req)
	if len(s.calls) > len(s.responses) {
		return nil, fmt.Errorf("unexpected call %d", len(s.calls))
	}
	r := s.responses[len(s.calls)-1]
	if r.err != nil {
		return nil, r.err
	}
	return &llm.CompletionResponse{
		Content:      r.content,
		FinishReason: "stop",
		Usage:        r.usage,
	}, nil
}

const (
	clauseResponse = `{
		"detected_clauses": [
			{"clause_type": "Indemnity", "clause_text": "Party A shall indemnify...", "importance_level": "High"}
		],
		"clause_summary": {
			"total_clauses_found": 1,
			"high_importance_count": 1,
			"coverage_assessment": "Comprehensive coverage of standard terms"
		}
	}`

	riskResponse = `{
		"risk_analysis": [
			{"risk_type": "Liability", "risk_description": "Uncapped indemnity", "severity_level": "High"}
		],
		"overall_risk_assessment": {
			"total_risks_identified": 1,
			"high_severity_count": 1,
			"overall_risk_score": 2.5,
			"key_concerns": ["Uncapped liability exposure"],
			"recommended_action": "Negotiate a liability cap"
		}
	}`

	clarityResponse = `{
		"clarity_issues": [],
		"clarity_score": 7.5,
		"summary": "Mostly clear language"
	}`

	redlineResponse = `{
		"redline_suggestions": [
			{"change_type": "modification", "original_text": "shall indemnify", "proposed_text": "shall indemnify up to the fees paid", "priority": "Critical"}
		],
		"new_clauses_needed": [],
		"negotiation_strategy": {
			"key_positions": ["Cap liability at fees paid"],
			"fallback_options": [],
			"deal_breakers": []
		},
		"summary": {
			"total_suggestions": 1,
			"critical_changes": 1,
			"estimated_risk_reduction": "High"
		}
	}`
)

func successResponses() []stubResponse {
	usage := llm.TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150}
	return []stubResponse{
		{content: clauseResponse, usage: usage},
		{content: riskResponse, usage: usage},
		{content: clarityResponse, usage: usage},
		{content: redlineResponse, usage: usage},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunReview_Success(t *testing.T) {
	client := &stubClient{responses: successResponses()}
	reviewer := NewReviewer(client, WithLogger(discardLogger()))

	report, err := reviewer.RunReview(context.Background(), "This agreement is made between...")
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.True(t, report.Success)
	assert.Empty(t, report.Error)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.CreatedAt.IsZero())
	assert.Len(t, client.calls, 4)

	require.NotNil(t, report.ContractAnalysis)
	analysis := report.ContractAnalysis
	assert.Len(t, analysis.ClauseDetection.DetectedClauses, 1)
	assert.Len(t, analysis.RiskAnalysis.Risks, 1)
	assert.Equal(t, 7.5, analysis.LanguageClarity.ClarityScore)
	assert.Len(t, analysis.RedlineSuggestions.RedlineSuggestions, 1)
	assert.Len(t, analysis.ChangePrioritization.ImplementationPhases.Phase1Critical.Changes, 1)
	assert.Equal(t, 1, analysis.ChangePrioritization.NegotiationRoadmap.TotalItems)

	require.NotNil(t, report.ExecutiveSummary)
	summary := report.ExecutiveSummary
	assert.Equal(t, 1, summary.ContractOverview.ClausesAnalyzed)
	assert.Equal(t, 1, summary.ContractOverview.HighSeverityRisks)
	assert.Equal(t, RiskMedium, summary.OverallAssessment.RiskLevel)
	assert.Equal(t, QualityGood, summary.OverallAssessment.ContractQuality)
	assert.Equal(t, "Negotiate a liability cap", summary.OverallAssessment.RecommendedAction)

	require.Len(t, report.NextSteps, 5)
	assert.Equal(t, "Address 1 critical redline suggestions before proceeding", report.NextSteps[0])
	assert.Equal(t, "Mitigate 1 high-severity risks identified", report.NextSteps[1])

	assert.Equal(t, llm.TokenUsage{InputTokens: 400, OutputTokens: 200, TotalTokens: 600}, report.TokenUsage)
}

func TestRunReview_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		client := &stubClient{}
		reviewer := NewReviewer(client, WithLogger(discardLogger()))

		report, err := reviewer.RunReview(context.Background(), text)
		require.Error(t, err)
		require.NotNil(t, report)

		assert.ErrorIs(t, err, sdk.ErrNoContractText)
		assert.False(t, report.Success)
		assert.Equal(t, sdk.ErrNoContractText.Error(), report.Error)
		assert.Nil(t, report.ContractAnalysis)
		assert.Nil(t, report.ExecutiveSummary)
		assert.Empty(t, client.calls, "validation failure must not reach the client")
	}
}

func TestRunReview_ClauseDetectionFailureAborts(t *testing.T) {
	client := &stubClient{responses: []stubResponse{
		{err: errors.New("upstream unavailable")},
	}}
	reviewer := NewReviewer(client, WithLogger(discardLogger()))

	report, err := reviewer.RunReview(context.Background(), "contract text")
	require.Error(t, err)
	require.NotNil(t, report)

	assert.ErrorIs(t, err, sdk.ErrInferenceFailed)
	assert.False(t, report.Success)
	assert.NotEmpty(t, report.Error)
	assert.Nil(t, report.ContractAnalysis)
	assert.Nil(t, report.ExecutiveSummary)
	assert.Len(t, client.calls, 1, "review must stop after the failed first stage")

	var reviewErr *sdk.ReviewError
	require.ErrorAs(t, err, &reviewErr)
	assert.Equal(t, sdk.KindInference, reviewErr.Kind)
	assert.Equal(t, "clause_detection", reviewErr.Context["stage"])
}

func TestRunReview_MalformedClauseResponseAborts(t *testing.T) {
	client := &stubClient{responses: []stubResponse{
		{content: "not json at all"},
	}}
	reviewer := NewReviewer(client, WithLogger(discardLogger()))

	report, err := reviewer.RunReview(context.Background(), "contract text")
	require.Error(t, err)
	assert.ErrorIs(t, err, sdk.ErrMalformedResponse)
	assert.False(t, report.Success)
	assert.Len(t, client.calls, 1)
}

func TestRunReview_FencedResponseDecodes(t *testing.T) {
	responses := successResponses()
	responses[0].content = "```json\n" + clauseResponse + "\n```"
	client := &stubClient{responses: responses}
	reviewer := NewReviewer(client, WithLogger(discardLogger()))

	report, err := reviewer.RunReview(context.Background(), "contract text")
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Len(t, report.ContractAnalysis.ClauseDetection.DetectedClauses, 1)
}

func TestRunReview_RiskFailureDegrades(t *testing.T) {
	responses := successResponses()
	responses[1] = stubResponse{err: errors.New("risk model timeout")}
	client := &stubClient{responses: responses}
	reviewer := NewReviewer(client, WithLogger(discardLogger()))

	report, err := reviewer.RunReview(context.Background(), "contract text")
	require.NoError(t, err, "soft stage failure must not fail the review")
	require.NotNil(t, report.ContractAnalysis)

	assert.True(t, report.Success)
	assert.Empty(t, report.Error)
	assert.Len(t, client.calls, 4, "later stages still run after a soft failure")

	risks := report.ContractAnalysis.RiskAnalysis
	assert.Equal(t, []Risk{}, risks.Risks)
	assert.Equal(t, []string{}, risks.OverallRiskAssessment.KeyConcerns)
	assert.Contains(t, risks.Error, "risk model timeout")

	// The degraded slot drives the derived summary to its floor.
	assert.Equal(t, RiskMinimal, report.ExecutiveSummary.OverallAssessment.RiskLevel)
	assert.Equal(t, "Review recommended", report.ExecutiveSummary.OverallAssessment.RecommendedAction)
}

func TestRunReview_ClarityFailureDegrades(t *testing.T) {
	responses := successResponses()
	responses[2] = stubResponse{err: errors.New("clarity model timeout")}
	client := &stubClient{responses: responses}
	reviewer := NewReviewer(client, WithLogger(discardLogger()))

	report, err := reviewer.RunReview(context.Background(), "contract text")
	require.NoError(t, err)
	require.NotNil(t, report.ContractAnalysis)

	clarity := report.ContractAnalysis.LanguageClarity
	assert.Equal(t, []ClarityIssue{}, clarity.ClarityIssues)
	assert.Equal(t, float64(0), clarity.ClarityScore)
	assert.Equal(t, "Language clarity analysis failed", clarity.Summary)
	assert.Contains(t, clarity.Error, "clarity model timeout")

	// Clarity feeds no derived field, so the summary is unaffected.
	assert.Equal(t, RiskMedium, report.ExecutiveSummary.OverallAssessment.RiskLevel)
}

func TestRunReview_RedlineFailureDegrades(t *testing.T) {
	responses := successResponses()
	responses[3] = stubResponse{err: errors.New("redline model timeout")}
	client := &stubClient{responses: responses}
	reviewer := NewReviewer(client, WithLogger(discardLogger()))

	report, err := reviewer.RunReview(context.Background(), "contract text")
	require.NoError(t, err)
	require.NotNil(t, report.ContractAnalysis)

	redlines := report.ContractAnalysis.RedlineSuggestions
	assert.Equal(t, []RedlineSuggestion{}, redlines.RedlineSuggestions)
	assert.Equal(t, []NewClause{}, redlines.NewClausesNeeded)
	assert.Contains(t, redlines.Error, "redline model timeout")

	// Prioritization runs over the empty degraded suggestions.
	plan := report.ContractAnalysis.ChangePrioritization
	assert.Empty(t, plan.ImplementationPhases.Phase1Critical.Changes)
	assert.Equal(t, "Address before any signing", plan.ImplementationPhases.Phase1Critical.Timeline)
	assert.Equal(t, 0, plan.NegotiationRoadmap.TotalItems)

	assert.Equal(t, 0, report.ExecutiveSummary.ContractOverview.RedlineSuggestions)
}

func TestRunReview_StageRequestConfiguration(t *testing.T) {
	client := &stubClient{responses: successResponses()}
	reviewer := NewReviewer(client, WithLogger(discardLogger()))

	_, err := reviewer.RunReview(context.Background(), "contract text")
	require.NoError(t, err)
	require.Len(t, client.calls, 4)

	wantModels := []string{"gpt-4o-mini", "gpt-4o", "gpt-4o", "gpt-4o-mini"}
	wantTemps := []float64{0.1, 0.1, 0.1, 0.2}
	for i, req := range client.calls {
		assert.Equal(t, wantModels[i], req.Model, "call %d model", i)
		require.NotNil(t, req.Temperature, "call %d temperature", i)
		assert.Equal(t, wantTemps[i], *req.Temperature, "call %d temperature", i)
		assert.Equal(t, llm.FormatJSONObject, req.ResponseFormat, "call %d format", i)
	}

	// Clause, risk, and redline stages carry a system message; clarity
	// sends the user prompt alone.
	assert.Equal(t, llm.RoleSystem, client.calls[0].Messages[0].Role)
	assert.Equal(t, llm.RoleSystem, client.calls[1].Messages[0].Role)
	assert.Len(t, client.calls[2].Messages, 1)
	assert.Equal(t, llm.RoleUser, client.calls[2].Messages[0].Role)
	assert.Equal(t, llm.RoleSystem, client.calls[3].Messages[0].Role)
}

func TestRunReview_StageConfigOverride(t *testing.T) {
	client := &stubClient{responses: successResponses()}
	reviewer := NewReviewer(client,
		WithLogger(discardLogger()),
		WithStageConfig(StageRiskAnalysis, StageConfig{Model: "gpt-4-turbo", Temperature: 0.5, MaxTokens: 2048}))

	_, err := reviewer.RunReview(context.Background(), "contract text")
	require.NoError(t, err)
	require.Len(t, client.calls, 4)

	riskReq := client.calls[1]
	assert.Equal(t, "gpt-4-turbo", riskReq.Model)
	assert.Equal(t, 0.5, *riskReq.Temperature)
	require.NotNil(t, riskReq.MaxTokens)
	assert.Equal(t, 2048, *riskReq.MaxTokens)

	// Other stages keep their defaults.
	assert.Equal(t, "gpt-4o-mini", client.calls[0].Model)
	assert.Nil(t, client.calls[0].MaxTokens)
}

func TestRunReview_Deterministic(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	opts := []ReviewerOption{
		WithLogger(discardLogger()),
		WithIDGenerator(func() string { return "review-0001" }),
		WithClock(func() time.Time { return fixed }),
	}

	run := func() []byte {
		client := &stubClient{responses: successResponses()}
		reviewer := NewReviewer(client, opts...)
		report, err := reviewer.RunReview(context.Background(), "contract text")
		require.NoError(t, err)
		data, err := json.Marshal(report)
		require.NoError(t, err)
		return data
	}

	first := run()
	second := run()
	assert.Equal(t, string(first), string(second), "identical inputs must serialize identically")
	assert.Contains(t, string(first), `"id":"review-0001"`)
}

func TestReviewer_TokenUsageAccumulates(t *testing.T) {
	reviewer := NewReviewer(&stubClient{responses: successResponses()}, WithLogger(discardLogger()))

	// The stub is single-shot; give the reviewer a fresh one per run.
	for i := 0; i < 2; i++ {
		reviewer.client = &stubClient{responses: successResponses()}
		report, err := reviewer.RunReview(context.Background(), "contract text")
		require.NoError(t, err)
		assert.Equal(t, 600, report.TokenUsage.TotalTokens, "per-review usage covers that run only")
	}

	snapshot := reviewer.TokenUsage()
	assert.Equal(t, 1200, snapshot.Total.TotalTokens)
	assert.Equal(t, 300, snapshot.Stages["risk_analysis"].TotalTokens)
	assert.Len(t, snapshot.Stages, 4)
}

func TestReviewer_Status(t *testing.T) {
	reviewer := NewReviewer(&stubClient{}, WithLogger(discardLogger()))

	status := reviewer.Status()
	assert.True(t, status.ClientConfigured, "plain clients count as configured when present")

	require.Len(t, status.Stages, 5)
	assert.Equal(t, StageClauseDetection, status.Stages[0].Stage)
	assert.Equal(t, "gpt-4o-mini", status.Stages[0].Model)
	assert.Equal(t, StageChangePrioritization, status.Stages[4].Stage)
	assert.Empty(t, status.Stages[4].Model, "local stage has no model")
}

type unconfiguredClient struct{ stubClient }

func (unconfiguredClient) Configured() bool { return false }

func TestReviewer_StatusUnconfiguredClient(t *testing.T) {
	reviewer := NewReviewer(&unconfiguredClient{}, WithLogger(discardLogger()))
	assert.False(t, reviewer.Status().ClientConfigured)
}
