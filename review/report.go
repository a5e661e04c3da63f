package review

import (
	"time"

	"github.com/redline-ai/sdk/llm"
)

// RiskLevel is the overall risk grade derived for a reviewed contract.
type RiskLevel string

const (
	// RiskHigh indicates three or more high-severity risks.
	RiskHigh RiskLevel = "HIGH"

	// RiskMedium indicates at least one high-severity risk or five or more total risks.
	RiskMedium RiskLevel = "MEDIUM"

	// RiskLow indicates at least one identified risk.
	RiskLow RiskLevel = "LOW"

	// RiskMinimal indicates no identified risks.
	RiskMinimal RiskLevel = "MINIMAL"
)

// Quality is the overall contract quality grade.
type Quality string

const (
	// QualityGood indicates comprehensive clause coverage and a low risk score.
	QualityGood Quality = "GOOD"

	// QualityFair indicates adequate clause coverage and a moderate risk score.
	QualityFair Quality = "FAIR"

	// QualityNeedsImprovement indicates coverage or risk outside the above bands.
	QualityNeedsImprovement Quality = "NEEDS_IMPROVEMENT"
)

// ContractAnalysis holds the per-stage results of one review, keyed by
// stage in its serialized form.
type ContractAnalysis struct {
	ClauseDetection      ClauseDetection    `json:"clause_detection"`
	RiskAnalysis         RiskAnalysis       `json:"risk_analysis"`
	LanguageClarity      ClarityAssessment  `json:"language_clarity"`
	RedlineSuggestions   RedlineReport      `json:"redline_suggestions"`
	ChangePrioritization PrioritizationPlan `json:"change_prioritization"`
}

// ContractOverview summarizes the headline counts of a review.
type ContractOverview struct {
	ClausesAnalyzed       int `json:"clauses_analyzed"`
	HighImportanceClauses int `json:"high_importance_clauses"`
	RisksIdentified       int `json:"risks_identified"`
	HighSeverityRisks     int `json:"high_severity_risks"`
	RedlineSuggestions    int `json:"redline_suggestions"`
	CriticalChangesNeeded int `json:"critical_changes_needed"`
}

// OverallAssessment carries the derived grades and upstream guidance.
type OverallAssessment struct {
	RiskLevel         RiskLevel `json:"risk_level"`
	ContractQuality   Quality   `json:"contract_quality"`
	RecommendedAction string    `json:"recommended_action"`
	KeyConcerns       []string  `json:"key_concerns"`
}

// ExecutiveSummary is the derived cross-stage summary of a review.
type ExecutiveSummary struct {
	ContractOverview  ContractOverview  `json:"contract_overview"`
	OverallAssessment OverallAssessment `json:"overall_assessment"`
}

// ReviewReport is the aggregate result of one review run. It is
// immutable after construction; callers own it for persistence and
// rendering.
//
// Success is the discriminant: ContractAnalysis, ExecutiveSummary, and
// NextSteps are populated only when Success is true, and Error is
// populated only when Success is false.
type ReviewReport struct {
	// ID uniquely identifies this review run.
	ID string `json:"id"`

	// CreatedAt is when the review started.
	CreatedAt time.Time `json:"created_at"`

	// Success indicates whether the review completed. A completed review
	// may still contain degraded stage results with inline error markers.
	Success bool `json:"success"`

	// Error describes why the review failed. Empty when Success is true.
	Error string `json:"error,omitempty"`

	// ContractAnalysis holds the five per-stage results.
	ContractAnalysis *ContractAnalysis `json:"contract_analysis,omitempty"`

	// ExecutiveSummary holds the derived cross-stage aggregates.
	ExecutiveSummary *ExecutiveSummary `json:"executive_summary,omitempty"`

	// NextSteps is the ordered list of recommended follow-up actions.
	NextSteps []string `json:"next_steps,omitempty"`

	// TokenUsage is the aggregate token consumption across all stages.
	TokenUsage llm.TokenUsage `json:"token_usage"`
}
