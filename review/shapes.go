package review

// Typed records for the JSON shapes each pipeline stage returns.
//
// Upstream responses are untyped JSON produced by a language model, so
// any field may be missing or oddly cased. Decoding into these records
// applies Go's zero-value defaulting (missing numbers become 0, missing
// strings become "", missing arrays become nil), and each record's
// normalize method replaces nil slices with empty ones so serialized
// reports always carry [] rather than null. After normalization the rest
// of the pipeline can rely on fully-defaulted values.

// DetectedClause is one clause identified by the clause-detection stage.
type DetectedClause struct {
	ClauseType      string `json:"clause_type"`
	ClauseText      string `json:"clause_text"`
	LocationContext string `json:"location_context"`
	ImportanceLevel string `json:"importance_level"`
}

// ClauseSummary aggregates the clause-detection stage's findings.
type ClauseSummary struct {
	TotalClausesFound   int    `json:"total_clauses_found"`
	HighImportanceCount int    `json:"high_importance_count"`
	CoverageAssessment  string `json:"coverage_assessment"`
}

// ClauseDetection is the full output of the clause-detection stage.
type ClauseDetection struct {
	DetectedClauses []DetectedClause `json:"detected_clauses"`
	ClauseSummary   ClauseSummary    `json:"clause_summary"`

	// Error records an inline stage failure. Empty on success.
	Error string `json:"error,omitempty"`
}

func (c *ClauseDetection) normalize() {
	if c.DetectedClauses == nil {
		c.DetectedClauses = []DetectedClause{}
	}
}

// Risk is one risk identified by the risk-analysis stage.
type Risk struct {
	RiskType        string `json:"risk_type"`
	RiskDescription string `json:"risk_description"`
	SeverityLevel   string `json:"severity_level"`
	AffectedClause  string `json:"affected_clause"`
	PotentialImpact string `json:"potential_impact"`
	Likelihood      string `json:"likelihood"`
}

// RiskAssessment aggregates the risk-analysis stage's findings.
type RiskAssessment struct {
	TotalRisksIdentified int      `json:"total_risks_identified"`
	HighSeverityCount    int      `json:"high_severity_count"`
	MediumSeverityCount  int      `json:"medium_severity_count"`
	LowSeverityCount     int      `json:"low_severity_count"`
	OverallRiskScore     float64  `json:"overall_risk_score"`
	KeyConcerns          []string `json:"key_concerns"`
	RecommendedAction    string   `json:"recommended_action"`
}

// RiskAnalysis is the full output of the risk-analysis stage.
type RiskAnalysis struct {
	Risks                 []Risk         `json:"risk_analysis"`
	OverallRiskAssessment RiskAssessment `json:"overall_risk_assessment"`

	// Error records an inline stage failure. Empty on success.
	Error string `json:"error,omitempty"`
}

func (r *RiskAnalysis) normalize() {
	if r.Risks == nil {
		r.Risks = []Risk{}
	}
	if r.OverallRiskAssessment.KeyConcerns == nil {
		r.OverallRiskAssessment.KeyConcerns = []string{}
	}
}

// HighSeverityRisks returns the risks whose severity level names
// SeverityHigh, ignoring case.
func (r *RiskAnalysis) HighSeverityRisks() []Risk {
	high := []Risk{}
	for _, risk := range r.Risks {
		if SeverityHigh.Matches(risk.SeverityLevel) {
			high = append(high, risk)
		}
	}
	return high
}

// ClarityIssue is one language-clarity problem found in the contract.
type ClarityIssue struct {
	IssueType            string `json:"issue_type"`
	ProblematicText      string `json:"problematic_text"`
	Explanation          string `json:"explanation"`
	SuggestedImprovement string `json:"suggested_improvement"`
}

// ClarityAssessment is the full output of the language-clarity stage.
type ClarityAssessment struct {
	ClarityIssues []ClarityIssue `json:"clarity_issues"`
	ClarityScore  float64        `json:"clarity_score"`
	Summary       string         `json:"summary"`

	// Error records an inline stage failure. Empty on success.
	Error string `json:"error,omitempty"`
}

func (c *ClarityAssessment) normalize() {
	if c.ClarityIssues == nil {
		c.ClarityIssues = []ClarityIssue{}
	}
}

// RedlineSuggestion is one proposed contract change.
type RedlineSuggestion struct {
	ChangeType       string `json:"change_type"`
	OriginalText     string `json:"original_text"`
	ProposedText     string `json:"proposed_text"`
	Rationale        string `json:"rationale"`
	RiskAddressed    string `json:"risk_addressed"`
	Priority         string `json:"priority"`
	SectionReference string `json:"section_reference"`
}

// NewClause is a clause the redline stage recommends adding.
type NewClause struct {
	ClauseType       string `json:"clause_type"`
	ProposedLanguage string `json:"proposed_language"`
	Justification    string `json:"justification"`
	Priority         string `json:"priority"`
}

// NegotiationStrategy captures the redline stage's negotiation guidance.
type NegotiationStrategy struct {
	KeyPositions    []string `json:"key_positions"`
	FallbackOptions []string `json:"fallback_options"`
	DealBreakers    []string `json:"deal_breakers"`
}

// RedlineSummary aggregates the redline stage's suggestions.
type RedlineSummary struct {
	TotalSuggestions       int    `json:"total_suggestions"`
	CriticalChanges        int    `json:"critical_changes"`
	EstimatedRiskReduction string `json:"estimated_risk_reduction"`
}

// RedlineReport is the full output of the redline-suggestion stage.
type RedlineReport struct {
	RedlineSuggestions  []RedlineSuggestion `json:"redline_suggestions"`
	NewClausesNeeded    []NewClause         `json:"new_clauses_needed"`
	NegotiationStrategy NegotiationStrategy `json:"negotiation_strategy"`
	Summary             RedlineSummary      `json:"summary"`

	// Error records an inline stage failure. Empty on success.
	Error string `json:"error,omitempty"`
}

func (r *RedlineReport) normalize() {
	if r.RedlineSuggestions == nil {
		r.RedlineSuggestions = []RedlineSuggestion{}
	}
	if r.NewClausesNeeded == nil {
		r.NewClausesNeeded = []NewClause{}
	}
	if r.NegotiationStrategy.KeyPositions == nil {
		r.NegotiationStrategy.KeyPositions = []string{}
	}
	if r.NegotiationStrategy.FallbackOptions == nil {
		r.NegotiationStrategy.FallbackOptions = []string{}
	}
	if r.NegotiationStrategy.DealBreakers == nil {
		r.NegotiationStrategy.DealBreakers = []string{}
	}
}
