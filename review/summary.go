package review

import (
	"fmt"
	"strings"
)

// Cross-stage derivation rules. The executive summary and next steps are
// pure functions of the per-stage outputs; all counts come from the
// stage summaries as reported upstream, not from recounting items.

// DeriveRiskLevel grades the contract from the high-severity and total
// risk counts. Thresholds are exact integer comparisons evaluated in
// priority order; the first match wins.
func DeriveRiskLevel(highSeverityCount, totalRiskCount int) RiskLevel {
	switch {
	case highSeverityCount >= 3:
		return RiskHigh
	case highSeverityCount >= 1 || totalRiskCount >= 5:
		return RiskMedium
	case totalRiskCount >= 1:
		return RiskLow
	default:
		return RiskMinimal
	}
}

// DeriveQuality grades the contract from the clause-coverage assessment
// text and the numeric risk score. The coverage text is inspected only
// for substring containment, ignoring case.
func DeriveQuality(coverageAssessment string, riskScore float64) Quality {
	coverage := strings.ToLower(coverageAssessment)
	switch {
	case strings.Contains(coverage, "comprehensive") && riskScore < 3:
		return QualityGood
	case strings.Contains(coverage, "adequate") && riskScore < 5:
		return QualityFair
	default:
		return QualityNeedsImprovement
	}
}

// buildExecutiveSummary assembles the cross-stage summary from the three
// stage summaries that carry aggregate counts.
func buildExecutiveSummary(clauses *ClauseDetection, risks *RiskAnalysis, redlines *RedlineReport) *ExecutiveSummary {
	clauseSummary := clauses.ClauseSummary
	riskSummary := risks.OverallRiskAssessment
	redlineSummary := redlines.Summary

	recommendedAction := riskSummary.RecommendedAction
	if recommendedAction == "" {
		recommendedAction = "Review recommended"
	}

	keyConcerns := riskSummary.KeyConcerns
	if keyConcerns == nil {
		keyConcerns = []string{}
	}

	return &ExecutiveSummary{
		ContractOverview: ContractOverview{
			ClausesAnalyzed:       clauseSummary.TotalClausesFound,
			HighImportanceClauses: clauseSummary.HighImportanceCount,
			RisksIdentified:       riskSummary.TotalRisksIdentified,
			HighSeverityRisks:     riskSummary.HighSeverityCount,
			RedlineSuggestions:    redlineSummary.TotalSuggestions,
			CriticalChangesNeeded: redlineSummary.CriticalChanges,
		},
		OverallAssessment: OverallAssessment{
			RiskLevel:         DeriveRiskLevel(riskSummary.HighSeverityCount, riskSummary.TotalRisksIdentified),
			ContractQuality:   DeriveQuality(clauseSummary.CoverageAssessment, riskSummary.OverallRiskScore),
			RecommendedAction: recommendedAction,
			KeyConcerns:       keyConcerns,
		},
	}
}

// buildNextSteps produces the ordered follow-up list: a critical-change
// instruction when applicable, a high-severity-risk instruction when
// applicable, then three fixed closing steps. No deduplication or
// reordering beyond this recipe.
func buildNextSteps(risks *RiskAnalysis, redlines *RedlineReport) []string {
	var steps []string

	criticalChanges := redlines.Summary.CriticalChanges
	highRisks := risks.OverallRiskAssessment.HighSeverityCount

	if criticalChanges > 0 {
		steps = append(steps, fmt.Sprintf("Address %d critical redline suggestions before proceeding", criticalChanges))
	}
	if highRisks > 0 {
		steps = append(steps, fmt.Sprintf("Mitigate %d high-severity risks identified", highRisks))
	}

	steps = append(steps,
		"Review all redline suggestions with legal counsel",
		"Negotiate key terms with counterparty",
		"Obtain final legal approval before signing",
	)

	return steps
}
