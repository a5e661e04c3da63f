package review

import (
	"fmt"
	"strings"
)

// essentialClauseTypes are the clause types every reviewed contract is
// expected to contain.
var essentialClauseTypes = []string{
	"Indemnity",
	"Termination",
	"Liability Limitation",
	"Governing Law",
	"Dispute Resolution",
}

// ClauseRecommendations reports which essential clauses are absent from
// a contract and how complete its coverage is.
type ClauseRecommendations struct {
	// MissingEssentialClauses lists essential clause types with no match
	// among the detected clauses.
	MissingEssentialClauses []string `json:"missing_essential_clauses"`

	// CompletenessScore is the percentage of essential clause types found
	// (0 to 100).
	CompletenessScore float64 `json:"completeness_score"`

	// Recommendations contains one suggestion per missing clause type.
	Recommendations []string `json:"recommendations"`
}

// RecommendClauses checks detected clauses against the essential clause
// types. A detected clause counts as a match when its type contains the
// essential type as a substring, ignoring case.
func RecommendClauses(detected []DetectedClause) ClauseRecommendations {
	missing := []string{}
	for _, essential := range essentialClauseTypes {
		found := false
		for _, clause := range detected {
			if strings.Contains(strings.ToLower(clause.ClauseType), strings.ToLower(essential)) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, essential)
		}
	}

	recommendations := []string{}
	for _, clause := range missing {
		recommendations = append(recommendations, fmt.Sprintf("Consider adding a %s clause for better protection", clause))
	}

	total := len(essentialClauseTypes)
	score := float64(total-len(missing)) / float64(total) * 100

	return ClauseRecommendations{
		MissingEssentialClauses: missing,
		CompletenessScore:       score,
		Recommendations:         recommendations,
	}
}
