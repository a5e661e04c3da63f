package review

// Literal phase labels. Downstream consumers match on these exactly.
const (
	phase1Timeline = "Address before any signing"
	phase1Approach = "Non-negotiable positions"

	phase2Timeline = "Primary negotiation focus"
	phase2Approach = "Strong preference, willing to trade"

	phase3Timeline = "Secondary negotiation items"
	phase3Approach = "Nice to have improvements"
)

// Phase is one implementation phase of the negotiation plan.
type Phase struct {
	Changes             []RedlineSuggestion `json:"changes"`
	Timeline            string              `json:"timeline"`
	NegotiationApproach string              `json:"negotiation_approach"`
}

// ImplementationPhases buckets redline suggestions by priority.
type ImplementationPhases struct {
	Phase1Critical Phase `json:"phase_1_critical"`
	Phase2High     Phase `json:"phase_2_high"`
	Phase3Medium   Phase `json:"phase_3_medium"`
}

// NegotiationRoadmap carries the headline counts for the plan.
type NegotiationRoadmap struct {
	MustHaveCount     int `json:"must_have_count"`
	HighPriorityCount int `json:"high_priority_count"`
	TotalItems        int `json:"total_items"`
}

// PrioritizationPlan is the output of the change-prioritization stage.
type PrioritizationPlan struct {
	ImplementationPhases ImplementationPhases `json:"implementation_phases"`
	NegotiationRoadmap   NegotiationRoadmap   `json:"negotiation_roadmap"`
}

// PrioritizeChanges partitions redline suggestions into three negotiation
// phases by case-insensitive match of their priority against "critical",
// "high", and "medium". Suggestions with any other priority, including
// "low" or an absent priority, are counted in TotalItems but appear in
// no phase. That asymmetry mirrors the upstream contract; consumers that
// need low-priority items must read them from the redline stage output.
//
// Purely local: no inference call, no error path.
func PrioritizeChanges(suggestions []RedlineSuggestion) PrioritizationPlan {
	critical := filterByPriority(suggestions, SeverityCritical)
	high := filterByPriority(suggestions, SeverityHigh)
	medium := filterByPriority(suggestions, SeverityMedium)

	return PrioritizationPlan{
		ImplementationPhases: ImplementationPhases{
			Phase1Critical: Phase{
				Changes:             critical,
				Timeline:            phase1Timeline,
				NegotiationApproach: phase1Approach,
			},
			Phase2High: Phase{
				Changes:             high,
				Timeline:            phase2Timeline,
				NegotiationApproach: phase2Approach,
			},
			Phase3Medium: Phase{
				Changes:             medium,
				Timeline:            phase3Timeline,
				NegotiationApproach: phase3Approach,
			},
		},
		NegotiationRoadmap: NegotiationRoadmap{
			MustHaveCount:     len(critical),
			HighPriorityCount: len(high),
			TotalItems:        len(suggestions),
		},
	}
}

func filterByPriority(suggestions []RedlineSuggestion, priority Severity) []RedlineSuggestion {
	matched := []RedlineSuggestion{}
	for _, s := range suggestions {
		if priority.Matches(s.Priority) {
			matched = append(matched, s)
		}
	}
	return matched
}
