package review

import "testing"

func TestPrioritizeChanges_Partition(t *testing.T) {
	suggestions := []RedlineSuggestion{
		{ChangeType: "a", Priority: "Critical"},
		{ChangeType: "b", Priority: "High"},
		{ChangeType: "c", Priority: "low"},
		{ChangeType: "d", Priority: "HIGH"},
	}

	plan := PrioritizeChanges(suggestions)

	phases := plan.ImplementationPhases
	if got := len(phases.Phase1Critical.Changes); got != 1 {
		t.Errorf("critical bucket size = %d, want 1", got)
	}
	if got := len(phases.Phase2High.Changes); got != 2 {
		t.Errorf("high bucket size = %d, want 2", got)
	}
	if got := len(phases.Phase3Medium.Changes); got != 0 {
		t.Errorf("medium bucket size = %d, want 0", got)
	}

	roadmap := plan.NegotiationRoadmap
	if roadmap.MustHaveCount != 1 {
		t.Errorf("MustHaveCount = %d, want 1", roadmap.MustHaveCount)
	}
	if roadmap.HighPriorityCount != 2 {
		t.Errorf("HighPriorityCount = %d, want 2", roadmap.HighPriorityCount)
	}
	if roadmap.TotalItems != 4 {
		t.Errorf("TotalItems = %d, want 4", roadmap.TotalItems)
	}
}

// Items whose priority matches one of the three bucketed levels must land
// in exactly one bucket; "low" and unknown priorities land in none.
func TestPrioritizeChanges_ExhaustiveExclusive(t *testing.T) {
	suggestions := []RedlineSuggestion{
		{ChangeType: "a", Priority: "critical"},
		{ChangeType: "b", Priority: "Medium"},
		{ChangeType: "c", Priority: "high"},
		{ChangeType: "d", Priority: "Low"},
		{ChangeType: "e"},
		{ChangeType: "f", Priority: "urgent"},
	}

	plan := PrioritizeChanges(suggestions)
	phases := plan.ImplementationPhases

	seen := map[string]int{}
	for _, s := range phases.Phase1Critical.Changes {
		seen[s.ChangeType]++
	}
	for _, s := range phases.Phase2High.Changes {
		seen[s.ChangeType]++
	}
	for _, s := range phases.Phase3Medium.Changes {
		seen[s.ChangeType]++
	}

	for _, want := range []string{"a", "b", "c"} {
		if seen[want] != 1 {
			t.Errorf("suggestion %q appears %d times across buckets, want 1", want, seen[want])
		}
	}
	for _, dropped := range []string{"d", "e", "f"} {
		if seen[dropped] != 0 {
			t.Errorf("suggestion %q appears in a bucket, want dropped", dropped)
		}
	}

	if plan.NegotiationRoadmap.TotalItems != 6 {
		t.Errorf("TotalItems = %d, want 6", plan.NegotiationRoadmap.TotalItems)
	}
}

func TestPrioritizeChanges_PhaseLabels(t *testing.T) {
	plan := PrioritizeChanges(nil)
	phases := plan.ImplementationPhases

	tests := []struct {
		name         string
		phase        Phase
		wantTimeline string
		wantApproach string
	}{
		{"phase 1", phases.Phase1Critical, "Address before any signing", "Non-negotiable positions"},
		{"phase 2", phases.Phase2High, "Primary negotiation focus", "Strong preference, willing to trade"},
		{"phase 3", phases.Phase3Medium, "Secondary negotiation items", "Nice to have improvements"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.phase.Timeline != tt.wantTimeline {
				t.Errorf("Timeline = %q, want %q", tt.phase.Timeline, tt.wantTimeline)
			}
			if tt.phase.NegotiationApproach != tt.wantApproach {
				t.Errorf("NegotiationApproach = %q, want %q", tt.phase.NegotiationApproach, tt.wantApproach)
			}
		})
	}
}

func TestPrioritizeChanges_Empty(t *testing.T) {
	plan := PrioritizeChanges(nil)

	if plan.ImplementationPhases.Phase1Critical.Changes == nil {
		t.Error("critical bucket = nil, want empty slice")
	}
	if plan.NegotiationRoadmap.TotalItems != 0 {
		t.Errorf("TotalItems = %d, want 0", plan.NegotiationRoadmap.TotalItems)
	}
}
