package review

import (
	"fmt"
	"strings"
)

// Prompt construction for the four LLM-backed stages.
//
// Context passed between stages is bounded to keep prompts inside model
// context windows: the risk stage sees at most 10 clauses truncated to
// 200 characters each, the redline stage sees at most 5 high-severity
// risks and 8 clauses truncated to 150 characters, and the raw contract
// text is capped per stage (3000/3000/2000/3000 characters).

const (
	contractTextLimitRisk    = 3000
	contractTextLimitClarity = 2000
	contractTextLimitRedline = 3000

	clauseContextLimitRisk    = 10
	clauseTextLimitRisk       = 200
	riskContextLimitRedline   = 5
	clauseContextLimitRedline = 8
	clauseTextLimitRedline    = 150
)

const (
	clauseSystemPrompt  = "You are a legal expert specializing in contract analysis and clause detection."
	riskSystemPrompt    = "You are a legal risk assessment expert with expertise in contract analysis and risk mitigation."
	redlineSystemPrompt = "You are an expert contract attorney specializing in protective redlining and risk mitigation."
)

// truncate caps s at n bytes. Upstream contract text is plain text, so
// byte truncation matches the bound the prompts were designed around.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func buildClausePrompt(contractText string) string {
	return fmt.Sprintf(`Analyze the following contract text and identify key legal clauses.
Focus on finding these critical clause types:

1. Indemnity/Indemnification clauses
2. Termination clauses
3. Exclusivity clauses
4. Liability limitation clauses
5. Force majeure clauses
6. Governing law clauses
7. Dispute resolution clauses
8. Confidentiality/Non-disclosure clauses
9. Intellectual property clauses
10. Payment terms clauses

For each clause found, provide:
- clause_type: The type of clause
- clause_text: The exact text of the clause
- location_context: Surrounding context to help locate the clause
- importance_level: High/Medium/Low based on legal significance

Respond in JSON format with this structure:
{
    "detected_clauses": [
        {
            "clause_type": "string",
            "clause_text": "string",
            "location_context": "string",
            "importance_level": "string"
        }
    ],
    "clause_summary": {
        "total_clauses_found": number,
        "high_importance_count": number,
        "coverage_assessment": "string"
    }
}

Contract text:
%s`, contractText)
}

func buildRiskPrompt(contractText string, clauses []DetectedClause) string {
	var clauseContext strings.Builder
	for i, clause := range clauses {
		if i >= clauseContextLimitRisk {
			break
		}
		clauseType := clause.ClauseType
		if clauseType == "" {
			clauseType = "Unknown"
		}
		fmt.Fprintf(&clauseContext, "- %s: %s...\n", clauseType, truncate(clause.ClauseText, clauseTextLimitRisk))
	}

	return fmt.Sprintf(`Perform a comprehensive risk analysis of this contract. Analyze both the full contract
and the specific clauses provided. Focus on identifying:

1. Vague or ambiguous language that could lead to disputes
2. One-sided provisions that favor one party unfairly
3. Excessive liability exposure
4. Inadequate termination protections
5. Missing risk mitigation clauses
6. Unreasonable obligations or commitments
7. Intellectual property risks
8. Compliance and regulatory risks

Key detected clauses for context:
%s

For each risk identified, provide:
- risk_type: Category of risk
- risk_description: Detailed explanation of the risk
- severity_level: High/Medium/Low
- affected_clause: Which clause creates this risk
- potential_impact: Business/legal consequences
- likelihood: High/Medium/Low probability of occurrence

Respond in JSON format:
{
    "risk_analysis": [
        {
            "risk_type": "string",
            "risk_description": "string",
            "severity_level": "string",
            "affected_clause": "string",
            "potential_impact": "string",
            "likelihood": "string"
        }
    ],
    "overall_risk_assessment": {
        "total_risks_identified": number,
        "high_severity_count": number,
        "medium_severity_count": number,
        "low_severity_count": number,
        "overall_risk_score": number,
        "key_concerns": ["string"],
        "recommended_action": "string"
    }
}

Contract text (first %d characters):
%s`, clauseContext.String(), contractTextLimitRisk, truncate(contractText, contractTextLimitRisk))
}

func buildClarityPrompt(contractText string) string {
	return fmt.Sprintf(`Analyze the language clarity of this contract. Identify:

1. Vague or ambiguous terms that need clarification
2. Undefined technical terms or jargon
3. Inconsistent terminology usage
4. Overly complex sentences that could be simplified
5. Missing definitions for key terms

Provide specific examples and suggestions for improvement.

Respond in JSON format:
{
    "clarity_issues": [
        {
            "issue_type": "string",
            "problematic_text": "string",
            "explanation": "string",
            "suggested_improvement": "string"
        }
    ],
    "clarity_score": number,
    "summary": "string"
}

Contract text:
%s`, truncate(contractText, contractTextLimitClarity))
}

func buildRedlinePrompt(contractText string, risks *RiskAnalysis, clauses []DetectedClause) string {
	var riskContext strings.Builder
	for i, risk := range risks.HighSeverityRisks() {
		if i >= riskContextLimitRedline {
			break
		}
		riskType := risk.RiskType
		if riskType == "" {
			riskType = "Unknown Risk"
		}
		fmt.Fprintf(&riskContext, "- %s: %s\n", riskType, risk.RiskDescription)
	}

	var clauseContext strings.Builder
	for i, clause := range clauses {
		if i >= clauseContextLimitRedline {
			break
		}
		clauseType := clause.ClauseType
		if clauseType == "" {
			clauseType = "Unknown"
		}
		fmt.Fprintf(&clauseContext, "- %s: %s...\n", clauseType, truncate(clause.ClauseText, clauseTextLimitRedline))
	}

	return fmt.Sprintf(`Based on the risk analysis and contract clauses, provide specific redline suggestions
to improve this contract. Focus on addressing the identified high-risk areas.

High-priority risks to address:
%s

Key contract clauses:
%s

For each redline suggestion, provide:
1. The specific text to be changed/added/deleted
2. The proposed replacement or addition
3. Rationale for the change
4. Risk mitigation achieved
5. Priority level (Critical/High/Medium/Low)

Also suggest:
- Missing clauses that should be added
- Language that should be clarified
- Terms that need better definition
- Protective provisions that should be strengthened

Respond in JSON format:
{
    "redline_suggestions": [
        {
            "change_type": "string",
            "original_text": "string",
            "proposed_text": "string",
            "rationale": "string",
            "risk_addressed": "string",
            "priority": "string",
            "section_reference": "string"
        }
    ],
    "new_clauses_needed": [
        {
            "clause_type": "string",
            "proposed_language": "string",
            "justification": "string",
            "priority": "string"
        }
    ],
    "negotiation_strategy": {
        "key_positions": ["string"],
        "fallback_options": ["string"],
        "deal_breakers": ["string"]
    },
    "summary": {
        "total_suggestions": number,
        "critical_changes": number,
        "estimated_risk_reduction": "string"
    }
}

Contract text (first %d characters):
%s`, riskContext.String(), clauseContext.String(), contractTextLimitRedline, truncate(contractText, contractTextLimitRedline))
}
