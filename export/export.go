// Package export renders review reports for delivery: machine-readable
// JSON and a human-readable plain-text summary.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	sdk "github.com/redline-ai/sdk"
	"github.com/redline-ai/sdk/review"
)

// Format represents the format for exporting a review report.
type Format string

const (
	// FormatJSON exports the full report as indented JSON.
	FormatJSON Format = "json"

	// FormatText exports a human-readable executive summary.
	FormatText Format = "text"
)

// IsValid returns true if the export format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatText:
		return true
	default:
		return false
	}
}

// String returns the string representation of the export format.
func (f Format) String() string {
	return string(f)
}

// FileExtension returns the file extension for the export format.
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatText:
		return ".txt"
	default:
		return ""
	}
}

// MimeType returns the MIME type for the export format.
func (f Format) MimeType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatText:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// Write renders the report to w in the given format.
func Write(w io.Writer, report *review.ReviewReport, format Format) error {
	const op = "export.Write"

	if report == nil {
		return sdk.NewValidationError(op, fmt.Errorf("nil report"))
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report)
	default:
		return sdk.NewValidationError(op,
			fmt.Errorf("%w: unsupported format %q", sdk.ErrInvalidConfig, format))
	}
}

func writeJSON(w io.Writer, report *review.ReviewReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return sdk.NewInternalError("export.writeJSON", fmt.Errorf("encode report: %w", err))
	}
	return nil
}

func writeText(w io.Writer, report *review.ReviewReport) error {
	var b strings.Builder

	b.WriteString("CONTRACT REVIEW SUMMARY\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	if !report.Success {
		errText := report.Error
		if errText == "" {
			errText = "Unknown error occurred"
		}
		fmt.Fprintf(&b, "ERROR: %s\n", errText)
		return flush(w, b.String())
	}

	fmt.Fprintf(&b, "Analysis Date: %s\n\n", report.CreatedAt.Format("2006-01-02 15:04:05"))

	var overview review.ContractOverview
	var assessment review.OverallAssessment
	if report.ExecutiveSummary != nil {
		overview = report.ExecutiveSummary.ContractOverview
		assessment = report.ExecutiveSummary.OverallAssessment
	}

	b.WriteString("KEY METRICS:\n")
	fmt.Fprintf(&b, "- Clauses Analyzed: %d\n", overview.ClausesAnalyzed)
	fmt.Fprintf(&b, "- Risks Identified: %d\n", overview.RisksIdentified)
	fmt.Fprintf(&b, "- High-Severity Risks: %d\n", overview.HighSeverityRisks)
	fmt.Fprintf(&b, "- Redline Suggestions: %d\n", overview.RedlineSuggestions)
	fmt.Fprintf(&b, "- Critical Changes Needed: %d\n\n", overview.CriticalChangesNeeded)

	b.WriteString("OVERALL ASSESSMENT:\n")
	fmt.Fprintf(&b, "- Risk Level: %s\n", orUnknown(string(assessment.RiskLevel)))
	fmt.Fprintf(&b, "- Contract Quality: %s\n", orUnknown(string(assessment.ContractQuality)))
	recommended := assessment.RecommendedAction
	if recommended == "" {
		recommended = "Review needed"
	}
	fmt.Fprintf(&b, "- Recommended Action: %s\n\n", recommended)

	if len(assessment.KeyConcerns) > 0 {
		b.WriteString("KEY CONCERNS:\n")
		for _, concern := range assessment.KeyConcerns {
			fmt.Fprintf(&b, "- %s\n", concern)
		}
		b.WriteString("\n")
	}

	if len(report.NextSteps) > 0 {
		b.WriteString("RECOMMENDED NEXT STEPS:\n")
		for i, step := range report.NextSteps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}

	return flush(w, b.String())
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func flush(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return sdk.NewInternalError("export.flush", fmt.Errorf("write report: %w", err))
	}
	return nil
}
