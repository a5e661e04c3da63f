// Package sdk provides the Redline contract review SDK.
//
// The SDK automates legal contract analysis by orchestrating a fixed
// pipeline of LLM-backed analysis stages: clause detection, risk
// analysis, language-clarity assessment, redline suggestion, and change
// prioritization. The heavy lifting (natural-language understanding,
// risk scoring, redline drafting) is delegated to a hosted inference
// service; the SDK builds prompts, validates and defaults the returned
// JSON, tolerates partial stage failures, and aggregates everything into
// a single ReviewReport.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Reviewer: the pipeline orchestrator that runs the five analysis stages
//   - Stages: fixed, sequential analysis steps, each feeding later stages
//   - Degraded defaults: documented fallback values substituted when a
//     non-critical stage fails, allowing the review to complete
//   - ReviewReport: the immutable aggregate produced by one review run
//
// # Architecture
//
// The SDK follows a layered architecture:
//
//   - review: the pipeline orchestrator and report derivation rules
//   - llm / openai: the narrow inference-client interface and its
//     OpenAI chat-completions implementation
//   - config: YAML configuration for models, sampling, and storage
//   - store / export: report persistence and rendering collaborators
//
// # Getting Started
//
// Construct an inference client, wrap it in a Reviewer, and run a review:
//
//	client := openai.NewClient(openai.Options{APIKey: os.Getenv("OPENAI_API_KEY")})
//	reviewer := review.NewReviewer(client)
//
//	report, err := reviewer.RunReview(ctx, contractText)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if report.Success {
//		fmt.Println(report.ExecutiveSummary.OverallAssessment.RiskLevel)
//	}
//
// # Error Handling
//
// The SDK uses structured errors (ReviewError) with sentinel errors for
// common conditions. Use errors.Is() to check error types:
//
//	report, err := reviewer.RunReview(ctx, text)
//	if errors.Is(err, sdk.ErrNoContractText) {
//		// empty input, no inference call was made
//	}
//
// Only an empty-input validation failure or a clause-detection failure
// surfaces as a top-level error; later stage failures are absorbed into
// the report as degraded defaults with an inline error marker.
package sdk
