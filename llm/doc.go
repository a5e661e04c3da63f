// Package llm defines the narrow interface between the contract review
// pipeline and a hosted large-language-model inference service.
//
// The package contains the request/response types exchanged with an
// inference provider and the Client interface the review pipeline is
// built against. Concrete providers (see the openai package) implement
// Client; tests substitute deterministic stubs.
//
// # Completion Requests
//
// A CompletionRequest bundles the conversation messages, the model to
// use, a sampling temperature, and an optional response format. Requests
// are built with functional options:
//
//	req := llm.NewCompletionRequest(
//		[]llm.Message{
//			{Role: llm.RoleSystem, Content: "You are a legal expert."},
//			{Role: llm.RoleUser, Content: prompt},
//		},
//		llm.WithModel("gpt-4o-mini"),
//		llm.WithTemperature(0.1),
//		llm.WithJSONResponse(),
//	)
//
// # Token Tracking
//
// TokenTracker aggregates token usage across named pipeline stages so
// callers can account for the cost of a full review:
//
//	tracker := llm.NewTokenTracker()
//	tracker.Add("clause_detection", resp.Usage)
//	total := tracker.Total()
package llm
