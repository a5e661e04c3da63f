// Package review implements the contract review pipeline orchestrator.
//
// A Reviewer runs five fixed stages in sequence, each later stage
// consuming the output of earlier ones:
//
//  1. Clause detection (LLM call)
//  2. Risk analysis (LLM call, consumes detected clauses)
//  3. Language-clarity assessment (LLM call, consumes only contract text)
//  4. Redline suggestion (LLM call, consumes clauses and risks)
//  5. Change prioritization (purely local, consumes redline suggestions)
//
// Clause detection is a hard prerequisite: if it fails, the review
// short-circuits with Success set to false. Failures in stages 2-4 are
// soft: the stage result is replaced with a documented degraded default,
// the error is recorded inline on that stage's result, and the pipeline
// continues. Stage outputs are decoded into typed records at the
// boundary with zero-value defaulting, so missing upstream fields never
// break the derivation arithmetic.
//
// The final ReviewReport is a pure function of the per-stage outputs:
// the executive summary derives an overall risk level and a contract
// quality grade from the stage summaries, and the next-steps list
// follows a fixed recipe.
//
// Each call to RunReview is an independent linear traversal with no
// shared mutable state, so a single Reviewer may serve concurrent
// reviews without additional synchronization.
package review
