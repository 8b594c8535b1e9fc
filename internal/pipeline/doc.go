// Package pipeline sequences the stages of an accessibility evaluation:
// fetching (or crawling) the target pages, then running the checks and
// finalizing the report. Each stage is a Step receiving the report
// accumulated so far, which keeps stages individually testable and the
// evaluation cancellable between them via context.
package pipeline
