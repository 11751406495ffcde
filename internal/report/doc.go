// Package report turns rule evaluations into diagnostics.
//
// A Reporter runs each rule call inside a guard that converts errors and
// panics into Fault reports, so one broken check never stops the batch.
// Sinks render the resulting reports for people (TextSink) or machines
// (JSONSink).
package report
