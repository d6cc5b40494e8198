// Package diagnostic provides the structured reporting channel of the
// transformation engine.
//
// Transformers never fail on expected data-quality conditions. They report a
// Diagnostic to a Sink and return "no record" (or a record without the
// unresolvable optional field). Severity informs the import summary only; it
// never changes control flow.
//
// Sinks provided here:
//   - Diagnostics: an in-memory collector, safe for concurrent use
//   - LogSink: writes each diagnostic as a logrus entry
//   - Tee: fans a diagnostic out to several sinks
//   - Discard: drops everything
package diagnostic
