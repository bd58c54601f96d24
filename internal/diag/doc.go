// Package diag defines the diagnostic model shared by every checking phase
// (§6, §7 of the specification).
//
// # Purpose
//
//   - Provide deterministic, accumulator-friendly data structures that
//     capture findings produced by symbol resolution, predicate checking,
//     subtype checking, inference, and expression checking.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or rendering layers.
//
// # Scope
//
// Package diag performs no formatting, IO, or terminal coloring — that is
// an explicitly out-of-scope external collaborator (spec §1). It only
// commits to the structured record described in §6: severity, code,
// primary span, ordered secondary labels, and ordered child diagnostics.
//
// # Data model
//
//   - Severity – five-level enum (note, help, info, warning, error).
//   - Code – compact numeric identifier (see codes.go) with a stable ID().
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing at the issue.
//   - Labels – ordered secondary spans/messages for additional context
//     (e.g. "previous definition here" for DuplicateDefinition).
//   - Children – ordered child diagnostics, used when one failure
//     decomposes into several related sub-problems.
//
// # Emitting diagnostics
//
// Checking passes take a diag.Reporter to decouple emission from storage.
// diag.BagReporter collects into a *Bag, which supports sorting,
// deduplication, filtering, and transformation — used to implement §8's
// determinism property (stable diagnostic ordering across repeated runs).
package diag
