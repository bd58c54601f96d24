package diag

import "dada/internal/source"

// Reporter is the minimal contract a checking pass uses to emit
// diagnostics without depending on how they are stored or rendered.
// Implementations include BagReporter (collects into a Bag), a no-op
// reporter for call sites that only want a query's return value, and a
// fan-out MultiReporter.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(d *Diagnostic)

func (f ReporterFunc) Report(d *Diagnostic) {
	if f != nil {
		f(d)
	}
}

// NopReporter discards every diagnostic.
type NopReporter struct{}

func (NopReporter) Report(*Diagnostic) {}

// MultiReporter fans a diagnostic out to every wrapped reporter.
type MultiReporter []Reporter

func (m MultiReporter) Report(d *Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}

// BagReporter adapts a *Bag to the Reporter interface.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d *Diagnostic) {
	if r.Bag == nil || d == nil {
		return
	}
	r.Bag.Add(d)
}

// Report builds and emits a diagnostic in one call, returning it so callers
// can attach labels/children before it is read back out of the bag.
func Report(r Reporter, sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	d := New(sev, code, primary, msg)
	if r != nil {
		r.Report(d)
	}
	return d
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *Diagnostic {
	return Report(r, SevError, code, primary, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *Diagnostic {
	return Report(r, SevWarning, code, primary, msg)
}
