package diag

import "dada/internal/source"

// Label is a secondary span attached to a diagnostic, e.g. pointing at the
// declaration a conflicting definition collides with.
type Label struct {
	Span     source.Span
	Severity Severity
	Message  string
}

// Diagnostic captures a single issue, per §6: a severity, a primary
// absolute span, a message, ordered secondary labels, and ordered child
// diagnostics. Rendering is the caller's responsibility; this is only the
// structured record.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Labels   []Label
	Children []*Diagnostic
}

// WithLabel appends a secondary label and returns the receiver for chaining.
func (d *Diagnostic) WithLabel(span source.Span, sev Severity, msg string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Severity: sev, Message: msg})
	return d
}

// WithChild appends a child diagnostic and returns the receiver for chaining.
func (d *Diagnostic) WithChild(child *Diagnostic) *Diagnostic {
	if child != nil {
		d.Children = append(d.Children, child)
	}
	return d
}

// New constructs a Diagnostic with no labels or children.
func New(sev Severity, code Code, primary source.Span, message string) *Diagnostic {
	return &Diagnostic{Severity: sev, Code: code, Message: message, Primary: primary}
}
