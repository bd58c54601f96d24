package diag

// Severity classifies how serious a diagnostic is. Ordering matters: callers
// compare severities with `>=` to answer "does this count as a failure",
// so values are declared least-to-most severe.
type Severity uint8

const (
	// SevNote annotates another diagnostic with extra context.
	SevNote Severity = iota
	// SevHelp suggests a possible remedy without asserting a problem.
	SevHelp
	// SevInfo reports informational, non-actionable output.
	SevInfo
	// SevWarning flags something likely wrong that does not fail the build.
	SevWarning
	// SevError marks the compilation as failed (see §7 of the spec).
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "note"
	case SevHelp:
		return "help"
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
