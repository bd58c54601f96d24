package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"dada/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for test fixtures. Diagnostics are filtered to drop
// entries that belong to stdlib or internal files, sorted deterministically,
// and returned as a single string (empty when nothing remains). Used to make
// §8's determinism property directly assertable in tests.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeLabels bool) string {
	return formatDiagnostics(diags, fs, includeLabels, true)
}

// FormatShortDiagnostics renders diagnostics the same way but keeps
// stdlib/internal paths, for call sites that need the full picture.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeLabels bool) string {
	return formatDiagnostics(diags, fs, includeLabels, false)
}

func formatDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeLabels, skipInternal bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendDiagnostic(rendered, d, fs, includeLabels, skipInternal)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, fs *source.FileSet, includeLabels, skipInternal bool) []goldenDiagnostic {
	loc, ok := resolveSpan(fs, d.Primary)
	if ok && (!skipInternal || !shouldSkipPath(loc.Path)) {
		out = append(out, goldenDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(d.Message),
		})
	}

	if includeLabels {
		for _, label := range d.Labels {
			lloc, lok := resolveSpan(fs, label.Span)
			if !lok || (skipInternal && shouldSkipPath(lloc.Path)) {
				continue
			}
			out = append(out, goldenDiagnostic{
				Severity: label.Severity.String(),
				Code:     d.Code.ID(),
				Path:     lloc.Path,
				Line:     lloc.Line,
				Column:   lloc.Column,
				Message:  sanitizeMessage(label.Message),
			})
		}
	}
	for _, child := range d.Children {
		out = appendDiagnostic(out, child, fs, includeLabels, skipInternal)
	}

	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span) (loc resolvedSpan, ok bool) {
	defer func() {
		if recover() != nil {
			loc = resolvedSpan{}
			ok = false
		}
	}()

	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   normalizePath(file.FormatPath("relative", fs.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func shouldSkipPath(path string) bool {
	if path == "" {
		return false
	}
	p := normalizePath(path)
	p = strings.TrimLeft(p, "/")
	return strings.HasPrefix(p, "stdlib/") ||
		strings.Contains(p, "/stdlib/") ||
		strings.HasPrefix(p, "internal/") ||
		strings.Contains(p, "/internal/")
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
