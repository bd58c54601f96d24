package diag

import (
	"testing"

	"dada/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.dada", []byte("a\nb\n"), 0)
	internalFile := fs.Add("/workspace/internal/helper.dada", []byte("x\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     UnresolvedName,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Labels: []Label{
				{Span: source.Span{File: internalFile, Start: 0, End: 0}, Severity: SevNote, Message: "skip me"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Severity: SevNote, Message: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     RecursiveType,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "error SEM1001 testdata/golden/sample.dada:1:1 first line second\n" +
		"note SEM1001 testdata/golden/sample.dada:2:1 note line\n" +
		"warning SEM1401 testdata/golden/sample.dada:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
