package diag_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataflow/internal/diag"
	"dataflow/internal/irtext"
)

func TestReporterFormatsDuplicateLabel(t *testing.T) {
	source := "proc main {\nentry:\n  ret\nentry:\n  ret\n}\n"
	reporter := diag.NewReporter("test.dfa", source)

	d := diag.DuplicateLabel("entry", diag.Position{Line: 4, Column: 1})
	formatted := reporter.Format(d)

	assert.Contains(t, formatted, "error["+diag.ErrorDuplicateLabel+"]")
	assert.Contains(t, formatted, "duplicate block label")
	assert.Contains(t, formatted, "test.dfa:4:1")
	assert.Contains(t, formatted, "help:")
}

func TestDuplicateLabelDiagnostic(t *testing.T) {
	d := diag.DuplicateLabel("entry", diag.Position{Line: 1, Column: 1})
	assert.Equal(t, diag.ErrorDuplicateLabel, d.Code)
	assert.Contains(t, d.Message, "entry")
	assert.Equal(t, diag.Error, d.Level)
}

func TestUndefinedSuccessorDiagnostic(t *testing.T) {
	d := diag.UndefinedSuccessor("entry", "nowhere", diag.Position{Line: 2, Column: 3})
	assert.Equal(t, diag.ErrorUndefinedSuccessor, d.Code)
	assert.Contains(t, d.Message, "nowhere")
}

func TestFromParseErrorExtractsPosition(t *testing.T) {
	_, err := irtext.ParseSource("bad.dfa", "proc main {\nentry:\n  not-an-instruction\n}\n")
	require.Error(t, err)

	d := diag.FromParseError(err)
	assert.Equal(t, diag.ErrorSyntax, d.Code)
	assert.True(t, d.Position.Line >= 1)
}

func TestFromParseErrorRecognizesDuplicateLabel(t *testing.T) {
	source := "proc main {\nentry:\n  ret\nentry:\n  ret\n}\n"
	_, err := irtext.ParseSource("dup.dfa", source)
	require.Error(t, err)

	d := diag.FromParseError(err)
	assert.Equal(t, diag.ErrorDuplicateLabel, d.Code)
	assert.Contains(t, d.Message, "entry")
	assert.Equal(t, 4, d.Position.Line)
}

func TestFromParseErrorRecognizesUndefinedSuccessor(t *testing.T) {
	source := "proc main {\nentry:\n  br.j nowhere\n}\n"
	_, err := irtext.ParseSource("undef.dfa", source)
	require.Error(t, err)

	d := diag.FromParseError(err)
	assert.Equal(t, diag.ErrorUndefinedSuccessor, d.Code)
	assert.Contains(t, d.Message, "nowhere")
	assert.Equal(t, 2, d.Position.Line)
}

func TestIsWarningRangesAnalysisCodesOnly(t *testing.T) {
	assert.True(t, diag.IsWarning(diag.WarningPossibleDivByZero))
	assert.False(t, diag.IsWarning(diag.ErrorDuplicateLabel))
	assert.False(t, diag.IsWarning(diag.ErrorSyntax))
}

func TestGetErrorDescriptionKnownCodes(t *testing.T) {
	for _, code := range []string{
		diag.ErrorSyntax, diag.ErrorMalformedOperand, diag.ErrorUnknownOpcode,
		diag.ErrorUnknownPredicate, diag.ErrorDuplicateLabel, diag.ErrorMissingTerminator,
		diag.ErrorUndefinedSuccessor, diag.WarningPossibleDivByZero,
	} {
		desc := diag.GetErrorDescription(code)
		assert.False(t, strings.Contains(desc, "unknown diagnostic code"), "code %s has no description", code)
	}
}
