package types

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrKind
		sev  Severity
	}{
		{fmt.Errorf("open: %w", ErrArchiveFormat), ErrKindFormat, SevCritical},
		{fmt.Errorf("a: %w: %w", ErrTruncated, errors.New("eof")), ErrKindCorrupt, SevError},
		{ErrUnresolvedLink, ErrKindCorrupt, SevError},
		{fmt.Errorf("depth: %w", ErrBitmapModeUnsupported), ErrKindUnsupported, SevWarning},
		{ErrUnsupported, ErrKindUnsupported, SevWarning},
		{fmt.Errorf("db: %w", ErrParse), ErrKindParse, SevError},
		{errors.New("boom"), ErrKindOther, SevError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindOf(tc.err), tc.err.Error())
		assert.Equal(t, tc.sev, SeverityOf(tc.err), tc.err.Error())
	}
	assert.Equal(t, ErrKindOther, KindOf(nil))
	assert.Equal(t, "corrupt", ErrKindCorrupt.String())
}

func TestReportAddAndMerge(t *testing.T) {
	r := NewReport()
	r.AddError(StageBitmap, "b.dxr", 4, 20, "car", fmt.Errorf("depth 40: %w", ErrBitmapModeUnsupported))
	r.AddError(StageMember, "a.dxr", 2, 11, "", ErrUnresolvedLink)

	other := NewReport()
	other.Add(Diagnostic{Severity: SevCritical, Stage: StageOpen, Archive: "c.dxr", Issue: "bad"})
	r.Merge(other)
	r.Merge(nil)

	require.Len(t, r.Diagnostics, 3)
	require.Equal(t, Summary{Critical: 1, Errors: 1, Warnings: 1}, r.Summary)
	require.True(t, r.HasErrors())
	require.True(t, r.HasAnyIssues())
	require.ErrorIs(t, r.Diagnostics[0].Err, ErrBitmapModeUnsupported)

	r.Sort()
	require.Equal(t, "a.dxr", r.Diagnostics[0].Archive)
	require.Len(t, r.ByArchive()["b.dxr"], 1)
}

func TestReportFormatting(t *testing.T) {
	r := NewReport()
	require.Contains(t, r.FormatText(), "No issues found.")
	require.False(t, r.HasErrors())

	r.AddError(StageRecord, "cddata.cxt", 7, 0, "*DB", fmt.Errorf("record: %w", ErrParse))
	text := r.FormatText()
	require.Contains(t, text, "cddata.cxt (1)")
	require.Contains(t, text, `[ERROR/record] member 7 "*DB"`)

	compact := r.FormatTextCompact()
	require.Equal(t, 1, strings.Count(compact, "\n"))

	js, err := r.FormatJSON()
	require.NoError(t, err)
	require.Contains(t, js, `"severity": "ERROR"`)
	require.Contains(t, js, `"errors": 1`)
	require.NotContains(t, js, `"Err"`)
}
