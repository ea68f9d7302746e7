package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitattrib/internal/report"
)

func TestWriteTextLayout(testInstance *testing.T) {
	var output bytes.Buffer
	require.NoError(testInstance, report.WriteText(&output, newFixtureReport(), report.WriteOptions{}))
	text := output.String()

	require.True(testInstance, strings.HasPrefix(text, "Git Repository Contributor Analysis\nGenerated on: 2024-03-05 10:30:00\n"))
	require.Contains(testInstance, text, "Excluded commits: abc123, def456\n")
	require.NotContains(testInstance, text, "Excluded paths:")
	require.NotContains(testInstance, text, "Excluded patterns:")
	require.Contains(testInstance, text, strings.Repeat("=", 80)+"\n")

	aliceIndex := strings.Index(text, "\nContributor: Alice\n")
	bobIndex := strings.Index(text, "\nContributor: Bob\n")
	carolIndex := strings.Index(text, "\nContributor: Carol\n")
	require.True(testInstance, aliceIndex >= 0 && aliceIndex < bobIndex && bobIndex < carolIndex)

	aliceSection := text[aliceIndex:bobIndex]
	require.Contains(testInstance, aliceSection, "Contact Information:\n  Email: alice@corp.io\n  Email: alice@example.com\n")
	require.Contains(testInstance, aliceSection, "Associated Companies/Organizations:\n  corp.io\n  example.com\n")
	require.Contains(testInstance, aliceSection, "\nTotal lines currently in codebase: 3\nTotal lines added historically: 4\n\n")
	require.Contains(testInstance, aliceSection, "  main.go: 2 lines (last modified: 2024-02-10)\n    L1 (2024-01-01): package main\n    L2 (2024-02-10): \n")
	require.Contains(testInstance, aliceSection, "    L7 (2024-01-01): "+strings.Repeat("x", 100)+"...\n")
	require.Less(testInstance, strings.Index(aliceSection, "  main.go: 2 lines"), strings.Index(aliceSection, "  util.go: 1 lines"))
	require.Contains(testInstance, aliceSection, "\nHistorical line contributions by file:\n  main.go: 3 lines\n  util.go: 1 lines\n")

	bobSection := text[bobIndex:carolIndex]
	require.Contains(testInstance, bobSection, "Total lines added historically: 1,200\n")

	carolSection := text[carolIndex:]
	require.Contains(testInstance, carolSection, "Total lines currently in codebase: 0\n")
	require.Contains(testInstance, carolSection, "Currently present lines by file:\n\nHistorical line contributions by file:\n  util.go: 5 lines\n")
}

func TestWriteTextWithoutSampleCode(testInstance *testing.T) {
	var output bytes.Buffer
	require.NoError(testInstance, report.WriteText(&output, newFixtureReport(), report.WriteOptions{NoSampleCode: true}))
	text := output.String()

	require.Contains(testInstance, text, "Total lines currently in codebase: 3\n")
	require.NotContains(testInstance, text, "Currently present lines by file:")
	require.NotContains(testInstance, text, "Historical line contributions by file:")
	require.NotContains(testInstance, text, "package main")
}
