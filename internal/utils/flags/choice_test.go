package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "txt",
			choices:        []string{"txt", "json", "csv"},
			description:    "Report format",
			expectedOutput: "`<TXT|json|csv>` Report format",
		},
		{
			name:           "DefaultLastChoice",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "Log format",
			expectedOutput: "`<structured|CONSOLE>` Log format",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "json",
			choices:        []string{"txt", "json"},
			description:    "  ",
			expectedOutput: "`<txt|JSON>`",
		},
		{
			name:           "DuplicatesAndWhitespaceIgnored",
			defaultChoice:  " CSV ",
			choices:        []string{"csv", " Csv", "txt ", ""},
			description:    "Pick one.",
			expectedOutput: "`<CSV|txt>` Pick one.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedOutput, FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description))
		})
	}
}

func TestMatchChoice(t *testing.T) {
	choices := []string{"debug", "info", "warn", "error"}

	matched, found := MatchChoice(" WARN ", choices)
	require.True(t, found)
	require.Equal(t, "warn", matched)

	_, found = MatchChoice("verbose", choices)
	require.False(t, found)

	_, found = MatchChoice("", choices)
	require.False(t, found)
}
