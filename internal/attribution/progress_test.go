package attribution_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitattrib/internal/attribution"
)

func TestBarProgressReporter(testInstance *testing.T) {
	testCases := []struct {
		name          string
		totalFiles    int
		advances      int
		expectedStart string
	}{
		{name: "files_processed", totalFiles: 3, advances: 3, expectedStart: "Processing 3 files using 4 workers...\n"},
		{name: "empty_run", totalFiles: 0, advances: 0, expectedStart: "Processing 0 files using 4 workers...\n"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var output bytes.Buffer
			reporter := attribution.NewBarProgressReporter(&output)
			reporter.Start(testCase.totalFiles, 4)
			for advance := 0; advance < testCase.advances; advance++ {
				reporter.Advance()
			}
			reporter.Finish()

			require.Contains(testInstance, output.String(), testCase.expectedStart)
			require.Contains(testInstance, output.String(), "\nAnalysis complete!\n")
		})
	}
}
