package attribution_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitattrib/internal/attribution"
	"github.com/temirov/gitattrib/internal/execshell"
	"github.com/temirov/gitattrib/internal/gitcli"
)

const (
	integrationFileNameConstant      = "notes.txt"
	integrationAliceEmailConstant    = "alice@example.com"
	integrationBobEmailConstant      = "bob@corp.io"
	integrationFirstDateConstant     = "2024-01-02T10:00:00+00:00"
	integrationSecondDateConstant    = "2024-03-04T10:00:00+00:00"
	integrationGitExecutableConstant = "git"
)

type integrationRepository struct {
	path    string
	commits []string
}

func createIntegrationRepository(testInstance *testing.T) integrationRepository {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(integrationGitExecutableConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	repositoryPath := testInstance.TempDir()
	runIntegrationGit(testInstance, repositoryPath, nil, "init", "--quiet")

	filePath := filepath.Join(repositoryPath, integrationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(filePath, []byte("first line\n\nthird line\n"), 0o600))
	runIntegrationGit(testInstance, repositoryPath, nil, "add", integrationFileNameConstant)
	runIntegrationGit(testInstance, repositoryPath, authorEnvironment("Alice", integrationAliceEmailConstant, integrationFirstDateConstant), "commit", "--quiet", "-m", "initial")
	firstCommit := runIntegrationGit(testInstance, repositoryPath, nil, "rev-parse", "HEAD")

	require.NoError(testInstance, os.WriteFile(filePath, []byte("first line\n\nthird line\nfourth line\n"), 0o600))
	runIntegrationGit(testInstance, repositoryPath, authorEnvironment("Bob", integrationBobEmailConstant, integrationSecondDateConstant), "commit", "--quiet", "-am", "append")
	secondCommit := runIntegrationGit(testInstance, repositoryPath, nil, "rev-parse", "HEAD")

	return integrationRepository{path: repositoryPath, commits: []string{firstCommit, secondCommit}}
}

func authorEnvironment(name string, email string, date string) []string {
	return []string{
		"GIT_AUTHOR_NAME=" + name,
		"GIT_AUTHOR_EMAIL=" + email,
		"GIT_AUTHOR_DATE=" + date,
		"GIT_COMMITTER_NAME=" + name,
		"GIT_COMMITTER_EMAIL=" + email,
		"GIT_COMMITTER_DATE=" + date,
	}
}

func runIntegrationGit(testInstance *testing.T, repositoryPath string, environment []string, arguments ...string) string {
	testInstance.Helper()
	command := exec.Command(integrationGitExecutableConstant, arguments...)
	command.Dir = repositoryPath
	command.Env = append(os.Environ(), authorEnvironment("Setup", "setup@example.com", integrationFirstDateConstant)...)
	command.Env = append(command.Env, environment...)
	output, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(output))
	return strings.TrimSpace(string(output))
}

func newIntegrationAggregator(testInstance *testing.T) *attribution.Aggregator {
	testInstance.Helper()
	shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, executorError)
	gitClient, clientError := gitcli.NewClient(shellExecutor)
	require.NoError(testInstance, clientError)
	aggregator, aggregatorError := attribution.NewAggregator(gitClient, zap.NewNop(), nil, nil, nil)
	require.NoError(testInstance, aggregatorError)
	return aggregator
}

func TestAggregatorAgainstRealRepository(testInstance *testing.T) {
	repository := createIntegrationRepository(testInstance)
	aggregator := newIntegrationAggregator(testInstance)

	report, aggregateError := aggregator.Aggregate(context.Background(), attribution.Options{
		RepositoryPath: repository.path,
		Workers:        2,
	})
	require.NoError(testInstance, aggregateError)

	require.Equal(testInstance, 1, report.FilesProcessed)
	require.Equal(testInstance, []string{"Alice", "Bob"}, report.ContributorNames())

	alice := report.Contributors["Alice"].Files[integrationFileNameConstant]
	require.Equal(testInstance, 3, alice.CurrentLineCount())
	require.Equal(testInstance, 3, alice.HistoricalLines)
	require.Equal(testInstance, "2024-01-02", alice.LastModified)
	require.Equal(testInstance, attribution.LineRecord{LineNumber: 2, Content: "", LastModified: "2024-01-02"}, alice.SampleLines(3)[1])

	bob := report.Contributors["Bob"].Files[integrationFileNameConstant]
	require.Equal(testInstance, 1, bob.CurrentLineCount())
	require.Equal(testInstance, 1, bob.HistoricalLines)
	require.Equal(testInstance, attribution.LineRecord{LineNumber: 4, Content: "fourth line", LastModified: "2024-03-04"}, bob.CurrentLines[0])
	require.Equal(testInstance, []string{"corp.io"}, report.Contributors["Bob"].Identity.SortedCompanies())
}

func TestAggregatorExcludesCommitsFromRealRepository(testInstance *testing.T) {
	repository := createIntegrationRepository(testInstance)
	aggregator := newIntegrationAggregator(testInstance)

	report, aggregateError := aggregator.Aggregate(context.Background(), attribution.Options{
		RepositoryPath:  repository.path,
		ExcludedCommits: []string{repository.commits[0]},
	})
	require.NoError(testInstance, aggregateError)

	require.Equal(testInstance, []string{"Bob"}, report.ContributorNames())
	bob := report.Contributors["Bob"]
	require.Equal(testInstance, 1, bob.TotalCurrentLines())
	require.Equal(testInstance, 1, bob.TotalHistoricalLines())
}

func TestAggregatorSkipsFileTouchedOnlyByExcludedCommit(testInstance *testing.T) {
	repository := createIntegrationRepository(testInstance)
	aggregator := newIntegrationAggregator(testInstance)

	report, aggregateError := aggregator.Aggregate(context.Background(), attribution.Options{
		RepositoryPath:  repository.path,
		ExcludedCommits: []string{repository.commits[1]},
	})
	require.NoError(testInstance, aggregateError)

	require.Empty(testInstance, report.Contributors)
	require.Equal(testInstance, 1, report.FilesSkipped)
}
