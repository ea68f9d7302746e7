package gitcli_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitattrib/internal/execshell"
	"github.com/temirov/gitattrib/internal/gitcli"
)

const (
	testRepositoryPathConstant = "/tmp/repository"
	testFilePathConstant       = "internal/main.go"
)

type stubGitExecutor struct {
	responses       map[string]execshell.ExecutionResult
	failures        map[string]error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	subcommand := details.Arguments[0]
	if failure, failureFound := executor.failures[subcommand]; failureFound {
		return execshell.ExecutionResult{}, failure
	}
	return executor.responses[subcommand], nil
}

func TestNewClientValidation(testInstance *testing.T) {
	client, creationError := gitcli.NewClient(nil)
	require.ErrorIs(testInstance, creationError, gitcli.ErrExecutorNotConfigured)
	require.Nil(testInstance, client)
}

func TestClientBuildsCommands(testInstance *testing.T) {
	executor := &stubGitExecutor{
		responses: map[string]execshell.ExecutionResult{
			"ls-files": {StandardOutput: "a.go\x00b.go\x00"},
			"rev-list": {StandardOutput: testFirstCommitConstant + "\n"},
			"blame":    {StandardOutput: testBlamePorcelainConstant},
			"log":      {StandardOutput: "Alice Example\x00alice@example.com\n\n2\t0\tinternal/main.go\n"},
		},
	}
	client, creationError := gitcli.NewClient(executor)
	require.NoError(testInstance, creationError)

	revisionArguments := gitcli.RevisionArguments([]string{"abc123"})
	executionContext := context.Background()

	trackedFiles, listError := client.ListTrackedFiles(executionContext, testRepositoryPathConstant)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"a.go", "b.go"}, trackedFiles)

	hasHistory, historyError := client.HasHistory(executionContext, testRepositoryPathConstant, revisionArguments, testFilePathConstant)
	require.NoError(testInstance, historyError)
	require.True(testInstance, hasHistory)

	blameLines, blameError := client.Blame(executionContext, testRepositoryPathConstant, revisionArguments, testFilePathConstant)
	require.NoError(testInstance, blameError)
	require.Len(testInstance, blameLines, 3)

	entries, logError := client.LogAdditions(executionContext, testRepositoryPathConstant, revisionArguments, testFilePathConstant)
	require.NoError(testInstance, logError)
	require.Equal(testInstance, []gitcli.NumstatEntry{{AuthorName: "Alice Example", AuthorEmail: "alice@example.com", AddedLines: 2}}, entries)

	expectedCommands := []string{
		"ls-files -z",
		"rev-list -1 HEAD ^abc123 -- internal/main.go",
		"blame --encoding=utf-8-strict --line-porcelain -w -M -C --root HEAD ^abc123 -- internal/main.go",
		"log --format=format:%aN%x00%aE --numstat HEAD ^abc123 -- internal/main.go",
	}
	require.Len(testInstance, executor.recordedDetails, len(expectedCommands))
	for commandIndex, expectedCommand := range expectedCommands {
		require.Equal(testInstance, expectedCommand, strings.Join(executor.recordedDetails[commandIndex].Arguments, " "))
		require.Equal(testInstance, testRepositoryPathConstant, executor.recordedDetails[commandIndex].WorkingDirectory)
	}
}

func TestClientHasHistoryEmptyOutput(testInstance *testing.T) {
	executor := &stubGitExecutor{responses: map[string]execshell.ExecutionResult{"rev-list": {StandardOutput: "\n"}}}
	client, creationError := gitcli.NewClient(executor)
	require.NoError(testInstance, creationError)

	hasHistory, historyError := client.HasHistory(context.Background(), testRepositoryPathConstant, gitcli.RevisionArguments(nil), testFilePathConstant)
	require.NoError(testInstance, historyError)
	require.False(testInstance, hasHistory)
}

func TestClientWrapsExecutorFailures(testInstance *testing.T) {
	executorFailure := errors.New("exit status 128")
	executor := &stubGitExecutor{
		failures: map[string]error{
			"ls-files": executorFailure,
			"rev-list": executorFailure,
			"blame":    executorFailure,
			"log":      executorFailure,
		},
	}
	client, creationError := gitcli.NewClient(executor)
	require.NoError(testInstance, creationError)

	executionContext := context.Background()
	revisionArguments := gitcli.RevisionArguments(nil)

	_, listError := client.ListTrackedFiles(executionContext, testRepositoryPathConstant)
	require.ErrorIs(testInstance, listError, executorFailure)

	_, historyError := client.HasHistory(executionContext, testRepositoryPathConstant, revisionArguments, testFilePathConstant)
	require.ErrorIs(testInstance, historyError, executorFailure)

	_, blameError := client.Blame(executionContext, testRepositoryPathConstant, revisionArguments, testFilePathConstant)
	require.ErrorIs(testInstance, blameError, executorFailure)
	require.Contains(testInstance, blameError.Error(), testFilePathConstant)

	_, logError := client.LogAdditions(executionContext, testRepositoryPathConstant, revisionArguments, testFilePathConstant)
	require.ErrorIs(testInstance, logError, executorFailure)
}
