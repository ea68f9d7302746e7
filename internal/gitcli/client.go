package gitcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitattrib/internal/execshell"
)

const (
	lsFilesSubcommandConstant            = "ls-files"
	nullTerminatedFlagConstant           = "-z"
	blameSubcommandConstant              = "blame"
	blameStrictEncodingFlagConstant      = "--encoding=utf-8-strict"
	blameLinePorcelainFlagConstant       = "--line-porcelain"
	blameIgnoreWhitespaceFlagConstant    = "-w"
	blameDetectMovesFlagConstant         = "-M"
	blameDetectCopiesFlagConstant        = "-C"
	blameRootFlagConstant                = "--root"
	logSubcommandConstant                = "log"
	logAuthorFormatFlagConstant          = "--format=format:%aN%x00%aE"
	logNumstatFlagConstant               = "--numstat"
	executorNotConfiguredMessageConstant = "git executor not configured"
	listFilesErrorTemplateConstant       = "unable to list tracked files in %s: %w"
	historyErrorTemplateConstant         = "unable to check history of %s: %w"
	blameErrorTemplateConstant           = "unable to blame %s: %w"
	logErrorTemplateConstant             = "unable to read history of %s: %w"
)

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by the client.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client runs attribution-related git commands against a repository working tree.
type Client struct {
	executor GitExecutor
}

// NewClient constructs a Client around the provided executor.
func NewClient(executor GitExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ListTrackedFiles returns the paths tracked in the index of the repository.
func (client *Client) ListTrackedFiles(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := client.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{lsFilesSubcommandConstant, nullTerminatedFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(listFilesErrorTemplateConstant, repositoryPath, executionError)
	}
	return ParseNullSeparatedPaths(executionResult.StandardOutput), nil
}

// HasHistory reports whether any commit in the revision range touches the file.
func (client *Client) HasHistory(executionContext context.Context, repositoryPath string, revisionArguments []string, filePath string) (bool, error) {
	arguments := buildPathCommand([]string{revisionListCommandConstant, revisionListLimitConstant}, revisionArguments, filePath)
	executionResult, executionError := client.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, fmt.Errorf(historyErrorTemplateConstant, filePath, executionError)
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// Blame attributes every line of the file at the tip of the revision range.
// Author metadata is re-encoded to UTF-8. Whitespace changes are ignored and moved or copied lines keep their original author.
func (client *Client) Blame(executionContext context.Context, repositoryPath string, revisionArguments []string, filePath string) ([]BlameLine, error) {
	arguments := buildPathCommand(
		[]string{
			blameSubcommandConstant,
			blameStrictEncodingFlagConstant,
			blameLinePorcelainFlagConstant,
			blameIgnoreWhitespaceFlagConstant,
			blameDetectMovesFlagConstant,
			blameDetectCopiesFlagConstant,
			blameRootFlagConstant,
		},
		revisionArguments,
		filePath,
	)
	executionResult, executionError := client.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(blameErrorTemplateConstant, filePath, executionError)
	}
	return ParseBlamePorcelain(executionResult.StandardOutput), nil
}

// LogAdditions lists the lines each commit in the revision range added to the file.
func (client *Client) LogAdditions(executionContext context.Context, repositoryPath string, revisionArguments []string, filePath string) ([]NumstatEntry, error) {
	arguments := buildPathCommand([]string{logSubcommandConstant, logAuthorFormatFlagConstant, logNumstatFlagConstant}, revisionArguments, filePath)
	executionResult, executionError := client.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(logErrorTemplateConstant, filePath, executionError)
	}
	return ParseNumstatLog(executionResult.StandardOutput), nil
}

func buildPathCommand(subcommandArguments []string, revisionArguments []string, filePath string) []string {
	arguments := make([]string, 0, len(subcommandArguments)+len(revisionArguments)+2)
	arguments = append(arguments, subcommandArguments...)
	arguments = append(arguments, revisionArguments...)
	arguments = append(arguments, pathspecSeparatorConstant, filePath)
	return arguments
}
