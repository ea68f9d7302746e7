package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	pathspecSeparatorConstant               = "--"
)

const (
	gitLsFilesSubcommandNameConstant = "ls-files"
	gitRevListSubcommandNameConstant = "rev-list"
	gitBlameSubcommandNameConstant   = "blame"
	gitLogSubcommandNameConstant     = "log"
)

const (
	gitLsFilesStartTemplateConstant            = "Listing tracked files in %s"
	gitLsFilesSuccessTemplateConstant          = "Listed tracked files in %s"
	gitLsFilesFailureTemplateConstant          = "Failed to list tracked files in %s (exit code %d%s)"
	gitLsFilesExecutionFailureTemplateConstant = "Unable to list tracked files in %s: %s"
	gitRevListStartTemplateConstant            = "Checking history of %s in %s"
	gitRevListSuccessTemplateConstant          = "Checked history of %s in %s"
	gitRevListFailureTemplateConstant          = "Failed to check history of %s in %s (exit code %d%s)"
	gitRevListExecutionFailureTemplateConstant = "Unable to check history of %s in %s: %s"
	gitBlameStartTemplateConstant              = "Attributing current lines of %s in %s"
	gitBlameSuccessTemplateConstant            = "Attributed current lines of %s in %s"
	gitBlameFailureTemplateConstant            = "Failed to attribute current lines of %s in %s (exit code %d%s)"
	gitBlameExecutionFailureTemplateConstant   = "Unable to attribute current lines of %s in %s: %s"
	gitLogStartTemplateConstant                = "Collecting line additions for %s in %s"
	gitLogSuccessTemplateConstant              = "Collected line additions for %s in %s"
	gitLogFailureTemplateConstant              = "Failed to collect line additions for %s in %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant     = "Unable to collect line additions for %s in %s: %s"
)

type pathMessageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

var gitPathMessageTemplates = map[string]pathMessageTemplates{
	gitRevListSubcommandNameConstant: {
		start:            gitRevListStartTemplateConstant,
		success:          gitRevListSuccessTemplateConstant,
		failure:          gitRevListFailureTemplateConstant,
		executionFailure: gitRevListExecutionFailureTemplateConstant,
	},
	gitBlameSubcommandNameConstant: {
		start:            gitBlameStartTemplateConstant,
		success:          gitBlameSuccessTemplateConstant,
		failure:          gitBlameFailureTemplateConstant,
		executionFailure: gitBlameExecutionFailureTemplateConstant,
	},
	gitLogSubcommandNameConstant: {
		start:            gitLogStartTemplateConstant,
		success:          gitLogSuccessTemplateConstant,
		failure:          gitLogFailureTemplateConstant,
		executionFailure: gitLogExecutionFailureTemplateConstant,
	},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	if subcommand == gitLsFilesSubcommandNameConstant {
		return formatter.describeGitLsFilesMessage(command, result, failure, stage)
	}

	templates, templatesFound := gitPathMessageTemplates[subcommand]
	if !templatesFound {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	return formatter.describeGitPathMessage(templates, command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitLsFilesMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitLsFilesStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitLsFilesSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitLsFilesFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitLsFilesExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) describeGitPathMessage(templates pathMessageTemplates, command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	pathspec := formatter.ensureValue(formatter.extractPathspec(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, pathspec, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, pathspec, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, pathspec, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, pathspec, workingDirectory, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

// extractPathspec returns the arguments following the "--" separator.
func (formatter CommandMessageFormatter) extractPathspec(arguments []string) string {
	for argumentIndex, argument := range arguments {
		if argument != pathspecSeparatorConstant {
			continue
		}
		return strings.Join(arguments[argumentIndex+1:], commandArgumentsJoinSeparatorConstant)
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}
