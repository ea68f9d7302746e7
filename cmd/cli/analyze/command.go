package analyze

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitattrib/internal/attribution"
	"github.com/temirov/gitattrib/internal/execshell"
	"github.com/temirov/gitattrib/internal/gitcli"
	"github.com/temirov/gitattrib/internal/report"
	"github.com/temirov/gitattrib/internal/ui"
	"github.com/temirov/gitattrib/internal/utils"
	flagutils "github.com/temirov/gitattrib/internal/utils/flags"
	pathutils "github.com/temirov/gitattrib/internal/utils/path"
)

const (
	commandUseConstant                = "analyze <repository>"
	commandShortDescriptionConstant   = "Attribute current and historical lines of a repository to contributors"
	commandLongDescriptionConstant    = "analyze blames every tracked file of a git repository and walks its history, then writes a per-contributor report of lines currently owned and lines added over time."
	flagExtensionsNameConstant        = "extensions"
	flagExtensionsUsageConstant       = "Comma-separated file extensions to analyze (e.g. .go,.md)"
	flagExcludeCommitsNameConstant    = "exclude-commits"
	flagExcludeCommitsUsageConstant   = "Comma-separated commits whose lines are removed from attribution"
	flagExcludePathsNameConstant      = "exclude-paths"
	flagExcludePathsUsageConstant     = "Comma-separated paths to exclude (e.g. vendor/,third_party/)"
	flagExcludePatternsNameConstant   = "exclude-patterns"
	flagExcludePatternsUsageConstant  = "Comma-separated glob patterns to exclude (e.g. *.min.js,*.pb.go)"
	flagOutputNameConstant            = "output"
	flagOutputUsageConstant           = "Report path; the format extension is appended when missing"
	flagFormatNameConstant            = "format"
	flagFormatUsageConstant           = "Report format"
	flagDebugNameConstant             = "debug"
	flagDebugUsageConstant            = "Print filtering and per-file diagnostics to stderr"
	flagNoSampleCodeNameConstant      = "no-sample-code"
	flagNoSampleCodeUsageConstant     = "Omit per-file listings and sample lines from the text report"
	flagWorkersNameConstant           = "workers"
	flagWorkersUsageConstant          = "Number of files processed in parallel (0 uses every CPU)"
	missingRepositoryMessageConstant  = "analyze requires exactly one repository path"
	analysisErrorTemplateConstant     = "contributor analysis failed: %w"
	outputCreateErrorTemplateConstant = "unable to create report %s: %w"
	outputWriteErrorTemplateConstant  = "unable to write report %s: %w"
	outputCloseErrorTemplateConstant  = "unable to close report %s: %w"
	reportWrittenTemplateConstant     = "\nDetailed report written to %s\n"
	analysisCompletedMessageConstant  = "Contributor analysis completed"
	logFieldRepositoryConstant        = "repository"
	logFieldOutputConstant            = "output"
	logFieldContributorsConstant      = "contributors"
	logFieldFilesProcessedConstant    = "files_processed"
	logFieldFilesSkippedConstant      = "files_skipped"
)

var errMissingRepository = errors.New(missingRepositoryMessageConstant)

var homeDirectoryExpander = pathutils.NewHomeExpander()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the analyze cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	GitExecutor                  gitcli.GitExecutor
	ProgressReporter             attribution.ProgressReporter
	Clock                        attribution.Clock
}

// Build constructs the analyze command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().StringSlice(flagExtensionsNameConstant, nil, flagExtensionsUsageConstant)
	command.Flags().StringSlice(flagExcludeCommitsNameConstant, nil, flagExcludeCommitsUsageConstant)
	command.Flags().StringSlice(flagExcludePathsNameConstant, nil, flagExcludePathsUsageConstant)
	command.Flags().StringSlice(flagExcludePatternsNameConstant, nil, flagExcludePatternsUsageConstant)
	command.Flags().String(flagOutputNameConstant, defaults.Output, flagOutputUsageConstant)
	command.Flags().String(flagFormatNameConstant, defaults.Format, flagutils.FormatChoiceUsage(defaults.Format, report.SupportedFormats(), flagFormatUsageConstant))
	command.Flags().Bool(flagDebugNameConstant, defaults.Debug, flagDebugUsageConstant)
	command.Flags().Bool(flagNoSampleCodeNameConstant, defaults.NoSampleCode, flagNoSampleCodeUsageConstant)
	command.Flags().Int(flagWorkersNameConstant, defaults.Workers, flagWorkersUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	repositoryPath, repositoryError := requireRepositoryPath(command, arguments)
	if repositoryError != nil {
		return repositoryError
	}

	configuration := builder.applyFlagOverrides(command, builder.resolveConfiguration())

	format, formatError := report.ParseFormat(configuration.Format)
	if formatError != nil {
		return formatError
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	gitClient, clientError := gitcli.NewClient(gitExecutor)
	if clientError != nil {
		return clientError
	}

	progressReporter := builder.ProgressReporter
	if progressReporter == nil {
		progressReporter = attribution.NewBarProgressReporter(utils.NewFlushingWriter(command.OutOrStdout()))
	}

	aggregator, aggregatorError := attribution.NewAggregator(gitClient, logger, progressReporter, command.ErrOrStderr(), builder.Clock)
	if aggregatorError != nil {
		return aggregatorError
	}

	attributionReport, aggregateError := aggregator.Aggregate(command.Context(), attribution.Options{
		RepositoryPath:   repositoryPath,
		ExcludedCommits:  configuration.ExcludeCommits,
		ExcludedPaths:    configuration.ExcludePaths,
		ExcludedPatterns: configuration.ExcludePatterns,
		Extensions:       configuration.Extensions,
		Workers:          configuration.Workers,
		Debug:            configuration.Debug,
	})
	if aggregateError != nil {
		return fmt.Errorf(analysisErrorTemplateConstant, aggregateError)
	}

	outputPath := report.ResolveOutputPath(homeDirectoryExpander.Expand(configuration.Output), format)
	if writeError := writeReportFile(outputPath, attributionReport, format, report.WriteOptions{NoSampleCode: configuration.NoSampleCode}); writeError != nil {
		return writeError
	}

	logger.Info(
		analysisCompletedMessageConstant,
		zap.String(logFieldRepositoryConstant, repositoryPath),
		zap.String(logFieldOutputConstant, outputPath),
		zap.Int(logFieldContributorsConstant, len(attributionReport.Contributors)),
		zap.Int(logFieldFilesProcessedConstant, attributionReport.FilesProcessed),
		zap.Int(logFieldFilesSkippedConstant, attributionReport.FilesSkipped),
	)

	fmt.Fprintf(command.OutOrStdout(), reportWrittenTemplateConstant, outputPath)
	return nil
}

func writeReportFile(outputPath string, attributionReport attribution.Report, format report.Format, options report.WriteOptions) error {
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return fmt.Errorf(outputCreateErrorTemplateConstant, outputPath, createError)
	}

	if writeError := report.Write(outputFile, attributionReport, format, options); writeError != nil {
		_ = outputFile.Close()
		return fmt.Errorf(outputWriteErrorTemplateConstant, outputPath, writeError)
	}

	if closeError := outputFile.Close(); closeError != nil {
		return fmt.Errorf(outputCloseErrorTemplateConstant, outputPath, closeError)
	}
	return nil
}

func requireRepositoryPath(command *cobra.Command, arguments []string) (string, error) {
	if len(arguments) == 1 {
		trimmedPath := strings.TrimSpace(arguments[0])
		if len(trimmedPath) > 0 {
			return homeDirectoryExpander.Expand(trimmedPath), nil
		}
	}

	if command != nil {
		_ = command.Help()
	}
	return "", errMissingRepository
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

// applyFlagOverrides replaces configured values with flags the user set explicitly.
func (builder *CommandBuilder) applyFlagOverrides(command *cobra.Command, configuration CommandConfiguration) CommandConfiguration {
	flagSet := command.Flags()
	overridden := configuration

	if flagSet.Changed(flagExtensionsNameConstant) {
		values, _ := flagSet.GetStringSlice(flagExtensionsNameConstant)
		overridden.Extensions = values
	}
	if flagSet.Changed(flagExcludeCommitsNameConstant) {
		values, _ := flagSet.GetStringSlice(flagExcludeCommitsNameConstant)
		overridden.ExcludeCommits = values
	}
	if flagSet.Changed(flagExcludePathsNameConstant) {
		values, _ := flagSet.GetStringSlice(flagExcludePathsNameConstant)
		overridden.ExcludePaths = values
	}
	if flagSet.Changed(flagExcludePatternsNameConstant) {
		values, _ := flagSet.GetStringSlice(flagExcludePatternsNameConstant)
		overridden.ExcludePatterns = values
	}
	if flagSet.Changed(flagOutputNameConstant) {
		overridden.Output, _ = flagSet.GetString(flagOutputNameConstant)
	}
	if flagSet.Changed(flagFormatNameConstant) {
		overridden.Format, _ = flagSet.GetString(flagFormatNameConstant)
	}
	if flagSet.Changed(flagDebugNameConstant) {
		overridden.Debug, _ = flagSet.GetBool(flagDebugNameConstant)
	}
	if flagSet.Changed(flagNoSampleCodeNameConstant) {
		overridden.NoSampleCode, _ = flagSet.GetBool(flagNoSampleCodeNameConstant)
	}
	if flagSet.Changed(flagWorkersNameConstant) {
		overridden.Workers, _ = flagSet.GetInt(flagWorkersNameConstant)
	}

	return overridden.sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// resolveGitExecutor routes command events through the console logger when human-readable logging is on.
func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (gitcli.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	var shellExecutor *execshell.ShellExecutor
	var creationError error
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		shellExecutor, creationError = execshell.NewShellExecutorWithObserver(zap.NewNop(), commandRunner, ui.NewConsoleCommandEventLogger(logger))
	} else {
		shellExecutor, creationError = execshell.NewShellExecutor(logger, commandRunner)
	}
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
