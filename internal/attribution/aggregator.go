package attribution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/gitattrib/internal/execshell"
	"github.com/temirov/gitattrib/internal/gitcli"
)

const (
	dateLayoutConstant                    = "2006-01-02"
	emptyValueConstant                    = ""
	gitClientNotConfiguredMessageConstant = "attribution git client not configured"
	repositoryPathMissingMessageConstant  = "repository path is required"
	listFilesErrorTemplateConstant        = "unable to list files of repository %s: %w"
	debugListedTemplateConstant           = "DEBUG: found %d tracked files in %s\n"
	debugExcludedTemplateConstant         = "DEBUG: excluded %s by %s %s\n"
	debugFilteredTemplateConstant         = "DEBUG: %d files remain after filtering\n"
	debugRevisionTemplateConstant         = "DEBUG: revision range %s\n"
	debugSkippedTemplateConstant          = "DEBUG: skipped %s: %v\n"
	debugNoHistoryTemplateConstant        = "DEBUG: skipped %s: no commits in revision range\n"
	fileProcessingFailedMessageConstant   = "File processing failed"
	logFieldFilePathConstant              = "file"
	logFieldRepositoryPathConstant        = "repository"
	revisionArgumentSeparatorConstant     = " "
)

// ErrGitClientNotConfigured indicates the aggregator was constructed without a git client.
var ErrGitClientNotConfigured = errors.New(gitClientNotConfiguredMessageConstant)

// ErrRepositoryPathMissing indicates no repository path was supplied.
var ErrRepositoryPathMissing = errors.New(repositoryPathMissingMessageConstant)

// GitClient exposes the git operations required for attribution.
type GitClient interface {
	ListTrackedFiles(executionContext context.Context, repositoryPath string) ([]string, error)
	HasHistory(executionContext context.Context, repositoryPath string, revisionArguments []string, filePath string) (bool, error)
	Blame(executionContext context.Context, repositoryPath string, revisionArguments []string, filePath string) ([]gitcli.BlameLine, error)
	LogAdditions(executionContext context.Context, repositoryPath string, revisionArguments []string, filePath string) ([]gitcli.NumstatEntry, error)
}

// Aggregator attributes current and historical lines of a repository to their authors.
type Aggregator struct {
	gitClient   GitClient
	logger      *zap.Logger
	progress    ProgressReporter
	errorWriter io.Writer
	clock       Clock
	debugMutex  sync.Mutex
}

// NewAggregator constructs an Aggregator. Nil collaborators other than the git client fall back to silent defaults.
func NewAggregator(gitClient GitClient, logger *zap.Logger, progress ProgressReporter, errorWriter io.Writer, clock Clock) (*Aggregator, error) {
	if gitClient == nil {
		return nil, ErrGitClientNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if progress == nil {
		progress = silentProgressReporter{}
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Aggregator{
		gitClient:   gitClient,
		logger:      logger,
		progress:    progress,
		errorWriter: errorWriter,
		clock:       clock,
	}, nil
}

// Aggregate processes every selected file of the repository and returns the merged report.
// Only a failure to list the repository is fatal; per-file failures count as zero contribution.
func (aggregator *Aggregator) Aggregate(executionContext context.Context, options Options) (Report, error) {
	repositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(repositoryPath) == 0 {
		return Report{}, ErrRepositoryPathMissing
	}

	fileFilter := NewFileFilter(options.ExcludedPaths, options.ExcludedPatterns, options.Extensions)

	excludedCommits := sanitizeValues(options.ExcludedCommits)
	report := Report{
		GeneratedAt:      aggregator.clock.Now(),
		ExcludedCommits:  excludedCommits,
		ExcludedPaths:    fileFilter.ExcludedPaths(),
		ExcludedPatterns: fileFilter.ExcludedPatterns(),
		Extensions:       fileFilter.Extensions(),
		Contributors:     make(map[string]*Contributor),
	}

	trackedFiles, listError := aggregator.gitClient.ListTrackedFiles(executionContext, repositoryPath)
	if listError != nil {
		return Report{}, fmt.Errorf(listFilesErrorTemplateConstant, repositoryPath, listError)
	}
	aggregator.debugf(options.Debug, debugListedTemplateConstant, len(trackedFiles), repositoryPath)

	selectedFiles := aggregator.selectFiles(trackedFiles, fileFilter, options.Debug)
	report.FilesConsidered = len(selectedFiles)
	aggregator.debugf(options.Debug, debugFilteredTemplateConstant, len(selectedFiles))

	revisionArguments := gitcli.RevisionArguments(excludedCommits)
	aggregator.debugf(options.Debug, debugRevisionTemplateConstant, strings.Join(revisionArguments, revisionArgumentSeparatorConstant))

	workerCount := resolveWorkerCount(options.Workers)
	aggregator.progress.Start(len(selectedFiles), workerCount)

	fileResults := make(chan FileResult, workerCount)
	go func() {
		defer close(fileResults)
		workerGroup := &errgroup.Group{}
		workerGroup.SetLimit(workerCount)
		for _, filePath := range selectedFiles {
			workerGroup.Go(func() error {
				fileResults <- aggregator.processFile(executionContext, repositoryPath, revisionArguments, filePath, options.Debug)
				return nil
			})
		}
		_ = workerGroup.Wait()
	}()

	for fileResult := range fileResults {
		mergeFileResult(&report, fileResult)
		aggregator.progress.Advance()
	}
	aggregator.progress.Finish()

	if contextError := executionContext.Err(); contextError != nil {
		return Report{}, contextError
	}

	return report, nil
}

func (aggregator *Aggregator) selectFiles(trackedFiles []string, fileFilter FileFilter, debug bool) []string {
	selectedFiles := make([]string, 0, len(trackedFiles))
	for _, filePath := range trackedFiles {
		reason, rule := fileFilter.Evaluate(filePath)
		if reason != ExclusionReasonNone {
			if reason != ExclusionReasonExtension {
				aggregator.debugf(debug, debugExcludedTemplateConstant, filePath, reason, rule)
			}
			continue
		}
		selectedFiles = append(selectedFiles, filePath)
	}
	return selectedFiles
}

// processFile runs the history check, blame, and log walk for one file.
func (aggregator *Aggregator) processFile(executionContext context.Context, repositoryPath string, revisionArguments []string, filePath string, debug bool) FileResult {
	skipped := FileResult{Path: filePath, Skipped: true}
	if executionContext.Err() != nil {
		return skipped
	}

	hasHistory, historyError := aggregator.gitClient.HasHistory(executionContext, repositoryPath, revisionArguments, filePath)
	if historyError != nil {
		aggregator.reportFileFailure(repositoryPath, filePath, historyError, debug)
		return skipped
	}
	if !hasHistory {
		aggregator.debugf(debug, debugNoHistoryTemplateConstant, filePath)
		return skipped
	}

	blameLines, blameError := aggregator.gitClient.Blame(executionContext, repositoryPath, revisionArguments, filePath)
	if blameError != nil {
		aggregator.reportFileFailure(repositoryPath, filePath, blameError, debug)
		return skipped
	}

	numstatEntries, logError := aggregator.gitClient.LogAdditions(executionContext, repositoryPath, revisionArguments, filePath)
	if logError != nil {
		aggregator.reportFileFailure(repositoryPath, filePath, logError, debug)
		return skipped
	}

	return buildFileResult(filePath, blameLines, numstatEntries)
}

// reportFileFailure keeps expected git exits at debug verbosity and logs anything else as a warning.
func (aggregator *Aggregator) reportFileFailure(repositoryPath string, filePath string, failure error, debug bool) {
	var commandFailedError execshell.CommandFailedError
	if errors.As(failure, &commandFailedError) {
		aggregator.debugf(debug, debugSkippedTemplateConstant, filePath, failure)
		return
	}
	aggregator.logger.Warn(
		fileProcessingFailedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldFilePathConstant, filePath),
		zap.Error(failure),
	)
}

func (aggregator *Aggregator) debugf(debug bool, template string, arguments ...any) {
	if !debug {
		return
	}
	aggregator.debugMutex.Lock()
	defer aggregator.debugMutex.Unlock()
	fmt.Fprintf(aggregator.errorWriter, template, arguments...)
}

type authorAccumulator struct {
	result     AuthorFileResult
	seenEmails map[string]struct{}
}

func (accumulator *authorAccumulator) addEmail(email string) {
	if len(email) == 0 {
		return
	}
	if _, seen := accumulator.seenEmails[email]; seen {
		return
	}
	accumulator.seenEmails[email] = struct{}{}
	accumulator.result.Emails = append(accumulator.result.Emails, email)
}

// buildFileResult folds blame lines and numstat entries into per-author results for one file.
func buildFileResult(filePath string, blameLines []gitcli.BlameLine, numstatEntries []gitcli.NumstatEntry) FileResult {
	accumulators := make(map[string]*authorAccumulator)
	resolveAccumulator := func(authorName string) *authorAccumulator {
		accumulator, exists := accumulators[authorName]
		if !exists {
			accumulator = &authorAccumulator{seenEmails: make(map[string]struct{})}
			accumulators[authorName] = accumulator
		}
		return accumulator
	}

	for _, blameLine := range blameLines {
		accumulator := resolveAccumulator(blameLine.AuthorName)
		lineDate := blameLine.AuthorTime.Format(dateLayoutConstant)
		accumulator.result.CurrentLines = append(accumulator.result.CurrentLines, LineRecord{
			LineNumber:   blameLine.LineNumber,
			Content:      blameLine.Content,
			LastModified: lineDate,
		})
		if lineDate > accumulator.result.LastModified {
			accumulator.result.LastModified = lineDate
		}
		if len(blameLine.AuthorEmail) > 0 {
			accumulator.result.CommitterEmail = blameLine.AuthorEmail
		}
		accumulator.addEmail(blameLine.AuthorEmail)
	}

	for _, numstatEntry := range numstatEntries {
		accumulator := resolveAccumulator(numstatEntry.AuthorName)
		accumulator.result.HistoricalLines += numstatEntry.AddedLines
		if len(numstatEntry.AuthorEmail) > 0 {
			accumulator.result.CommitterEmail = numstatEntry.AuthorEmail
		}
		accumulator.addEmail(numstatEntry.AuthorEmail)
	}

	authors := make(map[string]AuthorFileResult, len(accumulators))
	for authorName, accumulator := range accumulators {
		authors[authorName] = accumulator.result
	}
	return FileResult{Path: filePath, Authors: authors}
}

// mergeFileResult folds one file into the report. It runs on the collecting goroutine only.
func mergeFileResult(report *Report, fileResult FileResult) {
	if fileResult.Skipped {
		report.FilesSkipped++
		return
	}
	report.FilesProcessed++

	for authorName, authorResult := range fileResult.Authors {
		contributor, exists := report.Contributors[authorName]
		if !exists {
			contributor = &Contributor{
				Identity: NewAuthorIdentity(authorName),
				Files:    make(map[string]*FileContribution),
			}
			report.Contributors[authorName] = contributor
		}

		contribution, contributionExists := contributor.Files[fileResult.Path]
		if !contributionExists {
			contribution = &FileContribution{}
			contributor.Files[fileResult.Path] = contribution
		}
		contribution.CurrentLines = append(contribution.CurrentLines, authorResult.CurrentLines...)
		contribution.HistoricalLines += authorResult.HistoricalLines
		if authorResult.LastModified > contribution.LastModified {
			contribution.LastModified = authorResult.LastModified
		}
		if len(authorResult.CommitterEmail) > 0 {
			contribution.CommitterEmail = authorResult.CommitterEmail
		}

		for _, email := range authorResult.Emails {
			contributor.Identity.AddEmail(email)
		}
	}
}

func resolveWorkerCount(requestedWorkers int) int {
	if requestedWorkers > 0 {
		return requestedWorkers
	}
	return runtime.NumCPU()
}

func sanitizeValues(rawValues []string) []string {
	sanitized := make([]string, 0, len(rawValues))
	for _, rawValue := range rawValues {
		trimmedValue := strings.TrimSpace(rawValue)
		if len(trimmedValue) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmedValue)
	}
	return sanitized
}
