package attribution

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

const (
	progressDescriptionConstant     = "Processing files"
	progressStartTemplateConstant   = "Processing %d files using %d workers...\n"
	progressFinishedMessageConstant = "Analysis complete!\n"
	progressBarWidthConstant        = 30
)

// ProgressReporter receives file completion events from the aggregator.
type ProgressReporter interface {
	Start(totalFiles int, workers int)
	Advance()
	Finish()
}

// BarProgressReporter renders a progress bar for processed files.
type BarProgressReporter struct {
	writer io.Writer
	mutex  sync.Mutex
	bar    *progressbar.ProgressBar
}

// NewBarProgressReporter constructs a reporter that writes to the provided writer.
func NewBarProgressReporter(writer io.Writer) *BarProgressReporter {
	if writer == nil {
		writer = io.Discard
	}
	return &BarProgressReporter{writer: writer}
}

// Start announces the run and creates the bar. An empty run gets no bar.
func (reporter *BarProgressReporter) Start(totalFiles int, workers int) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()

	fmt.Fprintf(reporter.writer, progressStartTemplateConstant, totalFiles, workers)
	if totalFiles <= 0 {
		reporter.bar = nil
		return
	}
	reporter.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(reporter.writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(progressBarWidthConstant),
		progressbar.OptionSetDescription(progressDescriptionConstant),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// Advance records one processed file.
func (reporter *BarProgressReporter) Advance() {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()

	if reporter.bar == nil {
		return
	}
	_ = reporter.bar.Add(1)
}

// Finish completes the bar and prints the completion line.
func (reporter *BarProgressReporter) Finish() {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()

	if reporter.bar != nil {
		_ = reporter.bar.Finish()
	}
	fmt.Fprint(reporter.writer, "\n"+progressFinishedMessageConstant)
}

type silentProgressReporter struct{}

func (silentProgressReporter) Start(int, int) {}

func (silentProgressReporter) Advance() {}

func (silentProgressReporter) Finish() {}
