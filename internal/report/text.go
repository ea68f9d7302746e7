package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/temirov/gitattrib/internal/attribution"
)

const (
	textTitleConstant                    = "Git Repository Contributor Analysis\n"
	textGeneratedTemplateConstant        = "Generated on: %s\n"
	textGeneratedLayoutConstant          = "2006-01-02 15:04:05"
	textExcludedCommitsTemplateConstant  = "Excluded commits: %s\n"
	textExcludedPathsTemplateConstant    = "Excluded paths: %s\n"
	textExcludedPatternsTemplateConstant = "Excluded patterns: %s\n"
	textListSeparatorConstant            = ", "
	textContributorTemplateConstant      = "\nContributor: %s\n"
	textContactHeaderConstant            = "Contact Information:\n"
	textEmailTemplateConstant            = "  Email: %s\n"
	textCompaniesHeaderConstant          = "Associated Companies/Organizations:\n"
	textCompanyTemplateConstant          = "  %s\n"
	textCurrentTotalTemplateConstant     = "\nTotal lines currently in codebase: %s\n"
	textHistoricalTotalTemplateConstant  = "Total lines added historically: %s\n\n"
	textCurrentSectionHeaderConstant     = "Currently present lines by file:\n"
	textCurrentFileTemplateConstant      = "  %s: %s lines"
	textLastModifiedTemplateConstant     = " (last modified: %s)"
	textSampleLineTemplateConstant       = "    L%d (%s): %s"
	textTruncationMarkerConstant         = "..."
	textHistoricalSectionHeaderConstant  = "\nHistorical line contributions by file:\n"
	textHistoricalFileTemplateConstant   = "  %s: %s lines\n"
	textNewlineConstant                  = "\n"
	textMajorRuleCharacterConstant       = "="
	textMinorRuleCharacterConstant       = "-"
	textMajorRuleWidthConstant           = 80
	textMinorRuleWidthConstant           = 40
	textSampleLineLimitConstant          = 3
	textSampleContentRuneLimitConstant   = 100
)

// WriteText renders the human-readable report. Contributors are ordered by current lines, largest first.
func WriteText(writer io.Writer, attributionReport attribution.Report, options WriteOptions) error {
	var builder strings.Builder
	majorRule := strings.Repeat(textMajorRuleCharacterConstant, textMajorRuleWidthConstant)

	builder.WriteString(textTitleConstant)
	fmt.Fprintf(&builder, textGeneratedTemplateConstant, attributionReport.GeneratedAt.Format(textGeneratedLayoutConstant))
	if len(attributionReport.ExcludedCommits) > 0 {
		fmt.Fprintf(&builder, textExcludedCommitsTemplateConstant, strings.Join(attributionReport.ExcludedCommits, textListSeparatorConstant))
	}
	if len(attributionReport.ExcludedPaths) > 0 {
		fmt.Fprintf(&builder, textExcludedPathsTemplateConstant, strings.Join(attributionReport.ExcludedPaths, textListSeparatorConstant))
	}
	if len(attributionReport.ExcludedPatterns) > 0 {
		fmt.Fprintf(&builder, textExcludedPatternsTemplateConstant, strings.Join(attributionReport.ExcludedPatterns, textListSeparatorConstant))
	}
	builder.WriteString(majorRule + textNewlineConstant + textNewlineConstant)

	for _, contributor := range attributionReport.ContributorsByCurrentLines() {
		writeContributorSection(&builder, contributor, options, majorRule)
	}

	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func writeContributorSection(builder *strings.Builder, contributor *attribution.Contributor, options WriteOptions, majorRule string) {
	fmt.Fprintf(builder, textContributorTemplateConstant, contributor.Identity.Name)
	builder.WriteString(strings.Repeat(textMinorRuleCharacterConstant, textMinorRuleWidthConstant) + textNewlineConstant)

	if emails := contributor.Identity.SortedEmails(); len(emails) > 0 {
		builder.WriteString(textContactHeaderConstant)
		for _, email := range emails {
			fmt.Fprintf(builder, textEmailTemplateConstant, email)
		}
	}
	if companies := contributor.Identity.SortedCompanies(); len(companies) > 0 {
		builder.WriteString(textCompaniesHeaderConstant)
		for _, company := range companies {
			fmt.Fprintf(builder, textCompanyTemplateConstant, company)
		}
	}

	fmt.Fprintf(builder, textCurrentTotalTemplateConstant, formatCount(contributor.TotalCurrentLines()))
	fmt.Fprintf(builder, textHistoricalTotalTemplateConstant, formatCount(contributor.TotalHistoricalLines()))

	if options.NoSampleCode {
		return
	}

	builder.WriteString(textCurrentSectionHeaderConstant)
	for _, filePath := range sortedFilePaths(contributor, func(contribution *attribution.FileContribution) int {
		return contribution.CurrentLineCount()
	}) {
		contribution := contributor.Files[filePath]
		if contribution.CurrentLineCount() == 0 {
			continue
		}
		fmt.Fprintf(builder, textCurrentFileTemplateConstant, filePath, formatCount(contribution.CurrentLineCount()))
		if len(contribution.LastModified) > 0 {
			fmt.Fprintf(builder, textLastModifiedTemplateConstant, contribution.LastModified)
		}
		builder.WriteString(textNewlineConstant)

		for _, sampleLine := range contribution.SampleLines(textSampleLineLimitConstant) {
			content, truncated := truncateContent(sampleLine.Content)
			fmt.Fprintf(builder, textSampleLineTemplateConstant, sampleLine.LineNumber, sampleLine.LastModified, content)
			if truncated {
				builder.WriteString(textTruncationMarkerConstant)
			}
			builder.WriteString(textNewlineConstant)
		}
	}

	builder.WriteString(textHistoricalSectionHeaderConstant)
	for _, filePath := range sortedFilePaths(contributor, func(contribution *attribution.FileContribution) int {
		return contribution.HistoricalLines
	}) {
		contribution := contributor.Files[filePath]
		if contribution.HistoricalLines <= 0 {
			continue
		}
		fmt.Fprintf(builder, textHistoricalFileTemplateConstant, filePath, formatCount(contribution.HistoricalLines))
	}

	builder.WriteString(textNewlineConstant + majorRule + textNewlineConstant)
}

// sortedFilePaths orders the contributor's files by the metric, largest first, ties by path.
func sortedFilePaths(contributor *attribution.Contributor, metric func(*attribution.FileContribution) int) []string {
	filePaths := contributor.SortedFilePaths()
	sort.SliceStable(filePaths, func(leftIndex, rightIndex int) bool {
		return metric(contributor.Files[filePaths[leftIndex]]) > metric(contributor.Files[filePaths[rightIndex]])
	})
	return filePaths
}

func truncateContent(content string) (string, bool) {
	runes := []rune(content)
	if len(runes) <= textSampleContentRuneLimitConstant {
		return content, false
	}
	return string(runes[:textSampleContentRuneLimitConstant]), true
}

func formatCount(value int) string {
	return humanize.Comma(int64(value))
}
