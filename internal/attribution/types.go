package attribution

import (
	"sort"
	"time"
)

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Options captures the parameters of one attribution run.
type Options struct {
	RepositoryPath   string
	ExcludedCommits  []string
	ExcludedPaths    []string
	ExcludedPatterns []string
	Extensions       []string
	Workers          int
	Debug            bool
}

// LineRecord is a line currently present in a file.
type LineRecord struct {
	LineNumber   int
	Content      string
	LastModified string
}

// FileContribution aggregates one author's share of one file.
type FileContribution struct {
	CurrentLines    []LineRecord
	HistoricalLines int
	LastModified    string
	CommitterEmail  string
}

// CurrentLineCount returns the number of lines the author currently owns in the file.
func (contribution FileContribution) CurrentLineCount() int {
	return len(contribution.CurrentLines)
}

// SampleLines returns up to limit current lines ordered by line number.
func (contribution FileContribution) SampleLines(limit int) []LineRecord {
	orderedLines := append([]LineRecord(nil), contribution.CurrentLines...)
	sort.SliceStable(orderedLines, func(leftIndex, rightIndex int) bool {
		return orderedLines[leftIndex].LineNumber < orderedLines[rightIndex].LineNumber
	})
	if limit >= 0 && len(orderedLines) > limit {
		orderedLines = orderedLines[:limit]
	}
	return orderedLines
}

// AuthorFileResult is one author's contribution to a single file as produced by a worker.
type AuthorFileResult struct {
	CurrentLines    []LineRecord
	HistoricalLines int
	LastModified    string
	CommitterEmail  string
	Emails          []string
}

// FileResult is the outcome of processing one file.
// Skipped results carry no authors.
type FileResult struct {
	Path    string
	Authors map[string]AuthorFileResult
	Skipped bool
}

// AuthorIdentity groups the email addresses and organizations seen for one display name.
type AuthorIdentity struct {
	Name      string
	Emails    map[string]struct{}
	Companies map[string]struct{}
}

// NewAuthorIdentity constructs an identity with empty email and company sets.
func NewAuthorIdentity(name string) AuthorIdentity {
	return AuthorIdentity{
		Name:      name,
		Emails:    make(map[string]struct{}),
		Companies: make(map[string]struct{}),
	}
}

// AddEmail records an address and, when it parses, its domain.
func (identity AuthorIdentity) AddEmail(email string) {
	if len(email) == 0 {
		return
	}
	identity.Emails[email] = struct{}{}
	if domain, domainFound := ExtractEmailDomain(email); domainFound {
		identity.Companies[domain] = struct{}{}
	}
}

// SortedEmails returns the identity's email addresses in lexical order.
func (identity AuthorIdentity) SortedEmails() []string {
	return sortedKeys(identity.Emails)
}

// SortedCompanies returns the identity's email domains in lexical order.
func (identity AuthorIdentity) SortedCompanies() []string {
	return sortedKeys(identity.Companies)
}

// Contributor holds an author's identity and per-file contributions.
type Contributor struct {
	Identity AuthorIdentity
	Files    map[string]*FileContribution
}

// TotalCurrentLines sums the current lines across every file.
func (contributor *Contributor) TotalCurrentLines() int {
	total := 0
	for _, contribution := range contributor.Files {
		total += contribution.CurrentLineCount()
	}
	return total
}

// TotalHistoricalLines sums the historical additions across every file.
func (contributor *Contributor) TotalHistoricalLines() int {
	total := 0
	for _, contribution := range contributor.Files {
		total += contribution.HistoricalLines
	}
	return total
}

// SortedFilePaths returns the contributor's file paths in lexical order.
func (contributor *Contributor) SortedFilePaths() []string {
	filePaths := make([]string, 0, len(contributor.Files))
	for filePath := range contributor.Files {
		filePaths = append(filePaths, filePath)
	}
	sort.Strings(filePaths)
	return filePaths
}

// Report is the finished aggregate of one attribution run.
type Report struct {
	GeneratedAt      time.Time
	ExcludedCommits  []string
	ExcludedPaths    []string
	ExcludedPatterns []string
	Extensions       []string
	Contributors     map[string]*Contributor
	FilesConsidered  int
	FilesProcessed   int
	FilesSkipped     int
}

// ContributorNames returns every author name in lexical order.
func (report Report) ContributorNames() []string {
	names := make([]string, 0, len(report.Contributors))
	for name := range report.Contributors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContributorsByCurrentLines orders authors by current line total, largest first, ties by name.
func (report Report) ContributorsByCurrentLines() []*Contributor {
	names := report.ContributorNames()
	contributors := make([]*Contributor, 0, len(names))
	for _, name := range names {
		contributors = append(contributors, report.Contributors[name])
	}
	sort.SliceStable(contributors, func(leftIndex, rightIndex int) bool {
		return contributors[leftIndex].TotalCurrentLines() > contributors[rightIndex].TotalCurrentLines()
	})
	return contributors
}

func sortedKeys(values map[string]struct{}) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
