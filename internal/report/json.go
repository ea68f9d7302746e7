package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/temirov/gitattrib/internal/attribution"
)

const jsonIndentConstant = "  "

type jsonReport struct {
	GeneratedAt      string                     `json:"generated_at"`
	ExcludedCommits  []string                   `json:"excluded_commits"`
	ExcludedPaths    []string                   `json:"excluded_paths"`
	ExcludedPatterns []string                   `json:"excluded_patterns"`
	Contributors     map[string]jsonContributor `json:"contributors"`
}

type jsonContributor struct {
	Emails               []string            `json:"emails"`
	Companies            []string            `json:"companies"`
	TotalCurrentLines    int                 `json:"total_current_lines"`
	TotalHistoricalLines int                 `json:"total_historical_lines"`
	Files                map[string]jsonFile `json:"files"`
}

type jsonFile struct {
	CurrentLines    int     `json:"current_lines"`
	HistoricalLines int     `json:"historical_lines"`
	LastModified    *string `json:"last_modified"`
}

// WriteJSON writes the report as an indented JSON document.
func WriteJSON(writer io.Writer, attributionReport attribution.Report) error {
	document := jsonReport{
		GeneratedAt:      attributionReport.GeneratedAt.Format(time.RFC3339),
		ExcludedCommits:  nonNilValues(attributionReport.ExcludedCommits),
		ExcludedPaths:    nonNilValues(attributionReport.ExcludedPaths),
		ExcludedPatterns: nonNilValues(attributionReport.ExcludedPatterns),
		Contributors:     make(map[string]jsonContributor, len(attributionReport.Contributors)),
	}

	for contributorName, contributor := range attributionReport.Contributors {
		files := make(map[string]jsonFile, len(contributor.Files))
		for filePath, contribution := range contributor.Files {
			fileEntry := jsonFile{
				CurrentLines:    contribution.CurrentLineCount(),
				HistoricalLines: contribution.HistoricalLines,
			}
			if len(contribution.LastModified) > 0 {
				lastModified := contribution.LastModified
				fileEntry.LastModified = &lastModified
			}
			files[filePath] = fileEntry
		}

		document.Contributors[contributorName] = jsonContributor{
			Emails:               nonNilValues(contributor.Identity.SortedEmails()),
			Companies:            nonNilValues(contributor.Identity.SortedCompanies()),
			TotalCurrentLines:    contributor.TotalCurrentLines(),
			TotalHistoricalLines: contributor.TotalHistoricalLines(),
			Files:                files,
		}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(document)
}

func nonNilValues(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
