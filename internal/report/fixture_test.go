package report_test

import (
	"strings"
	"time"

	"github.com/temirov/gitattrib/internal/attribution"
)

var fixtureLongContent = strings.Repeat("x", 120)

func newFixtureContributor(name string, emails ...string) *attribution.Contributor {
	identity := attribution.NewAuthorIdentity(name)
	for _, email := range emails {
		identity.AddEmail(email)
	}
	return &attribution.Contributor{Identity: identity, Files: make(map[string]*attribution.FileContribution)}
}

func newFixtureReport() attribution.Report {
	alice := newFixtureContributor("Alice", "alice@example.com", "alice@corp.io")
	alice.Files["main.go"] = &attribution.FileContribution{
		CurrentLines: []attribution.LineRecord{
			{LineNumber: 2, Content: "", LastModified: "2024-02-10"},
			{LineNumber: 1, Content: "package main", LastModified: "2024-01-01"},
		},
		HistoricalLines: 3,
		LastModified:    "2024-02-10",
		CommitterEmail:  "alice@example.com",
	}
	alice.Files["util.go"] = &attribution.FileContribution{
		CurrentLines:    []attribution.LineRecord{{LineNumber: 7, Content: fixtureLongContent, LastModified: "2024-01-01"}},
		HistoricalLines: 1,
		LastModified:    "2024-01-01",
	}

	bob := newFixtureContributor("Bob", "bob@example.org")
	bob.Files["main.go"] = &attribution.FileContribution{
		CurrentLines:    []attribution.LineRecord{{LineNumber: 3, Content: "func main() {}", LastModified: "2024-02-10"}},
		HistoricalLines: 1200,
		LastModified:    "2024-02-10",
	}

	carol := newFixtureContributor("Carol", "carol@lab.dev")
	carol.Files["util.go"] = &attribution.FileContribution{HistoricalLines: 5, CommitterEmail: "carol@lab.dev"}

	return attribution.Report{
		GeneratedAt:     time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC),
		ExcludedCommits: []string{"abc123", "def456"},
		Contributors: map[string]*attribution.Contributor{
			"Alice": alice,
			"Bob":   bob,
			"Carol": carol,
		},
		FilesConsidered: 2,
		FilesProcessed:  2,
	}
}
