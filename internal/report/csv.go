package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/temirov/gitattrib/internal/attribution"
)

const (
	csvHeaderContributorNameConstant = "Contributor Name"
	csvHeaderEmailAddressesConstant  = "Email Addresses"
	csvHeaderTotalLinesConstant      = "Total Lines Contributed"
	csvHeaderCurrentLinesConstant    = "Current Lines"
	csvEmailSeparatorConstant        = ";"
)

// WriteCSV writes one row per contributor ordered by name.
// "Total Lines Contributed" holds historical additions and "Current Lines" holds blamed lines.
func WriteCSV(writer io.Writer, attributionReport attribution.Report) error {
	csvWriter := csv.NewWriter(writer)
	header := []string{
		csvHeaderContributorNameConstant,
		csvHeaderEmailAddressesConstant,
		csvHeaderTotalLinesConstant,
		csvHeaderCurrentLinesConstant,
	}
	if writeError := csvWriter.Write(header); writeError != nil {
		return writeError
	}

	for _, contributorName := range attributionReport.ContributorNames() {
		contributor := attributionReport.Contributors[contributorName]
		record := []string{
			contributorName,
			strings.Join(contributor.Identity.SortedEmails(), csvEmailSeparatorConstant),
			strconv.Itoa(contributor.TotalHistoricalLines()),
			strconv.Itoa(contributor.TotalCurrentLines()),
		}
		if writeError := csvWriter.Write(record); writeError != nil {
			return writeError
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
