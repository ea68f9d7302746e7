package attribution_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitattrib/internal/attribution"
)

func TestExtractEmailDomain(testInstance *testing.T) {
	testCases := []struct {
		name           string
		email          string
		expectedDomain string
		expectedFound  bool
	}{
		{name: "plain_address", email: "alice@example.com", expectedDomain: "example.com", expectedFound: true},
		{name: "domain_lowercased", email: "bob@Corp.EXAMPLE.org", expectedDomain: "corp.example.org", expectedFound: true},
		{name: "display_name_address", email: "Carol <carol@lab.io>", expectedDomain: "lab.io", expectedFound: true},
		{name: "surrounding_whitespace", email: "  dave@team.dev  ", expectedDomain: "team.dev", expectedFound: true},
		{name: "trailing_dot_local_part", email: "john.@x.com", expectedDomain: "x.com", expectedFound: true},
		{name: "consecutive_dots_local_part", email: "first..last@x.com", expectedDomain: "x.com", expectedFound: true},
		{name: "parenthesized_local_part", email: "a(b)@X.com", expectedDomain: "x.com", expectedFound: true},
		{name: "missing_at_sign", email: "not-an-email"},
		{name: "empty", email: ""},
		{name: "missing_domain", email: "erin@"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			domain, found := attribution.ExtractEmailDomain(testCase.email)
			require.Equal(testInstance, testCase.expectedFound, found)
			require.Equal(testInstance, testCase.expectedDomain, domain)
		})
	}
}

func TestAuthorIdentityCollectsCompanies(testInstance *testing.T) {
	identity := attribution.NewAuthorIdentity("Alice")
	identity.AddEmail("alice@example.com")
	identity.AddEmail("alice@Corp.io")
	identity.AddEmail("alice@example.com")
	identity.AddEmail("broken")
	identity.AddEmail("")

	require.Equal(testInstance, []string{"alice@Corp.io", "alice@example.com", "broken"}, identity.SortedEmails())
	require.Equal(testInstance, []string{"corp.io", "example.com"}, identity.SortedCompanies())
}
