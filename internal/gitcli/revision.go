package gitcli

import "strings"

const (
	headReferenceConstant       = "HEAD"
	exclusionPrefixConstant     = "^"
	pathspecSeparatorConstant   = "--"
	revisionListLimitConstant   = "-1"
	revisionListCommandConstant = "rev-list"
)

// RevisionArguments builds the revision range arguments for HEAD minus every excluded commit.
func RevisionArguments(excludedCommits []string) []string {
	revisionArguments := []string{headReferenceConstant}
	for _, excludedCommit := range excludedCommits {
		trimmedCommit := strings.TrimSpace(excludedCommit)
		if len(trimmedCommit) == 0 {
			continue
		}
		revisionArguments = append(revisionArguments, exclusionPrefixConstant+strings.TrimPrefix(trimmedCommit, exclusionPrefixConstant))
	}
	return revisionArguments
}
