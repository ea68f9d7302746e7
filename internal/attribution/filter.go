package attribution

import "strings"

const (
	pathSeparatorConstant        = "/"
	windowsPathSeparatorConstant = "\\"
)

// ExclusionReason names the rule that removed a file from analysis.
type ExclusionReason string

// Exclusion reasons reported by FileFilter.
const (
	ExclusionReasonNone      ExclusionReason = ""
	ExclusionReasonPath      ExclusionReason = "path"
	ExclusionReasonPattern   ExclusionReason = "pattern"
	ExclusionReasonExtension ExclusionReason = "extension"
)

// FileFilter decides which tracked files take part in an attribution run.
type FileFilter struct {
	excludedPaths    []string
	excludedPatterns []globPattern
	extensions       []string
}

// NewFileFilter compiles the patterns and normalizes the excluded paths.
func NewFileFilter(excludedPaths []string, excludedPatterns []string, extensions []string) FileFilter {
	filter := FileFilter{}

	for _, excludedPath := range excludedPaths {
		normalizedPath := normalizeFilterPath(excludedPath)
		if len(normalizedPath) == 0 {
			continue
		}
		filter.excludedPaths = append(filter.excludedPaths, normalizedPath)
	}

	for _, pattern := range excludedPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if len(trimmedPattern) == 0 {
			continue
		}
		filter.excludedPatterns = append(filter.excludedPatterns, compileGlobPattern(trimmedPattern))
	}

	for _, extension := range extensions {
		trimmedExtension := strings.TrimSpace(extension)
		if len(trimmedExtension) == 0 {
			continue
		}
		filter.extensions = append(filter.extensions, trimmedExtension)
	}

	return filter
}

// ExcludedPaths returns the normalized path exclusions.
func (filter FileFilter) ExcludedPaths() []string {
	return append([]string(nil), filter.excludedPaths...)
}

// ExcludedPatterns returns the glob patterns as given.
func (filter FileFilter) ExcludedPatterns() []string {
	patterns := make([]string, 0, len(filter.excludedPatterns))
	for _, pattern := range filter.excludedPatterns {
		patterns = append(patterns, pattern.source)
	}
	return patterns
}

// Extensions returns the extension allow-list.
func (filter FileFilter) Extensions() []string {
	return append([]string(nil), filter.extensions...)
}

// Evaluate reports why a file is excluded, or ExclusionReasonNone when it is kept.
func (filter FileFilter) Evaluate(filePath string) (ExclusionReason, string) {
	normalizedPath := normalizeFilterPath(filePath)

	for _, excludedPath := range filter.excludedPaths {
		if matchesExcludedPath(normalizedPath, excludedPath) {
			return ExclusionReasonPath, excludedPath
		}
	}

	for _, pattern := range filter.excludedPatterns {
		if pattern.matches(normalizedPath) {
			return ExclusionReasonPattern, pattern.source
		}
	}

	if len(filter.extensions) > 0 && !hasAnySuffix(normalizedPath, filter.extensions) {
		return ExclusionReasonExtension, emptyValueConstant
	}

	return ExclusionReasonNone, emptyValueConstant
}

// Includes reports whether the file takes part in analysis.
func (filter FileFilter) Includes(filePath string) bool {
	reason, _ := filter.Evaluate(filePath)
	return reason == ExclusionReasonNone
}

func normalizeFilterPath(candidate string) string {
	converted := strings.ReplaceAll(strings.TrimSpace(candidate), windowsPathSeparatorConstant, pathSeparatorConstant)
	return strings.Trim(converted, pathSeparatorConstant)
}

// matchesExcludedPath treats an exclusion as an exact path, a directory prefix, or a path segment run anywhere in the path.
func matchesExcludedPath(normalizedPath string, excludedPath string) bool {
	if normalizedPath == excludedPath {
		return true
	}
	if strings.HasPrefix(normalizedPath, excludedPath+pathSeparatorConstant) {
		return true
	}
	return strings.Contains(pathSeparatorConstant+normalizedPath+pathSeparatorConstant, pathSeparatorConstant+excludedPath+pathSeparatorConstant)
}

func hasAnySuffix(candidate string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(candidate, suffix) {
			return true
		}
	}
	return false
}
