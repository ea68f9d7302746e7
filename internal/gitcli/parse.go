package gitcli

import (
	"strconv"
	"strings"
	"time"
)

const (
	lineSeparatorConstant                  = "\n"
	carriageReturnConstant                 = "\r"
	contentLinePrefixConstant              = "\t"
	authorHeaderPrefixConstant             = "author "
	authorMailHeaderPrefixConstant         = "author-mail "
	authorTimeHeaderPrefixConstant         = "author-time "
	authorZoneHeaderPrefixConstant         = "author-tz "
	boundaryHeaderConstant                 = "boundary"
	emailOpeningBracketConstant            = "<"
	emailClosingBracketConstant            = ">"
	numstatFieldSeparatorConstant          = "\t"
	numstatBinaryMarkerConstant            = "-"
	authorFieldSeparatorConstant           = "\x00"
	nullSeparatorConstant                  = "\x00"
	numstatMinimumFieldCountConstant       = 3
	blameHeaderMinimumFieldCountConstant   = 3
	blameHeaderFinalLineFieldIndexConstant = 2
	shortObjectNameLengthConstant          = 40
	longObjectNameLengthConstant           = 64
	timeZoneOffsetLengthConstant           = 5
	secondsPerHourConstant                 = 3600
	secondsPerMinuteConstant               = 60
	hexadecimalDigitsConstant              = "0123456789abcdef"
	negativeTimeZoneSignConstant           = '-'
	positiveTimeZoneSignConstant           = '+'
	decimalBaseConstant                    = 10
	timeZoneHourDigitsEndConstant          = 3
	timeZoneMinuteDigitsEndConstant        = 5
)

// BlameLine is one line of the blamed file attributed to its author.
type BlameLine struct {
	LineNumber  int
	Content     string
	AuthorName  string
	AuthorEmail string
	AuthorTime  time.Time
}

// NumstatEntry records the lines a single commit added to the file.
type NumstatEntry struct {
	AuthorName  string
	AuthorEmail string
	AddedLines  int
}

type blameRecord struct {
	finalLineNumber int
	authorName      string
	authorEmail     string
	authorSeconds   int64
	authorZone      *time.Location
	boundary        bool
}

// ParseBlamePorcelain converts `git blame --line-porcelain` output into attributed lines.
// Lines whose origin is a boundary commit lie outside the revision range and are omitted.
func ParseBlamePorcelain(output string) []BlameLine {
	var blameLines []BlameLine
	var record blameRecord

	for _, outputLine := range strings.Split(output, lineSeparatorConstant) {
		if strings.HasPrefix(outputLine, contentLinePrefixConstant) {
			if !record.boundary && len(record.authorName) > 0 && record.finalLineNumber > 0 {
				blameLines = append(blameLines, BlameLine{
					LineNumber:  record.finalLineNumber,
					Content:     strings.TrimSuffix(strings.TrimPrefix(outputLine, contentLinePrefixConstant), carriageReturnConstant),
					AuthorName:  record.authorName,
					AuthorEmail: record.authorEmail,
					AuthorTime:  time.Unix(record.authorSeconds, 0).In(record.location()),
				})
			}
			continue
		}

		switch {
		case strings.HasPrefix(outputLine, authorMailHeaderPrefixConstant):
			record.authorEmail = trimEmailBrackets(strings.TrimPrefix(outputLine, authorMailHeaderPrefixConstant))
		case strings.HasPrefix(outputLine, authorTimeHeaderPrefixConstant):
			authorSeconds, parseError := strconv.ParseInt(strings.TrimPrefix(outputLine, authorTimeHeaderPrefixConstant), decimalBaseConstant, 64)
			if parseError == nil {
				record.authorSeconds = authorSeconds
			}
		case strings.HasPrefix(outputLine, authorZoneHeaderPrefixConstant):
			record.authorZone = parseTimeZoneOffset(strings.TrimPrefix(outputLine, authorZoneHeaderPrefixConstant))
		case strings.HasPrefix(outputLine, authorHeaderPrefixConstant):
			record.authorName = strings.TrimPrefix(outputLine, authorHeaderPrefixConstant)
		case outputLine == boundaryHeaderConstant:
			record.boundary = true
		default:
			if finalLineNumber, isHeader := parseBlameHeader(outputLine); isHeader {
				record = blameRecord{finalLineNumber: finalLineNumber}
			}
		}
	}

	return blameLines
}

// ParseNumstatLog converts `git log --format=format:%aN%x00%aE --numstat` output into per-commit additions.
// Binary markers and malformed lines are skipped.
func ParseNumstatLog(output string) []NumstatEntry {
	var entries []NumstatEntry
	var authorName, authorEmail string
	authorKnown := false

	for _, outputLine := range strings.Split(output, lineSeparatorConstant) {
		trimmedLine := strings.TrimSuffix(outputLine, carriageReturnConstant)
		if len(strings.TrimSpace(trimmedLine)) == 0 {
			continue
		}

		if name, email, isAuthorLine := strings.Cut(trimmedLine, authorFieldSeparatorConstant); isAuthorLine {
			authorName = name
			authorEmail = strings.TrimSpace(email)
			authorKnown = true
			continue
		}

		fields := strings.SplitN(trimmedLine, numstatFieldSeparatorConstant, numstatMinimumFieldCountConstant)
		if len(fields) < numstatMinimumFieldCountConstant || !authorKnown {
			continue
		}
		if fields[0] == numstatBinaryMarkerConstant {
			continue
		}

		addedLines, parseError := strconv.Atoi(fields[0])
		if parseError != nil || addedLines < 0 {
			continue
		}

		entries = append(entries, NumstatEntry{
			AuthorName:  authorName,
			AuthorEmail: authorEmail,
			AddedLines:  addedLines,
		})
	}

	return entries
}

// ParseNullSeparatedPaths splits `-z` output into paths.
func ParseNullSeparatedPaths(output string) []string {
	var paths []string
	for _, candidate := range strings.Split(output, nullSeparatorConstant) {
		if len(strings.TrimSpace(candidate)) == 0 {
			continue
		}
		paths = append(paths, candidate)
	}
	return paths
}

func (record blameRecord) location() *time.Location {
	if record.authorZone == nil {
		return time.UTC
	}
	return record.authorZone
}

// parseBlameHeader recognizes "<object> <original-line> <final-line> [<group-size>]".
func parseBlameHeader(outputLine string) (int, bool) {
	fields := strings.Fields(outputLine)
	if len(fields) < blameHeaderMinimumFieldCountConstant || !isObjectName(fields[0]) {
		return 0, false
	}
	finalLineNumber, parseError := strconv.Atoi(fields[blameHeaderFinalLineFieldIndexConstant])
	if parseError != nil {
		return 0, false
	}
	return finalLineNumber, true
}

func isObjectName(candidate string) bool {
	if len(candidate) != shortObjectNameLengthConstant && len(candidate) != longObjectNameLengthConstant {
		return false
	}
	for _, character := range candidate {
		if !strings.ContainsRune(hexadecimalDigitsConstant, character) {
			return false
		}
	}
	return true
}

// parseTimeZoneOffset turns "+0130" into a fixed zone; malformed offsets yield nil.
func parseTimeZoneOffset(offset string) *time.Location {
	trimmedOffset := strings.TrimSpace(offset)
	if len(trimmedOffset) != timeZoneOffsetLengthConstant {
		return nil
	}

	sign := 1
	switch trimmedOffset[0] {
	case negativeTimeZoneSignConstant:
		sign = -1
	case positiveTimeZoneSignConstant:
	default:
		return nil
	}

	hours, hoursError := strconv.Atoi(trimmedOffset[1:timeZoneHourDigitsEndConstant])
	minutes, minutesError := strconv.Atoi(trimmedOffset[timeZoneHourDigitsEndConstant:timeZoneMinuteDigitsEndConstant])
	if hoursError != nil || minutesError != nil {
		return nil
	}

	return time.FixedZone(trimmedOffset, sign*(hours*secondsPerHourConstant+minutes*secondsPerMinuteConstant))
}

func trimEmailBrackets(email string) string {
	return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(email), emailOpeningBracketConstant), emailClosingBracketConstant)
}
