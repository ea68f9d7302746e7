package attribution

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	globAnchorStartConstant        = `^(?s:`
	globAnchorEndConstant          = `)\z`
	globLiteralAnchorStartConstant = `^`
	globLiteralAnchorEndConstant   = `\z`
	globAnyRunConstant             = ".*"
	globAnyCharacterConstant       = "."
	globLiteralBracketConstant     = `\[`
	globClassOpenConstant          = "["
	globClassCloseConstant         = "]"
	globClassNegationConstant      = "^"
	globClassEscapeConstant        = `\`
	globStarRuneConstant           = '*'
	globQuestionRuneConstant       = '?'
	globBracketOpenRuneConstant    = '['
	globBracketCloseRuneConstant   = ']'
	globNegationRuneConstant       = '!'
	globRangeRuneConstant          = '-'
)

// globPattern is a shell-style pattern compiled once. "*" and "?" match "/" too, so
// "vendor/*.js" covers every file below vendor.
type globPattern struct {
	source     string
	expression *regexp.Regexp
}

func compileGlobPattern(pattern string) globPattern {
	expression, compileError := regexp.Compile(translateGlob(pattern))
	if compileError != nil {
		// reversed ranges such as "[z-a]" have no regexp form; match the pattern literally
		expression = regexp.MustCompile(globLiteralAnchorStartConstant + regexp.QuoteMeta(pattern) + globLiteralAnchorEndConstant)
	}
	return globPattern{source: pattern, expression: expression}
}

func (pattern globPattern) matches(candidate string) bool {
	return pattern.expression.MatchString(candidate)
}

// translateGlob turns "*", "?", "[seq]" and "[!seq]" into an anchored expression.
// An unterminated "[" is a literal bracket.
func translateGlob(pattern string) string {
	runes := []rune(pattern)
	var builder strings.Builder
	builder.WriteString(globAnchorStartConstant)

	for index := 0; index < len(runes); {
		current := runes[index]
		index++

		switch current {
		case globStarRuneConstant:
			for index < len(runes) && runes[index] == globStarRuneConstant {
				index++
			}
			builder.WriteString(globAnyRunConstant)
		case globQuestionRuneConstant:
			builder.WriteString(globAnyCharacterConstant)
		case globBracketOpenRuneConstant:
			closingIndex := index
			if closingIndex < len(runes) && runes[closingIndex] == globNegationRuneConstant {
				closingIndex++
			}
			if closingIndex < len(runes) && runes[closingIndex] == globBracketCloseRuneConstant {
				closingIndex++
			}
			for closingIndex < len(runes) && runes[closingIndex] != globBracketCloseRuneConstant {
				closingIndex++
			}
			if closingIndex >= len(runes) {
				builder.WriteString(globLiteralBracketConstant)
				continue
			}
			builder.WriteString(translateGlobClass(runes[index:closingIndex]))
			index = closingIndex + 1
		default:
			builder.WriteString(regexp.QuoteMeta(string(current)))
		}
	}

	builder.WriteString(globAnchorEndConstant)
	return builder.String()
}

func translateGlobClass(members []rune) string {
	var builder strings.Builder
	builder.WriteString(globClassOpenConstant)
	if len(members) > 0 && members[0] == globNegationRuneConstant {
		builder.WriteString(globClassNegationConstant)
		members = members[1:]
	}
	for _, member := range members {
		if member < utf8.RuneSelf && member != globRangeRuneConstant && !isASCIIAlphanumeric(member) {
			builder.WriteString(globClassEscapeConstant)
		}
		builder.WriteRune(member)
	}
	builder.WriteString(globClassCloseConstant)
	return builder.String()
}

func isASCIIAlphanumeric(candidate rune) bool {
	return (candidate >= 'a' && candidate <= 'z') || (candidate >= 'A' && candidate <= 'Z') || (candidate >= '0' && candidate <= '9')
}
