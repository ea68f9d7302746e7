package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/temirov/gitattrib/internal/attribution"
	flagutils "github.com/temirov/gitattrib/internal/utils/flags"
)

const (
	extensionSeparatorConstant        = "."
	unsupportedFormatTemplateConstant = "%w %q (expected one of %s)"
	supportedFormatsSeparatorConstant = ", "
	formatTextValueConstant           = "txt"
	formatJSONValueConstant           = "json"
	formatCSVValueConstant            = "csv"
)

// ErrUnsupportedFormat indicates a report format outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Format identifies a report encoding.
type Format string

// Supported report formats.
const (
	FormatText Format = formatTextValueConstant
	FormatJSON Format = formatJSONValueConstant
	FormatCSV  Format = formatCSVValueConstant
)

// WriteOptions adjusts report rendering.
type WriteOptions struct {
	NoSampleCode bool
}

// SupportedFormats lists the accepted format names in display order.
func SupportedFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatCSV)}
}

// ParseFormat validates a format name case-insensitively.
func ParseFormat(value string) (Format, error) {
	if matchedFormat, matched := flagutils.MatchChoice(value, SupportedFormats()); matched {
		return Format(matchedFormat), nil
	}
	return "", fmt.Errorf(unsupportedFormatTemplateConstant, ErrUnsupportedFormat, value, strings.Join(SupportedFormats(), supportedFormatsSeparatorConstant))
}

// Extension returns the file extension associated with the format, including the dot.
func (format Format) Extension() string {
	return extensionSeparatorConstant + string(format)
}

// ResolveOutputPath appends the format's extension when the base name carries none.
func ResolveOutputPath(outputPath string, format Format) string {
	if strings.Contains(filepath.Base(outputPath), extensionSeparatorConstant) {
		return outputPath
	}
	return outputPath + format.Extension()
}

// Write renders the report in the requested format.
func Write(writer io.Writer, attributionReport attribution.Report, format Format, options WriteOptions) error {
	switch format {
	case FormatJSON:
		return WriteJSON(writer, attributionReport)
	case FormatCSV:
		return WriteCSV(writer, attributionReport)
	case FormatText:
		return WriteText(writer, attributionReport, options)
	default:
		_, formatError := ParseFormat(string(format))
		return formatError
	}
}
