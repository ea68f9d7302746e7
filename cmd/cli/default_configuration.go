package cli

import _ "embed"

// embeddedDefaultConfigurationContent holds default_config.yaml: warn-level console logging and
// the analyze defaults (txt report named contributor-analysis, no exclusions, one worker per CPU).
//
//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the gitattrib defaults layered beneath any
// configuration file, together with their configuration type.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), embeddedDefaultConfigurationContent...), configurationTypeConstant
}
