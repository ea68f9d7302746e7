package analyze

import "strings"

const (
	configurationExtensionsKeyConstant      = "extensions"
	configurationExcludeCommitsKeyConstant  = "exclude_commits"
	configurationExcludePathsKeyConstant    = "exclude_paths"
	configurationExcludePatternsKeyConstant = "exclude_patterns"
	configurationOutputKeyConstant          = "output"
	configurationFormatKeyConstant          = "format"
	configurationNoSampleCodeKeyConstant    = "no_sample_code"
	configurationDebugKeyConstant           = "debug"
	configurationWorkersKeyConstant         = "workers"
	configurationKeySeparatorConstant       = "."
	defaultOutputPathConstant               = "contributor-analysis"
	defaultReportFormatConstant             = "txt"
	defaultWorkerCountConstant              = 0
)

// CommandConfiguration captures persistent settings for the analyze command.
type CommandConfiguration struct {
	Extensions      []string `mapstructure:"extensions"`
	ExcludeCommits  []string `mapstructure:"exclude_commits"`
	ExcludePaths    []string `mapstructure:"exclude_paths"`
	ExcludePatterns []string `mapstructure:"exclude_patterns"`
	Output          string   `mapstructure:"output"`
	Format          string   `mapstructure:"format"`
	NoSampleCode    bool     `mapstructure:"no_sample_code"`
	Debug           bool     `mapstructure:"debug"`
	Workers         int      `mapstructure:"workers"`
}

// DefaultCommandConfiguration returns baseline configuration values for the analyze command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Extensions:      nil,
		ExcludeCommits:  nil,
		ExcludePaths:    nil,
		ExcludePatterns: nil,
		Output:          defaultOutputPathConstant,
		Format:          defaultReportFormatConstant,
		NoSampleCode:    false,
		Debug:           false,
		Workers:         defaultWorkerCountConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the analyze command under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	prefix := rootKey + configurationKeySeparatorConstant
	return map[string]any{
		prefix + configurationExtensionsKeyConstant:      defaults.Extensions,
		prefix + configurationExcludeCommitsKeyConstant:  defaults.ExcludeCommits,
		prefix + configurationExcludePathsKeyConstant:    defaults.ExcludePaths,
		prefix + configurationExcludePatternsKeyConstant: defaults.ExcludePatterns,
		prefix + configurationOutputKeyConstant:          defaults.Output,
		prefix + configurationFormatKeyConstant:          defaults.Format,
		prefix + configurationNoSampleCodeKeyConstant:    defaults.NoSampleCode,
		prefix + configurationDebugKeyConstant:           defaults.Debug,
		prefix + configurationWorkersKeyConstant:         defaults.Workers,
	}
}

// sanitize trims list entries and restores defaults for blank values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Extensions = trimValues(configuration.Extensions)
	sanitized.ExcludeCommits = trimValues(configuration.ExcludeCommits)
	sanitized.ExcludePaths = trimValues(configuration.ExcludePaths)
	sanitized.ExcludePatterns = trimValues(configuration.ExcludePatterns)

	sanitized.Output = strings.TrimSpace(configuration.Output)
	if len(sanitized.Output) == 0 {
		sanitized.Output = defaultOutputPathConstant
	}

	sanitized.Format = strings.ToLower(strings.TrimSpace(configuration.Format))
	if len(sanitized.Format) == 0 {
		sanitized.Format = defaultReportFormatConstant
	}

	if sanitized.Workers < 0 {
		sanitized.Workers = defaultWorkerCountConstant
	}

	return sanitized
}

func trimValues(raw []string) []string {
	trimmed := make([]string, 0, len(raw))
	for _, candidate := range raw {
		value := strings.TrimSpace(candidate)
		if len(value) == 0 {
			continue
		}
		trimmed = append(trimmed, value)
	}
	return trimmed
}
