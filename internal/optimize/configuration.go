package optimize

import (
	"strings"
	"time"

	"github.com/temirov/reposeo/internal/providers"
	"github.com/temirov/reposeo/internal/providers/local"
	"github.com/temirov/reposeo/internal/seo"
)

const (
	defaultProviderNameConstant    = local.ProviderName
	defaultRepositoryLimitConstant = 100
)

// CommandConfiguration captures the optimize command settings sourced from
// configuration files and environment overrides.
type CommandConfiguration struct {
	Provider      string                      `mapstructure:"provider"`
	Limit         int                         `mapstructure:"limit"`
	FallbackLocal bool                        `mapstructure:"fallback_local"`
	SkipForks     bool                        `mapstructure:"skip_forks"`
	SkipArchived  bool                        `mapstructure:"skip_archived"`
	StopOnError   bool                        `mapstructure:"stop_on_error"`
	Delay         time.Duration               `mapstructure:"delay"`
	Generation    seo.Configuration           `mapstructure:"generation"`
	Providers     map[string]providers.Config `mapstructure:"providers"`
}

// DefaultCommandConfiguration returns the configuration used when no file or
// environment override supplies a value.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Provider:     defaultProviderNameConstant,
		Limit:        defaultRepositoryLimitConstant,
		SkipForks:    true,
		SkipArchived: true,
		Generation: seo.Configuration{
			MaximumDescriptionLength: seo.DefaultMaximumDescriptionLength,
		},
	}
}

// DefaultConfigurationValues exposes the optimize defaults keyed for the
// configuration loader.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKey + ".provider":                               defaults.Provider,
		configurationKey + ".limit":                                  defaults.Limit,
		configurationKey + ".skip_forks":                             defaults.SkipForks,
		configurationKey + ".skip_archived":                          defaults.SkipArchived,
		configurationKey + ".generation.maximum_description_length": defaults.Generation.MaximumDescriptionLength,
	}
}

// sanitize fills unset values with defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	if len(strings.TrimSpace(sanitized.Provider)) == 0 {
		sanitized.Provider = defaultProviderNameConstant
	}
	if sanitized.Limit <= 0 {
		sanitized.Limit = defaultRepositoryLimitConstant
	}
	if sanitized.Delay < 0 {
		sanitized.Delay = 0
	}
	return sanitized
}

// providerConfiguration resolves the backend settings for the named provider.
// Lookup is case-insensitive; an absent entry yields a zero configuration so
// backends apply their own defaults.
func (configuration CommandConfiguration) providerConfiguration(providerName string) providers.Config {
	normalizedName := strings.ToLower(strings.TrimSpace(providerName))
	if providerConfig, exists := configuration.Providers[normalizedName]; exists {
		return providerConfig
	}
	for configuredName, providerConfig := range configuration.Providers {
		if strings.ToLower(strings.TrimSpace(configuredName)) == normalizedName {
			return providerConfig
		}
	}
	return providers.Config{}
}
