package providers

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/temirov/reposeo/internal/analyzer"
	"github.com/temirov/reposeo/internal/repometa"
)

// Operation labels used in provider error reporting.
const (
	DescriptionOperationName = "description generation"
	TopicsOperationName      = "topic suggestion"
)

const (
	defaultRequestTimeoutConstant  = 30 * time.Second
	defaultTemperatureConstant     = 0.4
	defaultMaxOutputTokensConstant = 256
)

// Request carries the repository profile and its analysis to a provider,
// along with generation constraints.
type Request struct {
	Descriptor          repometa.RepositoryDescriptor
	Analysis            analyzer.Analysis
	MaximumOutputLength int
	MaximumTopicCount   int
	StyleHint           string
}

// Provider generates SEO content from a repository analysis. Implementations
// report failures through the provider error taxonomy and never fall back to
// other backends on their own.
type Provider interface {
	Name() string
	GenerateDescription(executionContext context.Context, request Request) (string, error)
	SuggestTopics(executionContext context.Context, request Request) ([]string, error)
}

// Config carries backend construction settings. Credentials travel by
// environment variable name so raw secrets never live in configuration files
// or logs.
type Config struct {
	Model                     string        `mapstructure:"model"`
	Temperature               float64       `mapstructure:"temperature"`
	MaxOutputTokens           int           `mapstructure:"max_output_tokens"`
	APIKeyEnvironmentVariable string        `mapstructure:"api_key_environment_variable"`
	BaseURL                   string        `mapstructure:"base_url"`
	RequestTimeout            time.Duration `mapstructure:"request_timeout"`
}

// sanitized fills unset generation settings with defaults.
func (config Config) sanitized() Config {
	updated := config
	if updated.RequestTimeout <= 0 {
		updated.RequestTimeout = defaultRequestTimeoutConstant
	}
	if updated.Temperature <= 0 {
		updated.Temperature = defaultTemperatureConstant
	}
	if updated.MaxOutputTokens <= 0 {
		updated.MaxOutputTokens = defaultMaxOutputTokensConstant
	}
	return updated
}

// ResolveCredential reads the configured environment variable and fails fast
// when it is absent or blank.
func (config Config) ResolveCredential(providerName string) (string, error) {
	if len(strings.TrimSpace(config.APIKeyEnvironmentVariable)) == 0 {
		return "", &ConfigurationError{ProviderName: providerName, Message: "credential environment variable name not configured"}
	}
	credentialValue := strings.TrimSpace(os.Getenv(config.APIKeyEnvironmentVariable))
	if len(credentialValue) == 0 {
		return "", &MissingCredentialError{ProviderName: providerName, EnvironmentVariableName: config.APIKeyEnvironmentVariable}
	}
	return credentialValue, nil
}
