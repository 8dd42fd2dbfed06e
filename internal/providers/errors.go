package providers

import "fmt"

const (
	configurationErrorTemplateConstant     = "provider %s configuration invalid: %s"
	missingCredentialErrorTemplateConstant = "provider %s requires environment variable %s"
	providerErrorTemplateConstant          = "provider %s %s failed: %v"
)

// ConfigurationError reports an invalid provider configuration detected at
// construction time.
type ConfigurationError struct {
	ProviderName string
	Message      string
}

// Error describes the configuration failure.
func (configurationError *ConfigurationError) Error() string {
	return fmt.Sprintf(configurationErrorTemplateConstant, configurationError.ProviderName, configurationError.Message)
}

// MissingCredentialError reports that a provider's credential environment
// variable is unset or empty. The variable name is reported; its value never
// is.
type MissingCredentialError struct {
	ProviderName            string
	EnvironmentVariableName string
}

// Error describes the missing credential.
func (missingCredentialError *MissingCredentialError) Error() string {
	return fmt.Sprintf(missingCredentialErrorTemplateConstant, missingCredentialError.ProviderName, missingCredentialError.EnvironmentVariableName)
}

// ProviderError reports a failed generation attempt against a backend.
type ProviderError struct {
	ProviderName string
	Operation    string
	Cause        error
}

// Error describes the failed operation.
func (providerError *ProviderError) Error() string {
	return fmt.Sprintf(providerErrorTemplateConstant, providerError.ProviderName, providerError.Operation, providerError.Cause)
}

// Unwrap exposes the underlying cause.
func (providerError *ProviderError) Unwrap() error {
	return providerError.Cause
}
