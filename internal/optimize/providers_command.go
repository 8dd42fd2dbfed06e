package optimize

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/reposeo/internal/providers"
)

const (
	providersCommandUseConstant   = "providers"
	providersCommandShortConstant = "List the registered generation providers"
	providersCommandLongConstant  = "providers prints the names of every registered generation provider backend, one per line, with the credential status resolved from the configuration."
	providerLineTemplateConstant  = "%s%s\n"

	providerStatusReadyConstant             = " (ready)"
	providerStatusMissingCredentialTemplate = " (set %s)"
	providerStatusUnconfiguredConstant      = " (credential environment variable not configured)"
)

// ProvidersCommandBuilder assembles the providers listing command.
type ProvidersCommandBuilder struct {
	ProviderRegistry      *providers.Registry
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the cobra command that lists registered providers.
func (builder *ProvidersCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   providersCommandUseConstant,
		Short: providersCommandShortConstant,
		Long:  providersCommandLongConstant,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *ProvidersCommandBuilder) run(command *cobra.Command, _ []string) error {
	registry := builder.ProviderRegistry
	if registry == nil {
		registry = providers.NewRegistry()
	}
	for _, providerName := range registry.Names() {
		fmt.Fprintf(command.OutOrStdout(), providerLineTemplateConstant, providerName, builder.credentialStatus(providerName))
	}
	return nil
}

// credentialStatus reports whether the backend's configured credential can be
// resolved. Backends without a configured credential variable need none and
// report no status.
func (builder *ProvidersCommandBuilder) credentialStatus(providerName string) string {
	if builder.ConfigurationProvider == nil {
		return ""
	}
	providerConfiguration := builder.ConfigurationProvider().providerConfiguration(providerName)
	if len(providerConfiguration.APIKeyEnvironmentVariable) == 0 {
		return ""
	}

	_, credentialError := providerConfiguration.ResolveCredential(providerName)
	if credentialError == nil {
		return providerStatusReadyConstant
	}

	var missingCredential *providers.MissingCredentialError
	if errors.As(credentialError, &missingCredential) {
		return fmt.Sprintf(providerStatusMissingCredentialTemplate, missingCredential.EnvironmentVariableName)
	}
	return providerStatusUnconfiguredConstant
}
