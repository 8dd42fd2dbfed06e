package optimize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reposeo/internal/optimize"
	"github.com/temirov/reposeo/internal/providers"
	"github.com/temirov/reposeo/internal/providers/local"
	"github.com/temirov/reposeo/internal/seo"
)

func TestCommandBuilderBuildDeclaresFlags(testInstance *testing.T) {
	testInstance.Parallel()

	builder := &optimize.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "optimize", command.Use)

	expectedFlagNames := []string{
		"owner",
		"repo",
		"provider",
		"limit",
		"apply",
		"dry-run",
		"stop-on-error",
		"fallback-local",
		"skip-forks",
		"skip-archived",
		"report",
		"style-hint",
		"delay",
		"max-description-length",
	}
	for _, flagName := range expectedFlagNames {
		require.NotNil(testInstance, command.Flags().Lookup(flagName), flagName)
	}
}

func TestCommandRunMergesConfigurationAndFlags(testInstance *testing.T) {
	testInstance.Parallel()

	gateway := newStubGateway()
	descriptor := testDescriptor(testInstance, testOwnerConstant, "widgets")
	gateway.profiles[testRepositoryConstant] = descriptor
	gateway.readmes[testRepositoryConstant] = testReadmeConstant

	var requestedProviderName string
	var requestedConfiguration seo.Configuration
	recordingFactory := func(providerName string, generationConfiguration seo.Configuration) (optimize.ContentGenerator, error) {
		requestedProviderName = providerName
		requestedConfiguration = generationConfiguration
		return &stubGenerator{
			providerName: providerName,
			content:      seo.Content{Description: "fresh", ProviderName: providerName},
		}, nil
	}

	builder := &optimize.CommandBuilder{
		Gateway:          gateway,
		GeneratorFactory: recordingFactory,
		ConfigurationProvider: func() optimize.CommandConfiguration {
			configuration := optimize.DefaultCommandConfiguration()
			configuration.Provider = "gemini"
			configuration.Delay = 3 * time.Second
			configuration.Generation.StyleHint = "concise and factual"
			return configuration
		},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"--repo", testRepositoryConstant, "--provider", "ollama"})
	require.NoError(testInstance, command.Execute())

	require.Equal(testInstance, "ollama", requestedProviderName)
	require.Equal(testInstance, "concise and factual", requestedConfiguration.StyleHint)
	require.Equal(testInstance, seo.DefaultMaximumDescriptionLength, requestedConfiguration.MaximumDescriptionLength)
}

func TestCommandRunDryRunOverridesApply(testInstance *testing.T) {
	testInstance.Parallel()

	gateway := newStubGateway()
	descriptor := testDescriptor(testInstance, testOwnerConstant, "widgets")
	descriptor.Description = "old"
	gateway.profiles[testRepositoryConstant] = descriptor
	gateway.readmes[testRepositoryConstant] = testReadmeConstant

	factory := func(providerName string, _ seo.Configuration) (optimize.ContentGenerator, error) {
		return &stubGenerator{
			providerName: providerName,
			content:      seo.Content{Description: "rewritten", ProviderName: providerName},
		}, nil
	}

	builder := &optimize.CommandBuilder{Gateway: gateway, GeneratorFactory: factory}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"--repo", testRepositoryConstant, "--apply", "--dry-run"})
	require.NoError(testInstance, command.Execute())

	require.Empty(testInstance, gateway.updatedDescriptions)
	require.Empty(testInstance, gateway.updatedTopics)
}

func TestProvidersCommandListsRegisteredBackends(testInstance *testing.T) {
	testInstance.Parallel()

	registry := providers.NewRegistry()
	registry.Register(local.ProviderName, local.NewProvider)
	registry.Register("ollama", func(config providers.Config) (providers.Provider, error) {
		return nil, nil
	})

	builder := &optimize.ProvidersCommandBuilder{ProviderRegistry: registry}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &recordingBuffer{}
	command.SetOut(outputBuffer)
	require.NoError(testInstance, command.Execute())

	require.Equal(testInstance, "local\nollama\n", outputBuffer.String())
}

func TestProvidersCommandReportsCredentialStatus(testInstance *testing.T) {
	registry := providers.NewRegistry()
	registry.Register(local.ProviderName, local.NewProvider)
	registry.Register("anthropic", func(config providers.Config) (providers.Provider, error) {
		return nil, nil
	})
	registry.Register("openai", func(config providers.Config) (providers.Provider, error) {
		return nil, nil
	})

	testInstance.Setenv("OPTIMIZE_TEST_OPENAI_KEY", "configured-value")

	builder := &optimize.ProvidersCommandBuilder{
		ProviderRegistry: registry,
		ConfigurationProvider: func() optimize.CommandConfiguration {
			configuration := optimize.DefaultCommandConfiguration()
			configuration.Providers = map[string]providers.Config{
				"openai":    {APIKeyEnvironmentVariable: "OPTIMIZE_TEST_OPENAI_KEY"},
				"anthropic": {APIKeyEnvironmentVariable: "OPTIMIZE_TEST_ANTHROPIC_KEY"},
			}
			return configuration
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &recordingBuffer{}
	command.SetOut(outputBuffer)
	require.NoError(testInstance, command.Execute())

	require.Equal(testInstance, "anthropic (set OPTIMIZE_TEST_ANTHROPIC_KEY)\nlocal\nopenai (ready)\n", outputBuffer.String())
}
