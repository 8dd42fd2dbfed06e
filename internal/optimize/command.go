package optimize

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/reposeo/internal/analyzer"
	"github.com/temirov/reposeo/internal/execshell"
	"github.com/temirov/reposeo/internal/githubcli"
	"github.com/temirov/reposeo/internal/gitrepo"
	"github.com/temirov/reposeo/internal/providers"
	"github.com/temirov/reposeo/internal/seo"
	"github.com/temirov/reposeo/internal/ui"
	"github.com/temirov/reposeo/internal/utils/flags"
)

const (
	commandUseConstant   = "optimize"
	commandShortConstant = "Generate and publish SEO metadata for GitHub repositories"
	commandLongConstant  = "optimize analyzes repository content through the gh CLI, generates an improved description and topics with the selected provider, and previews the changes. Pass --apply to publish them. When neither --owner nor --repo is given, the repository is discovered from the origin remote of the working directory."

	flagOwnerName                 = "owner"
	flagOwnerDescription          = "GitHub owner whose repositories are optimized"
	flagRepositoryName            = "repo"
	flagRepositoryDescription     = "single repository to optimize in owner/name form"
	flagProviderName              = "provider"
	flagProviderDescription       = "generation provider backend"
	flagLimitName                 = "limit"
	flagLimitDescription          = "maximum repositories fetched from the owner listing"
	flagApplyName                 = "apply"
	flagApplyDescription          = "publish the generated metadata instead of previewing"
	flagDryRunName                = "dry-run"
	flagDryRunDescription         = "preview changes without publishing, overriding --apply"
	flagStopOnErrorName           = "stop-on-error"
	flagStopOnErrorDescription    = "abort the run after the first repository failure"
	flagFallbackLocalName         = "fallback-local"
	flagFallbackLocalDescription  = "retry with the local generator when the provider fails"
	flagSkipForksName             = "skip-forks"
	flagSkipForksDescription      = "exclude forks from owner listings"
	flagSkipArchivedName          = "skip-archived"
	flagSkipArchivedDescription   = "exclude archived repositories from owner listings"
	flagReportName                = "report"
	flagReportDescription         = "path for the JSON run report"
	flagStyleHintName             = "style-hint"
	flagStyleHintDescription      = "tone guidance passed to the generation provider"
	flagDelayName                 = "delay"
	flagDelayDescription          = "pause between repositories"
	flagDescriptionLimitName      = "max-description-length"
	flagDescriptionLimitUsageText = "maximum description length in characters"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the resolved optimize configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the optimize cobra command with configurable
// dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Gateway               RepositoryGateway
	RepositoryLocator     RepositoryLocator
	GeneratorFactory      GeneratorFactory
	ProviderRegistry      *providers.Registry
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cobra command for repository optimization.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		RunE:  builder.run,
	}

	providerUsage := flagProviderDescription
	if builder.ProviderRegistry != nil {
		providerUsage = flags.FormatChoiceUsage(defaultProviderNameConstant, builder.ProviderRegistry.Names(), flagProviderDescription)
	}

	command.Flags().String(flagOwnerName, "", flagOwnerDescription)
	command.Flags().String(flagRepositoryName, "", flagRepositoryDescription)
	command.Flags().String(flagProviderName, "", providerUsage)
	command.Flags().Int(flagLimitName, 0, flagLimitDescription)
	command.Flags().Bool(flagApplyName, false, flagApplyDescription)
	command.Flags().Bool(flagDryRunName, false, flagDryRunDescription)
	command.Flags().Bool(flagStopOnErrorName, false, flagStopOnErrorDescription)
	command.Flags().Bool(flagFallbackLocalName, false, flagFallbackLocalDescription)
	command.Flags().Bool(flagSkipForksName, true, flagSkipForksDescription)
	command.Flags().Bool(flagSkipArchivedName, true, flagSkipArchivedDescription)
	command.Flags().String(flagReportName, "", flagReportDescription)
	command.Flags().String(flagStyleHintName, "", flagStyleHintDescription)
	command.Flags().Duration(flagDelayName, 0, flagDelayDescription)
	command.Flags().Int(flagDescriptionLimitName, 0, flagDescriptionLimitUsageText)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	options := builder.parseOptions(command, configuration)

	logger := builder.resolveLogger()
	gateway := builder.Gateway
	repositoryLocator := builder.RepositoryLocator
	if gateway == nil || repositoryLocator == nil {
		shellExecutor, executorError := builder.buildShellExecutor(logger)
		if executorError != nil {
			return executorError
		}
		if gateway == nil {
			client, clientError := githubcli.NewClient(shellExecutor)
			if clientError != nil {
				return clientError
			}
			gateway = client
		}
		if repositoryLocator == nil {
			locator, locatorError := gitrepo.NewRepositoryLocator(shellExecutor)
			if locatorError != nil {
				return locatorError
			}
			repositoryLocator = locator
		}
	}

	generatorFactory := builder.resolveGeneratorFactory(configuration)
	contentAnalyzer := analyzer.NewService(analyzer.Configuration{})

	service := NewService(gateway, contentAnalyzer, generatorFactory, logger, command.OutOrStdout(), command.ErrOrStderr())
	service.SetRepositoryLocator(repositoryLocator)
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

// parseOptions merges configuration defaults with explicitly set flags; a flag
// the user did not touch defers to configuration.
func (builder *CommandBuilder) parseOptions(command *cobra.Command, configuration CommandConfiguration) CommandOptions {
	options := CommandOptions{
		ProviderName:             configuration.Provider,
		Limit:                    configuration.Limit,
		StopOnError:              configuration.StopOnError,
		FallbackLocal:            configuration.FallbackLocal,
		SkipForks:                configuration.SkipForks,
		SkipArchived:             configuration.SkipArchived,
		Delay:                    configuration.Delay,
		StyleHint:                configuration.Generation.StyleHint,
		MaximumDescriptionLength: configuration.Generation.MaximumDescriptionLength,
	}

	options.Owner, _ = command.Flags().GetString(flagOwnerName)
	options.Repository, _ = command.Flags().GetString(flagRepositoryName)
	options.ReportPath, _ = command.Flags().GetString(flagReportName)

	if command.Flags().Changed(flagProviderName) {
		options.ProviderName, _ = command.Flags().GetString(flagProviderName)
	}
	if command.Flags().Changed(flagLimitName) {
		options.Limit, _ = command.Flags().GetInt(flagLimitName)
	}
	if command.Flags().Changed(flagStopOnErrorName) {
		options.StopOnError, _ = command.Flags().GetBool(flagStopOnErrorName)
	}
	if command.Flags().Changed(flagFallbackLocalName) {
		options.FallbackLocal, _ = command.Flags().GetBool(flagFallbackLocalName)
	}
	if command.Flags().Changed(flagSkipForksName) {
		options.SkipForks, _ = command.Flags().GetBool(flagSkipForksName)
	}
	if command.Flags().Changed(flagSkipArchivedName) {
		options.SkipArchived, _ = command.Flags().GetBool(flagSkipArchivedName)
	}
	if command.Flags().Changed(flagDelayName) {
		options.Delay, _ = command.Flags().GetDuration(flagDelayName)
	}
	if command.Flags().Changed(flagStyleHintName) {
		options.StyleHint, _ = command.Flags().GetString(flagStyleHintName)
	}
	if command.Flags().Changed(flagDescriptionLimitName) {
		options.MaximumDescriptionLength, _ = command.Flags().GetInt(flagDescriptionLimitName)
	}

	applyFlag, _ := command.Flags().GetBool(flagApplyName)
	dryRunFlag, _ := command.Flags().GetBool(flagDryRunName)
	options.Apply = applyFlag && !dryRunFlag

	return options
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) buildShellExecutor(logger *zap.Logger) (*execshell.ShellExecutor, error) {
	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}

	commandEventsObserver := builder.CommandEventsObserver
	if commandEventsObserver == nil {
		commandEventsObserver = ui.NewConsoleCommandEventLogger(logger)
	}
	shellExecutor.SetCommandEventObserver(commandEventsObserver)
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveGeneratorFactory(configuration CommandConfiguration) GeneratorFactory {
	if builder.GeneratorFactory != nil {
		return builder.GeneratorFactory
	}

	registry := builder.ProviderRegistry
	if registry == nil {
		registry = providers.NewRegistry()
	}

	return func(providerName string, generationConfiguration seo.Configuration) (ContentGenerator, error) {
		providerConfiguration := configuration.providerConfiguration(providerName)
		provider, createError := registry.Create(strings.TrimSpace(providerName), providerConfiguration)
		if createError != nil {
			return nil, createError
		}
		return seo.NewGenerator(provider, generationConfiguration), nil
	}
}
