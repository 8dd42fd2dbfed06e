package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/reposeo/internal/providers"
	"github.com/temirov/reposeo/internal/providers/local"
	"github.com/temirov/reposeo/internal/repometa"
	"github.com/temirov/reposeo/internal/seo"
)

const (
	missingTargetMessageConstant          = "either --owner or --repo must be provided"
	conflictingTargetMessageConstant      = "--owner and --repo are mutually exclusive"
	repositoryFailedMessageConstant       = "repository optimization failed"
	reportWriteErrorTemplateConstant      = "failed to write report %s: %w"
	reportEncodeErrorTemplateConstant     = "failed to encode report: %w"
	fallbackEngagedMessageConstant        = "provider failed, falling back to local generation"
	skippedForkMessageConstant            = "skipping fork"
	skippedArchivedMessageConstant        = "skipping archived repository"
	unchangedSummaryTemplateConstant      = "%s: already optimized\n"
	previewSummaryTemplateConstant        = "%s: would update %s (provider %s)\n"
	appliedSummaryTemplateConstant        = "%s: updated %s (provider %s)\n"
	failureSummaryTemplateConstant        = "%s: %s\n"
	descriptionChangeLabelConstant        = "description"
	topicsChangeLabelConstant             = "topics"
	combinedChangeSeparatorConstant       = " and "
	repositoryLogFieldConstant            = "repository"
	providerLogFieldConstant              = "provider"
	reportFilePermissionsConstant         = 0o644
	errGatewayNotConfiguredMessage        = "repository gateway not configured"
	errAnalyzerNotConfiguredMessage       = "analyzer not configured"
	errGeneratorFactoryNotConfigMessage   = "generator factory not configured"
	optimizationFailuresMessageConstant   = "optimization completed with %d failure(s)"
	stopOnErrorAbortedMessageConstant     = "stopping after failure in %s: %s"
	reportIndentationConstant             = "  "
	reportEntriesLoggedMessageConstant    = "report written"
	reportPathLogFieldConstant            = "path"
	repositoriesSelectedMessageConstant   = "repositories selected"
	repositoryCountLogFieldConstant       = "count"
	generationFallbackUnavailableMessage  = "fallback generator unavailable"
	delayInterruptedMessageTemplateString = "delay interrupted: %w"

	repositoryDiscoveryFailedTemplateConstant = "could not discover a repository from the working directory: %w"
	repositoryDiscoveredMessageConstant       = "repository discovered from git remote"
)

// Configuration wiring errors surfaced before any repository work starts.
var (
	ErrGatewayNotConfigured          = errors.New(errGatewayNotConfiguredMessage)
	ErrAnalyzerNotConfigured         = errors.New(errAnalyzerNotConfiguredMessage)
	ErrGeneratorFactoryNotConfigured = errors.New(errGeneratorFactoryNotConfigMessage)
)

// Service runs the optimization pipeline across one repository or an owner's
// listing.
type Service struct {
	gateway           RepositoryGateway
	contentAnalyzer   RepositoryAnalyzer
	generatorFactory  GeneratorFactory
	logger            *zap.Logger
	outputWriter      io.Writer
	errorWriter       io.Writer
	delayTimer        DelayTimer
	repositoryLocator RepositoryLocator
}

// NewService wires the optimization pipeline. Nil writers default to discard
// and a nil logger to a no-op logger.
func NewService(gateway RepositoryGateway, contentAnalyzer RepositoryAnalyzer, generatorFactory GeneratorFactory, logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}

	return &Service{
		gateway:          gateway,
		contentAnalyzer:  contentAnalyzer,
		generatorFactory: generatorFactory,
		logger:           logger,
		outputWriter:     outputWriter,
		errorWriter:      errorWriter,
		delayTimer:       systemDelayTimer{},
	}
}

// SetDelayTimer overrides the timer used between repositories.
func (service *Service) SetDelayTimer(delayTimer DelayTimer) {
	if delayTimer == nil {
		return
	}
	service.delayTimer = delayTimer
}

// SetRepositoryLocator installs a locator consulted when neither --owner nor
// --repo is provided.
func (service *Service) SetRepositoryLocator(repositoryLocator RepositoryLocator) {
	service.repositoryLocator = repositoryLocator
}

// Run executes the pipeline for the resolved options and writes the outcome
// report. Provider construction failures, including missing credentials, abort
// the run before any repository is touched.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	if service.gateway == nil {
		return ErrGatewayNotConfigured
	}
	if service.contentAnalyzer == nil {
		return ErrAnalyzerNotConfigured
	}
	if service.generatorFactory == nil {
		return ErrGeneratorFactoryNotConfigured
	}
	if validationError := service.validateTargets(options); validationError != nil {
		return validationError
	}

	generationConfiguration := seo.Configuration{
		MaximumDescriptionLength: options.MaximumDescriptionLength,
		StyleHint:                options.StyleHint,
	}

	primaryGenerator, primaryError := service.generatorFactory(options.ProviderName, generationConfiguration)
	if primaryError != nil {
		return primaryError
	}

	fallbackGenerator, fallbackError := service.resolveFallbackGenerator(options, generationConfiguration)
	if fallbackError != nil {
		return fallbackError
	}

	targets, targetsError := service.collectTargets(executionContext, options)
	if targetsError != nil {
		return targetsError
	}

	service.logger.Debug(repositoriesSelectedMessageConstant, zap.Int(repositoryCountLogFieldConstant, len(targets)))

	reports := make([]RepositoryReport, 0, len(targets))
	var abortError error
	failureCount := 0

	for targetIndex, target := range targets {
		if targetIndex > 0 && options.Delay > 0 {
			if waitError := service.delayTimer.Wait(executionContext, options.Delay); waitError != nil {
				abortError = fmt.Errorf(delayInterruptedMessageTemplateString, waitError)
				break
			}
		}

		report := service.optimizeRepository(executionContext, target, primaryGenerator, fallbackGenerator, options)
		reports = append(reports, report)
		service.printSummary(report, options)

		if len(report.ErrorMessage) > 0 {
			failureCount++
			service.logger.Error(repositoryFailedMessageConstant,
				zap.String(repositoryLogFieldConstant, report.Repository),
				zap.String("error", report.ErrorMessage),
			)
			if options.StopOnError {
				abortError = fmt.Errorf(stopOnErrorAbortedMessageConstant, report.Repository, report.ErrorMessage)
				break
			}
		}
	}

	if reportError := service.writeReportFile(options.ReportPath, reports); reportError != nil {
		if abortError != nil {
			return errors.Join(abortError, reportError)
		}
		return reportError
	}

	if abortError != nil {
		return abortError
	}
	if failureCount > 0 {
		return fmt.Errorf(optimizationFailuresMessageConstant, failureCount)
	}
	return nil
}

func (service *Service) validateTargets(options CommandOptions) error {
	ownerProvided := len(strings.TrimSpace(options.Owner)) > 0
	repositoryProvided := len(strings.TrimSpace(options.Repository)) > 0
	if ownerProvided && repositoryProvided {
		return errors.New(conflictingTargetMessageConstant)
	}
	if !ownerProvided && !repositoryProvided && service.repositoryLocator == nil {
		return errors.New(missingTargetMessageConstant)
	}
	return nil
}

func (service *Service) resolveFallbackGenerator(options CommandOptions, generationConfiguration seo.Configuration) (ContentGenerator, error) {
	if !options.FallbackLocal {
		return nil, nil
	}
	if strings.EqualFold(strings.TrimSpace(options.ProviderName), local.ProviderName) {
		return nil, nil
	}
	fallbackGenerator, factoryError := service.generatorFactory(local.ProviderName, generationConfiguration)
	if factoryError != nil {
		return nil, fmt.Errorf("%s: %w", generationFallbackUnavailableMessage, factoryError)
	}
	return fallbackGenerator, nil
}

// collectTargets resolves the repository identities to optimize. Skip filters
// apply to owner listings only; an explicitly named repository is always
// processed.
func (service *Service) collectTargets(executionContext context.Context, options CommandOptions) ([]repometa.OwnerRepository, error) {
	if len(strings.TrimSpace(options.Repository)) > 0 {
		repositoryIdentity, identityError := repometa.NewOwnerRepository(options.Repository)
		if identityError != nil {
			return nil, identityError
		}
		return []repometa.OwnerRepository{repositoryIdentity}, nil
	}

	if len(strings.TrimSpace(options.Owner)) == 0 {
		repositoryIdentity, discoveryError := service.repositoryLocator.DiscoverRepository(executionContext)
		if discoveryError != nil {
			return nil, fmt.Errorf(repositoryDiscoveryFailedTemplateConstant, discoveryError)
		}
		service.logger.Debug(repositoryDiscoveredMessageConstant, zap.String(repositoryLogFieldConstant, repositoryIdentity.String()))
		return []repometa.OwnerRepository{repositoryIdentity}, nil
	}

	ownerSlug, ownerError := repometa.NewOwnerSlug(options.Owner)
	if ownerError != nil {
		return nil, ownerError
	}

	listedRepositories, listError := service.gateway.ListRepositories(executionContext, ownerSlug, options.Limit)
	if listError != nil {
		return nil, listError
	}

	targets := make([]repometa.OwnerRepository, 0, len(listedRepositories))
	for _, listedRepository := range listedRepositories {
		if options.SkipForks && listedRepository.IsFork {
			service.logger.Debug(skippedForkMessageConstant, zap.String(repositoryLogFieldConstant, listedRepository.OwnerRepository().String()))
			continue
		}
		if options.SkipArchived && listedRepository.IsArchived {
			service.logger.Debug(skippedArchivedMessageConstant, zap.String(repositoryLogFieldConstant, listedRepository.OwnerRepository().String()))
			continue
		}
		targets = append(targets, listedRepository.OwnerRepository())
	}

	return targets, nil
}

func (service *Service) optimizeRepository(executionContext context.Context, repositoryIdentity repometa.OwnerRepository, primaryGenerator ContentGenerator, fallbackGenerator ContentGenerator, options CommandOptions) RepositoryReport {
	report := RepositoryReport{Repository: repositoryIdentity.String()}

	profile, profileError := service.gateway.GetRepositoryProfile(executionContext, repositoryIdentity)
	if profileError != nil {
		report.ErrorMessage = profileError.Error()
		return report
	}

	readmeContent, readmeFound, readmeError := service.gateway.GetReadme(executionContext, repositoryIdentity)
	if readmeError != nil {
		report.ErrorMessage = readmeError.Error()
		return report
	}
	if readmeFound {
		profile.Readme = readmeContent
	}

	report.Description.Before = profile.Description
	report.Topics.Before = append([]string{}, profile.Topics...)

	analysis := service.contentAnalyzer.Analyze(profile)

	content, generationError := primaryGenerator.Generate(executionContext, profile, analysis)
	if generationError != nil {
		var providerFailure *providers.ProviderError
		if fallbackGenerator == nil || !errors.As(generationError, &providerFailure) {
			report.ErrorMessage = generationError.Error()
			return report
		}
		service.logger.Warn(fallbackEngagedMessageConstant,
			zap.String(repositoryLogFieldConstant, report.Repository),
			zap.String(providerLogFieldConstant, primaryGenerator.ProviderName()),
			zap.Error(generationError),
		)
		content, generationError = fallbackGenerator.Generate(executionContext, profile, analysis)
		if generationError != nil {
			report.ErrorMessage = generationError.Error()
			return report
		}
	}

	report.Description.After = content.Description
	report.Topics.After = append([]string{}, content.Topics...)
	report.ProviderName = content.ProviderName

	if !options.Apply || !report.Changed() {
		return report
	}

	if report.Description.Before != report.Description.After {
		if updateError := service.gateway.UpdateDescription(executionContext, repositoryIdentity, report.Description.After); updateError != nil {
			report.ErrorMessage = updateError.Error()
			return report
		}
	}
	if topicsDiffer(report.Topics.Before, report.Topics.After) {
		if updateError := service.gateway.UpdateTopics(executionContext, repositoryIdentity, report.Topics.After); updateError != nil {
			report.ErrorMessage = updateError.Error()
			return report
		}
	}

	report.Applied = true
	return report
}

func topicsDiffer(beforeTopics []string, afterTopics []string) bool {
	if len(beforeTopics) != len(afterTopics) {
		return true
	}
	for topicIndex, beforeTopic := range beforeTopics {
		if beforeTopic != afterTopics[topicIndex] {
			return true
		}
	}
	return false
}

func (service *Service) printSummary(report RepositoryReport, options CommandOptions) {
	if len(report.ErrorMessage) > 0 {
		fmt.Fprintf(service.errorWriter, failureSummaryTemplateConstant, report.Repository, report.ErrorMessage)
		return
	}
	if !report.Changed() {
		fmt.Fprintf(service.outputWriter, unchangedSummaryTemplateConstant, report.Repository)
		return
	}

	changedFields := changeDescription(report)
	if report.Applied {
		fmt.Fprintf(service.outputWriter, appliedSummaryTemplateConstant, report.Repository, changedFields, report.ProviderName)
		return
	}
	fmt.Fprintf(service.outputWriter, previewSummaryTemplateConstant, report.Repository, changedFields, report.ProviderName)
}

func changeDescription(report RepositoryReport) string {
	changedFields := make([]string, 0, 2)
	if report.Description.Before != report.Description.After {
		changedFields = append(changedFields, descriptionChangeLabelConstant)
	}
	if topicsDiffer(report.Topics.Before, report.Topics.After) {
		changedFields = append(changedFields, topicsChangeLabelConstant)
	}
	return strings.Join(changedFields, combinedChangeSeparatorConstant)
}

func (service *Service) writeReportFile(reportPath string, reports []RepositoryReport) error {
	if len(strings.TrimSpace(reportPath)) == 0 {
		return nil
	}

	encodedReport, encodeError := json.MarshalIndent(reports, "", reportIndentationConstant)
	if encodeError != nil {
		return fmt.Errorf(reportEncodeErrorTemplateConstant, encodeError)
	}

	if writeError := os.WriteFile(reportPath, append(encodedReport, '\n'), reportFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(reportWriteErrorTemplateConstant, reportPath, writeError)
	}

	service.logger.Debug(reportEntriesLoggedMessageConstant, zap.String(reportPathLogFieldConstant, reportPath))
	return nil
}
