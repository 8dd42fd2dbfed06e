package optimize

import (
	"context"
	"time"

	"github.com/temirov/reposeo/internal/analyzer"
	"github.com/temirov/reposeo/internal/repometa"
	"github.com/temirov/reposeo/internal/seo"
)

// RepositoryGateway abstracts the GitHub operations the optimizer needs.
type RepositoryGateway interface {
	ListRepositories(executionContext context.Context, owner repometa.OwnerSlug, resultLimit int) ([]repometa.RepositoryDescriptor, error)
	GetRepositoryProfile(executionContext context.Context, repository repometa.OwnerRepository) (repometa.RepositoryDescriptor, error)
	GetReadme(executionContext context.Context, repository repometa.OwnerRepository) (string, bool, error)
	UpdateDescription(executionContext context.Context, repository repometa.OwnerRepository, description string) error
	UpdateTopics(executionContext context.Context, repository repometa.OwnerRepository, topics []string) error
}

// RepositoryLocator discovers the repository identity of the current working
// directory from its git remotes.
type RepositoryLocator interface {
	DiscoverRepository(executionContext context.Context) (repometa.OwnerRepository, error)
}

// RepositoryAnalyzer extracts content signals from a repository profile.
type RepositoryAnalyzer interface {
	Analyze(descriptor repometa.RepositoryDescriptor) analyzer.Analysis
}

// ContentGenerator produces publishable metadata for one repository.
type ContentGenerator interface {
	ProviderName() string
	Generate(executionContext context.Context, descriptor repometa.RepositoryDescriptor, analysis analyzer.Analysis) (seo.Content, error)
}

// GeneratorFactory constructs a generator bound to the named provider backend.
type GeneratorFactory func(providerName string, generationConfiguration seo.Configuration) (ContentGenerator, error)

// DelayTimer waits between repository operations so runs stay within API
// rate limits.
type DelayTimer interface {
	Wait(executionContext context.Context, delayDuration time.Duration) error
}

type systemDelayTimer struct{}

func (systemDelayTimer) Wait(executionContext context.Context, delayDuration time.Duration) error {
	if delayDuration <= 0 {
		return nil
	}
	delayTimer := time.NewTimer(delayDuration)
	defer delayTimer.Stop()
	select {
	case <-executionContext.Done():
		return executionContext.Err()
	case <-delayTimer.C:
		return nil
	}
}
