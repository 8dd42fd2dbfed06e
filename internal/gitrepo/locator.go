package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/reposeo/internal/execshell"
	"github.com/temirov/reposeo/internal/repometa"
)

const (
	remoteSubcommandConstant        = "remote"
	getURLSubcommandConstant        = "get-url"
	originRemoteNameConstant        = "origin"
	githubHostConstant              = "github.com"
	unsupportedHostTemplateConstant = "remote host %s is not github.com"

	executorNotConfiguredMessageConstant = "git executor not configured"
)

// ErrExecutorNotConfigured indicates the locator was built without a git
// executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor runs the git binary.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryLocator resolves the GitHub repository identity of the working
// directory from its origin remote.
type RepositoryLocator struct {
	executor GitExecutor
}

// NewRepositoryLocator constructs a locator backed by the provided executor.
func NewRepositoryLocator(executor GitExecutor) (*RepositoryLocator, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryLocator{executor: executor}, nil
}

// DiscoverRepository reads the origin remote URL of the working directory and
// converts it into an owner/repository identity. Remotes pointing at hosts
// other than github.com are rejected.
func (locator *RepositoryLocator) DiscoverRepository(executionContext context.Context) (repometa.OwnerRepository, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{remoteSubcommandConstant, getURLSubcommandConstant, originRemoteNameConstant},
	}

	executionResult, executionError := locator.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return repometa.OwnerRepository{}, executionError
	}

	remoteURL, parseError := ParseRemoteURL(strings.TrimSpace(executionResult.StandardOutput))
	if parseError != nil {
		return repometa.OwnerRepository{}, parseError
	}
	if !strings.EqualFold(remoteURL.Host, githubHostConstant) {
		return repometa.OwnerRepository{}, fmt.Errorf(unsupportedHostTemplateConstant, remoteURL.Host)
	}

	ownerSlug, ownerError := repometa.NewOwnerSlug(remoteURL.Owner)
	if ownerError != nil {
		return repometa.OwnerRepository{}, ownerError
	}
	repositoryName, nameError := repometa.NewRepositoryName(remoteURL.Repository)
	if nameError != nil {
		return repometa.OwnerRepository{}, nameError
	}
	return repometa.JoinOwnerRepository(ownerSlug, repositoryName), nil
}
