package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/reposeo/internal/execshell"
	"github.com/temirov/reposeo/internal/repometa"
)

const (
	repoSubcommandConstant     = "repo"
	listSubcommandConstant     = "list"
	viewSubcommandConstant     = "view"
	apiSubcommandConstant      = "api"
	jsonFlagConstant           = "--json"
	limitFlagConstant          = "--limit"
	methodFlagConstant         = "-X"
	fieldFlagConstant          = "-f"
	inputFlagConstant          = "--input"
	stdinReferenceConstant     = "-"
	headerFlagConstant         = "-H"
	rawAcceptHeaderConstant    = "Accept: application/vnd.github.raw"
	topicsAcceptHeaderConstant = "Accept: application/vnd.github.mercy-preview+json"
	httpMethodPatchConstant    = "PATCH"
	httpMethodPutConstant      = "PUT"

	repositoryListJSONFieldsConstant = "name,owner,description,isFork,isArchived,isPrivate,stargazerCount,repositoryTopics"
	repositoryViewJSONFieldsConstant = "name,owner,description,isFork,isArchived,isPrivate,stargazerCount,repositoryTopics"

	repositoryEndpointTemplateConstant = "repos/%s"
	languagesEndpointTemplateConstant  = "repos/%s/languages"
	topicsEndpointTemplateConstant     = "repos/%s/topics"
	readmeEndpointTemplateConstant     = "repos/%s/readme"

	descriptionFieldTemplateConstant = "description=%s"

	ownerFieldNameConstant               = "owner"
	repositoryFieldNameConstant          = "repository"
	requiredValueMessageConstant         = "value required"
	executorNotConfiguredMessageConstant = "github cli executor not configured"

	repositoryListLimitDefaultConstant = 100

	notFoundMarkerConstant      = "HTTP 404"
	notFoundStatusTextConstant  = "Not Found"
	invalidInputErrorTemplate   = "%s: %s"
	operationErrorTemplate      = "%s operation failed"
	operationErrorCauseTemplate = "%s operation failed: %s"
	decodingErrorTemplate       = "%s response decoding failed: %s"
	encodingErrorTemplate       = "%s payload encoding failed: %s"

	listRepositoriesOperationNameConstant  = OperationName("ListRepositories")
	repositoryProfileOperationNameConstant = OperationName("GetRepositoryProfile")
	readmeOperationNameConstant            = OperationName("GetReadme")
	updateDescriptionOperationNameConstant = OperationName("UpdateDescription")
	updateTopicsOperationNameConstant      = OperationName("UpdateTopics")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell. The gh binary
// carries authentication, so the client never touches tokens itself.
type Client struct {
	executor GitHubCommandExecutor
}

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplate, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorTemplate, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorCauseTemplate, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(decodingErrorTemplate, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(encodingErrorTemplate, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// repositoryPayload mirrors the JSON shape shared by gh repo list and
// gh repo view.
type repositoryPayload struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	Description      string `json:"description"`
	IsFork           bool   `json:"isFork"`
	IsArchived       bool   `json:"isArchived"`
	IsPrivate        bool   `json:"isPrivate"`
	StargazerCount   int    `json:"stargazerCount"`
	RepositoryTopics []struct {
		Name string `json:"name"`
	} `json:"repositoryTopics"`
}

func (payload repositoryPayload) toDescriptor() (repometa.RepositoryDescriptor, error) {
	ownerSlug, ownerError := repometa.NewOwnerSlug(payload.Owner.Login)
	if ownerError != nil {
		return repometa.RepositoryDescriptor{}, ownerError
	}
	repositoryName, nameError := repometa.NewRepositoryName(payload.Name)
	if nameError != nil {
		return repometa.RepositoryDescriptor{}, nameError
	}

	topics := make([]string, 0, len(payload.RepositoryTopics))
	for _, topicEntry := range payload.RepositoryTopics {
		topics = append(topics, topicEntry.Name)
	}
	return repometa.RepositoryDescriptor{
		Owner:       ownerSlug,
		Name:        repositoryName,
		Description: payload.Description,
		Topics:      topics,
		StarCount:   payload.StargazerCount,
		IsFork:      payload.IsFork,
		IsPrivate:   payload.IsPrivate,
		IsArchived:  payload.IsArchived,
	}, nil
}

// ListRepositories enumerates an owner's repositories using gh repo list.
// Descriptors carry metadata and topics; languages and README content load
// lazily through GetRepositoryProfile and GetReadme.
func (client *Client) ListRepositories(executionContext context.Context, owner repometa.OwnerSlug, resultLimit int) ([]repometa.RepositoryDescriptor, error) {
	ownerIdentifier := strings.TrimSpace(owner.String())
	if len(ownerIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if resultLimit <= 0 {
		resultLimit = repositoryListLimitDefaultConstant
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			listSubcommandConstant,
			ownerIdentifier,
			jsonFlagConstant,
			repositoryListJSONFieldsConstant,
			limitFlagConstant,
			strconv.Itoa(resultLimit),
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listRepositoriesOperationNameConstant, Cause: executionError}
	}

	var response []repositoryPayload
	if decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response); decodingError != nil {
		return nil, ResponseDecodingError{Operation: listRepositoriesOperationNameConstant, Cause: decodingError}
	}

	descriptors := make([]repometa.RepositoryDescriptor, 0, len(response))
	for _, payload := range response {
		descriptor, descriptorError := payload.toDescriptor()
		if descriptorError != nil {
			return nil, ResponseDecodingError{Operation: listRepositoriesOperationNameConstant, Cause: descriptorError}
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

// GetRepositoryProfile retrieves a repository's metadata, topics, and
// language statistics.
func (client *Client) GetRepositoryProfile(executionContext context.Context, repository repometa.OwnerRepository) (repometa.RepositoryDescriptor, error) {
	repositoryIdentifier := repository.String()
	if len(repository.Owner().String()) == 0 || len(repository.Repository().String()) == 0 {
		return repometa.RepositoryDescriptor{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	viewDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			repositoryViewJSONFieldsConstant,
		},
	}

	viewResult, viewError := client.executor.ExecuteGitHubCLI(executionContext, viewDetails)
	if viewError != nil {
		return repometa.RepositoryDescriptor{}, OperationError{Operation: repositoryProfileOperationNameConstant, Cause: viewError}
	}

	var payload repositoryPayload
	if decodingError := json.Unmarshal([]byte(viewResult.StandardOutput), &payload); decodingError != nil {
		return repometa.RepositoryDescriptor{}, ResponseDecodingError{Operation: repositoryProfileOperationNameConstant, Cause: decodingError}
	}
	descriptor, descriptorError := payload.toDescriptor()
	if descriptorError != nil {
		return repometa.RepositoryDescriptor{}, ResponseDecodingError{Operation: repositoryProfileOperationNameConstant, Cause: descriptorError}
	}

	languages, languagesError := client.fetchLanguages(executionContext, repositoryIdentifier)
	if languagesError != nil {
		return repometa.RepositoryDescriptor{}, languagesError
	}
	descriptor.Languages = languages

	return descriptor, nil
}

func (client *Client) fetchLanguages(executionContext context.Context, repositoryIdentifier string) ([]repometa.LanguageWeight, error) {
	languagesDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(languagesEndpointTemplateConstant, repositoryIdentifier),
		},
	}

	languagesResult, languagesError := client.executor.ExecuteGitHubCLI(executionContext, languagesDetails)
	if languagesError != nil {
		return nil, OperationError{Operation: repositoryProfileOperationNameConstant, Cause: languagesError}
	}

	var languageBytes map[string]int64
	if decodingError := json.Unmarshal([]byte(languagesResult.StandardOutput), &languageBytes); decodingError != nil {
		return nil, ResponseDecodingError{Operation: repositoryProfileOperationNameConstant, Cause: decodingError}
	}

	languages := make([]repometa.LanguageWeight, 0, len(languageBytes))
	for languageName, byteCount := range languageBytes {
		languages = append(languages, repometa.LanguageWeight{Name: languageName, Bytes: byteCount})
	}
	return languages, nil
}

// GetReadme retrieves a repository's README in raw form. A missing README is
// reported through the found flag, not as an error.
func (client *Client) GetReadme(executionContext context.Context, repository repometa.OwnerRepository) (string, bool, error) {
	repositoryIdentifier := repository.String()
	if len(repository.Owner().String()) == 0 || len(repository.Repository().String()) == 0 {
		return "", false, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(readmeEndpointTemplateConstant, repositoryIdentifier),
			headerFlagConstant,
			rawAcceptHeaderConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		if isNotFoundFailure(executionError) {
			return "", false, nil
		}
		return "", false, OperationError{Operation: readmeOperationNameConstant, Cause: executionError}
	}

	return executionResult.StandardOutput, true, nil
}

// isNotFoundFailure recognizes gh api failures caused by a 404 response.
func isNotFoundFailure(executionError error) bool {
	var commandFailed execshell.CommandFailedError
	if !errors.As(executionError, &commandFailed) {
		return false
	}
	standardError := commandFailed.Result.StandardError
	return strings.Contains(standardError, notFoundMarkerConstant) || strings.Contains(standardError, notFoundStatusTextConstant)
}

// UpdateDescription replaces a repository's description using a PATCH
// request against the repository endpoint.
func (client *Client) UpdateDescription(executionContext context.Context, repository repometa.OwnerRepository, description string) error {
	repositoryIdentifier := repository.String()
	if len(repository.Owner().String()) == 0 || len(repository.Repository().String()) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(repositoryEndpointTemplateConstant, repositoryIdentifier),
			methodFlagConstant,
			httpMethodPatchConstant,
			fieldFlagConstant,
			fmt.Sprintf(descriptionFieldTemplateConstant, description),
		},
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: updateDescriptionOperationNameConstant, Cause: executionError}
	}
	return nil
}

// UpdateTopics replaces a repository's full topic list using a PUT request
// against the topics endpoint.
func (client *Client) UpdateTopics(executionContext context.Context, repository repometa.OwnerRepository, topics []string) error {
	repositoryIdentifier := repository.String()
	if len(repository.Owner().String()) == 0 || len(repository.Repository().String()) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payload := struct {
		Names []string `json:"names"`
	}{Names: topics}
	if payload.Names == nil {
		payload.Names = []string{}
	}

	payloadBytes, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return PayloadEncodingError{Operation: updateTopicsOperationNameConstant, Cause: encodingError}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(topicsEndpointTemplateConstant, repositoryIdentifier),
			methodFlagConstant,
			httpMethodPutConstant,
			inputFlagConstant,
			stdinReferenceConstant,
			headerFlagConstant,
			topicsAcceptHeaderConstant,
		},
		StandardInput: payloadBytes,
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: updateTopicsOperationNameConstant, Cause: executionError}
	}
	return nil
}
