package repometa

import (
	"fmt"
	"strings"
)

const (
	ownerRepositorySeparatorConstant       = "/"
	emptyValueMessageConstant              = "value must not be empty"
	embeddedWhitespaceMessageConstant      = "value must not contain whitespace"
	embeddedSeparatorMessageConstant       = "value must not contain '/'"
	ownerRepositoryShapeMessageConstant    = "value must match owner/repository"
	identityValidationErrorTemplateConstat = "invalid %s: %s"
	ownerFieldLabelConstant                = "owner"
	repositoryFieldLabelConstant           = "repository"
	ownerRepositoryFieldLabelConstant      = "owner/repository"
)

// IdentityValidationError reports a rejected identity value.
type IdentityValidationError struct {
	FieldLabel string
	Message    string
}

// Error describes the invalid identity value.
func (validationError IdentityValidationError) Error() string {
	return fmt.Sprintf(identityValidationErrorTemplateConstat, validationError.FieldLabel, validationError.Message)
}

// OwnerSlug identifies a GitHub user or organization.
type OwnerSlug struct {
	value string
}

// NewOwnerSlug validates and constructs an OwnerSlug.
func NewOwnerSlug(candidate string) (OwnerSlug, error) {
	trimmedCandidate := strings.TrimSpace(candidate)
	if validationError := validateIdentityComponent(ownerFieldLabelConstant, trimmedCandidate); validationError != nil {
		return OwnerSlug{}, validationError
	}
	return OwnerSlug{value: trimmedCandidate}, nil
}

// String returns the validated owner value.
func (slug OwnerSlug) String() string {
	return slug.value
}

// RepositoryName identifies a repository within an owner namespace.
type RepositoryName struct {
	value string
}

// NewRepositoryName validates and constructs a RepositoryName.
func NewRepositoryName(candidate string) (RepositoryName, error) {
	trimmedCandidate := strings.TrimSpace(candidate)
	if validationError := validateIdentityComponent(repositoryFieldLabelConstant, trimmedCandidate); validationError != nil {
		return RepositoryName{}, validationError
	}
	return RepositoryName{value: trimmedCandidate}, nil
}

// String returns the validated repository name.
func (name RepositoryName) String() string {
	return name.value
}

// OwnerRepository pairs an owner with a repository name.
type OwnerRepository struct {
	owner      OwnerSlug
	repository RepositoryName
}

// NewOwnerRepository parses an "owner/repository" identifier.
func NewOwnerRepository(candidate string) (OwnerRepository, error) {
	trimmedCandidate := strings.TrimSpace(candidate)
	separatorIndex := strings.Count(trimmedCandidate, ownerRepositorySeparatorConstant)
	if separatorIndex != 1 {
		return OwnerRepository{}, IdentityValidationError{FieldLabel: ownerRepositoryFieldLabelConstant, Message: ownerRepositoryShapeMessageConstant}
	}

	components := strings.SplitN(trimmedCandidate, ownerRepositorySeparatorConstant, 2)
	ownerSlug, ownerError := NewOwnerSlug(components[0])
	if ownerError != nil {
		return OwnerRepository{}, ownerError
	}
	repositoryName, repositoryError := NewRepositoryName(components[1])
	if repositoryError != nil {
		return OwnerRepository{}, repositoryError
	}

	return OwnerRepository{owner: ownerSlug, repository: repositoryName}, nil
}

// JoinOwnerRepository combines validated identity components.
func JoinOwnerRepository(owner OwnerSlug, repository RepositoryName) OwnerRepository {
	return OwnerRepository{owner: owner, repository: repository}
}

// Owner returns the owner component.
func (ownerRepository OwnerRepository) Owner() OwnerSlug {
	return ownerRepository.owner
}

// Repository returns the repository component.
func (ownerRepository OwnerRepository) Repository() RepositoryName {
	return ownerRepository.repository
}

// String renders the canonical owner/repository identifier.
func (ownerRepository OwnerRepository) String() string {
	return ownerRepository.owner.String() + ownerRepositorySeparatorConstant + ownerRepository.repository.String()
}

func validateIdentityComponent(fieldLabel string, candidate string) error {
	if len(candidate) == 0 {
		return IdentityValidationError{FieldLabel: fieldLabel, Message: emptyValueMessageConstant}
	}
	if strings.ContainsAny(candidate, " \t\n\r") {
		return IdentityValidationError{FieldLabel: fieldLabel, Message: embeddedWhitespaceMessageConstant}
	}
	if strings.Contains(candidate, ownerRepositorySeparatorConstant) {
		return IdentityValidationError{FieldLabel: fieldLabel, Message: embeddedSeparatorMessageConstant}
	}
	return nil
}

// LanguageWeight pairs a language name with its byte weight reported by GitHub.
type LanguageWeight struct {
	Name  string
	Bytes int64
}

// RepositoryDescriptor is the immutable repository snapshot consumed by one
// optimization pass. Readme and Description are empty when absent upstream;
// absence is an expected degraded case, not an error.
type RepositoryDescriptor struct {
	Owner       OwnerSlug
	Name        RepositoryName
	Description string
	Topics      []string
	Languages   []LanguageWeight
	Readme      string
	StarCount   int
	IsFork      bool
	IsPrivate   bool
	IsArchived  bool
}

// OwnerRepository returns the descriptor's owner/repository identity.
func (descriptor RepositoryDescriptor) OwnerRepository() OwnerRepository {
	return JoinOwnerRepository(descriptor.Owner, descriptor.Name)
}

// HasReadme reports whether the snapshot carries README content.
func (descriptor RepositoryDescriptor) HasReadme() bool {
	return len(strings.TrimSpace(descriptor.Readme)) > 0
}

// HasDescription reports whether the snapshot carries a description.
func (descriptor RepositoryDescriptor) HasDescription() bool {
	return len(strings.TrimSpace(descriptor.Description)) > 0
}
