// Package local implements a deterministic rule-based provider that needs no
// network access or credentials. It is the fallback target when remote
// backends are unavailable.
package local

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/reposeo/internal/providers"
)

const (
	// ProviderName identifies this backend in the registry.
	ProviderName = "local"

	descriptionWithLanguageTemplateConstant    = "A %s written in %s"
	descriptionWithoutLanguageTemplateConstant = "A %s"
	frameworkSuffixTemplateConstant            = " using %s"
	maximumKeywordTopicsConstant               = 5
)

// purposePhrases maps purpose tags to readable description fragments.
var purposePhrases = map[string]string{
	"cli-tool":         "command-line tool",
	"web-application":  "web application",
	"api-service":      "API service",
	"library":          "library",
	"framework":        "framework",
	"automation":       "automation tool",
	"data-processing":  "data processing tool",
	"machine-learning": "machine learning project",
	"developer-tools":  "developer tool",
	"documentation":    "documentation project",
	"software-project": "software project",
}

// Provider generates content from analysis signals alone. Identical requests
// always produce identical output.
type Provider struct{}

// NewProvider constructs the rule-based provider. The configuration carries
// no settings this backend uses.
func NewProvider(_ providers.Config) (providers.Provider, error) {
	return &Provider{}, nil
}

// Name returns the registry name of the backend.
func (provider *Provider) Name() string {
	return ProviderName
}

// GenerateDescription composes a description from the purpose tag, primary
// language, and detected frameworks.
func (provider *Provider) GenerateDescription(_ context.Context, request providers.Request) (string, error) {
	purposePhrase, known := purposePhrases[request.Analysis.PurposeTag]
	if !known {
		purposePhrase = purposePhrases["software-project"]
	}

	description := fmt.Sprintf(descriptionWithoutLanguageTemplateConstant, purposePhrase)
	if len(request.Analysis.PrimaryLanguage) > 0 {
		description = fmt.Sprintf(descriptionWithLanguageTemplateConstant, purposePhrase, request.Analysis.PrimaryLanguage)
	}
	if len(request.Analysis.Frameworks) > 0 {
		description += fmt.Sprintf(frameworkSuffixTemplateConstant, strings.Join(request.Analysis.Frameworks, " and "))
	}
	description += "."

	return description, nil
}

// SuggestTopics combines the primary language, purpose tag, frameworks, and
// leading keywords. Ordering is fixed so repeated runs suggest the same list.
func (provider *Provider) SuggestTopics(_ context.Context, request providers.Request) ([]string, error) {
	topics := make([]string, 0, 8)
	if len(request.Analysis.PrimaryLanguage) > 0 {
		topics = append(topics, strings.ToLower(request.Analysis.PrimaryLanguage))
	}
	if len(request.Analysis.PurposeTag) > 0 {
		topics = append(topics, request.Analysis.PurposeTag)
	}
	topics = append(topics, request.Analysis.Frameworks...)
	keywordCount := len(request.Analysis.Keywords)
	if keywordCount > maximumKeywordTopicsConstant {
		keywordCount = maximumKeywordTopicsConstant
	}
	topics = append(topics, request.Analysis.Keywords[:keywordCount]...)
	return topics, nil
}
