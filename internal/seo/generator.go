package seo

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/temirov/reposeo/internal/analyzer"
	"github.com/temirov/reposeo/internal/providers"
	"github.com/temirov/reposeo/internal/repometa"
)

const (
	// DefaultMaximumDescriptionLength bounds generated descriptions to the
	// length GitHub renders without truncation in most listings.
	DefaultMaximumDescriptionLength = 150

	truncationMarkerConstant = "…"
)

// Content is the publishable outcome of a generation run.
type Content struct {
	Description  string
	Topics       []string
	ProviderName string
}

// Configuration carries generation bounds.
type Configuration struct {
	MaximumDescriptionLength int    `mapstructure:"maximum_description_length"`
	StyleHint                string `mapstructure:"style_hint"`
}

// sanitize applies defaults to unset values.
func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	if sanitized.MaximumDescriptionLength <= 0 {
		sanitized.MaximumDescriptionLength = DefaultMaximumDescriptionLength
	}
	return sanitized
}

// Generator produces publishable content through a single provider. Fallback
// between providers is the caller's policy, not the generator's.
type Generator struct {
	provider      providers.Provider
	configuration Configuration
}

// NewGenerator builds a Generator bound to one provider.
func NewGenerator(provider providers.Provider, configuration Configuration) *Generator {
	return &Generator{provider: provider, configuration: configuration.sanitize()}
}

// ProviderName reports which backend the generator uses.
func (generator *Generator) ProviderName() string {
	return generator.provider.Name()
}

// Generate asks the provider for a description and topics, then normalizes
// both to GitHub's constraints. Topic suggestions that normalize to nothing
// fall back to a baseline derived from the analysis so a repository never
// ends a successful run topicless.
func (generator *Generator) Generate(executionContext context.Context, descriptor repometa.RepositoryDescriptor, analysis analyzer.Analysis) (Content, error) {
	request := providers.Request{
		Descriptor:          descriptor,
		Analysis:            analysis,
		MaximumOutputLength: generator.configuration.MaximumDescriptionLength,
		MaximumTopicCount:   MaximumTopicCount,
		StyleHint:           generator.configuration.StyleHint,
	}

	description, descriptionError := generator.provider.GenerateDescription(executionContext, request)
	if descriptionError != nil {
		return Content{}, descriptionError
	}

	rawTopics, topicsError := generator.provider.SuggestTopics(executionContext, request)
	if topicsError != nil {
		return Content{}, topicsError
	}

	topics := NormalizeTopicList(rawTopics)
	if len(topics) == 0 {
		topics = NormalizeTopicList(BaselineTopics(analysis))
	}

	return Content{
		Description:  TruncateDescription(description, generator.configuration.MaximumDescriptionLength),
		Topics:       topics,
		ProviderName: generator.provider.Name(),
	}, nil
}

// BaselineTopics derives a minimal topic set from analysis signals alone.
func BaselineTopics(analysis analyzer.Analysis) []string {
	baseline := make([]string, 0, 2)
	if len(analysis.PrimaryLanguage) > 0 {
		baseline = append(baseline, strings.ToLower(analysis.PrimaryLanguage))
	}
	if len(analysis.PurposeTag) > 0 {
		baseline = append(baseline, analysis.PurposeTag)
	}
	return baseline
}

// TruncateDescription collapses whitespace and bounds the text to the given
// rune length, cutting at the last word boundary and appending a truncation
// marker when content is removed.
func TruncateDescription(description string, maximumLength int) string {
	collapsedDescription := strings.Join(strings.Fields(description), " ")
	if utf8.RuneCountInString(collapsedDescription) <= maximumLength {
		return collapsedDescription
	}

	markerLength := utf8.RuneCountInString(truncationMarkerConstant)
	budget := maximumLength - markerLength
	if budget <= 0 {
		return strings.TrimSpace(string([]rune(collapsedDescription)[:maximumLength]))
	}

	descriptionRunes := []rune(collapsedDescription)
	truncatedText := string(descriptionRunes[:budget])
	cutSplitsWord := descriptionRunes[budget] != ' '
	if lastSpaceIndex := strings.LastIndex(truncatedText, " "); cutSplitsWord && lastSpaceIndex > 0 {
		truncatedText = truncatedText[:lastSpaceIndex]
	}
	return strings.TrimRight(truncatedText, " ,.;:") + truncationMarkerConstant
}
