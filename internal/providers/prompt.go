package providers

import (
	"fmt"
	"strings"
)

const (
	descriptionPromptTemplateConstant = "Write a single-sentence description for the GitHub repository %s/%s.\n" +
		"Primary language: %s. Purpose: %s. Frameworks: %s. Keywords: %s.\n" +
		"Current description: %q.\n" +
		"Respond with the description text only, at most %d characters, no quotes, no trailing period commentary.%s"
	topicsPromptTemplateConstant = "Suggest GitHub topics for the repository %s/%s.\n" +
		"Primary language: %s. Purpose: %s. Frameworks: %s. Keywords: %s.\n" +
		"Respond with at most %d topics, one per line, lowercase, words separated by hyphens, no numbering, no commentary."
	styleHintTemplateConstant = "\nStyle hint: %s."
	noneMarkerConstant        = "none"
)

// BuildDescriptionPrompt renders the description prompt for a request.
func BuildDescriptionPrompt(request Request) string {
	styleHintSuffix := ""
	if len(strings.TrimSpace(request.StyleHint)) > 0 {
		styleHintSuffix = fmt.Sprintf(styleHintTemplateConstant, strings.TrimSpace(request.StyleHint))
	}
	return fmt.Sprintf(
		descriptionPromptTemplateConstant,
		request.Descriptor.Owner,
		request.Descriptor.Name,
		orNone(request.Analysis.PrimaryLanguage),
		orNone(request.Analysis.PurposeTag),
		joinOrNone(request.Analysis.Frameworks),
		joinOrNone(request.Analysis.Keywords),
		request.Descriptor.Description,
		request.MaximumOutputLength,
		styleHintSuffix,
	)
}

// BuildTopicsPrompt renders the topic-suggestion prompt for a request.
func BuildTopicsPrompt(request Request) string {
	return fmt.Sprintf(
		topicsPromptTemplateConstant,
		request.Descriptor.Owner,
		request.Descriptor.Name,
		orNone(request.Analysis.PrimaryLanguage),
		orNone(request.Analysis.PurposeTag),
		joinOrNone(request.Analysis.Frameworks),
		joinOrNone(request.Analysis.Keywords),
		request.MaximumTopicCount,
	)
}

func orNone(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return noneMarkerConstant
	}
	return value
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return noneMarkerConstant
	}
	return strings.Join(values, ", ")
}

// StripCodeFences removes surrounding Markdown code fences that chat models
// frequently wrap around plain-text answers.
func StripCodeFences(responseText string) string {
	trimmedText := strings.TrimSpace(responseText)
	if !strings.HasPrefix(trimmedText, "```") {
		return trimmedText
	}
	trimmedText = strings.TrimPrefix(trimmedText, "```")
	if newlineIndex := strings.Index(trimmedText, "\n"); newlineIndex >= 0 && !strings.ContainsAny(trimmedText[:newlineIndex], " \t") {
		trimmedText = trimmedText[newlineIndex+1:]
	}
	trimmedText = strings.TrimSuffix(strings.TrimSpace(trimmedText), "```")
	return strings.TrimSpace(trimmedText)
}

// ParseDescriptionResponse normalizes a model's description answer to a
// single line.
func ParseDescriptionResponse(responseText string) string {
	cleanedText := StripCodeFences(responseText)
	cleanedText = strings.Trim(cleanedText, "\"'")
	if newlineIndex := strings.Index(cleanedText, "\n"); newlineIndex >= 0 {
		cleanedText = cleanedText[:newlineIndex]
	}
	return strings.TrimSpace(cleanedText)
}

// ParseTopicsResponse splits a model's topic answer into candidate entries,
// tolerating comma-separated as well as line-separated answers and list
// bullets. Normalization to the GitHub topic charset happens downstream.
func ParseTopicsResponse(responseText string) []string {
	cleanedText := StripCodeFences(responseText)
	separators := func(character rune) bool {
		return character == '\n' || character == ','
	}
	rawEntries := strings.FieldsFunc(cleanedText, separators)
	topics := make([]string, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		entry := stripListMarker(strings.TrimSpace(rawEntry))
		entry = strings.Trim(entry, "\"'`")
		if len(entry) == 0 {
			continue
		}
		topics = append(topics, entry)
	}
	return topics
}

// stripListMarker removes a leading bullet or "1." style ordinal without
// touching topics that legitimately begin with a digit.
func stripListMarker(entry string) string {
	for _, bulletPrefix := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(entry, bulletPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(entry, bulletPrefix))
		}
	}
	dotIndex := strings.Index(entry, ". ")
	if dotIndex > 0 && dotIndex <= 2 && strings.TrimLeft(entry[:dotIndex], "0123456789") == "" {
		return strings.TrimSpace(entry[dotIndex+2:])
	}
	return entry
}
