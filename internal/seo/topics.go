package seo

import "strings"

const (
	// MaximumTopicLength is GitHub's per-topic character ceiling.
	MaximumTopicLength = 50
	// MaximumTopicCount is GitHub's per-repository topic ceiling.
	MaximumTopicCount = 20
)

// NormalizeTopic rewrites a raw suggestion into GitHub's topic format:
// lowercase, alphanumeric runs separated by single hyphens, no leading or
// trailing hyphen. It returns false when nothing valid remains or the result
// exceeds the length ceiling.
func NormalizeTopic(rawTopic string) (string, bool) {
	loweredTopic := strings.ToLower(strings.TrimSpace(rawTopic))
	var builder strings.Builder
	previousWasHyphen := true
	for _, character := range loweredTopic {
		switch {
		case character >= 'a' && character <= 'z', character >= '0' && character <= '9':
			builder.WriteRune(character)
			previousWasHyphen = false
		case character == '-' || character == '_' || character == ' ' || character == '.':
			if !previousWasHyphen {
				builder.WriteByte('-')
				previousWasHyphen = true
			}
		}
	}
	normalizedTopic := strings.TrimRight(builder.String(), "-")
	if len(normalizedTopic) == 0 || len(normalizedTopic) > MaximumTopicLength {
		return "", false
	}
	return normalizedTopic, true
}

// NormalizeTopicList normalizes every suggestion, drops entries that do not
// survive normalization, removes duplicates keeping first-seen order, and
// caps the result at the topic count ceiling.
func NormalizeTopicList(rawTopics []string) []string {
	normalizedTopics := make([]string, 0, len(rawTopics))
	seenTopics := make(map[string]struct{}, len(rawTopics))
	for _, rawTopic := range rawTopics {
		normalizedTopic, valid := NormalizeTopic(rawTopic)
		if !valid {
			continue
		}
		if _, alreadySeen := seenTopics[normalizedTopic]; alreadySeen {
			continue
		}
		seenTopics[normalizedTopic] = struct{}{}
		normalizedTopics = append(normalizedTopics, normalizedTopic)
		if len(normalizedTopics) == MaximumTopicCount {
			break
		}
	}
	return normalizedTopics
}
