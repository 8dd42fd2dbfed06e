package analyzer

import (
	"sort"
	"strings"
	"unicode"
)

const (
	defaultPurposeTagConstant     = "software-project"
	markdownHeadingPrefixConstant = "#"
	markdownCodeFenceConstant     = "```"
)

// frameworkIndicator maps a README substring to the framework it signals.
// Matching is case-insensitive and first-match within each entry; an entry
// contributes at most once per document.
type frameworkIndicator struct {
	frameworkName string
	markers       []string
}

var frameworkIndicators = []frameworkIndicator{
	{frameworkName: "react", markers: []string{"react", "jsx", "create-react-app"}},
	{frameworkName: "vue", markers: []string{"vue.js", "vuejs", "vue 3", "nuxt"}},
	{frameworkName: "angular", markers: []string{"angular", "ng serve"}},
	{frameworkName: "django", markers: []string{"django", "manage.py"}},
	{frameworkName: "flask", markers: []string{"flask"}},
	{frameworkName: "fastapi", markers: []string{"fastapi", "uvicorn"}},
	{frameworkName: "rails", markers: []string{"ruby on rails", "rails server"}},
	{frameworkName: "spring", markers: []string{"spring boot", "spring framework"}},
	{frameworkName: "express", markers: []string{"express.js", "expressjs"}},
	{frameworkName: "nextjs", markers: []string{"next.js", "nextjs"}},
	{frameworkName: "pytorch", markers: []string{"pytorch", "torch.nn"}},
	{frameworkName: "tensorflow", markers: []string{"tensorflow", "keras"}},
	{frameworkName: "kubernetes", markers: []string{"kubernetes", "kubectl", "helm chart"}},
	{frameworkName: "docker", markers: []string{"dockerfile", "docker-compose", "docker compose"}},
	{frameworkName: "terraform", markers: []string{"terraform"}},
}

// purposeRule maps README vocabulary to a hyphenated purpose tag. Rules are
// evaluated in order; the first match wins.
type purposeRule struct {
	purposeTag string
	markers    []string
}

var purposeRules = []purposeRule{
	{purposeTag: "cli-tool", markers: []string{"command-line", "command line", "cli tool", "terminal tool", "usage:"}},
	{purposeTag: "web-application", markers: []string{"web app", "web application", "webapp", "frontend", "front-end"}},
	{purposeTag: "api-service", markers: []string{"rest api", "graphql", "api server", "http api", "endpoint"}},
	{purposeTag: "library", markers: []string{"library", "sdk", "client library", "package for"}},
	{purposeTag: "framework", markers: []string{"framework for", "a framework"}},
	{purposeTag: "automation", markers: []string{"automation", "automate", "bot ", "scheduler", "cron"}},
	{purposeTag: "data-processing", markers: []string{"data pipeline", "etl", "data processing", "parser", "scraper"}},
	{purposeTag: "machine-learning", markers: []string{"machine learning", "deep learning", "neural network", "model training"}},
	{purposeTag: "developer-tools", markers: []string{"developer tool", "devtool", "linter", "formatter", "code generator"}},
	{purposeTag: "documentation", markers: []string{"documentation", "tutorial", "guide", "awesome list", "cheatsheet"}},
}

// detectFrameworks returns framework names whose markers appear in the
// README, in indicator-table order.
func detectFrameworks(readmeContent string) []string {
	if len(readmeContent) == 0 {
		return nil
	}
	loweredContent := strings.ToLower(readmeContent)
	detected := make([]string, 0, 4)
	for _, indicator := range frameworkIndicators {
		for _, marker := range indicator.markers {
			if strings.Contains(loweredContent, marker) {
				detected = append(detected, indicator.frameworkName)
				break
			}
		}
	}
	return detected
}

// inferPurpose classifies the repository from README headings and the leading
// body text, falling back to a generic tag when no rule matches.
func inferPurpose(readmeContent string, descriptionText string) string {
	loweredCandidate := strings.ToLower(descriptionText + "\n" + leadingReadmeText(readmeContent))
	for _, rule := range purposeRules {
		for _, marker := range rule.markers {
			if strings.Contains(loweredCandidate, marker) {
				return rule.purposeTag
			}
		}
	}
	return defaultPurposeTagConstant
}

// leadingReadmeText collects the headings plus the first non-heading
// paragraph, which carry most of the classification signal.
func leadingReadmeText(readmeContent string) string {
	if len(readmeContent) == 0 {
		return ""
	}
	var builder strings.Builder
	paragraphCaptured := false
	insideCodeFence := false
	for _, line := range strings.Split(readmeContent, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if strings.HasPrefix(trimmedLine, markdownCodeFenceConstant) {
			insideCodeFence = !insideCodeFence
			continue
		}
		if insideCodeFence {
			continue
		}
		if strings.HasPrefix(trimmedLine, markdownHeadingPrefixConstant) {
			builder.WriteString(trimmedLine)
			builder.WriteString("\n")
			continue
		}
		if len(trimmedLine) > 0 && !paragraphCaptured {
			builder.WriteString(trimmedLine)
			builder.WriteString("\n")
			continue
		}
		if len(trimmedLine) == 0 && builder.Len() > 0 {
			paragraphCaptured = true
		}
	}
	return builder.String()
}

// weightedToken tracks a keyword candidate's accumulated score and the order
// in which it first appeared.
type weightedToken struct {
	token      string
	score      float64
	firstIndex int
}

// extractKeywords scores README tokens and returns the top candidates.
// Heading tokens score higher than body tokens; ties break on first
// occurrence so earlier document positions win.
func extractKeywords(readmeContent string, configuration Configuration) []string {
	if len(readmeContent) == 0 {
		return nil
	}
	stopWords := configuration.stopWordSet()
	scores := make(map[string]*weightedToken)
	occurrenceIndex := 0
	insideCodeFence := false
	for _, line := range strings.Split(readmeContent, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if strings.HasPrefix(trimmedLine, markdownCodeFenceConstant) {
			insideCodeFence = !insideCodeFence
			continue
		}
		if insideCodeFence {
			continue
		}
		tokenWeight := configuration.BodyTokenWeight
		if strings.HasPrefix(trimmedLine, markdownHeadingPrefixConstant) {
			tokenWeight = configuration.HeadingTokenWeight
		}
		for _, token := range tokenizeLine(trimmedLine) {
			occurrenceIndex++
			if len(token) < configuration.MinimumKeywordLength {
				continue
			}
			if _, isStopWord := stopWords[token]; isStopWord {
				continue
			}
			entry, seen := scores[token]
			if !seen {
				entry = &weightedToken{token: token, firstIndex: occurrenceIndex}
				scores[token] = entry
			}
			entry.score += tokenWeight
		}
	}

	ranked := make([]*weightedToken, 0, len(scores))
	for _, entry := range scores {
		ranked = append(ranked, entry)
	}
	sort.Slice(ranked, func(leftIndex, rightIndex int) bool {
		if ranked[leftIndex].score != ranked[rightIndex].score {
			return ranked[leftIndex].score > ranked[rightIndex].score
		}
		return ranked[leftIndex].firstIndex < ranked[rightIndex].firstIndex
	})

	limit := configuration.KeywordLimit
	if limit > len(ranked) {
		limit = len(ranked)
	}
	keywords := make([]string, 0, limit)
	for index := 0; index < limit; index++ {
		keywords = append(keywords, ranked[index].token)
	}
	return keywords
}

// tokenizeLine lowercases a line and splits it into alphanumeric tokens,
// keeping internal hyphens so compound terms like "command-line" survive.
func tokenizeLine(line string) []string {
	loweredLine := strings.ToLower(line)
	tokens := strings.FieldsFunc(loweredLine, func(character rune) bool {
		if unicode.IsLetter(character) || unicode.IsDigit(character) {
			return false
		}
		return character != '-'
	})
	cleaned := make([]string, 0, len(tokens))
	for _, token := range tokens {
		trimmedToken := strings.Trim(token, "-")
		if len(trimmedToken) == 0 {
			continue
		}
		cleaned = append(cleaned, trimmedToken)
	}
	return cleaned
}

// hasSection reports whether the README contains a heading whose text
// includes any of the provided markers.
func hasSection(readmeContent string, markers ...string) bool {
	for _, line := range strings.Split(readmeContent, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmedLine, markdownHeadingPrefixConstant) {
			continue
		}
		loweredHeading := strings.ToLower(trimmedLine)
		for _, marker := range markers {
			if strings.Contains(loweredHeading, marker) {
				return true
			}
		}
	}
	return false
}
