package analyzer

import "strings"

const (
	defaultKeywordLimitConstant            = 10
	defaultHeadingTokenWeightConstant      = 3.0
	defaultBodyTokenWeightConstant         = 1.0
	defaultMinimumKeywordLengthConstant    = 4
	defaultSubstantialReadmeLengthConstant = 500
)

// QualityWeights distributes the content-quality score across its input
// signals. The defaults are a policy choice carried from earlier tooling,
// not a tuned model; deployments may rebalance them freely as long as the
// weights sum to 100.
type QualityWeights struct {
	Description        int `mapstructure:"description"`
	Topics             int `mapstructure:"topics"`
	SubstantialReadme  int `mapstructure:"substantial_readme"`
	AnyReadme          int `mapstructure:"any_readme"`
	LicenseSection     int `mapstructure:"license_section"`
	ExamplesSection    int `mapstructure:"examples_section"`
}

// DefaultQualityWeights returns the baseline scoring policy.
func DefaultQualityWeights() QualityWeights {
	return QualityWeights{
		Description:       25,
		Topics:            20,
		SubstantialReadme: 20,
		AnyReadme:         15,
		LicenseSection:    10,
		ExamplesSection:   10,
	}
}

// total sums every configured weight; used to normalize scores to 0-100.
func (weights QualityWeights) total() int {
	return weights.Description + weights.Topics + weights.SubstantialReadme + weights.AnyReadme + weights.LicenseSection + weights.ExamplesSection
}

// Configuration captures analyzer tuning knobs. The stop-word set and the
// quality weights are configurable policy, not fixed behavior.
type Configuration struct {
	KeywordLimit            int            `mapstructure:"keyword_limit"`
	MinimumKeywordLength    int            `mapstructure:"minimum_keyword_length"`
	HeadingTokenWeight      float64        `mapstructure:"heading_token_weight"`
	BodyTokenWeight         float64        `mapstructure:"body_token_weight"`
	SubstantialReadmeLength int            `mapstructure:"substantial_readme_length"`
	AdditionalStopWords     []string       `mapstructure:"additional_stop_words"`
	QualityWeights          QualityWeights `mapstructure:"quality_weights"`
}

// DefaultConfiguration returns baseline analyzer settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		KeywordLimit:            defaultKeywordLimitConstant,
		MinimumKeywordLength:    defaultMinimumKeywordLengthConstant,
		HeadingTokenWeight:      defaultHeadingTokenWeightConstant,
		BodyTokenWeight:         defaultBodyTokenWeightConstant,
		SubstantialReadmeLength: defaultSubstantialReadmeLengthConstant,
		QualityWeights:          DefaultQualityWeights(),
	}
}

// sanitize applies defaults to unset or invalid configuration values.
func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	defaults := DefaultConfiguration()

	if sanitized.KeywordLimit <= 0 {
		sanitized.KeywordLimit = defaults.KeywordLimit
	}
	if sanitized.MinimumKeywordLength <= 0 {
		sanitized.MinimumKeywordLength = defaults.MinimumKeywordLength
	}
	if sanitized.HeadingTokenWeight <= 0 {
		sanitized.HeadingTokenWeight = defaults.HeadingTokenWeight
	}
	if sanitized.BodyTokenWeight <= 0 {
		sanitized.BodyTokenWeight = defaults.BodyTokenWeight
	}
	if sanitized.SubstantialReadmeLength <= 0 {
		sanitized.SubstantialReadmeLength = defaults.SubstantialReadmeLength
	}
	if sanitized.QualityWeights.total() <= 0 {
		sanitized.QualityWeights = defaults.QualityWeights
	}

	sanitized.AdditionalStopWords = sanitizeStopWords(configuration.AdditionalStopWords)

	return sanitized
}

func sanitizeStopWords(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.ToLower(strings.TrimSpace(raw[index]))
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

// stopWordSet merges the built-in stop words with configured additions.
func (configuration Configuration) stopWordSet() map[string]struct{} {
	stopWords := make(map[string]struct{}, len(defaultStopWords)+len(configuration.AdditionalStopWords))
	for _, stopWord := range defaultStopWords {
		stopWords[stopWord] = struct{}{}
	}
	for _, stopWord := range configuration.AdditionalStopWords {
		stopWords[stopWord] = struct{}{}
	}
	return stopWords
}

// defaultStopWords lists tokens excluded from keyword extraction. The set is
// a policy default, inherited rather than derived from corpus data.
var defaultStopWords = []string{
	"the", "and", "for", "with", "this", "that", "from", "then", "than",
	"your", "you", "are", "can", "will", "have", "has", "into", "when",
	"where", "what", "which", "also", "more", "some", "such", "using",
	"use", "used", "how", "its", "was", "were", "been", "being", "about",
	"after", "before", "between", "each", "other", "there", "these",
	"those", "they", "them", "their", "not", "but", "all", "any", "out",
	"our", "via", "per", "may", "must", "should",
}
