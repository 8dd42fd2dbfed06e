package analyzer

import (
	"sort"
	"strings"

	"github.com/temirov/reposeo/internal/repometa"
)

// Analysis summarizes the signals extracted from a repository profile.
type Analysis struct {
	PrimaryLanguage string
	Languages       []string
	Frameworks      []string
	PurposeTag      string
	Keywords        []string
	QualityScore    int
	HasReadme       bool
	HasDescription  bool
	HasLicense      bool
	HasExamples     bool
}

// Service analyzes repository metadata and README content. Analysis is a pure
// computation over the descriptor; the Service holds tuning configuration
// only.
type Service struct {
	configuration Configuration
}

// NewService builds an analyzer Service with sanitized configuration.
func NewService(configuration Configuration) *Service {
	return &Service{configuration: configuration.sanitize()}
}

// Analyze inspects the repository descriptor and returns the extracted
// signals. A missing README degrades the analysis to metadata-only signals
// rather than producing an error.
func (service *Service) Analyze(descriptor repometa.RepositoryDescriptor) Analysis {
	analysis := Analysis{
		PrimaryLanguage: primaryLanguage(descriptor.Languages),
		Languages:       languageNames(descriptor.Languages),
		HasReadme:       descriptor.HasReadme(),
		HasDescription:  descriptor.HasDescription(),
	}

	if analysis.HasReadme {
		analysis.Frameworks = detectFrameworks(descriptor.Readme)
		analysis.Keywords = extractKeywords(descriptor.Readme, service.configuration)
		analysis.HasLicense = hasSection(descriptor.Readme, "license", "licence")
		analysis.HasExamples = hasSection(descriptor.Readme, "example", "usage", "quick start", "quickstart", "getting started")
	}
	analysis.PurposeTag = inferPurpose(descriptor.Readme, descriptor.Description)

	analysis.QualityScore = service.scoreQuality(descriptor, analysis)

	return analysis
}

// scoreQuality combines presence signals into a 0-100 score using the
// configured weights.
func (service *Service) scoreQuality(descriptor repometa.RepositoryDescriptor, analysis Analysis) int {
	weights := service.configuration.QualityWeights
	earned := 0
	if analysis.HasDescription {
		earned += weights.Description
	}
	if len(descriptor.Topics) > 0 {
		earned += weights.Topics
	}
	if analysis.HasReadme {
		earned += weights.AnyReadme
		if len(descriptor.Readme) >= service.configuration.SubstantialReadmeLength {
			earned += weights.SubstantialReadme
		}
	}
	if analysis.HasLicense {
		earned += weights.LicenseSection
	}
	if analysis.HasExamples {
		earned += weights.ExamplesSection
	}

	total := weights.total()
	if total <= 0 {
		return 0
	}
	return earned * 100 / total
}

// primaryLanguage selects the language with the largest byte weight. Equal
// weights break toward the lexically smaller name so the result is stable
// regardless of input order.
func primaryLanguage(languages []repometa.LanguageWeight) string {
	selectedName := ""
	selectedBytes := int64(-1)
	for _, language := range languages {
		if language.Bytes > selectedBytes {
			selectedName = language.Name
			selectedBytes = language.Bytes
			continue
		}
		if language.Bytes == selectedBytes && strings.Compare(language.Name, selectedName) < 0 {
			selectedName = language.Name
		}
	}
	return selectedName
}

// languageNames returns the language names ordered by descending byte weight
// with lexical ascending tie-breaks.
func languageNames(languages []repometa.LanguageWeight) []string {
	if len(languages) == 0 {
		return nil
	}
	ordered := make([]repometa.LanguageWeight, len(languages))
	copy(ordered, languages)
	sort.Slice(ordered, func(leftIndex, rightIndex int) bool {
		if ordered[leftIndex].Bytes != ordered[rightIndex].Bytes {
			return ordered[leftIndex].Bytes > ordered[rightIndex].Bytes
		}
		return ordered[leftIndex].Name < ordered[rightIndex].Name
	})
	names := make([]string, 0, len(ordered))
	for _, language := range ordered {
		names = append(names, language.Name)
	}
	return names
}
