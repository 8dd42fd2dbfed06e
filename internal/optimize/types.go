package optimize

import "time"

// CommandOptions captures the fully resolved settings for one optimization
// run after flags and configuration have been merged.
type CommandOptions struct {
	Owner                    string
	Repository               string
	ProviderName             string
	Limit                    int
	Apply                    bool
	StopOnError              bool
	FallbackLocal            bool
	SkipForks                bool
	SkipArchived             bool
	ReportPath               string
	StyleHint                string
	Delay                    time.Duration
	MaximumDescriptionLength int
}

// FieldChange records a before/after pair for a single metadata field.
type FieldChange struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// TopicsChange records the topic list before and after optimization.
type TopicsChange struct {
	Before []string `json:"before"`
	After  []string `json:"after"`
}

// RepositoryReport describes the outcome of optimizing one repository.
type RepositoryReport struct {
	Repository   string       `json:"repository"`
	Description  FieldChange  `json:"description"`
	Topics       TopicsChange `json:"topics"`
	ProviderName string       `json:"provider"`
	Applied      bool         `json:"applied"`
	ErrorMessage string       `json:"error,omitempty"`
}

// Changed reports whether the optimization produced any metadata difference.
func (report RepositoryReport) Changed() bool {
	if report.Description.Before != report.Description.After {
		return true
	}
	if len(report.Topics.Before) != len(report.Topics.After) {
		return true
	}
	for topicIndex, beforeTopic := range report.Topics.Before {
		if beforeTopic != report.Topics.After[topicIndex] {
			return true
		}
	}
	return false
}
