// Package gemini implements a provider backed by the Google Gemini API via
// the official generative-ai-go client.
package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/temirov/reposeo/internal/providers"
	"google.golang.org/api/option"
)

const (
	// ProviderName identifies this backend in the registry.
	ProviderName = "gemini"

	defaultGeminiModelConstant = "gemini-1.5-flash"
)

var errEmptyCandidates = errors.New("generation returned no candidates")

// generativeModel abstracts the genai model for testing.
type generativeModel interface {
	GenerateContent(executionContext context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Provider calls the Gemini generate-content endpoint.
type Provider struct {
	model  generativeModel
	config providers.Config
}

// NewProvider constructs the Gemini backend. The API key resolves from the
// configured environment variable at construction time.
func NewProvider(config providers.Config) (providers.Provider, error) {
	apiKey, credentialError := config.ResolveCredential(ProviderName)
	if credentialError != nil {
		return nil, credentialError
	}
	if len(config.Model) == 0 {
		config.Model = defaultGeminiModelConstant
	}

	client, clientError := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if clientError != nil {
		return nil, &providers.ConfigurationError{ProviderName: ProviderName, Message: clientError.Error()}
	}

	model := client.GenerativeModel(config.Model)
	model.SetTemperature(float32(config.Temperature))
	model.SetMaxOutputTokens(int32(config.MaxOutputTokens))

	return &Provider{model: model, config: config}, nil
}

// Name returns the registry name of the backend.
func (provider *Provider) Name() string {
	return ProviderName
}

// GenerateDescription asks the model for a single-sentence description.
func (provider *Provider) GenerateDescription(executionContext context.Context, request providers.Request) (string, error) {
	responseText, generationError := provider.generate(executionContext, providers.BuildDescriptionPrompt(request))
	if generationError != nil {
		return "", &providers.ProviderError{ProviderName: ProviderName, Operation: providers.DescriptionOperationName, Cause: generationError}
	}
	return providers.ParseDescriptionResponse(responseText), nil
}

// SuggestTopics asks the model for a topic list.
func (provider *Provider) SuggestTopics(executionContext context.Context, request providers.Request) ([]string, error) {
	responseText, generationError := provider.generate(executionContext, providers.BuildTopicsPrompt(request))
	if generationError != nil {
		return nil, &providers.ProviderError{ProviderName: ProviderName, Operation: providers.TopicsOperationName, Cause: generationError}
	}
	return providers.ParseTopicsResponse(responseText), nil
}

func (provider *Provider) generate(executionContext context.Context, prompt string) (string, error) {
	timedContext, cancelTimedContext := context.WithTimeout(executionContext, provider.config.RequestTimeout)
	defer cancelTimedContext()

	generationResponse, generationError := provider.model.GenerateContent(timedContext, genai.Text(prompt))
	if generationError != nil {
		return "", generationError
	}
	return collectResponseText(generationResponse)
}

// collectResponseText concatenates the text parts of the first candidate.
func collectResponseText(generationResponse *genai.GenerateContentResponse) (string, error) {
	if generationResponse == nil || len(generationResponse.Candidates) == 0 {
		return "", errEmptyCandidates
	}
	candidate := generationResponse.Candidates[0]
	if candidate.Content == nil {
		return "", errEmptyCandidates
	}
	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if textPart, isText := part.(genai.Text); isText {
			builder.WriteString(string(textPart))
		}
	}
	return builder.String(), nil
}
