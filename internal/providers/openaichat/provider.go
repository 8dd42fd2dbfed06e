// Package openaichat implements providers backed by OpenAI-compatible chat
// completion endpoints. The same implementation serves the OpenAI API and
// DeepSeek, whose API speaks the identical protocol under a different base
// URL.
package openaichat

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
	"github.com/temirov/reposeo/internal/providers"
)

const (
	// OpenAIProviderName identifies the OpenAI backend in the registry.
	OpenAIProviderName = "openai"
	// DeepSeekProviderName identifies the DeepSeek backend in the registry.
	DeepSeekProviderName = "deepseek"

	defaultOpenAIModelConstant   = "gpt-4o-mini"
	defaultDeepSeekModelConstant = "deepseek-chat"
	deepSeekBaseURLConstant      = "https://api.deepseek.com/v1"
)

var errEmptyCompletionChoices = errors.New("completion returned no choices")

// completionClient abstracts the go-openai client for testing.
type completionClient interface {
	CreateChatCompletion(executionContext context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Provider calls an OpenAI-compatible chat completion endpoint.
type Provider struct {
	providerName string
	client       completionClient
	config       providers.Config
}

// NewOpenAIProvider constructs the OpenAI backend.
func NewOpenAIProvider(config providers.Config) (providers.Provider, error) {
	return newProvider(OpenAIProviderName, defaultOpenAIModelConstant, config)
}

// NewDeepSeekProvider constructs the DeepSeek backend. DeepSeek's endpoint is
// OpenAI-compatible, so the client only needs the base URL swapped.
func NewDeepSeekProvider(config providers.Config) (providers.Provider, error) {
	if len(config.BaseURL) == 0 {
		config.BaseURL = deepSeekBaseURLConstant
	}
	return newProvider(DeepSeekProviderName, defaultDeepSeekModelConstant, config)
}

func newProvider(providerName string, defaultModel string, config providers.Config) (providers.Provider, error) {
	apiKey, credentialError := config.ResolveCredential(providerName)
	if credentialError != nil {
		return nil, credentialError
	}
	if len(config.Model) == 0 {
		config.Model = defaultModel
	}

	clientConfiguration := openai.DefaultConfig(apiKey)
	if len(config.BaseURL) > 0 {
		clientConfiguration.BaseURL = config.BaseURL
	}

	return &Provider{
		providerName: providerName,
		client:       openai.NewClientWithConfig(clientConfiguration),
		config:       config,
	}, nil
}

// Name returns the registry name of the backend.
func (provider *Provider) Name() string {
	return provider.providerName
}

// GenerateDescription asks the model for a single-sentence description.
func (provider *Provider) GenerateDescription(executionContext context.Context, request providers.Request) (string, error) {
	responseText, completionError := provider.complete(executionContext, providers.BuildDescriptionPrompt(request))
	if completionError != nil {
		return "", &providers.ProviderError{ProviderName: provider.providerName, Operation: providers.DescriptionOperationName, Cause: completionError}
	}
	return providers.ParseDescriptionResponse(responseText), nil
}

// SuggestTopics asks the model for a topic list.
func (provider *Provider) SuggestTopics(executionContext context.Context, request providers.Request) ([]string, error) {
	responseText, completionError := provider.complete(executionContext, providers.BuildTopicsPrompt(request))
	if completionError != nil {
		return nil, &providers.ProviderError{ProviderName: provider.providerName, Operation: providers.TopicsOperationName, Cause: completionError}
	}
	return providers.ParseTopicsResponse(responseText), nil
}

func (provider *Provider) complete(executionContext context.Context, prompt string) (string, error) {
	timedContext, cancelTimedContext := context.WithTimeout(executionContext, provider.config.RequestTimeout)
	defer cancelTimedContext()

	completionResponse, completionError := provider.client.CreateChatCompletion(timedContext, openai.ChatCompletionRequest{
		Model:       provider.config.Model,
		Temperature: float32(provider.config.Temperature),
		MaxTokens:   provider.config.MaxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if completionError != nil {
		return "", completionError
	}
	if len(completionResponse.Choices) == 0 {
		return "", errEmptyCompletionChoices
	}
	return completionResponse.Choices[0].Message.Content, nil
}
