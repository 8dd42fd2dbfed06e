// Package anthropic implements a provider backed by the Anthropic Messages
// API over plain HTTP.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/temirov/reposeo/internal/providers"
)

const (
	// ProviderName identifies this backend in the registry.
	ProviderName = "anthropic"

	defaultAnthropicModelConstant = "claude-3-5-haiku-latest"
	defaultBaseURLConstant        = "https://api.anthropic.com"
	messagesPathConstant          = "/v1/messages"
	apiVersionHeaderConstant      = "anthropic-version"
	apiVersionValueConstant       = "2023-06-01"
	apiKeyHeaderConstant          = "x-api-key"
	contentTypeHeaderConstant     = "Content-Type"
	contentTypeValueConstant      = "application/json"
	userRoleConstant              = "user"
	textContentTypeConstant       = "text"
)

var errEmptyMessageContent = errors.New("message returned no text content")

type messageRequest struct {
	Model       string           `json:"model"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
	Messages    []messagePayload `json:"messages"`
}

type messagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Provider calls the Anthropic Messages endpoint.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	config     providers.Config
}

// NewProvider constructs the Anthropic backend. The API key resolves from
// the configured environment variable at construction time.
func NewProvider(config providers.Config) (providers.Provider, error) {
	apiKey, credentialError := config.ResolveCredential(ProviderName)
	if credentialError != nil {
		return nil, credentialError
	}
	if len(config.Model) == 0 {
		config.Model = defaultAnthropicModelConstant
	}
	baseURL := config.BaseURL
	if len(baseURL) == 0 {
		baseURL = defaultBaseURLConstant
	}
	return &Provider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		config:     config,
	}, nil
}

// Name returns the registry name of the backend.
func (provider *Provider) Name() string {
	return ProviderName
}

// GenerateDescription asks the model for a single-sentence description.
func (provider *Provider) GenerateDescription(executionContext context.Context, request providers.Request) (string, error) {
	responseText, messageError := provider.sendMessage(executionContext, providers.BuildDescriptionPrompt(request))
	if messageError != nil {
		return "", &providers.ProviderError{ProviderName: ProviderName, Operation: providers.DescriptionOperationName, Cause: messageError}
	}
	return providers.ParseDescriptionResponse(responseText), nil
}

// SuggestTopics asks the model for a topic list.
func (provider *Provider) SuggestTopics(executionContext context.Context, request providers.Request) ([]string, error) {
	responseText, messageError := provider.sendMessage(executionContext, providers.BuildTopicsPrompt(request))
	if messageError != nil {
		return nil, &providers.ProviderError{ProviderName: ProviderName, Operation: providers.TopicsOperationName, Cause: messageError}
	}
	return providers.ParseTopicsResponse(responseText), nil
}

func (provider *Provider) sendMessage(executionContext context.Context, prompt string) (string, error) {
	requestBody, marshalError := json.Marshal(messageRequest{
		Model:       provider.config.Model,
		MaxTokens:   provider.config.MaxOutputTokens,
		Temperature: provider.config.Temperature,
		Messages:    []messagePayload{{Role: userRoleConstant, Content: prompt}},
	})
	if marshalError != nil {
		return "", marshalError
	}

	httpRequest, requestError := http.NewRequestWithContext(executionContext, http.MethodPost, provider.baseURL+messagesPathConstant, bytes.NewReader(requestBody))
	if requestError != nil {
		return "", requestError
	}
	httpRequest.Header.Set(apiKeyHeaderConstant, provider.apiKey)
	httpRequest.Header.Set(apiVersionHeaderConstant, apiVersionValueConstant)
	httpRequest.Header.Set(contentTypeHeaderConstant, contentTypeValueConstant)

	httpResponse, responseError := provider.httpClient.Do(httpRequest)
	if responseError != nil {
		return "", responseError
	}
	defer httpResponse.Body.Close()

	responseBody, readError := io.ReadAll(httpResponse.Body)
	if readError != nil {
		return "", readError
	}
	if httpResponse.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", httpResponse.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	var decodedResponse messageResponse
	if unmarshalError := json.Unmarshal(responseBody, &decodedResponse); unmarshalError != nil {
		return "", unmarshalError
	}
	for _, block := range decodedResponse.Content {
		if block.Type == textContentTypeConstant {
			return block.Text, nil
		}
	}
	return "", errEmptyMessageContent
}
