// Package ollama implements a provider backed by a locally running Ollama
// server. No credential is required; the backend only needs the server URL.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/temirov/reposeo/internal/providers"
)

const (
	// ProviderName identifies this backend in the registry.
	ProviderName = "ollama"

	defaultOllamaModelConstant = "llama3.2"
	defaultBaseURLConstant     = "http://localhost:11434"
	generatePathConstant       = "/api/generate"
	contentTypeHeaderConstant  = "Content-Type"
	contentTypeValueConstant   = "application/json"
)

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Provider calls an Ollama generate endpoint.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	config     providers.Config
}

// NewProvider constructs the Ollama backend.
func NewProvider(config providers.Config) (providers.Provider, error) {
	if len(config.Model) == 0 {
		config.Model = defaultOllamaModelConstant
	}
	baseURL := config.BaseURL
	if len(baseURL) == 0 {
		baseURL = defaultBaseURLConstant
	}
	return &Provider{
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
	requestBody, marshalError := json.Marshal(generateRequest{
		Model:  provider.config.Model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: provider.config.Temperature,
			NumPredict:  provider.config.MaxOutputTokens,
		},
	})
	if marshalError != nil {
		return "", marshalError
	}

	httpRequest, requestError := http.NewRequestWithContext(executionContext, http.MethodPost, provider.baseURL+generatePathConstant, bytes.NewReader(requestBody))
	if requestError != nil {
		return "", requestError
	}
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

	var decodedResponse generateResponse
	if unmarshalError := json.Unmarshal(responseBody, &decodedResponse); unmarshalError != nil {
		return "", unmarshalError
	}
	return decodedResponse.Response, nil
}
