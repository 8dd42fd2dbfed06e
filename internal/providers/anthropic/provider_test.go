package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/temirov/reposeo/internal/providers"
	"github.com/temirov/reposeo/internal/providers/anthropic"
)

const credentialVariableNameConstant = "REPOSEO_TEST_ANTHROPIC_KEY"

func newTestServer(testInstance *testing.T, statusCode int, responsePayload any) *httptest.Server {
	testInstance.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		require.Equal(testInstance, http.MethodPost, request.Method)
		require.Equal(testInstance, "/v1/messages", request.URL.Path)
		require.Equal(testInstance, "token-value", request.Header.Get("x-api-key"))
		require.Equal(testInstance, "2023-06-01", request.Header.Get("anthropic-version"))

		responseWriter.WriteHeader(statusCode)
		require.NoError(testInstance, json.NewEncoder(responseWriter).Encode(responsePayload))
	}))
	testInstance.Cleanup(server.Close)
	return server
}

func newTestProvider(testInstance *testing.T, server *httptest.Server) providers.Provider {
	testInstance.Helper()
	testInstance.Setenv(credentialVariableNameConstant, "token-value")

	provider, constructionError := anthropic.NewProvider(providers.Config{
		APIKeyEnvironmentVariable: credentialVariableNameConstant,
		BaseURL:                   server.URL,
		RequestTimeout:            time.Minute,
		MaxOutputTokens:           256,
	})
	require.NoError(testInstance, constructionError)
	return provider
}

func TestGenerateDescription(testInstance *testing.T) {
	server := newTestServer(testInstance, http.StatusOK, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": "\"A widget maintenance tool.\""},
		},
	})
	provider := newTestProvider(testInstance, server)

	description, generationError := provider.GenerateDescription(context.Background(), providers.Request{MaximumOutputLength: 150})

	require.NoError(testInstance, generationError)
	require.Equal(testInstance, "A widget maintenance tool.", description)
}

func TestSuggestTopics(testInstance *testing.T) {
	server := newTestServer(testInstance, http.StatusOK, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": "go\ncli\nautomation"},
		},
	})
	provider := newTestProvider(testInstance, server)

	topics, suggestionError := provider.SuggestTopics(context.Background(), providers.Request{MaximumTopicCount: 20})

	require.NoError(testInstance, suggestionError)
	require.Equal(testInstance, []string{"go", "cli", "automation"}, topics)
}

func TestServerFailureWrapsProviderError(testInstance *testing.T) {
	server := newTestServer(testInstance, http.StatusInternalServerError, map[string]any{"error": "overloaded"})
	provider := newTestProvider(testInstance, server)

	_, generationError := provider.GenerateDescription(context.Background(), providers.Request{})

	var providerError *providers.ProviderError
	require.True(testInstance, errors.As(generationError, &providerError))
	require.Equal(testInstance, "anthropic", providerError.ProviderName)
}

func TestMissingCredentialFailsConstruction(testInstance *testing.T) {
	_, constructionError := anthropic.NewProvider(providers.Config{APIKeyEnvironmentVariable: "REPOSEO_TEST_ANTHROPIC_KEY_ABSENT"})

	var missingCredentialError *providers.MissingCredentialError
	require.True(testInstance, errors.As(constructionError, &missingCredentialError))
}
