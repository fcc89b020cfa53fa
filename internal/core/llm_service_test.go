package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moussamarbre.com/site-api/internal/config"
)

func configureProvider(t *testing.T, baseURL, apiKey string) {
	t.Helper()
	previous := config.AppConfig
	config.AppConfig.OpenRouterBaseURL = baseURL
	config.AppConfig.OpenRouterAPIKey = apiKey
	config.AppConfig.SiteURL = "https://moussamarbre.com"
	config.AppConfig.AppTitle = "Moussa Marbre AI Chat"
	t.Cleanup(func() { config.AppConfig = previous })
}

func stubCompletion(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatCompletionSuccess(t *testing.T) {
	var gotAuth, gotReferer, gotTitle string
	var gotBody completionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Bonjour !"}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	configureProvider(t, srv.URL, "test-key")

	svc := NewLLMService(zap.NewNop())
	reply, err := svc.ChatCompletion(context.Background(), []Message{
		{Role: "system", Content: "prompt"},
		{Role: "user", Content: "Bonjour"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Bonjour !", reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "https://moussamarbre.com", gotReferer)
	assert.Equal(t, "Moussa Marbre AI Chat", gotTitle)
	assert.Equal(t, defaultChatModel, gotBody.Model)
	assert.Equal(t, maxOutputTokens, gotBody.MaxTokens)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
}

func TestChatCompletionMissingAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)
	configureProvider(t, srv.URL, "")

	svc := NewLLMService(zap.NewNop())
	_, err := svc.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})

	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, called, "no outbound call may be attempted without a credential")
}

func TestChatCompletionProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"insufficient credits"}`))
	}))
	t.Cleanup(srv.Close)
	configureProvider(t, srv.URL, "test-key")

	svc := NewLLMService(zap.NewNop())
	_, err := svc.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusPaymentRequired, providerErr.StatusCode)
	assert.Contains(t, providerErr.Body, "insufficient credits")
}

func TestChatCompletionMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"no choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)
			configureProvider(t, srv.URL, "test-key")

			svc := NewLLMService(zap.NewNop())
			_, err := svc.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
			assert.Error(t, err)
		})
	}
}
