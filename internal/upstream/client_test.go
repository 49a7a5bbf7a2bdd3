package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{Model: "m"})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "http://gateway"})
	assert.Error(t, err)

	c, err := NewClient(Config{BaseURL: "http://gateway/", APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "m", c.Model())
}

func TestStreamChatSendsStreamingRequest(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "google/gemini-2.5-flash"})
	require.NoError(t, err)

	body, err := c.StreamChat(context.Background(), []Message{
		{Role: RoleSystem, Content: "be helpful"},
		{Role: RoleUser, Content: "hello"},
	}, []Tool{{Type: "function", Function: ToolFunction{Name: "search_flights"}}})
	require.NoError(t, err)
	defer body.Close()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "data: [DONE]")

	assert.True(t, got.Stream)
	assert.Equal(t, "google/gemini-2.5-flash", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleSystem, got.Messages[0].Role)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "search_flights", got.Tools[0].Function.Name)
}

func TestStreamChatStatusPassthrough(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, IsRateLimited},
		{http.StatusPaymentRequired, IsQuotaExhausted},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "denied", tt.status)
		}))
		c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k", Model: "m"})
		require.NoError(t, err)

		_, err = c.StreamChat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, nil)
		require.Error(t, err)
		assert.True(t, tt.check(err), "status %d should map to its helper", tt.status)
		srv.Close()
	}
}

func TestStreamChatMissingKey(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://gateway", Model: "m"})
	require.NoError(t, err)

	_, err = c.StreamChat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
