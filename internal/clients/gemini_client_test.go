package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeminiClient(baseURL string) *geminiClient {
	return &geminiClient{
		apiKey:     "test-key",
		model:      "gemini-1.5-flash",
		baseURL:    baseURL,
		retryDelay: time.Millisecond,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func geminiReply(text string) string {
	return `{"candidates": [{"content": {"parts": [{"text": "` + text + `"}]}}]}`
}

func TestGeminiGenerate_RequestShape(t *testing.T) {
	var captured generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(geminiReply("hello!")))
	}))
	defer server.Close()

	client := newTestGeminiClient(server.URL)

	history := []ChatTurn{
		{Role: "user", Text: "hi"},
		{Role: "model", Text: "hello"},
	}
	text, err := client.Generate(context.Background(), "how are you?", history)
	require.NoError(t, err)
	assert.Equal(t, "hello!", text)

	require.NotNil(t, captured.SystemInstruction)
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "hi", captured.Contents[0].Parts[0].Text)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "user", captured.Contents[2].Role)
	assert.Equal(t, "how are you?", captured.Contents[2].Parts[0].Text)
}

func TestGeminiGenerate_RetriesOnceOnRateLimit(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(geminiReply("second try")))
	}))
	defer server.Close()

	client := newTestGeminiClient(server.URL)

	text, err := client.Generate(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "second try", text)
	assert.Equal(t, 2, calls)
}

func TestGeminiGenerate_ApologyAfterPersistentRateLimit(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestGeminiClient(server.URL)

	text, err := client.Generate(context.Background(), "hi", nil)
	require.NoError(t, err, "persistent overload degrades to a friendly message")
	assert.Equal(t, replyRateLimited, text)
	assert.Equal(t, 2, calls, "exactly one retry")
}

func TestGeminiGenerate_HardErrorBubblesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "invalid request"}}`))
	}))
	defer server.Close()

	client := newTestGeminiClient(server.URL)

	_, err := client.Generate(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestGeminiGenerate_NotConfigured(t *testing.T) {
	client := &geminiClient{httpClient: http.DefaultClient}

	text, err := client.Generate(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, replyNotConfigured, text)
}
