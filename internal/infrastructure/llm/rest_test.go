package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbridge/internal/domain/discovery"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
)

func newTestREST(t *testing.T, handler http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRESTClient(config.LLMConfig{
		BaseURL:   srv.URL + "/",
		Model:     "models/gemini-2.5-flash",
		APIKey:    "secret-key",
		UserAgent: "BookBridgeChatbot/1.0",
		Referer:   "https://bookbridge.example",
	}, srv.Client())
}

func TestRESTClient_Generate(t *testing.T) {
	client := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "BookBridgeChatbot/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "https://bookbridge.example", r.Header.Get("Referer"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "xin chào", req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Xin "},{"text":"chào"}]},"finishReason":"STOP"}]}`))
	})

	text, err := client.Generate(context.Background(), "xin chào")
	require.NoError(t, err)
	assert.Equal(t, "Xin chào", text)
}

func TestRESTClient_Generate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "非2xx带错误信息", status: http.StatusForbidden, body: `{"error":{"code":403,"message":"API key invalid"}}`},
		{name: "非2xx无响应体", status: http.StatusBadGateway, body: ``},
		{name: "响应不是JSON", status: http.StatusOK, body: `<html>`},
		{name: "没有候选", status: http.StatusOK, body: `{"candidates":[]}`},
		{name: "候选没有内容", status: http.StatusOK, body: `{"candidates":[{"finishReason":"SAFETY"}]}`},
		{name: "文本为空", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`},
		{name: "旧版results字段", status: http.StatusOK, body: `{"results":[{"content":"hello"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), "q")
			require.Error(t, err)
			assert.ErrorIs(t, err, discovery.ErrUpstream)
		})
	}
}

func TestRESTClient_DefaultBaseURL(t *testing.T) {
	client := NewRESTClient(config.LLMConfig{Model: "gemini-2.5-flash"}, nil)
	assert.Equal(t, DefaultBaseURL+"/models/gemini-2.5-flash:generateContent", client.endpoint)
}
