package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xiebiao/bookbridge/internal/domain/discovery"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
)

// DefaultBaseURL Gemini REST接口地址
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// maxErrorBody 错误响应最多读取的字节数(写入日志)
const maxErrorBody = 4 << 10

// RESTClient 通过generateContent接口调用生成服务
// 配置在构造时注入,调用过程中不再读取
type RESTClient struct {
	endpoint   string
	apiKey     string
	userAgent  string
	referer    string
	httpClient *http.Client
}

// NewRESTClient 创建REST客户端
// 超时由Guarded通过context控制,这里的http.Client不再单独设置
func NewRESTClient(cfg config.LLMConfig, httpClient *http.Client) *RESTClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &RESTClient{
		endpoint:   fmt.Sprintf("%s/models/%s:generateContent", base, normalizeModel(cfg.Model)),
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		referer:    cfg.Referer,
		httpClient: httpClient,
	}
}

// Generate 发送提示词并返回第一个候选的文本
func (c *RESTClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", discovery.ErrUpstream.WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", discovery.ErrUpstream.WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.referer != "" {
		req.Header.Set("Referer", c.referer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", discovery.ErrUpstream.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error.Message != "" {
			return "", discovery.ErrUpstream.WithCause(fmt.Errorf("generation api %d: %s", resp.StatusCode, errResp.Error.Message))
		}
		return "", discovery.ErrUpstream.WithCause(fmt.Errorf("generation api %s", resp.Status))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", discovery.ErrUpstream.WithCause(fmt.Errorf("decode generation response: %w", err))
	}

	text := out.text()
	if strings.TrimSpace(text) == "" {
		return "", discovery.ErrUpstream.WithCause(fmt.Errorf("generation response has no text"))
	}
	return text, nil
}

func normalizeModel(model string) string {
	return strings.TrimPrefix(strings.TrimSpace(model), "models/")
}

// =========================================
// 请求/响应结构(generateContent)
// =========================================

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      *content `json:"content"`
		FinishReason string   `json:"finishReason,omitempty"`
	} `json:"candidates"`
}

// text 拼接第一个候选的所有文本片段
func (r generateResponse) text() string {
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
