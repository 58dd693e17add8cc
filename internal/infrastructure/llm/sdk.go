package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/xiebiao/bookbridge/internal/domain/discovery"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
)

// SDKClient 通过官方genai SDK调用生成服务
type SDKClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewSDKClient 创建SDK客户端
// SDK走gRPC默认端点,llm.base_url只对REST客户端生效
func NewSDKClient(ctx context.Context, cfg config.LLMConfig) (*SDKClient, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.UserAgent != "" {
		opts = append(opts, option.WithUserAgent(cfg.UserAgent))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建genai客户端失败: %w", err)
	}
	return &SDKClient{
		client: client,
		model:  client.GenerativeModel(normalizeModel(cfg.Model)),
	}, nil
}

// Generate 发送提示词并返回第一个候选的文本
func (c *SDKClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", discovery.ErrUpstream.WithCause(err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", discovery.ErrUpstream.WithCause(fmt.Errorf("generation response has no candidates"))
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if txt, ok := p.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", discovery.ErrUpstream.WithCause(fmt.Errorf("generation response has no text"))
	}
	return sb.String(), nil
}

// Close 关闭底层连接
func (c *SDKClient) Close() error {
	return c.client.Close()
}
