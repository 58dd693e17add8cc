package discovery

import (
	"context"

	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
)

// Generator 文本生成服务
// 实现方负责超时与熔断,不做重试
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrUpstream 生成服务失败(非2xx、响应无法解析、文本为空、超时、熔断)
var ErrUpstream = apperrors.New(apperrors.ErrCodeUpstreamError, "智能助手暂时不可用,请稍后再试")
