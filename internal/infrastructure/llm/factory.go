package llm

import (
	"context"
	"fmt"

	"github.com/xiebiao/bookbridge/internal/domain/discovery"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
)

// New 按llm.provider创建带超时与熔断的生成客户端
// 返回的cleanup在进程退出时调用
func New(ctx context.Context, cfg config.LLMConfig) (*Guarded, func(), error) {
	var (
		client  discovery.Generator
		cleanup = func() {}
	)

	switch cfg.Provider {
	case "", "rest":
		client = NewRESTClient(cfg, nil)
	case "sdk":
		sdk, err := NewSDKClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		client = sdk
		cleanup = func() { _ = sdk.Close() }
	default:
		return nil, nil, fmt.Errorf("不支持的生成服务类型: %s", cfg.Provider)
	}

	return NewGuarded(client, cfg.Timeout, cfg.Breaker), cleanup, nil
}
