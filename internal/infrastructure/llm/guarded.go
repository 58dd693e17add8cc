package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xiebiao/bookbridge/internal/domain/discovery"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
	"github.com/xiebiao/bookbridge/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
	"github.com/xiebiao/bookbridge/pkg/metrics"
)

// BreakerName 生成服务熔断器名称(指标标签)
const BreakerName = "generation"

// Guarded 为生成客户端加上超时、熔断和指标
// 1. 每次调用使用独立的超时context
// 2. 连续失败达到阈值后熔断,熔断期间直接返回ErrUpstream
// 3. 只调用一次,不重试
type Guarded struct {
	next    discovery.Generator
	timeout time.Duration
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuarded 包装生成客户端
func NewGuarded(next discovery.Generator, timeout time.Duration, cfg config.BreakerConfig) *Guarded {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	breaker := circuitbreaker.NewCircuitBreaker(BreakerName, circuitbreaker.Config{
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// 调用方主动取消不算下游故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		slog.Warn("熔断器状态变化", "name", name, "from", from.String(), "to", to.String())
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})

	return &Guarded{next: next, timeout: timeout, breaker: breaker}
}

// Breaker 底层熔断器(健康检查和测试使用)
func (g *Guarded) Breaker() *circuitbreaker.CircuitBreaker {
	return g.breaker
}

// Generate 调用生成服务
func (g *Guarded) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := circuitbreaker.Do(g.breaker, func() (string, error) {
		return g.next.Generate(ctx, prompt)
	})
	metrics.ObserveHistogram(metrics.GenerationDuration, time.Since(start).Seconds())

	if err == nil {
		g.countRequest("success")
		return text, nil
	}

	reason := "upstream"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		reason = "rejected"
		g.countRequest("rejected")
	case errors.Is(err, context.DeadlineExceeded):
		reason = "timeout"
		g.countRequest("failure")
	default:
		g.countRequest("failure")
	}
	metrics.IncCounterVec(metrics.GenerationFailuresTotal, map[string]string{"reason": reason})

	if apperrors.HasCode(err, apperrors.ErrCodeUpstreamError) {
		return "", err
	}
	return "", discovery.ErrUpstream.WithCause(err)
}

func (g *Guarded) countRequest(result string) {
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": BreakerName, "result": result})
}
