package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbridge/internal/domain/discovery"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
	"github.com/xiebiao/bookbridge/pkg/circuitbreaker"
)

// generatorFunc 函数适配为Generator
type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestGuarded_PassThrough(t *testing.T) {
	g := NewGuarded(generatorFunc(func(_ context.Context, prompt string) (string, error) {
		return "echo: " + prompt, nil
	}), time.Second, config.BreakerConfig{})

	text, err := g.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", text)
}

func TestGuarded_Timeout(t *testing.T) {
	g := NewGuarded(generatorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), 20*time.Millisecond, config.BreakerConfig{})

	start := time.Now()
	_, err := g.Generate(context.Background(), "slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, discovery.ErrUpstream)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGuarded_OpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	g := NewGuarded(generatorFunc(func(context.Context, string) (string, error) {
		calls++
		return "", errors.New("503")
	}), time.Second, config.BreakerConfig{FailureThreshold: 3, Timeout: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := g.Generate(context.Background(), "q")
		assert.ErrorIs(t, err, discovery.ErrUpstream)
	}
	assert.Equal(t, circuitbreaker.StateOpen, g.Breaker().State())

	// 熔断期间不再调用下游
	_, err := g.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, discovery.ErrUpstream)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.Equal(t, 3, calls)
}

func TestGuarded_CallerCancellationDoesNotTrip(t *testing.T) {
	g := NewGuarded(generatorFunc(func(ctx context.Context, _ string) (string, error) {
		return "", ctx.Err()
	}), time.Second, config.BreakerConfig{FailureThreshold: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, "q")
	require.Error(t, err)
	assert.Equal(t, circuitbreaker.StateClosed, g.Breaker().State())
}

func TestGuarded_KeepsUpstreamError(t *testing.T) {
	cause := discovery.ErrUpstream.WithCause(errors.New("403"))
	g := NewGuarded(generatorFunc(func(context.Context, string) (string, error) {
		return "", cause
	}), time.Second, config.BreakerConfig{})

	_, err := g.Generate(context.Background(), "q")
	assert.Same(t, cause, err)
}

func TestNew_Provider(t *testing.T) {
	g, cleanup, err := New(context.Background(), config.LLMConfig{Provider: "rest", Model: "m", Timeout: time.Second})
	require.NoError(t, err)
	require.NotNil(t, g)
	cleanup()

	_, _, err = New(context.Background(), config.LLMConfig{Provider: "carrier-pigeon"})
	assert.Error(t, err)
}
