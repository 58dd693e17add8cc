package tracing

import (
	"context"
	"errors"
	"testing"
)

func initLocalTracer(t *testing.T) {
	t.Helper()
	shutdown, err := InitTracer("test-service", "")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	t.Cleanup(func() {
		if err := shutdown(context.Background()); err != nil {
			t.Errorf("关闭Tracer失败: %v", err)
		}
	})
}

// TestStartSpan 测试Span创建与父子关系
func TestStartSpan(t *testing.T) {
	initLocalTracer(t)

	ctx, root := StartSpan(context.Background(), "test-service", "RootOperation")
	defer root.End()

	if !root.SpanContext().IsValid() {
		t.Fatal("Span无效")
	}

	_, child := StartSpan(ctx, "test-service", "ChildOperation")
	defer child.End()

	if child.SpanContext().TraceID() != root.SpanContext().TraceID() {
		t.Error("子Span应继承根Span的TraceID")
	}
	if child.SpanContext().SpanID() == root.SpanContext().SpanID() {
		t.Error("子Span的SpanID不应与根Span相同")
	}
}

// TestExtractTraceID 测试TraceID提取
func TestExtractTraceID(t *testing.T) {
	initLocalTracer(t)

	t.Run("有效Context", func(t *testing.T) {
		ctx, span := StartSpan(context.Background(), "test-service", "TestExtract")
		defer span.End()

		traceID := ExtractTraceID(ctx)
		if len(traceID) != 32 {
			t.Errorf("TraceID长度错误: expected=32, got=%d", len(traceID))
		}
	})

	t.Run("无Span的Context", func(t *testing.T) {
		if traceID := ExtractTraceID(context.Background()); traceID != "" {
			t.Errorf("期望空字符串，实际: %s", traceID)
		}
	})
}

// TestEndSpan 记录错误后结束Span不应panic
func TestEndSpan(t *testing.T) {
	initLocalTracer(t)

	_, span := StartSpan(context.Background(), "test-service", "Failed")
	EndSpan(span, errors.New("boom"))

	_, span = StartSpan(context.Background(), "test-service", "Succeeded")
	EndSpan(span, nil)
}
