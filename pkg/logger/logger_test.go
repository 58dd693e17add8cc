package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestNew_FileOutput 测试JSON格式输出到文件
func TestNew_FileOutput(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "app.log")
	l, closeFn, err := New(Options{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("创建Logger失败: %v", err)
	}

	l.Debug("hidden")
	l.Info("visible", "book_id", 7)
	if err := closeFn(); err != nil {
		t.Fatalf("关闭日志文件失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "hidden") {
		t.Error("debug日志不应输出")
	}
	if !strings.Contains(content, `"msg":"visible"`) || !strings.Contains(content, `"book_id":7`) {
		t.Errorf("日志内容不符合预期: %s", content)
	}
}
