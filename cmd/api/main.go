package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/xiebiao/bookbridge/docs"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
	"github.com/xiebiao/bookbridge/pkg/logger"
	"github.com/xiebiao/bookbridge/pkg/metrics"
	"github.com/xiebiao/bookbridge/pkg/tracing"
)

// @title                      BookBridge API
// @version                    1.0
// @description                图书目录、库存账本与图书问答服务
// @host                       localhost:8080
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Bearer {token}
func main() {
	// 1. 加载配置(日志尚未初始化,失败时直接退出)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	_, closeLog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = closeLog() }()

	if err := run(cfg); err != nil {
		slog.Error("服务异常退出", "error", err)
		os.Exit(1)
	}
	slog.Info("服务已安全关闭")
}

func run(cfg *config.Config) error {
	// 3. 指标与链路追踪
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				slog.Warn("关闭TracerProvider失败", "error", err)
			}
		}()
	}

	// 4. SIGINT/SIGTERM触发优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5. 依赖注入
	app, cleanup, err := InitializeApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	slog.Info("BookBridge启动",
		"http_port", cfg.Server.Port,
		"grpc_port", cfg.GRPC.Port,
		"db_driver", cfg.Database.Driver,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
	)

	// 6. 运行直到收到信号
	return app.Run(ctx)
}
