package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
	"github.com/xiebiao/bookbridge/internal/infrastructure/messaging"
	"github.com/xiebiao/bookbridge/internal/interface/grpcserver"
)

// App 进程内所有长期运行的组件
type App struct {
	Config *config.Config
	Engine *gin.Engine
	Health *grpcserver.HealthServer
	Relay  *messaging.OutboxRelay // 未配置MQ时为nil
}

// Run 启动HTTP服务、gRPC健康检查与发件箱投递,ctx取消后优雅关闭
// 任一组件异常退出都会取消其余组件
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Engine,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	g.Go(func() error {
		slog.Info("HTTP服务已启动", "addr", srv.Addr, "mode", a.Config.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP服务异常退出: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		timeout := a.Config.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		slog.Info("收到关闭信号,开始优雅关闭HTTP服务", "timeout", timeout)
		return srv.Shutdown(shutdownCtx)
	})

	if a.Config.GRPC.Port > 0 {
		g.Go(func() error {
			return a.Health.Run(ctx)
		})
	}

	if a.Relay != nil {
		g.Go(func() error {
			return a.Relay.Run(ctx)
		})
	} else {
		slog.Warn("未配置mq.url,库存事件只写入发件箱,不会投递")
	}

	return g.Wait()
}
