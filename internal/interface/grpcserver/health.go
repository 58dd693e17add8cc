package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
)

// ServiceName 健康检查中注册的服务名
const ServiceName = "bookbridge.inventory"

const (
	defaultProbeInterval = 15 * time.Second
	probeTimeout         = 3 * time.Second
)

// Pinger 依赖探活(*sql.DB满足该接口)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer gRPC健康检查服务
// 1. 实现grpc.health.v1.Health,供负载均衡器和k8s探针使用
// 2. 定时ping数据库,失败时切换为NOT_SERVING
// 3. 注册反射服务(用于grpcurl调试)
type HealthServer struct {
	port     int
	interval time.Duration
	pinger   Pinger
	server   *grpc.Server
	health   *health.Server
}

// NewHealthServer 创建健康检查服务
func NewHealthServer(cfg config.GRPCConfig, pinger Pinger) *HealthServer {
	interval := cfg.ProbeInterval
	if interval <= 0 {
		interval = defaultProbeInterval
	}

	server := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(server, hs)
	reflection.Register(server)

	// 首次探测之前保持NOT_SERVING
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		port:     cfg.Port,
		interval: interval,
		pinger:   pinger,
		server:   server,
		health:   hs,
	}
}

// Run 启动监听和探测循环,ctx取消后优雅停止
func (s *HealthServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("监听gRPC端口失败: %w", err)
	}

	go s.probeLoop(ctx)
	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.server.GracefulStop()
	}()

	slog.Info("gRPC健康检查服务已启动", "addr", lis.Addr().String(), "service", ServiceName)
	if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (s *HealthServer) probeLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

// Probe 执行一次探测并更新服务状态
func (s *HealthServer) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.PingContext(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		slog.Warn("数据库探活失败", "error", err)
	}
	s.health.SetServingStatus(ServiceName, status)
	s.health.SetServingStatus("", status)
	return status
}

// Check 查询当前状态(与gRPC客户端看到的一致)
func (s *HealthServer) Check(ctx context.Context) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
