package main

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appchatbot "github.com/xiebiao/bookbridge/internal/application/chatbot"
	"github.com/xiebiao/bookbridge/internal/domain/book"
	"github.com/xiebiao/bookbridge/internal/domain/chat"
	"github.com/xiebiao/bookbridge/internal/domain/discovery"
	"github.com/xiebiao/bookbridge/internal/domain/inventory"
	"github.com/xiebiao/bookbridge/internal/domain/outbox"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
	"github.com/xiebiao/bookbridge/internal/infrastructure/llm"
	"github.com/xiebiao/bookbridge/internal/infrastructure/messaging"
	"github.com/xiebiao/bookbridge/internal/infrastructure/persistence/gormstore"
	redisstore "github.com/xiebiao/bookbridge/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookbridge/internal/interface/grpcserver"
	"github.com/xiebiao/bookbridge/pkg/jwt"
	"github.com/xiebiao/bookbridge/pkg/metrics"
	"github.com/xiebiao/bookbridge/pkg/mq"
)

// 以下Provider负责从Config中提取构造参数,
// Wire无法自动知道如何从*config.Config拆出各个字段

func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := gormstore.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideRedis(ctx context.Context, cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redisstore.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpire)
}

func provideGenerator(ctx context.Context, cfg *config.Config) (discovery.Generator, func(), error) {
	guarded, cleanup, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return nil, nil, err
	}
	return guarded, cleanup, nil
}

// provideEventRecorder 库存事件写入发件箱
func provideEventRecorder(repo outbox.Repository) inventory.EventRecorder {
	return repo
}

func provideChatService(cfg *config.Config, repo chat.Repository, tx chat.Transactor) *chat.Service {
	return chat.NewService(repo, tx, cfg.Chatbot.HistoryWindow)
}

func provideRetriever(cfg *config.Config, repo book.Repository) *discovery.Retriever {
	return discovery.NewRetriever(repo, discovery.RetrieverOptions{
		SystemLimit:    cfg.Chatbot.SystemLimit,
		ScopedLimit:    cfg.Chatbot.ScopedLimit,
		MaxSystemTerms: cfg.Chatbot.MaxSystemTerms,
		OnFallback: func(scoped bool) {
			scope := "system"
			if scoped {
				scope = "bookstore"
			}
			metrics.IncCounterVec(metrics.CandidateFallbacksTotal, map[string]string{"scope": scope})
		},
	})
}

func provideReconciler(cfg *config.Config, repo book.Repository) (*discovery.Reconciler, error) {
	policy, err := discovery.ParsePolicy(cfg.Chatbot.RecommendationPolicy)
	if err != nil {
		return nil, err
	}
	return discovery.NewReconciler(repo, policy), nil
}

func provideAskUseCase(
	cfg *config.Config,
	sessions *chat.Service,
	retriever *discovery.Retriever,
	generator discovery.Generator,
	reconciler *discovery.Reconciler,
) *appchatbot.AskUseCase {
	return appchatbot.NewAskUseCase(sessions, retriever, generator, reconciler, cfg.Chatbot.Locale)
}

// provideOutboxRelay 未配置mq.url时返回nil,事件只落库不投递
func provideOutboxRelay(cfg *config.Config, repo outbox.Repository) (*messaging.OutboxRelay, func(), error) {
	if cfg.MQ.URL == "" {
		return nil, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			slog.Warn("关闭MQ连接失败", "error", err)
		}
	}
	return messaging.NewOutboxRelay(repo, publisher, cfg.Outbox), cleanup, nil
}

func provideHealthServer(cfg *config.Config, db *gorm.DB) (*grpcserver.HealthServer, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return grpcserver.NewHealthServer(cfg.GRPC, sqlDB), nil
}
