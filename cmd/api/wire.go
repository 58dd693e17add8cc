//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
// 依赖链: Config → DB/Redis → Repository → 领域服务 → 用例 → Handler → 路由

package main

import (
	"context"

	"github.com/google/wire"

	appbook "github.com/xiebiao/bookbridge/internal/application/book"
	appinventory "github.com/xiebiao/bookbridge/internal/application/inventory"
	"github.com/xiebiao/bookbridge/internal/domain/book"
	"github.com/xiebiao/bookbridge/internal/domain/chat"
	"github.com/xiebiao/bookbridge/internal/domain/inventory"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
	"github.com/xiebiao/bookbridge/internal/infrastructure/persistence/gormstore"
	redisstore "github.com/xiebiao/bookbridge/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookbridge/internal/interface/http/handler"
	"github.com/xiebiao/bookbridge/internal/interface/http/middleware"
	"github.com/xiebiao/bookbridge/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideGenerator,
	provideOutboxRelay,
	provideHealthServer,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	gormstore.NewBookRepository,
	gormstore.NewInventoryRepository,
	gormstore.NewChatRepository,
	gormstore.NewOutboxRepository,
	gormstore.NewTxManager,
	wire.Bind(new(inventory.Transactor), new(*gormstore.TxManager)),
	wire.Bind(new(chat.Transactor), new(*gormstore.TxManager)),
	provideEventRecorder,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
	provideChatService,
	provideRetriever,
	provideReconciler,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewSetActiveUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewListInactiveUseCase,
	appinventory.NewLedgerUseCase,
	provideAskUseCase,
)

// middlewareSet 认证相关依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	redisstore.NewTokenBlacklist,
	wire.Bind(new(middleware.RevocationChecker), new(*redisstore.TokenBlacklist)),
	wire.Bind(new(handler.TokenRevoker), new(*redisstore.TokenBlacklist)),
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewInventoryHandler,
	handler.NewChatbotHandler,
	handler.NewAuthHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装整个应用
// 返回的cleanup按创建的逆序释放资源(生成客户端、MQ连接、Redis、数据库)
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
