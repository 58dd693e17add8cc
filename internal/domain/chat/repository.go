package chat

import (
	"context"
	"time"
)

// Repository 会话仓储接口
type Repository interface {
	// Create 创建会话(回填ID)
	Create(ctx context.Context, s *Session) error

	// FindByID 查询会话
	FindByID(ctx context.Context, id uint) (*Session, error)

	// FindLatestByUser 查询用户最近活跃的会话,不存在返回ErrSessionNotFound
	FindLatestByUser(ctx context.Context, userID string) (*Session, error)

	// Touch 更新最后活跃时间
	Touch(ctx context.Context, id uint, lastActive time.Time) error

	// AppendMessages 追加消息(回填ID)
	AppendMessages(ctx context.Context, msgs ...*Message) error

	// RecentMessages 查询最近limit条消息,按时间正序返回;limit<=0返回全部
	RecentMessages(ctx context.Context, sessionID uint, limit int) ([]*Message, error)
}

// Transactor 事务执行器
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
