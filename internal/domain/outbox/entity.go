package outbox

import (
	"context"
	"time"
)

// Status 投递状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
)

// Message 待投递的领域事件
// 与业务数据在同一事务中写入,由投递器异步发送到消息队列
type Message struct {
	ID          uint
	MessageID   string // 全局唯一,用作AMQP MessageId(消费端幂等)
	EventType   string // 同时用作路由键
	Payload     []byte
	Status      Status
	TraceID     string
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// Repository 事件仓储
type Repository interface {
	// Record 写入一条待投递事件(参与context中的事务)
	Record(ctx context.Context, eventType string, payload any) error

	// FetchPending 按创建顺序读取待投递事件
	FetchPending(ctx context.Context, limit int) ([]*Message, error)

	// MarkPublished 标记已投递
	MarkPublished(ctx context.Context, id uint, at time.Time) error

	// MarkAttemptFailed 记录一次失败投递,final为true时不再重试
	MarkAttemptFailed(ctx context.Context, id uint, reason string, final bool) error
}
