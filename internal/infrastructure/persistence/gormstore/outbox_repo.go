package gormstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/xiebiao/bookbridge/internal/domain/outbox"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
	"github.com/xiebiao/bookbridge/pkg/tracing"
)

// outboxRepository 事件仓储实现
type outboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository 创建事件仓储
func NewOutboxRepository(db *gorm.DB) outbox.Repository {
	return &outboxRepository{db: db}
}

// Record 写入一条待投递事件
// 在库存事务中调用时与库存变更一起提交或回滚
func (r *outboxRepository) Record(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, "序列化事件失败")
	}

	model := &OutboxMessageModel{
		MessageID: uuid.NewString(),
		EventType: eventType,
		Payload:   datatypes.JSON(body),
		Status:    string(outbox.StatusPending),
		TraceID:   tracing.ExtractTraceID(ctx),
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存事件失败")
	}
	return nil
}

// FetchPending 读取待投递事件
func (r *outboxRepository) FetchPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var models []OutboxMessageModel
	query := dbFrom(ctx, r.db).
		Where("status = ?", string(outbox.StatusPending)).
		Order("created_at ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询待投递事件失败")
	}

	msgs := make([]*outbox.Message, len(models))
	for i, m := range models {
		msgs[i] = &outbox.Message{
			ID:          m.ID,
			MessageID:   m.MessageID,
			EventType:   m.EventType,
			Payload:     []byte(m.Payload),
			Status:      outbox.Status(m.Status),
			TraceID:     m.TraceID,
			Attempts:    m.Attempts,
			LastError:   m.LastError,
			CreatedAt:   m.CreatedAt,
			PublishedAt: m.PublishedAt,
		}
	}
	return msgs, nil
}

// MarkPublished 标记已投递
func (r *outboxRepository) MarkPublished(ctx context.Context, id uint, at time.Time) error {
	err := dbFrom(ctx, r.db).
		Model(&OutboxMessageModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       string(outbox.StatusPublished),
			"published_at": at,
			"attempts":     gorm.Expr("attempts + 1"),
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新事件状态失败")
	}
	return nil
}

// MarkAttemptFailed 记录失败投递
func (r *outboxRepository) MarkAttemptFailed(ctx context.Context, id uint, reason string, final bool) error {
	updates := map[string]any{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": reason,
	}
	if final {
		updates["status"] = string(outbox.StatusFailed)
	}
	err := dbFrom(ctx, r.db).
		Model(&OutboxMessageModel{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return apperrors.Wrap(err, "更新事件状态失败")
	}
	return nil
}
