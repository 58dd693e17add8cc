package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookbridge/internal/domain/chat"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
)

// chatRepository 会话仓储实现
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建会话仓储
func NewChatRepository(db *gorm.DB) chat.Repository {
	return &chatRepository{db: db}
}

// Create 创建会话
func (r *chatRepository) Create(ctx context.Context, s *chat.Session) error {
	model := &ChatSessionModel{
		UserID:      s.UserID,
		BookstoreID: s.BookstoreID,
		CreatedAt:   s.CreatedAt.UTC(),
		LastActive:  s.LastActive.UTC(),
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建会话失败")
	}
	s.ID = model.ID
	return nil
}

// FindByID 查询会话
func (r *chatRepository) FindByID(ctx context.Context, id uint) (*chat.Session, error) {
	var model ChatSessionModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "查询会话失败")
	}
	return toSessionEntity(&model), nil
}

// FindLatestByUser 查询用户最近活跃的会话
func (r *chatRepository) FindLatestByUser(ctx context.Context, userID string) (*chat.Session, error) {
	var model ChatSessionModel
	err := dbFrom(ctx, r.db).
		Where("user_id = ?", userID).
		Order("last_active DESC").
		Order("id DESC").
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "查询会话失败")
	}
	return toSessionEntity(&model), nil
}

// Touch 更新最后活跃时间
// 时间统一按UTC存储,保证SQLite文本时间可以直接比较
func (r *chatRepository) Touch(ctx context.Context, id uint, lastActive time.Time) error {
	result := dbFrom(ctx, r.db).
		Model(&ChatSessionModel{}).
		Where("id = ?", id).
		Update("last_active", lastActive.UTC())
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新会话失败")
	}
	if result.RowsAffected == 0 {
		return chat.ErrSessionNotFound
	}
	return nil
}

// AppendMessages 追加消息
func (r *chatRepository) AppendMessages(ctx context.Context, msgs ...*chat.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	models := make([]*ChatMessageModel, len(msgs))
	for i, m := range msgs {
		models[i] = &ChatMessageModel{
			SessionID: m.SessionID,
			Sender:    m.Sender,
			Kind:      string(m.Kind),
			Content:   m.Content,
			Timestamp: m.Timestamp.UTC(),
		}
	}
	if err := dbFrom(ctx, r.db).Create(&models).Error; err != nil {
		return apperrors.Wrap(err, "保存消息失败")
	}
	for i := range msgs {
		msgs[i].ID = models[i].ID
	}
	return nil
}

// RecentMessages 查询最近的消息(时间正序)
// 先倒序取limit条,再在内存中翻转
func (r *chatRepository) RecentMessages(ctx context.Context, sessionID uint, limit int) ([]*chat.Message, error) {
	var models []ChatMessageModel
	query := dbFrom(ctx, r.db).
		Where("session_id = ?", sessionID).
		Order("sent_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询历史消息失败")
	}

	msgs := make([]*chat.Message, len(models))
	for i := range models {
		m := models[len(models)-1-i]
		msgs[i] = &chat.Message{
			ID:        m.ID,
			SessionID: m.SessionID,
			Sender:    m.Sender,
			Kind:      chat.MessageKind(m.Kind),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		}
	}
	return msgs, nil
}

func toSessionEntity(m *ChatSessionModel) *chat.Session {
	return &chat.Session{
		ID:          m.ID,
		UserID:      m.UserID,
		BookstoreID: m.BookstoreID,
		CreatedAt:   m.CreatedAt,
		LastActive:  m.LastActive,
	}
}
