package chat

import (
	"fmt"
	"strings"
	"time"
)

// Session 对话会话
// UserID为空表示匿名访客;BookstoreID为空表示全站范围
// LastActive只增不减,每次续用或追加消息时刷新
type Session struct {
	ID          uint
	UserID      *string
	BookstoreID *uint
	CreatedAt   time.Time
	LastActive  time.Time
}

// Anonymous 是否匿名会话
func (s *Session) Anonymous() bool {
	return s.UserID == nil
}

// Persisted 是否已写入存储
func (s *Session) Persisted() bool {
	return s.ID != 0
}

// MessageKind 消息方向
type MessageKind string

const (
	KindUser      MessageKind = "user"
	KindAssistant MessageKind = "assistant"
)

// Message 对话消息(写入后不可修改)
type Message struct {
	ID        uint
	SessionID uint
	Sender    string // 展示用的发送者标签,如"Lan (Customer)"、"AI"
	Kind      MessageKind
	Content   string
	Timestamp time.Time
}

// AssistantSender 助手消息的发送者标签
const AssistantSender = "AI"

// Identity 提问者身份(来自认证中间件,匿名时为零值)
type Identity struct {
	UserID string
	Name   string
	Role   string
}

// Anonymous 是否匿名
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

// UserIDPtr 会话存储使用的用户ID
func (i Identity) UserIDPtr() *string {
	if i.Anonymous() {
		return nil
	}
	id := i.UserID
	return &id
}

// Tag 发送者标签: 显示名(角色)
func (i Identity) Tag() string {
	if i.Anonymous() {
		return "Guest"
	}
	name := strings.TrimSpace(i.Name)
	if name == "" {
		name = i.UserID
	}
	role := strings.TrimSpace(i.Role)
	if role == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, role)
}
