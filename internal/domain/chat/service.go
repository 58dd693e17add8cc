package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DefaultHistoryWindow 默认带入提示词的历史消息条数
const DefaultHistoryWindow = 10

// Service 会话存储服务
// 业务规则:
// 1. 登录用户续用自己最近活跃的会话;匿名访客每次都是新会话
// 2. 历史默认只取最近的窗口,提问带有"回顾"意图时取全部
// 3. 一问一答两条消息在同一事务中写入,生成失败时不写入
// 4. 问答流程中新会话的创建、已有会话的活跃时间刷新都推迟到写入消息时
type Service struct {
	repo   Repository
	tx     Transactor
	window int
	now    func() time.Time
}

// NewService 创建会话服务,window<=0时使用DefaultHistoryWindow
func NewService(repo Repository, tx Transactor, window int) *Service {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	return &Service{
		repo:   repo,
		tx:     tx,
		window: window,
		now:    time.Now,
	}
}

// Resolve 查找本次提问使用的会话,不写库
// 登录用户返回其最近活跃的会话;匿名或没有可续用的会话时返回未持久化的新会话(ID为0),
// 由AppendExchange在写入消息的同一事务中创建
func (s *Service) Resolve(ctx context.Context, userID *string, bookstoreID *uint) (*Session, error) {
	if userID != nil && *userID != "" {
		existing, err := s.repo.FindLatestByUser(ctx, *userID)
		switch {
		case err == nil:
			return existing, nil
		case !errors.Is(err, ErrSessionNotFound):
			return nil, err
		}
	} else {
		userID = nil
	}
	return &Session{UserID: userID, BookstoreID: bookstoreID}, nil
}

// GetOrCreate 获取或创建会话
// 续用的会话刷新活跃时间(严格递增)
func (s *Service) GetOrCreate(ctx context.Context, userID *string, bookstoreID *uint) (*Session, error) {
	session, err := s.Resolve(ctx, userID, bookstoreID)
	if err != nil {
		return nil, err
	}
	if session.Persisted() {
		next := s.nextActive(session.LastActive)
		if err := s.repo.Touch(ctx, session.ID, next); err != nil {
			return nil, err
		}
		session.LastActive = next
		return session, nil
	}
	if err := s.create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) create(ctx context.Context, session *Session) error {
	now := s.now()
	session.CreatedAt = now
	session.LastActive = now
	return s.repo.Create(ctx, session)
}

// AppendTurn 追加单条消息并刷新会话活跃时间
func (s *Service) AppendTurn(ctx context.Context, sessionID uint, sender string, kind MessageKind, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		session, err := s.repo.FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		at := s.nextActive(session.LastActive)
		msg := &Message{SessionID: sessionID, Sender: sender, Kind: kind, Content: content, Timestamp: at}
		if err := s.repo.AppendMessages(ctx, msg); err != nil {
			return err
		}
		return s.repo.Touch(ctx, sessionID, at)
	})
}

// AppendExchange 在同一事务中追加一问一答
// 1. 未持久化的会话(Resolve返回的新会话)先创建并回填ID
// 2. 问题按提问者身份打标签,回答固定为AssistantSender
// 3. 刷新会话活跃时间
// 任一步失败整体回滚,会话与消息都不会留下
func (s *Service) AppendExchange(ctx context.Context, session *Session, who Identity, question, answer string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyContent
	}
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		if session.Persisted() {
			current, err := s.repo.FindByID(ctx, session.ID)
			if err != nil {
				return err
			}
			session.LastActive = current.LastActive
		} else if err := s.create(ctx, session); err != nil {
			return err
		}

		askedAt := s.nextActive(session.LastActive)
		answeredAt := askedAt.Add(time.Millisecond)
		if now := s.now(); now.After(answeredAt) {
			answeredAt = now
		}

		msgs := []*Message{
			{SessionID: session.ID, Sender: who.Tag(), Kind: KindUser, Content: question, Timestamp: askedAt},
			{SessionID: session.ID, Sender: AssistantSender, Kind: KindAssistant, Content: answer, Timestamp: answeredAt},
		}
		if err := s.repo.AppendMessages(ctx, msgs...); err != nil {
			return err
		}
		if err := s.repo.Touch(ctx, session.ID, answeredAt); err != nil {
			return err
		}
		session.LastActive = answeredAt
		return nil
	})
}

// LoadHistory 加载历史消息(时间正序)
// full=false时只取最近window条
func (s *Service) LoadHistory(ctx context.Context, sessionID uint, full bool) ([]*Message, error) {
	limit := s.window
	if full {
		limit = 0
	}
	return s.repo.RecentMessages(ctx, sessionID, limit)
}

// nextActive 保证活跃时间严格递增(数据库时间精度为毫秒)
func (s *Service) nextActive(prev time.Time) time.Time {
	now := s.now()
	floor := prev.Add(time.Millisecond)
	if now.Before(floor) {
		return floor
	}
	return now
}

// recallPhrases 表示"回顾之前对话"意图的短语(越南语与英语)
var recallPhrases = []string{
	"trước đó", "lúc nãy", "vừa nãy", "vừa rồi", "tóm tắt", "nhắc lại",
	"còn nhớ", "có nhớ", "nhớ không", "lịch sử trò chuyện", "lịch sử chat",
	"đã hỏi", "đã nói",
	"previous", "earlier", "summary", "summarize", "summarise", "recap",
	"remember", "chat history", "conversation history", "what did i ask",
}

// WantsFullHistory 判断提问是否需要完整历史
func WantsFullHistory(question string) bool {
	q := norm.NFC.String(strings.ToLower(question))
	for _, phrase := range recallPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}
