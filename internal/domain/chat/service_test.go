package chat

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo 内存版会话仓储
type memoryRepo struct {
	mu       sync.Mutex
	sessions map[uint]*Session
	messages []*Message
	nextID   uint
	failOn   string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sessions: map[uint]*Session{}}
}

func (r *memoryRepo) Create(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uint) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) FindLatestByUser(_ context.Context, userID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *Session
	for _, s := range r.sessions {
		if s.UserID == nil || *s.UserID != userID {
			continue
		}
		if latest == nil || s.LastActive.After(latest.LastActive) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrSessionNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *memoryRepo) Touch(_ context.Context, id uint, lastActive time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id].LastActive = lastActive
	return nil
}

func (r *memoryRepo) AppendMessages(_ context.Context, msgs ...*Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "append" {
		return errors.New("disk full")
	}
	for _, m := range msgs {
		m.ID = uint(len(r.messages) + 1)
		r.messages = append(r.messages, m)
	}
	return nil
}

func (r *memoryRepo) RecentMessages(_ context.Context, sessionID uint, limit int) ([]*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Message
	for _, m := range r.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type directTx struct{}

func (directTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func strPtr(s string) *string { return &s }

func TestService_GetOrCreate_ResumesForUser(t *testing.T) {
	svc := NewService(newMemoryRepo(), directTx{}, 10)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, strPtr("u-1"), nil)
	require.NoError(t, err)
	second, err := svc.GetOrCreate(ctx, strPtr("u-1"), nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.LastActive.After(first.LastActive), "活跃时间应严格递增")

	other, err := svc.GetOrCreate(ctx, strPtr("u-2"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestService_GetOrCreate_AnonymousAlwaysNew(t *testing.T) {
	svc := NewService(newMemoryRepo(), directTx{}, 10)
	ctx := context.Background()

	a, err := svc.GetOrCreate(ctx, nil, nil)
	require.NoError(t, err)
	b, err := svc.GetOrCreate(ctx, nil, nil)
	require.NoError(t, err)
	c, err := svc.GetOrCreate(ctx, strPtr(""), nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, b.ID, c.ID)
	assert.True(t, c.Anonymous())
}

func TestService_AppendExchange_AndLoadHistory(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, directTx{}, 10)
	ctx := context.Background()

	session, err := svc.GetOrCreate(ctx, strPtr("u-1"), nil)
	require.NoError(t, err)

	who := Identity{UserID: "u-1", Name: "Lan", Role: "Customer"}
	for i := 0; i < 6; i++ {
		require.NoError(t, svc.AppendExchange(ctx, session, who, "hỏi", "đáp"))
	}

	recent, err := svc.LoadHistory(ctx, session.ID, false)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, repo.messages[2].ID, recent[0].ID, "只保留最近10条且按时间正序")
	assert.Equal(t, "Lan (Customer)", recent[0].Sender)
	assert.Equal(t, AssistantSender, recent[1].Sender)

	full, err := svc.LoadHistory(ctx, session.ID, true)
	require.NoError(t, err)
	assert.Len(t, full, 12)

	for i := 1; i < len(full); i++ {
		assert.False(t, full[i].Timestamp.Before(full[i-1].Timestamp))
	}
}

func TestService_AppendExchange_Failure(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, directTx{}, 10)
	ctx := context.Background()

	session, err := svc.GetOrCreate(ctx, nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AppendExchange(ctx, session, Identity{}, "  ", "x"), ErrEmptyContent)
	assert.ErrorIs(t, svc.AppendExchange(ctx, &Session{ID: 999}, Identity{}, "q", "a"), ErrSessionNotFound)

	repo.failOn = "append"
	assert.Error(t, svc.AppendExchange(ctx, session, Identity{}, "q", "a"))
	assert.Empty(t, repo.messages)
}

func TestService_ResolveDoesNotWrite(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, directTx{}, 10)
	ctx := context.Background()

	fresh, err := svc.Resolve(ctx, strPtr("u-1"), nil)
	require.NoError(t, err)
	assert.False(t, fresh.Persisted())
	assert.Empty(t, repo.sessions, "没有可续用的会话时不创建")

	anon, err := svc.Resolve(ctx, strPtr(""), nil)
	require.NoError(t, err)
	assert.True(t, anon.Anonymous())

	existing, err := svc.GetOrCreate(ctx, strPtr("u-1"), nil)
	require.NoError(t, err)
	before := repo.sessions[existing.ID].LastActive

	resumed, err := svc.Resolve(ctx, strPtr("u-1"), nil)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, resumed.ID)
	assert.Equal(t, before, repo.sessions[existing.ID].LastActive, "续用时不刷新活跃时间")
	assert.Len(t, repo.sessions, 1)
}

func TestService_AppendExchange_CreatesResolvedSession(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, directTx{}, 10)
	ctx := context.Background()

	session, err := svc.Resolve(ctx, nil, nil)
	require.NoError(t, err)
	require.NoError(t, svc.AppendExchange(ctx, session, Identity{}, "q", "a"))

	require.True(t, session.Persisted())
	require.Contains(t, repo.sessions, session.ID)
	assert.Equal(t, session.LastActive, repo.sessions[session.ID].LastActive)
	history, err := svc.LoadHistory(ctx, session.ID, true)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Guest", history[0].Sender)
}

func TestService_AppendTurn(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, directTx{}, 0)
	ctx := context.Background()

	session, err := svc.GetOrCreate(ctx, nil, nil)
	require.NoError(t, err)
	require.NoError(t, svc.AppendTurn(ctx, session.ID, "Guest", KindUser, "xin chào"))

	history, err := svc.LoadHistory(ctx, session.ID, false)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, KindUser, history[0].Kind)
}

func TestIdentity_Tag(t *testing.T) {
	assert.Equal(t, "Guest", Identity{}.Tag())
	assert.Equal(t, "Lan (Customer)", Identity{UserID: "u", Name: "Lan", Role: "Customer"}.Tag())
	assert.Equal(t, "Lan", Identity{UserID: "u", Name: "Lan"}.Tag())
	assert.Equal(t, "u (Admin)", Identity{UserID: "u", Role: "Admin"}.Tag())
	assert.Nil(t, Identity{}.UserIDPtr())
}

func TestWantsFullHistory(t *testing.T) {
	assert.True(t, WantsFullHistory("Bạn có thể TÓM TẮT cuộc trò chuyện không?"))
	assert.True(t, WantsFullHistory("Lúc nãy tôi hỏi cuốn nào?"))
	assert.True(t, WantsFullHistory("Can you remember what I liked?"))
	assert.True(t, WantsFullHistory("give me a summary"))
	assert.False(t, WantsFullHistory("Gợi ý sách trinh thám hay"))
	assert.False(t, WantsFullHistory("sách lịch sử Việt Nam"))
}
