package chatbot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookbridge/internal/domain/book"
	"github.com/xiebiao/bookbridge/internal/domain/chat"
	"github.com/xiebiao/bookbridge/internal/domain/discovery"
	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
	"github.com/xiebiao/bookbridge/internal/infrastructure/persistence/gormstore"
)

// scriptedGenerator 返回预设回答并记录收到的提示词
type scriptedGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func setupAsk(t *testing.T, policy discovery.Policy) (*AskUseCase, *scriptedGenerator, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gormstore.NewDB(&config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			Path:        fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
			AutoMigrate: true,
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.Create(&gormstore.BookTypeModel{ID: 1, Name: "Programming", IsActive: true}).Error)
	require.NoError(t, db.Create(&gormstore.BookTypeModel{ID: 2, Name: "Cooking", IsActive: true}).Error)
	rating := func(v float64) *float64 { return &v }
	seeds := []gormstore.BookModel{
		{ID: 1, Title: "Golang in Practice", Author: "Nguyen Van A", TypeID: 1, BookstoreID: 1, Quantity: 4, AverageRating: rating(4.5)},
		{ID: 2, Title: "Rust Basics", Author: "Tran B", TypeID: 1, BookstoreID: 1, Quantity: 2, AverageRating: rating(4.0)},
		{ID: 3, Title: "Home Kitchen", Author: "Le C", TypeID: 2, BookstoreID: 1, Quantity: 7},
		{ID: 4, Title: "Golang Advanced", Author: "Pham D", TypeID: 1, BookstoreID: 2, Quantity: 1, AverageRating: rating(3.0)},
	}
	for i := range seeds {
		seeds[i].IsActive = true
		seeds[i].Price = decimal.NewFromInt(120000)
		require.NoError(t, db.Create(&seeds[i]).Error)
	}

	books := gormstore.NewBookRepository(db)
	tx := gormstore.NewTxManager(db)
	gen := &scriptedGenerator{}
	uc := NewAskUseCase(
		chat.NewService(gormstore.NewChatRepository(db), tx, 0),
		discovery.NewRetriever(books, discovery.RetrieverOptions{}),
		gen,
		discovery.NewReconciler(books, policy),
		"vi",
	)
	return uc, gen, db
}

func messageCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&gormstore.ChatMessageModel{}).Count(&n).Error)
	return n
}

func sessionCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&gormstore.ChatSessionModel{}).Count(&n).Error)
	return n
}

func bookIDs(infos []book.Info) []uint {
	ids := make([]uint, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

func TestAsk_ModelReferences(t *testing.T) {
	uc, gen, db := setupAsk(t, discovery.PolicyReconcile)
	gen.reply = "Bạn nên đọc [ID:1].\n----START----\n[{\"id\":1,\"title\":\"Golang in Practice\",\"bookstoreId\":1}]\n----END----"

	who := chat.Identity{UserID: "u-1", Name: "Lan", Role: "Customer"}
	resp, err := uc.Execute(context.Background(), AskRequest{Question: "recommend golang books", Identity: who})
	require.NoError(t, err)

	assert.Equal(t, "Bạn nên đọc [ID:1].", resp.Answer)
	assert.Equal(t, []uint{1}, bookIDs(resp.Books))
	assert.Equal(t, "Golang in Practice", resp.Books[0].Title)
	assert.NotZero(t, resp.SessionID)
	assert.Equal(t, int64(2), messageCount(t, db))

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "[ID:1] Golang in Practice")
	assert.Contains(t, gen.prompts[0], "[ID:4] Golang Advanced")
	assert.NotContains(t, gen.prompts[0], "[ID:3]")
	assert.Contains(t, gen.prompts[0], "Lan (Customer)")

	// 同一用户再次提问续用同一会话,且历史进入提示词
	again, err := uc.Execute(context.Background(), AskRequest{Question: "what about rust?", Identity: who})
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, again.SessionID)
	assert.Contains(t, gen.prompts[1], "recommend golang books")
	assert.Equal(t, int64(4), messageCount(t, db))
}

func TestAsk_UnknownReferencesFallBackToCandidates(t *testing.T) {
	uc, gen, _ := setupAsk(t, discovery.PolicyReconcile)
	gen.reply = "Gợi ý cho bạn.\n----START----\n[{\"id\":99}]\n----END----"

	resp, err := uc.Execute(context.Background(), AskRequest{Question: "golang please"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 4}, bookIDs(resp.Books))
}

func TestAsk_MalformedPayloadKeepsAnswer(t *testing.T) {
	uc, gen, db := setupAsk(t, discovery.PolicyReconcile)
	gen.reply = "Xin chào ----START---- not json ----END----"

	resp, err := uc.Execute(context.Background(), AskRequest{Question: "golang"})
	require.NoError(t, err)
	assert.Equal(t, "Xin chào", resp.Answer)
	assert.ElementsMatch(t, []uint{1, 4}, bookIDs(resp.Books))
	assert.Equal(t, int64(2), messageCount(t, db))
}

func TestAsk_ScopedSearch(t *testing.T) {
	uc, gen, _ := setupAsk(t, discovery.PolicyCandidates)
	gen.reply = "Chỉ có một cuốn."

	store := uint(2)
	resp, err := uc.Execute(context.Background(), AskRequest{Question: "golang", BookstoreID: &store})
	require.NoError(t, err)
	assert.Equal(t, "Chỉ có một cuốn.", resp.Answer)
	assert.Equal(t, []uint{4}, bookIDs(resp.Books))
	assert.NotContains(t, gen.prompts[0], "[ID:1]")
}

func TestAsk_NoMatchUsesFallbackCandidates(t *testing.T) {
	uc, gen, _ := setupAsk(t, discovery.PolicyCandidates)
	gen.reply = "Không tìm thấy, nhưng đây là sách nổi bật."

	resp, err := uc.Execute(context.Background(), AskRequest{Question: "zzzz qqqq"})
	require.NoError(t, err)
	assert.Len(t, resp.Books, 4)
}

func TestAsk_UpstreamFailurePersistsNothing(t *testing.T) {
	uc, gen, db := setupAsk(t, discovery.PolicyReconcile)
	gen.err = discovery.ErrUpstream

	resp, err := uc.Execute(context.Background(), AskRequest{Question: "golang"})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, discovery.ErrUpstream)
	assert.Equal(t, int64(0), messageCount(t, db))
	assert.Equal(t, int64(0), sessionCount(t, db), "匿名提问失败不留下空会话")
}

func TestAsk_UpstreamFailureKeepsSessionUntouched(t *testing.T) {
	uc, gen, db := setupAsk(t, discovery.PolicyReconcile)
	who := chat.Identity{UserID: "u-7", Name: "Hoa", Role: "Customer"}

	gen.reply = "Xin chào"
	first, err := uc.Execute(context.Background(), AskRequest{Question: "golang", Identity: who})
	require.NoError(t, err)

	var before gormstore.ChatSessionModel
	require.NoError(t, db.First(&before, first.SessionID).Error)

	gen.err = discovery.ErrUpstream
	_, err = uc.Execute(context.Background(), AskRequest{Question: "rust", Identity: who})
	assert.ErrorIs(t, err, discovery.ErrUpstream)

	var after gormstore.ChatSessionModel
	require.NoError(t, db.First(&after, first.SessionID).Error)
	assert.True(t, before.LastActive.Equal(after.LastActive), "失败的提问不刷新活跃时间")
	assert.Equal(t, int64(1), sessionCount(t, db))
	assert.Equal(t, int64(2), messageCount(t, db))
}

func TestAsk_Validation(t *testing.T) {
	uc, gen, _ := setupAsk(t, discovery.PolicyReconcile)

	_, err := uc.Execute(context.Background(), AskRequest{Question: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	zero := uint(0)
	_, err = uc.Execute(context.Background(), AskRequest{Question: "golang", BookstoreID: &zero})
	assert.ErrorIs(t, err, ErrInvalidScope)

	assert.Empty(t, gen.prompts)
}
