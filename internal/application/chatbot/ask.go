package chatbot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xiebiao/bookbridge/internal/domain/book"
	"github.com/xiebiao/bookbridge/internal/domain/chat"
	"github.com/xiebiao/bookbridge/internal/domain/discovery"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
	"github.com/xiebiao/bookbridge/pkg/metrics"
	"github.com/xiebiao/bookbridge/pkg/tracing"
)

const tracerName = "bookbridge/chatbot"

// AskUseCase 图书问答用例
type AskUseCase struct {
	sessions   *chat.Service
	retriever  *discovery.Retriever
	generator  discovery.Generator
	reconciler *discovery.Reconciler
	locale     string
}

// NewAskUseCase 创建问答用例
func NewAskUseCase(
	sessions *chat.Service,
	retriever *discovery.Retriever,
	generator discovery.Generator,
	reconciler *discovery.Reconciler,
	locale string,
) *AskUseCase {
	return &AskUseCase{
		sessions:   sessions,
		retriever:  retriever,
		generator:  generator,
		reconciler: reconciler,
		locale:     locale,
	}
}

// AskRequest 问答请求
type AskRequest struct {
	Question    string
	BookstoreID *uint // 为空表示全站
	Identity    chat.Identity
}

// AskResponse 问答响应
type AskResponse struct {
	Answer    string      `json:"answer"`
	Books     []book.Info `json:"books"`
	SessionID uint        `json:"sessionId"`
}

// Execute 执行问答
// 流程:
// 1. 参数校验
// 2. 查找可续用的会话,加载历史(只读)
// 3. 检索候选图书
// 4. 构建提示词并调用生成服务(失败时不写入任何数据)
// 5. 拆分回答与引用,还原推荐列表
// 6. 同一事务创建/刷新会话并写入一问一答
func (uc *AskUseCase) Execute(ctx context.Context, req AskRequest) (resp *AskResponse, err error) {
	scope := "system"
	if req.BookstoreID != nil {
		scope = "bookstore"
	}
	ctx, span := tracing.StartSpan(ctx, tracerName, "Ask.Execute")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.IncCounterVec(metrics.ChatRequestsTotal, map[string]string{"scope": scope, "result": askResult(err)})
	}()

	// 步骤1: 参数校验
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if req.BookstoreID != nil && *req.BookstoreID == 0 {
		return nil, ErrInvalidScope
	}

	// 步骤2: 会话与历史
	session, err := uc.sessions.Resolve(ctx, req.Identity.UserIDPtr(), req.BookstoreID)
	if err != nil {
		return nil, err
	}
	var history []*chat.Message
	if session.Persisted() {
		history, err = uc.sessions.LoadHistory(ctx, session.ID, chat.WantsFullHistory(question))
		if err != nil {
			return nil, err
		}
	}

	// 步骤3: 候选检索
	candidates, err := uc.retriever.Find(ctx, discovery.Query{BookstoreID: req.BookstoreID, Text: question})
	if err != nil {
		return nil, err
	}

	// 步骤4: 生成
	prompt := discovery.BuildPrompt(discovery.PromptInput{
		Candidates: candidates,
		History:    history,
		Identity:   req.Identity,
		Question:   question,
		Locale:     uc.locale,
		Detailed:   req.BookstoreID != nil,
	})
	raw, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "生成服务调用失败", "session_id", session.ID, "anonymous", req.Identity.Anonymous(), "error", err)
		return nil, err
	}

	// 步骤5: 拆分与还原
	split := discovery.SplitResponse(raw)
	if split.Err != nil {
		metrics.IncCounter(metrics.PayloadParseFailuresTotal)
		slog.WarnContext(ctx, "推荐数据块解析失败,已忽略", "session_id", session.ID, "error", split.Err)
	}
	books, source, err := uc.reconciler.Reconcile(ctx, split.IDs(), candidates)
	if err != nil {
		return nil, err
	}
	metrics.IncCounterVec(metrics.RecommendationsTotal, map[string]string{"source": string(source)})

	// 步骤6: 持久化
	if err := uc.sessions.AppendExchange(ctx, session, req.Identity, question, split.Answer); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "问答完成",
		"session_id", session.ID,
		"scope", scope,
		"candidates", len(candidates),
		"books", len(books),
		"source", source,
	)

	return &AskResponse{
		Answer:    split.Answer,
		Books:     books,
		SessionID: session.ID,
	}, nil
}

func askResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.HasCode(err, apperrors.ErrCodeInvalidParams):
		return "invalid"
	case apperrors.HasCode(err, apperrors.ErrCodeUpstreamError):
		return "upstream_error"
	default:
		return "error"
	}
}
