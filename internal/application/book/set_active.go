package book

import (
	"context"
	"log/slog"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

// SetActiveUseCase 图书上架/下架用例
// 下架的图书不再出现在列表、详情和对话推荐中,库存数量保持不变
type SetActiveUseCase struct {
	bookService book.Service
}

// NewSetActiveUseCase 创建上下架用例
func NewSetActiveUseCase(bookService book.Service) *SetActiveUseCase {
	return &SetActiveUseCase{bookService: bookService}
}

// SetActiveRequest 上下架请求DTO
type SetActiveRequest struct {
	BookID     uint
	Active     bool
	OperatorID string // 操作人(从认证中间件获取,仅用于日志)
}

// Execute 执行上下架
func (uc *SetActiveUseCase) Execute(ctx context.Context, req SetActiveRequest) error {
	if err := uc.bookService.SetActive(ctx, req.BookID, req.Active); err != nil {
		return err
	}
	slog.InfoContext(ctx, "图书上下架状态已更新", "book_id", req.BookID, "active", req.Active, "operator", req.OperatorID)
	return nil
}
