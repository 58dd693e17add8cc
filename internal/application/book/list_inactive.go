package book

import (
	"context"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

// ListInactiveUseCase 书店下架图书列表用例(供书店管理重新上架)
type ListInactiveUseCase struct {
	bookService book.Service
}

// NewListInactiveUseCase 创建下架列表用例
func NewListInactiveUseCase(bookService book.Service) *ListInactiveUseCase {
	return &ListInactiveUseCase{bookService: bookService}
}

// Execute 分页查询某书店已下架的图书
func (uc *ListInactiveUseCase) Execute(ctx context.Context, bookstoreID uint, page, pageSize int) (*ListBooksResponse, error) {
	books, total, err := uc.bookService.ListInactive(ctx, bookstoreID, page, pageSize)
	if err != nil {
		return nil, err
	}
	page, pageSize = book.NormalizePage(page, pageSize)
	return toListResponse(books, total, page, pageSize), nil
}
