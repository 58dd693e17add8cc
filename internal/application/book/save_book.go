package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

// BookInput 新建/修改图书的元数据
type BookInput struct {
	ISBN          string
	Title         string
	Author        string
	Translator    string
	Publisher     string
	PublishedDate *time.Time
	Language      string
	PageCount     *int
	Description   string
	Price         decimal.Decimal
	TypeID        uint
	ImageURL      string
}

func (in BookInput) draft() book.Draft {
	return book.Draft{
		ISBN:          in.ISBN,
		Title:         in.Title,
		Author:        in.Author,
		Translator:    in.Translator,
		Publisher:     in.Publisher,
		PublishedDate: in.PublishedDate,
		Language:      in.Language,
		PageCount:     in.PageCount,
		Description:   in.Description,
		Price:         in.Price,
		TypeID:        in.TypeID,
		ImageURL:      in.ImageURL,
	}
}

// CreateBookUseCase 新建图书用例
// 新书默认上架,初始库存之后的数量变化只走进货/退货账本
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建新建图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 新建图书请求DTO
type CreateBookRequest struct {
	BookInput
	BookstoreID uint
	Quantity    int    // 初始库存,>=0
	OperatorID  string // 仅用于日志
}

// Execute 执行新建
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookDetail, error) {
	b, err := uc.bookService.CreateBook(ctx, req.BookstoreID, req.draft(), req.Quantity)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "图书已创建", "book_id", b.ID, "bookstore_id", b.BookstoreID, "quantity", b.Quantity, "operator", req.OperatorID)
	return toDetail(b), nil
}

// UpdateBookUseCase 修改图书元数据用例
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建修改图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 修改图书请求DTO
type UpdateBookRequest struct {
	BookInput
	BookID     uint
	OperatorID string
}

// Execute 执行修改,库存数量与上架状态不变
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookDetail, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.BookID, req.draft())
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "图书信息已更新", "book_id", b.ID, "operator", req.OperatorID)
	return toDetail(b), nil
}
