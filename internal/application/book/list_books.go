package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 只返回上架图书,支持分类、价格上限、书店过滤
// 2. 列表不返回description字段(减少数据传输量)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page        int              // 页码(从1开始)
	PageSize    int              // 每页数量
	Keyword     string           // 搜索关键词(标题、作者)
	TypeID      uint             // 分类ID,0表示不限
	MaxPrice    *decimal.Decimal // 价格上限
	BookstoreID uint             // 书店ID,0表示不限
	SortBy      string           // price_asc, price_desc, rating_desc, created_at_desc
}

// BookListItem 列表项DTO(不含description)
type BookListItem struct {
	ID            uint            `json:"id"`
	ISBN          string          `json:"isbn"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Publisher     string          `json:"publisher"`
	TypeName      string          `json:"type_name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	BookstoreID   uint            `json:"bookstore_id"`
	AverageRating float64         `json:"average_rating"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     string          `json:"created_at"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行列表查询用例
// 分页默认值与上限由领域服务统一处理,这里回显实际生效的值
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	params := book.ListParams{
		Page:        req.Page,
		PageSize:    req.PageSize,
		Keyword:     req.Keyword,
		TypeID:      req.TypeID,
		MaxPrice:    req.MaxPrice,
		BookstoreID: req.BookstoreID,
		SortBy:      req.SortBy,
	}
	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	page, pageSize := book.NormalizePage(req.Page, req.PageSize)
	return toListResponse(books, total, page, pageSize), nil
}

// toListResponse 组装分页列表
func toListResponse(books []*book.Book, total int64, page, pageSize int) *ListBooksResponse {
	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = BookListItem{
			ID:            b.ID,
			ISBN:          b.ISBN,
			Title:         b.Title,
			Author:        b.Author,
			Publisher:     b.Publisher,
			TypeName:      b.TypeName,
			Price:         b.Price,
			Quantity:      b.Quantity,
			BookstoreID:   b.BookstoreID,
			AverageRating: b.Rating(),
			ImageURL:      b.ImageURL,
			CreatedAt:     b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
