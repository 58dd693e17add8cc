package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// BookDetail 详情DTO
type BookDetail struct {
	ID            uint            `json:"id"`
	ISBN          string          `json:"isbn"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Translator    string          `json:"translator,omitempty"`
	Publisher     string          `json:"publisher"`
	PublishedDate string          `json:"published_date,omitempty"`
	Language      string          `json:"language,omitempty"`
	PageCount     int             `json:"page_count,omitempty"`
	Description   string          `json:"description"`
	TypeID        uint            `json:"type_id"`
	TypeName      string          `json:"type_name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	BookstoreID   uint            `json:"bookstore_id"`
	AverageRating float64         `json:"average_rating"`
	RatingsCount  int             `json:"ratings_count"`
	ImageURL      string          `json:"image_url"`
	IsActive      bool            `json:"is_active"`
}

// Execute 查询上架图书详情,已下架返回ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetail, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetail(b), nil
}

// toDetail 实体 → 详情DTO
func toDetail(b *book.Book) *BookDetail {
	detail := &BookDetail{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Author:        b.Author,
		Translator:    b.Translator,
		Publisher:     b.Publisher,
		Language:      b.Language,
		Description:   b.Description,
		TypeID:        b.TypeID,
		TypeName:      b.TypeName,
		Price:         b.Price,
		Quantity:      b.Quantity,
		BookstoreID:   b.BookstoreID,
		AverageRating: b.Rating(),
		RatingsCount:  b.Ratings(),
		ImageURL:      b.ImageURL,
		IsActive:      b.IsActive,
	}
	if b.PublishedDate != nil {
		detail.PublishedDate = b.PublishedDate.Format("2006-01-02")
	}
	if b.PageCount != nil {
		detail.PageCount = *b.PageCount
	}
	return detail
}
