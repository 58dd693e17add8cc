package book

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

type fakeService struct {
	books      []*book.Book
	total      int64
	lastParams book.ListParams
	active     map[uint]bool
}

func (s *fakeService) GetBook(_ context.Context, id uint) (*book.Book, error) {
	for _, b := range s.books {
		if b.ID == id && b.IsActive {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (s *fakeService) ListBooks(_ context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	s.lastParams = params
	return s.books, s.total, nil
}

func (s *fakeService) SetActive(_ context.Context, id uint, active bool) error {
	if id == 0 {
		return book.ErrBookNotFound
	}
	if s.active == nil {
		s.active = map[uint]bool{}
	}
	s.active[id] = active
	return nil
}

func (s *fakeService) CreateBook(_ context.Context, bookstoreID uint, d book.Draft, quantity int) (*book.Book, error) {
	b, err := book.NewBook(bookstoreID, d, quantity)
	if err != nil {
		return nil, err
	}
	b.ID = uint(len(s.books) + 1)
	s.books = append(s.books, b)
	return b, nil
}

func (s *fakeService) UpdateBook(_ context.Context, id uint, d book.Draft) (*book.Book, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	for _, b := range s.books {
		if b.ID == id {
			b.Apply(d)
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (s *fakeService) ListInactive(_ context.Context, bookstoreID uint, page, pageSize int) ([]*book.Book, int64, error) {
	if bookstoreID == 0 {
		return nil, 0, book.ErrInvalidBookstore
	}
	s.lastParams = book.ListParams{Page: page, PageSize: pageSize, BookstoreID: bookstoreID, Inactive: true}
	var out []*book.Book
	for _, b := range s.books {
		if !b.IsActive && b.BookstoreID == bookstoreID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func TestListBooks_PagingAndMapping(t *testing.T) {
	rating := 4.8
	svc := &fakeService{
		total: 41,
		books: []*book.Book{{
			ID: 1, Title: "Clean Code", Author: "Robert Martin", TypeName: "Programming",
			Price: decimal.RequireFromString("250000.50"), Quantity: 3, BookstoreID: 2,
			AverageRating: &rating, IsActive: true,
			CreatedAt: time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		}},
	}
	uc := NewListBooksUseCase(svc)

	maxPrice := decimal.NewFromInt(300000)
	resp, err := uc.Execute(context.Background(), ListBooksRequest{PageSize: 20, TypeID: 4, MaxPrice: &maxPrice})
	require.NoError(t, err)

	assert.Equal(t, uint(4), svc.lastParams.TypeID)
	assert.True(t, maxPrice.Equal(*svc.lastParams.MaxPrice))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.List, 1)
	assert.Equal(t, "Programming", resp.List[0].TypeName)
	assert.Equal(t, 4.8, resp.List[0].AverageRating)
	assert.Equal(t, "2024-05-01 08:30:00", resp.List[0].CreatedAt)
	assert.Equal(t, "250000.5", resp.List[0].Price.String())
}

func TestGetBook(t *testing.T) {
	pages := 320
	published := time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC)
	svc := &fakeService{books: []*book.Book{
		{ID: 1, Title: "Sapiens", PageCount: &pages, PublishedDate: &published, IsActive: true},
		{ID: 2, Title: "Hidden", IsActive: false},
	}}
	uc := NewGetBookUseCase(svc)

	detail, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 320, detail.PageCount)
	assert.Equal(t, "2019-03-15", detail.PublishedDate)
	assert.Equal(t, 0, detail.RatingsCount)

	_, err = uc.Execute(context.Background(), 2)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestSetActive(t *testing.T) {
	svc := &fakeService{}
	uc := NewSetActiveUseCase(svc)

	require.NoError(t, uc.Execute(context.Background(), SetActiveRequest{BookID: 3, Active: false, OperatorID: "admin"}))
	assert.Equal(t, map[uint]bool{3: false}, svc.active)
	assert.ErrorIs(t, uc.Execute(context.Background(), SetActiveRequest{BookID: 0}), book.ErrBookNotFound)
}

func TestCreateBook(t *testing.T) {
	svc := &fakeService{}
	uc := NewCreateBookUseCase(svc)
	pages := 200
	published := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)

	detail, err := uc.Execute(context.Background(), CreateBookRequest{
		BookInput: BookInput{
			Title: "Tôi Thấy Hoa Vàng Trên Cỏ Xanh", Author: "Nguyễn Nhật Ánh",
			Price: decimal.NewFromInt(125000), PageCount: &pages, PublishedDate: &published,
		},
		BookstoreID: 2,
		Quantity:    0,
		OperatorID:  "owner-1",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), detail.ID)
	assert.True(t, detail.IsActive)
	assert.Equal(t, 0, detail.Quantity)
	assert.Equal(t, "2022-01-02", detail.PublishedDate)
	assert.Equal(t, 200, detail.PageCount)

	_, err = uc.Execute(context.Background(), CreateBookRequest{
		BookInput:   BookInput{Title: "x", Price: decimal.NewFromInt(1)},
		BookstoreID: 2,
		Quantity:    -3,
	})
	assert.ErrorIs(t, err, book.ErrInvalidQuantity)
	assert.Len(t, svc.books, 1)
}

func TestUpdateBook(t *testing.T) {
	svc := &fakeService{books: []*book.Book{{ID: 8, Title: "Draft", Quantity: 4, BookstoreID: 1}}}
	uc := NewUpdateBookUseCase(svc)

	detail, err := uc.Execute(context.Background(), UpdateBookRequest{
		BookID:    8,
		BookInput: BookInput{Title: "Final", Price: decimal.NewFromInt(70000)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", detail.Title)
	assert.Equal(t, 4, detail.Quantity)
	assert.False(t, detail.IsActive)

	_, err = uc.Execute(context.Background(), UpdateBookRequest{BookID: 9, BookInput: BookInput{Title: "x", Price: decimal.NewFromInt(1)}})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestListInactive(t *testing.T) {
	svc := &fakeService{books: []*book.Book{
		{ID: 1, Title: "On shelf", BookstoreID: 3, IsActive: true},
		{ID: 2, Title: "Withdrawn", BookstoreID: 3},
		{ID: 3, Title: "Other store", BookstoreID: 4},
	}}
	uc := NewListInactiveUseCase(svc)

	resp, err := uc.Execute(context.Background(), 3, 0, 0)
	require.NoError(t, err)
	require.Len(t, resp.List, 1)
	assert.Equal(t, uint(2), resp.List[0].ID)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, book.DefaultPageSize, resp.PageSize)
	assert.Equal(t, 1, resp.TotalPages)

	_, err = uc.Execute(context.Background(), 0, 1, 10)
	assert.ErrorIs(t, err, book.ErrInvalidBookstore)
}
