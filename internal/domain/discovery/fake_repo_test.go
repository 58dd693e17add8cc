package discovery

import (
	"context"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

// fakeBookRepo 按查询条件返回预置结果,并记录收到的查询
type fakeBookRepo struct {
	books    map[uint]*book.Book
	filtered []*book.Book
	fallback []*book.Book
	queries  []book.CandidateQuery
	err      error
}

func (f *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	if b, ok := f.books[id]; ok {
		return b, nil
	}
	return nil, book.ErrBookNotFound
}

func (f *fakeBookRepo) FindActiveByIDs(_ context.Context, ids []uint) (map[uint]*book.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uint]*book.Book)
	for _, id := range ids {
		if b, ok := f.books[id]; ok && b.IsActive {
			out[id] = b
		}
	}
	return out, nil
}

func (f *fakeBookRepo) List(context.Context, book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (f *fakeBookRepo) FindCandidates(_ context.Context, q book.CandidateQuery) ([]*book.Book, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	if len(q.Terms) > 0 || q.MinPrice != nil {
		return f.filtered, nil
	}
	return f.fallback, nil
}

func (f *fakeBookRepo) SetActive(context.Context, uint, bool) error {
	return nil
}

func (f *fakeBookRepo) Create(context.Context, *book.Book) error {
	return nil
}

func (f *fakeBookRepo) Update(context.Context, *book.Book) error {
	return nil
}
