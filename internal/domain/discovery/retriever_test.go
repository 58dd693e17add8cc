package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

func TestRetriever_Find_SystemWide(t *testing.T) {
	repo := &fakeBookRepo{filtered: []*book.Book{{ID: 1}}}
	r := NewRetriever(repo, RetrieverOptions{})

	books, err := r.Find(context.Background(), Query{Text: "one two three four five six seven"})
	require.NoError(t, err)
	assert.Len(t, books, 1)

	require.Len(t, repo.queries, 1)
	q := repo.queries[0]
	assert.Nil(t, q.BookstoreID)
	assert.Equal(t, book.OrderByRating, q.Order)
	assert.Equal(t, DefaultSystemLimit, q.Limit)
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, q.Terms)
}

func TestRetriever_Find_ScopedUsesAllTerms(t *testing.T) {
	repo := &fakeBookRepo{filtered: []*book.Book{{ID: 1}}}
	r := NewRetriever(repo, RetrieverOptions{})
	store := uint(7)

	_, err := r.Find(context.Background(), Query{BookstoreID: &store, Text: "one two three four five six seven"})
	require.NoError(t, err)

	q := repo.queries[0]
	assert.Equal(t, &store, q.BookstoreID)
	assert.Equal(t, DefaultScopedLimit, q.Limit)
	assert.Len(t, q.Terms, 7)
}

func TestRetriever_Find_PriceReplacesKeywords(t *testing.T) {
	repo := &fakeBookRepo{filtered: []*book.Book{{ID: 1}}}
	r := NewRetriever(repo, RetrieverOptions{})

	_, err := r.Find(context.Background(), Query{Text: "sách trên 200k"})
	require.NoError(t, err)

	q := repo.queries[0]
	require.NotNil(t, q.MinPrice)
	assert.Equal(t, "200000", q.MinPrice.String())
	assert.Empty(t, q.Terms)
}

func TestRetriever_Find_Fallback(t *testing.T) {
	var fallbacks []bool
	repo := &fakeBookRepo{fallback: []*book.Book{{ID: 9}}}
	r := NewRetriever(repo, RetrieverOptions{OnFallback: func(scoped bool) { fallbacks = append(fallbacks, scoped) }})

	books, err := r.Find(context.Background(), Query{Text: "không có kết quả"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, uint(9), books[0].ID)

	require.Len(t, repo.queries, 2)
	assert.Equal(t, book.OrderByPopularity, repo.queries[1].Order)
	assert.Empty(t, repo.queries[1].Terms)
	assert.Nil(t, repo.queries[1].MinPrice)

	store := uint(3)
	_, err = r.Find(context.Background(), Query{BookstoreID: &store, Text: "không có kết quả"})
	require.NoError(t, err)
	assert.Equal(t, book.OrderByNewest, repo.queries[3].Order)
	assert.Equal(t, []bool{false, true}, fallbacks)
}

func TestRetriever_Find_NoTermsGoesStraightToFallback(t *testing.T) {
	repo := &fakeBookRepo{fallback: []*book.Book{{ID: 2}}}
	r := NewRetriever(repo, RetrieverOptions{})

	books, err := r.Find(context.Background(), Query{Text: "hi"})
	require.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Len(t, repo.queries, 1)
}

func TestRetriever_Find_Error(t *testing.T) {
	repo := &fakeBookRepo{err: errors.New("connection refused")}
	r := NewRetriever(repo, RetrieverOptions{})

	_, err := r.Find(context.Background(), Query{Text: "trinh thám"})
	assert.Error(t, err)
}
