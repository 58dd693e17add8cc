package discovery

import (
	"context"

	"github.com/xiebiao/bookbridge/internal/domain/book"
)

const (
	// DefaultSystemLimit 全站检索候选数量
	DefaultSystemLimit = 5
	// DefaultScopedLimit 书店内检索候选数量
	DefaultScopedLimit = 10
	// DefaultMaxSystemTerms 全站检索最多使用的关键词数量
	DefaultMaxSystemTerms = 5
)

// Query 检索请求
type Query struct {
	BookstoreID *uint // 为空表示全站
	Text        string
}

// Scoped 是否限定书店
func (q Query) Scoped() bool {
	return q.BookstoreID != nil
}

// RetrieverOptions 检索参数
type RetrieverOptions struct {
	SystemLimit    int
	ScopedLimit    int
	MaxSystemTerms int

	// OnFallback 过滤结果为空、改用兜底查询时回调(用于埋点)
	OnFallback func(scoped bool)
}

// Retriever 候选图书检索器
type Retriever struct {
	repo book.Repository
	opts RetrieverOptions
}

// NewRetriever 创建检索器,未设置的参数使用默认值
func NewRetriever(repo book.Repository, opts RetrieverOptions) *Retriever {
	if opts.SystemLimit <= 0 {
		opts.SystemLimit = DefaultSystemLimit
	}
	if opts.ScopedLimit <= 0 {
		opts.ScopedLimit = DefaultScopedLimit
	}
	if opts.MaxSystemTerms <= 0 {
		opts.MaxSystemTerms = DefaultMaxSystemTerms
	}
	return &Retriever{repo: repo, opts: opts}
}

// Find 检索候选图书
// 流程:
// 1. 分词;出现数字词时按最低价格过滤,否则按关键词OR匹配
// 2. 按平均评分、评分人数降序排序并截断
// 3. 结果为空时去掉过滤条件兜底(全站按评分人数,书店内按出版日期),
//    只要范围内有上架且有库存的书,就不会返回空列表
func (r *Retriever) Find(ctx context.Context, q Query) ([]*book.Book, error) {
	limit := r.opts.SystemLimit
	maxTerms := r.opts.MaxSystemTerms
	fallbackOrder := book.OrderByPopularity
	if q.Scoped() {
		limit = r.opts.ScopedLimit
		maxTerms = 0
		fallbackOrder = book.OrderByNewest
	}

	terms := Tokenize(q.Text, maxTerms)
	filtered := book.CandidateQuery{
		BookstoreID: q.BookstoreID,
		Order:       book.OrderByRating,
		Limit:       limit,
	}
	if terms.HasPrice() {
		filtered.MinPrice = terms.MinPrice
	} else {
		filtered.Terms = terms.Keywords
	}

	if filtered.MinPrice != nil || len(filtered.Terms) > 0 {
		books, err := r.repo.FindCandidates(ctx, filtered)
		if err != nil {
			return nil, err
		}
		if len(books) > 0 {
			return books, nil
		}
	}

	if r.opts.OnFallback != nil {
		r.opts.OnFallback(q.Scoped())
	}
	return r.repo.FindCandidates(ctx, book.CandidateQuery{
		BookstoreID: q.BookstoreID,
		Order:       fallbackOrder,
		Limit:       limit,
	})
}
