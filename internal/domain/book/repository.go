package book

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 库存调整相关的加锁与条件更新在inventory.Repository中定义
type Repository interface {
	// FindByID 根据ID查找图书(包含已下架)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindActiveByIDs 按ID批量查询上架中的图书
	// 返回map便于调用方按自己的顺序重排,不存在或已下架的ID不会出现在结果中
	FindActiveByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// List 分页查询图书(默认上架,Inactive为true时查下架)
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// FindCandidates 对话检索的候选查询(见CandidateQuery)
	FindCandidates(ctx context.Context, q CandidateQuery) ([]*Book, error)

	// SetActive 上架/下架
	SetActive(ctx context.Context, id uint, active bool) error

	// Create 新建图书,回填ID与时间戳
	Create(ctx context.Context, b *Book) error

	// Update 只更新Draft覆盖的元数据列,不存在时返回ErrBookNotFound
	Update(ctx context.Context, b *Book) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page        int
	PageSize    int
	Keyword     string           // 搜索标题、作者
	TypeID      uint             // 0表示不限
	MaxPrice    *decimal.Decimal // 价格上限
	BookstoreID uint             // 0表示不限
	SortBy      string           // price_asc | price_desc | rating_desc | created_at_desc
	Inactive    bool             // true时只查已下架图书
}

// CandidateOrder 候选排序方式
type CandidateOrder int

const (
	// OrderByRating 平均评分降序,评分人数降序
	OrderByRating CandidateOrder = iota
	// OrderByPopularity 评分人数降序(全站兜底)
	OrderByPopularity
	// OrderByNewest 出版日期降序,平均评分降序(书店内兜底)
	OrderByNewest
)

// CandidateQuery 候选查询条件
// 基础条件固定为: 上架 AND 库存>0
// Terms与MinPrice互斥,MinPrice非空时忽略Terms
type CandidateQuery struct {
	BookstoreID *uint
	Terms       []string         // 已小写,任一词命中title/author/分类名/description/publisher即可
	MinPrice    *decimal.Decimal // 最低价格
	Order       CandidateOrder
	Limit       int
}
