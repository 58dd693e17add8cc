package book

import (
	"context"
)

// Service 图书领域服务
// 负责目录读写与上下架,库存数量的变更走inventory账本
type Service interface {
	// GetBook 获取图书详情(已下架视为不存在)
	GetBook(ctx context.Context, id uint) (*Book, error)

	// ListBooks 分页查询上架图书
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// SetActive 上架/下架
	SetActive(ctx context.Context, id uint, active bool) error
	// CreateBook 新建上架图书,quantity为初始库存(>=0)
	CreateBook(ctx context.Context, bookstoreID uint, d Draft, quantity int) (*Book, error)
	// UpdateBook 修改元数据(包含已下架图书)
	UpdateBook(ctx context.Context, id uint, d Draft) (*Book, error)
	// ListInactive 分页查询某书店已下架的图书
	ListInactive(ctx context.Context, bookstoreID uint, page, pageSize int) ([]*Book, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsActive {
		return nil, ErrBookNotFound
	}
	return b, nil
}

// ListBooks 参数默认值与范围限制在这里统一处理
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	params.Page, params.PageSize = NormalizePage(params.Page, params.PageSize)
	if params.MaxPrice != nil && !params.MaxPrice.IsPositive() {
		return nil, 0, ErrInvalidPrice
	}
	return s.repo.List(ctx, params)
}

func (s *service) SetActive(ctx context.Context, id uint, active bool) error {
	if id == 0 {
		return ErrBookNotFound
	}
	return s.repo.SetActive(ctx, id, active)
}

func (s *service) CreateBook(ctx context.Context, bookstoreID uint, d Draft, quantity int) (*Book, error) {
	b, err := NewBook(bookstoreID, d, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	// 重新读取以带上分类名
	return s.repo.FindByID(ctx, b.ID)
}

func (s *service) UpdateBook(ctx context.Context, id uint, d Draft) (*Book, error) {
	if id == 0 {
		return nil, ErrBookNotFound
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Apply(d)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListInactive(ctx context.Context, bookstoreID uint, page, pageSize int) ([]*Book, int64, error) {
	if bookstoreID == 0 {
		return nil, 0, ErrInvalidBookstore
	}
	page, pageSize = NormalizePage(page, pageSize)
	return s.repo.List(ctx, ListParams{
		Page:        page,
		PageSize:    pageSize,
		BookstoreID: bookstoreID,
		Inactive:    true,
	})
}

// 分页参数默认值与上限
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage 页码默认1,每页数量默认20、最大100
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
