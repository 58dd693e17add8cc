package gormstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/xiebiao/bookbridge/internal/domain/book"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
)

// candidateColumns 关键词匹配的字段(任一命中即可)
var candidateColumns = []string{
	"books.title",
	"books.author",
	"book_types.name",
	"books.description",
	"books.publisher",
}

const joinBookTypes = "LEFT JOIN book_types ON book_types.id = books.type_id"

// bookRow 图书查询结果(附带分类名)
type bookRow struct {
	BookModel `gorm:"embedded"`
	TypeName  string
}

// bookRepository 图书仓储实现
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 查询统一LEFT JOIN book_types以填充分类名
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var row bookRow
	err := r.query(ctx).Where("books.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&row), nil
}

// FindActiveByIDs 按ID批量查询上架中的图书
func (r *bookRepository) FindActiveByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []bookRow
	err := r.query(ctx).
		Where("books.id IN ?", ids).
		Where("books.is_active = ?", true).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	for i := range rows {
		result[rows[i].ID] = toBookEntity(&rows[i])
	}
	return result, nil
}

// List 分页查询图书(上架或下架)
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var rows []bookRow
	var total int64

	// 1. 查询总数(不带Select,交给GORM生成COUNT)
	err := dbFrom(ctx, r.db).
		Model(&BookModel{}).
		Joins(joinBookTypes).
		Scopes(listFilter(params)).
		Count(&total).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 2. 排序
	query := r.query(ctx).Scopes(listFilter(params))
	switch params.SortBy {
	case "price_asc":
		query = query.Order("books.price ASC")
	case "price_desc":
		query = query.Order("books.price DESC")
	case "rating_desc":
		query = query.Order("COALESCE(books.average_rating, 0) DESC").Order("COALESCE(books.ratings_count, 0) DESC")
	default:
		query = query.Order("books.created_at DESC") // 默认按创建时间降序
	}
	query = query.Order("books.id ASC")

	// 3. 分页
	offset := (params.Page - 1) * params.PageSize
	if err := query.Limit(params.PageSize).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(rows))
	for i := range rows {
		books[i] = toBookEntity(&rows[i])
	}
	return books, total, nil
}

// listFilter 列表查询条件
func listFilter(params book.ListParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("books.is_active = ?", !params.Inactive)
		if kw := foldTerm(params.Keyword); kw != "" {
			like := "%" + kw + "%"
			db = db.Where("(LOWER(books.title) LIKE ? OR LOWER(books.author) LIKE ?)", like, like)
		}
		if params.TypeID > 0 {
			db = db.Where("books.type_id = ?", params.TypeID)
		}
		if params.MaxPrice != nil {
			db = db.Where("books.price <= ?", *params.MaxPrice)
		}
		if params.BookstoreID > 0 {
			db = db.Where("books.bookstore_id = ?", params.BookstoreID)
		}
		return db
	}
}

// FindCandidates 对话检索的候选查询
// SQL示意:
//
//	SELECT books.*, book_types.name AS type_name FROM books
//	LEFT JOIN book_types ON book_types.id = books.type_id
//	WHERE books.is_active AND books.quantity > 0 [AND books.bookstore_id = ?]
//	  AND (books.price >= ? | (LOWER(books.title) LIKE ? OR ...) OR (...))
//	ORDER BY COALESCE(books.average_rating, 0) DESC, COALESCE(books.ratings_count, 0) DESC
//	LIMIT ?
func (r *bookRepository) FindCandidates(ctx context.Context, q book.CandidateQuery) ([]*book.Book, error) {
	query := r.query(ctx).
		Where("books.is_active = ?", true).
		Where("books.quantity > ?", 0)
	if q.BookstoreID != nil {
		query = query.Where("books.bookstore_id = ?", *q.BookstoreID)
	}

	switch {
	case q.MinPrice != nil:
		query = query.Where("books.price >= ?", *q.MinPrice)
	case len(q.Terms) > 0:
		clauses := make([]string, 0, len(q.Terms)*len(candidateColumns))
		args := make([]any, 0, len(q.Terms)*len(candidateColumns))
		for _, term := range q.Terms {
			like := "%" + foldTerm(term) + "%"
			for _, col := range candidateColumns {
				clauses = append(clauses, "LOWER("+col+") LIKE ?")
				args = append(args, like)
			}
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	for _, order := range candidateOrder(q.Order) {
		query = query.Order(order)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []bookRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询候选图书失败")
	}

	books := make([]*book.Book, len(rows))
	for i := range rows {
		books[i] = toBookEntity(&rows[i])
	}
	return books, nil
}

// foldTerm 与SQL侧lower()一致的小写+NFC规范化
func foldTerm(term string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(term)))
}

// candidateOrder 排序表达式
// 空出版日期排在最后(各方言对NULL的默认排序不同)
func candidateOrder(order book.CandidateOrder) []string {
	switch order {
	case book.OrderByPopularity:
		return []string{
			"COALESCE(books.ratings_count, 0) DESC",
			"COALESCE(books.average_rating, 0) DESC",
			"books.id ASC",
		}
	case book.OrderByNewest:
		return []string{
			"CASE WHEN books.published_date IS NULL THEN 1 ELSE 0 END",
			"books.published_date DESC",
			"COALESCE(books.average_rating, 0) DESC",
			"books.id ASC",
		}
	default:
		return []string{
			"COALESCE(books.average_rating, 0) DESC",
			"COALESCE(books.ratings_count, 0) DESC",
			"books.id ASC",
		}
	}
}

// SetActive 上架/下架
func (r *bookRepository) SetActive(ctx context.Context, id uint, active bool) error {
	db := dbFrom(ctx, r.db)
	result := db.Model(&BookModel{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新上架状态失败")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL在值未变化时RowsAffected为0,再确认一次是否存在
	var count int64
	if err := db.Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(err, "查询图书失败")
	}
	if count == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Create 新建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// draftColumns Update允许覆盖的列(数量、上架状态、评分、书店不在其中)
var draftColumns = []string{
	"isbn", "title", "author", "translator", "publisher", "published_date",
	"language", "page_count", "description", "price", "type_id", "image_url", "updated_at",
}

// Update 更新元数据
// Select限定列,零值(如清空译者)也会写入
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	db := dbFrom(ctx, r.db)
	model := toBookModel(b)
	model.UpdatedAt = time.Now()
	result := db.Model(&BookModel{}).Where("id = ?", b.ID).Select(draftColumns).Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&BookModel{}).Where("id = ?", b.ID).Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询图书失败")
		}
		if count == 0 {
			return book.ErrBookNotFound
		}
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// query 带分类名的基础查询
func (r *bookRepository) query(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).
		Model(&BookModel{}).
		Select("books.*, book_types.name AS type_name").
		Joins(joinBookTypes)
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型(不含分类名)
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Author:        b.Author,
		Translator:    b.Translator,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		Language:      b.Language,
		PageCount:     b.PageCount,
		Description:   b.Description,
		Price:         b.Price,
		Quantity:      b.Quantity,
		TypeID:        b.TypeID,
		BookstoreID:   b.BookstoreID,
		IsActive:      b.IsActive,
		AverageRating: b.AverageRating,
		RatingsCount:  b.RatingsCount,
		ImageURL:      b.ImageURL,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(row *bookRow) *book.Book {
	m := row.BookModel
	return &book.Book{
		ID:            m.ID,
		ISBN:          m.ISBN,
		Title:         m.Title,
		Author:        m.Author,
		Translator:    m.Translator,
		Publisher:     m.Publisher,
		PublishedDate: m.PublishedDate,
		Language:      m.Language,
		PageCount:     m.PageCount,
		Description:   m.Description,
		Price:         m.Price,
		Quantity:      m.Quantity,
		TypeID:        m.TypeID,
		TypeName:      row.TypeName,
		BookstoreID:   m.BookstoreID,
		IsActive:      m.IsActive,
		AverageRating: m.AverageRating,
		RatingsCount:  m.RatingsCount,
		ImageURL:      m.ImageURL,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
