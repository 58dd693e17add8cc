package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用decimal.Decimal(数据库numeric(18,2)),避免浮点误差
// 2. Quantity在新建时给出初始值,之后只能通过库存账本(inventory)调整
// 3. IsActive控制是否对外可见(下架的书不参与检索与推荐)
// 4. 评分字段由评价服务异步回写,可能为空
type Book struct {
	ID            uint
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
	Quantity      int
	TypeID        uint
	TypeName      string // 关联BookType.Name(查询时填充)
	BookstoreID   uint
	IsActive      bool
	AverageRating *float64
	RatingsCount  *int
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookType 图书分类
type BookType struct {
	ID          uint
	Name        string
	Description string
	IsActive    bool
}

// Info 图书精简投影(对话接口返回给前端的推荐卡片)
type Info struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	BookstoreID uint            `json:"bookstoreId"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

// ToInfo 投影为精简信息
func (b *Book) ToInfo() Info {
	return Info{
		ID:          b.ID,
		Title:       b.Title,
		BookstoreID: b.BookstoreID,
		Price:       b.Price,
		ImageURL:    b.ImageURL,
	}
}

// InStock 是否有库存
func (b *Book) InStock() bool {
	return b.Quantity > 0
}

// Rating 平均评分(未评分按0处理)
func (b *Book) Rating() float64 {
	if b.AverageRating == nil {
		return 0
	}
	return *b.AverageRating
}

// Ratings 评分人数(未评分按0处理)
func (b *Book) Ratings() int {
	if b.RatingsCount == nil {
		return 0
	}
	return *b.RatingsCount
}

// Draft 新建/修改图书时可写的元数据
// 不含库存数量与所属书店: 数量走库存账本,书店在新建时确定
type Draft struct {
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

// Validate 校验元数据
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrInvalidTitle
	}
	if !d.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if d.PageCount != nil && *d.PageCount <= 0 {
		return ErrInvalidPageCount
	}
	return nil
}

// NewBook 由元数据创建上架图书
func NewBook(bookstoreID uint, d Draft, quantity int) (*Book, error) {
	if bookstoreID == 0 {
		return nil, ErrInvalidBookstore
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	b := &Book{BookstoreID: bookstoreID, Quantity: quantity, IsActive: true}
	b.Apply(d)
	return b, nil
}

// Apply 覆盖元数据,数量、上架状态、评分保持不变
func (b *Book) Apply(d Draft) {
	b.ISBN = strings.TrimSpace(d.ISBN)
	b.Title = strings.TrimSpace(d.Title)
	b.Author = strings.TrimSpace(d.Author)
	b.Translator = strings.TrimSpace(d.Translator)
	b.Publisher = strings.TrimSpace(d.Publisher)
	b.PublishedDate = d.PublishedDate
	b.Language = d.Language
	b.PageCount = d.PageCount
	b.Description = d.Description
	b.Price = d.Price
	b.TypeID = d.TypeID
	b.ImageURL = d.ImageURL
}
