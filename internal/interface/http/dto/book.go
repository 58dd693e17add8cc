package dto

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page        int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword     string `form:"keyword" binding:"omitempty,max=100" example:"Nguyễn Nhật Ánh"`
	TypeID      uint   `form:"type_id" example:"3"`
	MaxPrice    string `form:"max_price" binding:"omitempty,numeric" example:"150000"`
	BookstoreID uint   `form:"bookstore_id" example:"2"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc rating_desc created_at_desc" example:"rating_desc"`
}

// SetActiveRequest HTTP上下架请求
// Active使用指针，区分"未传"与"false"
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required" example:"false"`
}

// BookRequest 图书元数据(新建与修改共用)
// Price使用字符串传输，避免JSON浮点误差
type BookRequest struct {
	ISBN          string `json:"isbn" binding:"omitempty,max=20" example:"978-604-1-00000-1"`
	Title         string `json:"title" binding:"required,max=255" example:"Mắt Biếc"`
	Author        string `json:"author" binding:"omitempty,max=255" example:"Nguyễn Nhật Ánh"`
	Translator    string `json:"translator" binding:"omitempty,max=255"`
	Publisher     string `json:"publisher" binding:"omitempty,max=255" example:"NXB Trẻ"`
	PublishedDate string `json:"published_date" binding:"omitempty,datetime=2006-01-02" example:"2019-05-20"`
	Language      string `json:"language" binding:"omitempty,max=50" example:"vi"`
	PageCount     *int   `json:"page_count" binding:"omitempty,min=1" example:"300"`
	Description   string `json:"description"`
	Price         string `json:"price" binding:"required,numeric" example:"110000"`
	TypeID        uint   `json:"type_id" example:"2"`
	ImageURL      string `json:"image_url" binding:"omitempty,url,max=500"`
}

// CreateBookRequest HTTP新建图书请求
type CreateBookRequest struct {
	BookRequest
	BookstoreID uint `json:"bookstore_id" binding:"required" example:"2"`
	Quantity    int  `json:"quantity" binding:"min=0" example:"10"`
}

// PageRequest 分页查询参数
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
