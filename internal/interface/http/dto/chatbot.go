package dto

import "github.com/shopspring/decimal"

// AskRequest 对话请求
type AskRequest struct {
	Question string `json:"question" example:"Có sách nào của Nguyễn Nhật Ánh không?"`
}

// BookInfo 推荐图书卡片
type BookInfo struct {
	ID          uint            `json:"id" example:"12"`
	Title       string          `json:"title" example:"Mắt biếc"`
	BookstoreID uint            `json:"bookstoreId" example:"2"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"95000"`
	ImageURL    string          `json:"imageUrl" example:"https://cdn.example.com/covers/12.jpg"`
}

// AskResponse 对话响应
type AskResponse struct {
	Answer    string     `json:"answer" example:"Bạn có thể tham khảo Mắt biếc [ID:12]."`
	Books     []BookInfo `json:"books"`
	SessionID uint       `json:"sessionId" example:"1"`
}
