package dto

// AdjustmentItem 库存调整项
// 数量与图书ID的业务校验由库存账本统一完成，这里不做binding限制
type AdjustmentItem struct {
	BookID   uint `json:"bookId" example:"1"`
	Quantity int  `json:"quantity" example:"2"`
}
