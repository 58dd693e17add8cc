package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/bookbridge/internal/application/inventory"
	"github.com/xiebiao/bookbridge/internal/domain/inventory"
	"github.com/xiebiao/bookbridge/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
	"github.com/xiebiao/bookbridge/pkg/response"
)

// InventoryHandler 库存账本HTTP处理器
type InventoryHandler struct {
	ledger *appinventory.LedgerUseCase
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(ledger *appinventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Purchase 批量购买
// @Summary      批量购买(扣减库存)
// @Description  整批成功或整批失败，失败时不返回逐项明细
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        request body []dto.AdjustmentItem true "购买明细"
// @Success      200 {object} response.Response{data=bool}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40900 参数错误; code=40901 格式错误; code=40402 图书不存在; code=40001 库存不足
// @Router       /api/v1/books/purchase [post]
func (h *InventoryHandler) Purchase(c *gin.Context) {
	items, ok := bindAdjustments(c)
	if !ok {
		return
	}
	if err := h.ledger.Purchase(c.Request.Context(), items); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

// Refund 批量退货
// @Summary      批量退货(回补库存)
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        request body []dto.AdjustmentItem true "退货明细"
// @Success      200 {object} response.Response{data=bool}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40900 参数错误; code=40901 格式错误; code=40402 图书不存在
// @Router       /api/v1/books/refund [post]
func (h *InventoryHandler) Refund(c *gin.Context) {
	items, ok := bindAdjustments(c)
	if !ok {
		return
	}
	if err := h.ledger.Refund(c.Request.Context(), items); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

func bindAdjustments(c *gin.Context) ([]inventory.Adjustment, bool) {
	var req []dto.AdjustmentItem
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
		return nil, false
	}

	items := make([]inventory.Adjustment, len(req))
	for i, item := range req {
		items[i] = inventory.Adjustment{BookID: item.BookID, Quantity: item.Quantity}
	}
	return items, true
}
