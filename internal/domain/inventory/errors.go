package inventory

import (
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
)

// 库存账本错误定义
var (
	// ErrEmptyBatch 批次为空
	ErrEmptyBatch = apperrors.New(apperrors.ErrCodeInvalidParams, "调整批次不能为空")

	// ErrInvalidQuantity 数量必须为正
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrUnknownBook 批次中存在不存在的图书
	ErrUnknownBook = apperrors.New(apperrors.ErrCodeBookNotFound, "批次中存在不存在的图书")

	// ErrInsufficientStock 批次中存在库存不足的图书
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")
)
