package book

import (
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidPrice 价格非正(过滤条件或图书价格)
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")
	// ErrInvalidTitle 书名为空
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")
	// ErrInvalidQuantity 初始库存为负数
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "库存数量不能为负数")
	// ErrInvalidPageCount 页数非正
	ErrInvalidPageCount = apperrors.New(apperrors.ErrCodeInvalidParams, "页数必须大于0")
	// ErrInvalidBookstore 书店ID缺失
	ErrInvalidBookstore = apperrors.New(apperrors.ErrCodeInvalidParams, "书店ID不能为空")
)
