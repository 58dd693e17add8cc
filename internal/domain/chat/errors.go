package chat

import (
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
)

var (
	// ErrSessionNotFound 会话不存在
	ErrSessionNotFound = apperrors.New(apperrors.ErrCodeSessionNotFound, "会话不存在")

	// ErrEmptyContent 消息内容为空
	ErrEmptyContent = apperrors.New(apperrors.ErrCodeInvalidParams, "消息内容不能为空")
)
