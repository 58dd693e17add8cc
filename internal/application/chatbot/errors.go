package chatbot

import (
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
)

var (
	// ErrEmptyQuestion 问题为空
	ErrEmptyQuestion = apperrors.New(apperrors.ErrCodeInvalidParams, "问题不能为空")

	// ErrInvalidScope 书店ID无效
	ErrInvalidScope = apperrors.New(apperrors.ErrCodeInvalidParams, "书店ID必须大于0")
)
