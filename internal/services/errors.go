package services

import (
	"errors"
)

// 业务错误哨兵，handler 层用 errors.Is 匹配并映射为 HTTP 状态码。
var (
	// ErrMissingField 必填参数缺失 (400)
	ErrMissingField = errors.New("missing required field")
	// ErrMissingAuthorInfo 非管理员评论缺少昵称或邮箱 (400)
	ErrMissingAuthorInfo = errors.New("missing author info")
	// ErrNotFound 目标评论不存在 (404)
	ErrNotFound = errors.New("not found")
	// ErrInvalidStatus 非法的审核状态 (400)
	ErrInvalidStatus = errors.New("invalid status")
)
