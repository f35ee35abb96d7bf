package util

import (
	"strconv"
	"strings"
)

// ParseCount 解析平台返回的十进制计数字符串，缺失或非法时返回 0
func ParseCount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// PtrInt64 用于将 int64 转换为 *int64
func PtrInt64(i int64) *int64 {
	return &i
}

// PtrString 空串返回 nil
func PtrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// BearerToken 从 Authorization 头中取出 token
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// ClampLimit 非正数取默认值，超过上限截断
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
