package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseAccountID 解析路径参数 account_id
func parseAccountID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("account_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// queryInt 缺省或非法时返回 def
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
