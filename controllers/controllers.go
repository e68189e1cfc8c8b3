package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"knowledgebase/global"
)

// internalError 记录失败原因并返回统一的 500 响应体
func internalError(ctx *gin.Context, msg string, err error) {
	global.Logger.Errorf("%s: %v", msg, err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}

// idParam 解析路径上的数字 id，解析失败返回 0
func idParam(ctx *gin.Context, name string) uint {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
