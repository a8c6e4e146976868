package handlers

import (
	"net/http"
	"plume/internal/logger"
	"plume/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// serverError 记录存储/传输层故障并返回通用 500。
// 日志里只带触发输入的摘要，绝不落库原始输入，避免泄露个人数据。
func serverError(c *gin.Context, event, input string, err error) {
	logger.L.Error(event,
		zap.String("inputHash", utils.HashInput(input)),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "服务器内部错误",
	})
}

// badRequest 客户端参数错误，带具体说明，不记系统故障日志
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

// notFound 目标不存在，与参数错误区分开
func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": message,
	})
}
