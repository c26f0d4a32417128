package controller

import (
	"github.com/gin-gonic/gin"

	"cihai_ugc_202508/internal/api/dto"
)

// 通用提示，技术细节只写日志
const (
	msgServerError       = "服务器错误，请稍后重试"
	msgGenerationFailed  = "AI内容生成失败，请稍后重试"
	msgGenerationTimeout = "AI生成超时，请稍后重试"
	msgBadRequest        = "请求格式错误"
	msgNotFound          = "提交记录未找到"
)

func fail(c *gin.Context, status int, message, code string) {
	c.JSON(status, dto.ErrorResp{Success: false, Message: message, Error: code})
}
