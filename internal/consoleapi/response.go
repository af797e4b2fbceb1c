package consoleapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/multi-agent/kernel-console/pkg/errors"
	"github.com/multi-agent/kernel-console/pkg/logger"
)

// 统一响应辅助 (所有 handler 共用)。

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": code, "message": message}})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "not_found", "message": message}})
}

func serverError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error("internal error", logger.Any(logger.FieldError, err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": gin.H{"code": "internal_error", "message": "internal server error"}})
}

// kernelError 将 kernel 客户端错误映射为 HTTP 响应。
// kernel 不可达 → 502, 其余 → 500。
func kernelError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrKernelUnavailable) {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": gin.H{"code": "kernel_unavailable", "message": err.Error()}})
		return
	}
	serverError(c, err)
}
