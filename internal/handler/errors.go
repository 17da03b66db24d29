package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Vibe_Eat/internal/pkg"

	"github.com/gin-gonic/gin"
)

// statusOf 业务错误到 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, pkg.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, pkg.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pkg.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, pkg.ErrInvalidState),
		errors.Is(err, pkg.ErrAlreadyJoined),
		errors.Is(err, pkg.ErrFull),
		errors.Is(err, pkg.ErrDuplicateReview):
		return http.StatusConflict
	case errors.Is(err, pkg.ErrBureauBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, pkg.ErrTokenExpired),
		errors.Is(err, pkg.ErrTokenInvalid),
		errors.Is(err, pkg.ErrRefreshExpired),
		errors.Is(err, pkg.ErrRefreshInvalid),
		errors.Is(err, pkg.ErrTokenParseFailure):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondErr 5xx 不把内部错误返回给客户端，记录到 gin 的错误列表由日志中间件输出
func respondErr(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

func badParams(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
}

// pathID 解析路径上的 :id，非法时直接返回 400
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badParams(c)
		return 0, false
	}
	return id, true
}
