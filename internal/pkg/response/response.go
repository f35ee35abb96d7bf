package response

import (
	"ContentTracker/internal/api/dto"
	"ContentTracker/internal/service"
	"errors"
	log "log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// 业务码，HTTP 状态码统一为 200
const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	PreconditionFailed  = 412
	TooManyRequests     = 429
	InternalServerError = 500
)

func write(c *gin.Context, code int, message string, data any) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success 成功返回封装
func Success(c *gin.Context, data any) {
	write(c, Ok, "success", data)
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	write(c, businessCode, message, nil)
}

// RateLimited 写入 429 与 Retry-After 并中止后续处理
func RateLimited(c *gin.Context, retryAfter time.Duration) {
	c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	Fail(c, TooManyRequests, service.ErrTooManyRequests.Error())
	c.Abort()
}

// Error 将错误映射为业务码，未登记的错误只记录日志，不向调用方暴露细节
func Error(c *gin.Context, err error) {
	var (
		ve        validator.ValidationErrors
		typeError *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &ve):
		Fail(c, BadRequest, service.ErrParamInvalid.Error())
		return
	case errors.As(err, &typeError):
		Fail(c, BadRequest, "Json错误")
		return
	}

	code, known := service.CodeOf(err)
	if known == nil {
		log.ErrorContext(c.Request.Context(), "unhandled error", "path", c.FullPath(), "err", err)
		Fail(c, code, service.UnExpectedError.Error())
		return
	}
	Fail(c, code, known.Error())
}
