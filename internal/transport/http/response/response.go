package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/novadecore/personal-blog/internal/domain"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// StatusOf 业务错误到 HTTP 状态码的唯一一次映射
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return CodeBadRequest
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		return CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return CodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrDuplicateEmail):
		return CodeConflict
	default:
		return CodeServerError
	}
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(CodeOK, New(CodeOK, CodeMsgMap[CodeOK], data))
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(CodeCreated, New(CodeCreated, CodeMsgMap[CodeCreated], data))
}

// Fail 业务错误出口；500 一律不透出内部细节
func Fail(c *gin.Context, err error) {
	status := StatusOf(err)
	if status == CodeServerError {
		_ = c.Error(err) // 落 access log
		c.JSON(status, Error(status, ""))
		return
	}
	c.JSON(status, Error(status, err.Error()))
}

func FailMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, Error(status, msg))
}
