package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidResponse 2xx 但响应体无法解析或没有 choices
var ErrInvalidResponse = errors.New("服务商返回了无法解析的响应")

// StatusError 服务商返回非 2xx
// Body 只用于服务端日志，不能透传给终端用户
type StatusError struct {
	Provider   string
	Shape      Shape
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s 接口错误 [%d] (格式 %s, %s)", e.Provider, e.StatusCode, e.Shape, e.Endpoint)
}

// SchemaRejected 400/422 视为请求格式不被接受，404 视为该地址不存在
// 两者都只影响当前格式，由编排层换下一个格式重试
func (e *StatusError) SchemaRejected() bool {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusNotFound:
		return true
	}
	return false
}

// IsSchemaRejection 判断错误是否为可恢复的格式拒绝
func IsSchemaRejection(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.SchemaRejected()
	}
	return false
}
