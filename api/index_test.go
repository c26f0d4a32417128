package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandler_RetriesAfterInitFailure(t *testing.T) {
	origBuild := build
	t.Cleanup(func() {
		build = origBuild
		engine = nil
	})
	engine = nil

	calls := 0
	build = func() (*gin.Engine, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("数据库暂时不可用")
		}
		r := gin.New()
		r.GET("/api/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		return r, nil
	}

	serve := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		Handler(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		return w
	}

	w := serve()
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"服务器错误，请稍后重试"}`, w.Body.String())

	w = serve()
	assert.Equal(t, http.StatusOK, w.Code, "第一次失败后应重新初始化")
	assert.Equal(t, "ok", w.Body.String())

	serve()
	assert.Equal(t, 2, calls, "初始化成功后不应再次构建")
}
