package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(log *zap.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(log), CORS(origins))
	r.GET("/api/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/api/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequestLogger_RequestID(t *testing.T) {
	r := newEngine(zap.NewNop(), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader), "应生成 request id")

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader), "应沿用客户端传入的 request id")
}

func TestRequestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(zap.New(core), nil)

	for _, p := range []string{"/api/ping", "/api/missing", "/api/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	entries := logs.All()
	if assert.Len(t, entries, 2, "健康检查不应记日志") {
		assert.Equal(t, "请求完成", entries[0].Message)
		assert.Equal(t, "客户端错误", entries[1].Message)
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"默认允许所有", nil, "https://a.example.com", "*"},
		{"通配", []string{"*"}, "https://a.example.com", "*"},
		{"白名单命中", []string{"https://cihai.example.com"}, "https://cihai.example.com", "https://cihai.example.com"},
		{"白名单未命中", []string{"https://cihai.example.com"}, "https://evil.example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(zap.NewNop(), tt.origins)
			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
