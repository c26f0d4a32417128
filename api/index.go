package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/app"
	"cihai_ugc_202508/internal/config"
	"cihai_ugc_202508/pkg/logger"
)

var (
	mu     sync.Mutex
	engine *gin.Engine
	// build 可在测试中替换
	build = setup
)

func setup() (*gin.Engine, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	log := logger.MustInit(logger.Config{Level: cfg.LogLevel, Encoding: "json"})
	gin.SetMode(gin.ReleaseMode)

	a, err := app.Build(context.Background(), cfg, log, app.Options{Serverless: true})
	if err != nil {
		log.Error("应用初始化失败", zap.Error(err))
		return nil, err
	}
	return a.Engine, nil
}

// getEngine 初始化成功后缓存，失败则下次请求重试（数据库冷启动等瞬时错误）
func getEngine() (*gin.Engine, error) {
	mu.Lock()
	defer mu.Unlock()
	if engine != nil {
		return engine, nil
	}
	e, err := build()
	if err != nil {
		return nil, err
	}
	engine = e
	return engine, nil
}

// Handler Vercel Go 函数入口，所有 /api/* 请求都转到这里
func Handler(w http.ResponseWriter, r *http.Request) {
	e, err := getEngine()
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"服务器错误，请稍后重试"}`))
		return
	}
	e.ServeHTTP(w, r)
}
