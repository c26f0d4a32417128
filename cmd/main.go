package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/app"
	"cihai_ugc_202508/internal/config"
	"cihai_ugc_202508/pkg/logger"
)

// @title 辞海 UGC API
// @version 1.0
// @description 辞海小红书 UGC 活动后端：AI 文案生成与帖子提交审核
// @BasePath /
func main() {
	// 1. 加载配置
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}

	// 2. 初始化日志
	log := logger.MustInit(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogOutput,
	})
	defer func() { _ = log.Sync() }()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. 组装依赖
	a, err := app.Build(context.Background(), cfg, log, app.Options{})
	if err != nil {
		log.Fatal("应用初始化失败", zap.Error(err))
	}

	// 4. 启动定时任务
	if err := a.StartTasks(); err != nil {
		log.Fatal("定时任务启动失败", zap.Error(err))
	}

	// 5. 启动服务
	startServer(a, log)
}

func startServer(a *app.App, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
	}
	if err := a.Close(ctx); err != nil {
		log.Error("释放资源失败", zap.Error(err))
	}

	log.Info("服务已退出")
}
