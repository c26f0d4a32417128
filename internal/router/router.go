package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/controller"
	"cihai_ugc_202508/internal/middleware"

	_ "cihai_ugc_202508/docs"
)

// Controllers 控制器集合，AIUsage 仅在 SQL 存储下存在
type Controllers struct {
	Content    *controller.ContentController
	Submission *controller.SubmissionController
	Health     *controller.HealthController
	AIUsage    *controller.AIUsageController
}

// Options 路由选项
type Options struct {
	CORSOrigins []string
	// 本地存储时把目录挂到 UploadURL 下
	UploadDir string
	UploadURL string
	Metrics   bool
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(log *zap.Logger, ctl *Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery(), middleware.CORS(opts.CORSOrigins))

	// 指标中间件需先于业务路由注册
	if opts.Metrics {
		p := ginprometheus.NewPrometheus("gin")
		p.Use(r)
	}

	// 1. Swagger 文档
	// 访问 http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if opts.UploadDir != "" && opts.UploadURL != "" {
		r.Static(opts.UploadURL, opts.UploadDir)
	}

	// 2. API 路由组
	api := r.Group("/api")
	{
		api.GET("/health", ctl.Health.Health)

		// AI 文案生成，/generate 为旧入口
		api.POST("/generate-content", ctl.Content.Generate)
		api.POST("/generate", ctl.Content.Generate)

		// 用户提交
		api.POST("/submit-post", ctl.Submission.Submit)

		// 管理端
		submissions := api.Group("/submissions")
		{
			submissions.GET("", ctl.Submission.List)
			submissions.GET("/:id", ctl.Submission.Get)
			submissions.PUT("/:id/status", ctl.Submission.UpdateStatus)
		}
		api.GET("/submission", ctl.Submission.Get)
		api.PUT("/update-status", ctl.Submission.UpdateStatus)
		api.GET("/export/submissions", ctl.Submission.Export)

		if ctl.AIUsage != nil {
			api.GET("/ai/usage", ctl.AIUsage.Usage)
		}
	}

	// 3. 函数平台兼容入口
	fn := r.Group("/.netlify/functions")
	{
		fn.POST("/generate-content", ctl.Content.Generate)
		fn.POST("/submit-post", ctl.Submission.Submit)
		fn.GET("/submissions", ctl.Submission.List)
		fn.GET("/submission", ctl.Submission.Get)
		fn.PUT("/submission", ctl.Submission.UpdateStatus)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "接口不存在"})
	})

	return r
}
