package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/config"
	"cihai_ugc_202508/internal/controller"
	"cihai_ugc_202508/internal/model"
	"cihai_ugc_202508/internal/repository"
	"cihai_ugc_202508/internal/router"
	"cihai_ugc_202508/internal/service"
	"cihai_ugc_202508/internal/task"
	"cihai_ugc_202508/pkg/database"
	"cihai_ugc_202508/pkg/llm"
)

// Options 部署相关的差异
type Options struct {
	// 函数平台：AI 超时默认 14s，不跑定时任务
	Serverless bool
}

// App 组装好的应用，三个部署入口共用
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Engine *gin.Engine

	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers

	cleanupTask *task.AILogCleanupTask
	mongoClient *mongo.Client
	closeSQL    func() error
}

// Repositories 仓库集合，CallLog 仅 SQL 存储下存在
type Repositories struct {
	Submission repository.SubmissionRepository
	CallLog    repository.AICallLogRepository
}

// Services 服务集合，Storage 未配置时为空
type Services struct {
	AI         *service.AIService
	Submission *service.SubmissionService
	Storage    *service.StorageService
}

// Build 按配置连接存储、创建服务并注册路由
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: log}

	// 1. 存储
	if err := a.initStore(ctx); err != nil {
		return nil, err
	}

	// 2. 服务
	if err := a.initServices(opts); err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}

	// 3. 控制器与路由
	a.Controllers = &router.Controllers{
		Content:    controller.NewContentController(a.Services.AI, a.Services.Storage, log),
		Submission: controller.NewSubmissionController(a.Services.Submission, log),
		Health:     controller.NewHealthController(a.Services.Submission, a.Services.AI, log),
	}
	if a.Repos.CallLog != nil {
		a.Controllers.AIUsage = controller.NewAIUsageController(a.Repos.CallLog, log)
	}

	routerOpts := router.Options{
		CORSOrigins: cfg.CORSAllowedOrigins,
		Metrics:     true,
	}
	if cfg.StorageProvider == "local" && strings.HasPrefix(cfg.StoragePublicURL, "/") {
		routerOpts.UploadDir = cfg.StorageLocalDir
		routerOpts.UploadURL = cfg.StoragePublicURL
	}
	a.Engine = router.SetupRouter(log, a.Controllers, routerOpts)

	// 4. 定时任务（只创建，由长驻进程启动）
	if !opts.Serverless && cfg.TaskEnabled && a.Repos.CallLog != nil {
		a.cleanupTask = task.NewAILogCleanupTask(a.Repos.CallLog, cfg.AILogCleanupSchedule, cfg.AILogRetentionDays, log)
	}

	return a, nil
}

func (a *App) initStore(ctx context.Context) error {
	cfg := a.Config
	a.Repos = &Repositories{}

	if cfg.SQLStore() {
		db, err := database.OpenSQL(database.SQLOptions{
			Driver: cfg.DBDriver,
			DSN:    cfg.DBDSN,
			Debug:  cfg.Env == "development",
		}, &model.Submission{}, &model.AICallLog{})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("获取底层 SQL DB 失败: %w", err)
		}
		a.closeSQL = sqlDB.Close

		a.Repos.Submission = repository.NewSubmissionRepository(db)
		a.Repos.CallLog = repository.NewAICallLogRepository(db)
		a.Logger.Info("数据库已连接", zap.String("driver", cfg.DBDriver))
		return nil
	}

	client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	a.mongoClient = client
	a.Repos.Submission = repository.NewSubmissionMongoRepository(db)
	a.Logger.Info("MongoDB 已连接", zap.String("db", cfg.MongoDB))
	return nil
}

func (a *App) initServices(opts Options) error {
	cfg := a.Config
	a.Services = &Services{
		AI:         NewAIService(cfg, a.Repos.CallLog, a.Logger, opts.Serverless),
		Submission: service.NewSubmissionService(a.Repos.Submission, a.Logger),
	}

	if cfg.StorageProvider != "" {
		storage, err := service.NewStorageService(service.StorageConfig{
			Provider:  cfg.StorageProvider,
			Bucket:    cfg.AWSBucket,
			Region:    cfg.AWSRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			Endpoint:  cfg.AWSEndpoint,
			CDNDomain: cfg.AWSCDNDomain,
			BasePath:  cfg.StorageBasePath,
			LocalDir:  cfg.StorageLocalDir,
			PublicURL: cfg.StoragePublicURL,
		})
		if err != nil {
			return fmt.Errorf("初始化存储失败: %w", err)
		}
		a.Services.Storage = storage
	}

	providers := a.Services.AI.ConfiguredProviders()
	if len(providers) == 0 {
		a.Logger.Warn("未配置任何 AI 服务商，生成接口将返回错误")
	} else {
		a.Logger.Info("AI 服务商", zap.Strings("providers", providers))
	}
	return nil
}

// NewAIService 按配置创建 AI 服务，callLogRepo 可为空
func NewAIService(cfg *config.Config, callLogRepo repository.AICallLogRepository, log *zap.Logger, serverless bool) *service.AIService {
	timeout := cfg.AITimeout
	if serverless && timeout == 0 {
		timeout = config.ServerlessAITimeout
	}

	policy := service.HashtagPolicyUnion
	if cfg.HashtagPolicy == config.HashtagPolicyReplace {
		policy = service.HashtagPolicyReplace
	}

	return service.NewAIService(&service.AIConfig{
		Providers:     cfg.Providers(),
		Timeout:       timeout,
		HashtagPolicy: policy,
	}, llm.NewClient(nil), callLogRepo, log)
}

// StartTasks 启动定时任务，函数平台下为空操作
func (a *App) StartTasks() error {
	if a.cleanupTask == nil {
		return nil
	}
	return a.cleanupTask.Start()
}

// Close 停止任务并断开存储
func (a *App) Close(ctx context.Context) error {
	if a.cleanupTask != nil {
		a.cleanupTask.Stop()
	}

	var errs []error
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("断开 MongoDB 失败: %w", err))
		}
	}
	if a.closeSQL != nil {
		if err := a.closeSQL(); err != nil {
			errs = append(errs, fmt.Errorf("关闭数据库失败: %w", err))
		}
	}
	return errors.Join(errs...)
}
