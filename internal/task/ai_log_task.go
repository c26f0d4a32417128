package task

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/repository"
)

// ==================== AILogCleanupTask AI 调用日志清理 ====================

const DefaultCleanupSpec = "0 30 3 * * *"

// AILogCleanupTask 定期删除超过保留天数的 AI 调用日志
type AILogCleanupTask struct {
	repo          repository.AICallLogRepository
	cron          *cron.Cron
	spec          string
	retentionDays int
	logger        *zap.Logger
	now           func() time.Time
}

// NewAILogCleanupTask 创建清理任务，spec 为秒级 cron 表达式
func NewAILogCleanupTask(repo repository.AICallLogRepository, spec string, retentionDays int, logger *zap.Logger) *AILogCleanupTask {
	if spec == "" {
		spec = DefaultCleanupSpec
	}
	if retentionDays <= 0 {
		retentionDays = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AILogCleanupTask{
		repo:          repo,
		cron:          cron.New(cron.WithSeconds()),
		spec:          spec,
		retentionDays: retentionDays,
		logger:        logger.Named("ai_log_cleanup"),
		now:           time.Now,
	}
}

// Start 先清理一次，再按 cron 定时执行
func (t *AILogCleanupTask) Start() error {
	if _, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("无效的清理任务表达式 %q: %w", t.spec, err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.RunOnce(ctx)
	}()

	t.cron.Start()
	t.logger.Info("AI 日志清理任务已启动", zap.String("spec", t.spec), zap.Int("retention_days", t.retentionDays))
	return nil
}

// Stop 等待正在执行的清理结束
func (t *AILogCleanupTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Info("AI 日志清理任务已停止")
}

// RunOnce 删除保留期之前的日志，返回删除条数
func (t *AILogCleanupTask) RunOnce(ctx context.Context) int64 {
	before := t.now().AddDate(0, 0, -t.retentionDays)
	n, err := t.repo.DeleteBefore(ctx, before)
	if err != nil {
		t.logger.Error("清理 AI 调用日志失败", zap.Error(err))
		return 0
	}
	if n > 0 {
		t.logger.Info("已清理 AI 调用日志", zap.Int64("deleted", n), zap.Time("before", before))
	}
	return n
}
