package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cihai_ugc_202508/internal/model"
)

// AICallLogRepository AI 调用日志，只在 SQL 存储下可用
type AICallLogRepository interface {
	Create(ctx context.Context, log *model.AICallLog) error

	// 统计，零值时间表示不限
	GetUsageByProvider(ctx context.Context, since, until time.Time) ([]ProviderUsageStats, error)
	GetDailyUsage(ctx context.Context, since, until time.Time) ([]DailyUsageStats, error)

	// DeleteBefore 物理删除，返回删除条数
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// ProviderUsageStats 按服务商汇总
type ProviderUsageStats struct {
	Provider          string  `json:"provider"`
	TotalCalls        int64   `json:"total_calls"`
	SuccessCount      int64   `json:"success_count"`
	RejectedCount     int64   `json:"rejected_count"`
	FailedCount       int64   `json:"failed_count"`
	TimeoutCount      int64   `json:"timeout_count"`
	TotalInputTokens  int64   `json:"total_input_tokens"`
	TotalOutputTokens int64   `json:"total_output_tokens"`
	AvgDurationMs     float64 `json:"avg_duration_ms"`
}

// DailyUsageStats 按天汇总
type DailyUsageStats struct {
	Date              string `json:"date"`
	TotalCalls        int64  `json:"total_calls"`
	SuccessCount      int64  `json:"success_count"`
	TotalInputTokens  int64  `json:"total_input_tokens"`
	TotalOutputTokens int64  `json:"total_output_tokens"`
}

type aiCallLogRepo struct {
	db *gorm.DB
}

func NewAICallLogRepository(db *gorm.DB) AICallLogRepository {
	return &aiCallLogRepo{db: db}
}

func (r *aiCallLogRepo) Create(ctx context.Context, log *model.AICallLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *aiCallLogRepo) GetUsageByProvider(ctx context.Context, since, until time.Time) ([]ProviderUsageStats, error) {
	var stats []ProviderUsageStats
	err := r.between(ctx, since, until).
		Select("provider, COUNT(*) AS total_calls, " +
			countStatus(model.AICallStatusSuccess, "success_count") + ", " +
			countStatus(model.AICallStatusRejected, "rejected_count") + ", " +
			countStatus(model.AICallStatusFailed, "failed_count") + ", " +
			countStatus(model.AICallStatusTimeout, "timeout_count") + ", " +
			tokenSums + ", " +
			"COALESCE(AVG(duration_ms), 0) AS avg_duration_ms").
		Group("provider").
		Order("provider").
		Scan(&stats).Error
	return stats, err
}

func (r *aiCallLogRepo) GetDailyUsage(ctx context.Context, since, until time.Time) ([]DailyUsageStats, error) {
	var stats []DailyUsageStats
	err := r.between(ctx, since, until).
		Select("DATE(created_at) AS date, COUNT(*) AS total_calls, " +
			countStatus(model.AICallStatusSuccess, "success_count") + ", " +
			tokenSums).
		Group("DATE(created_at)").
		Order("date").
		Scan(&stats).Error
	return stats, err
}

func (r *aiCallLogRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&model.AICallLog{})
	return res.RowsAffected, res.Error
}

// between 限定 created_at 区间
func (r *aiCallLogRepo) between(ctx context.Context, since, until time.Time) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.AICallLog{})
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	if !until.IsZero() {
		q = q.Where("created_at <= ?", until)
	}
	return q
}

const tokenSums = "COALESCE(SUM(input_tokens), 0) AS total_input_tokens, " +
	"COALESCE(SUM(output_tokens), 0) AS total_output_tokens"

// countStatus 状态值来自常量，不含用户输入
func countStatus(status, alias string) string {
	return fmt.Sprintf("SUM(CASE WHEN status = '%s' THEN 1 ELSE 0 END) AS %s", status, alias)
}
