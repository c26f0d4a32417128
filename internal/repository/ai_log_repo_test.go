package repository

import (
	"context"
	"testing"
	"time"

	"cihai_ugc_202508/internal/model"
)

func TestAICallLogRepo_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAICallLogRepository(db)
	ctx := context.Background()

	log := &model.AICallLog{
		Provider:     "zhipu",
		ModelName:    "glm-4v",
		Shape:        "image_url_object",
		HasImage:     true,
		StatusCode:   200,
		InputTokens:  500,
		OutputTokens: 200,
		DurationMs:   1500,
		Status:       model.AICallStatusSuccess,
	}

	if err := repo.Create(ctx, log); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if log.ID == 0 {
		t.Error("ID 应该被自动分配")
	}

	var found model.AICallLog
	if err := db.First(&found, log.ID).Error; err != nil {
		t.Fatalf("读回记录失败: %v", err)
	}
	if found.Provider != "zhipu" || !found.HasImage {
		t.Errorf("读回的记录不一致: %+v", found)
	}
}

func TestAICallLogRepo_GetUsageByProvider(t *testing.T) {
	repo := NewAICallLogRepository(setupTestDB(t))
	ctx := context.Background()

	logs := []*model.AICallLog{
		{Provider: "zhipu", StatusCode: 422, Status: model.AICallStatusRejected},
		{Provider: "zhipu", StatusCode: 200, InputTokens: 100, OutputTokens: 50, DurationMs: 1000, Status: model.AICallStatusSuccess},
		{Provider: "zhipu", StatusCode: 200, InputTokens: 200, OutputTokens: 100, DurationMs: 3000, Status: model.AICallStatusSuccess},
		{Provider: "deepseek", StatusCode: 500, Status: model.AICallStatusFailed},
		{Provider: "deepseek", Status: model.AICallStatusTimeout},
	}
	for _, log := range logs {
		if err := repo.Create(ctx, log); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	stats, err := repo.GetUsageByProvider(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetUsageByProvider() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("服务商数量 = %d, want 2", len(stats))
	}

	// 按名称升序
	ds, zp := stats[0], stats[1]
	if ds.Provider != "deepseek" || zp.Provider != "zhipu" {
		t.Fatalf("排序不正确: %+v", stats)
	}
	if zp.TotalCalls != 3 || zp.SuccessCount != 2 || zp.RejectedCount != 1 {
		t.Errorf("zhipu 统计不正确: %+v", zp)
	}
	if zp.TotalInputTokens != 300 || zp.TotalOutputTokens != 150 {
		t.Errorf("zhipu token 统计不正确: %+v", zp)
	}
	if ds.FailedCount != 1 || ds.TimeoutCount != 1 {
		t.Errorf("deepseek 统计不正确: %+v", ds)
	}
}

func TestAICallLogRepo_GetDailyUsage(t *testing.T) {
	repo := NewAICallLogRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		repo.Create(ctx, &model.AICallLog{Provider: "qwen", InputTokens: 10, Status: model.AICallStatusSuccess})
	}

	now := time.Now()
	stats, err := repo.GetDailyUsage(ctx, now.Add(-24*time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetDailyUsage() error = %v", err)
	}

	var total int64
	for _, s := range stats {
		total += s.TotalCalls
	}
	if total != 3 {
		t.Errorf("TotalCalls = %d, want 3", total)
	}
}

func TestAICallLogRepo_DeleteBefore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAICallLogRepository(db)
	ctx := context.Background()

	old := &model.AICallLog{Provider: "zhipu", Status: model.AICallStatusSuccess}
	old.CreatedAt = time.Now().AddDate(0, 0, -40)
	fresh := &model.AICallLog{Provider: "zhipu", Status: model.AICallStatusSuccess}

	repo.Create(ctx, old)
	repo.Create(ctx, fresh)

	n, err := repo.DeleteBefore(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("DeleteBefore() error = %v", err)
	}
	if n != 1 {
		t.Errorf("删除条数 = %d, want 1", n)
	}

	var remaining int64
	db.Model(&model.AICallLog{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("剩余条数 = %d, want 1", remaining)
	}
}
