package task

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cihai_ugc_202508/internal/model"
	"cihai_ugc_202508/internal/repository"
)

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.AICallLog{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

func TestAILogCleanupTask_RunOnce(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewAICallLogRepository(db)
	ctx := context.Background()

	now := time.Date(2025, 8, 20, 3, 30, 0, 0, time.UTC)
	ages := []int{1, 29, 31, 60}
	for _, days := range ages {
		log := &model.AICallLog{Provider: "zhipu", Status: model.AICallStatusSuccess}
		log.CreatedAt = now.AddDate(0, 0, -days)
		if err := repo.Create(ctx, log); err != nil {
			t.Fatalf("创建日志失败: %v", err)
		}
	}

	task := NewAILogCleanupTask(repo, "", 30, nil)
	task.now = func() time.Time { return now }

	if n := task.RunOnce(ctx); n != 2 {
		t.Errorf("应删除 2 条过期日志，实际 %d", n)
	}

	var remaining int64
	db.Model(&model.AICallLog{}).Count(&remaining)
	if remaining != 2 {
		t.Errorf("应剩余 2 条日志，实际 %d", remaining)
	}

	if n := task.RunOnce(ctx); n != 0 {
		t.Errorf("重复执行不应再删除，实际 %d", n)
	}
}

func TestAILogCleanupTask_Defaults(t *testing.T) {
	task := NewAILogCleanupTask(nil, "", 0, nil)
	if task.spec != DefaultCleanupSpec {
		t.Errorf("默认表达式应为 %s，实际 %s", DefaultCleanupSpec, task.spec)
	}
	if task.retentionDays != 30 {
		t.Errorf("默认保留天数应为 30，实际 %d", task.retentionDays)
	}
}

func TestAILogCleanupTask_InvalidSpec(t *testing.T) {
	task := NewAILogCleanupTask(nil, "every day", 30, nil)
	if err := task.Start(); err == nil {
		t.Error("非法表达式应返回错误")
	}
}

func TestAILogCleanupTask_StartStop(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewAICallLogRepository(db)

	task := NewAILogCleanupTask(repo, "*/1 * * * * *", 30, nil)
	if err := task.Start(); err != nil {
		t.Fatalf("启动失败: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	task.Stop()
}
