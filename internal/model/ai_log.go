package model

import "time"

// AICallLog AI调用日志，每次对服务商的尝试记一条
// 只追加不修改，过期后由清理任务物理删除
type AICallLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// 调用信息
	Provider  string `gorm:"size:32;index;comment:服务商" json:"provider"`
	ModelName string `gorm:"size:64;comment:模型名称" json:"model_name"`
	Shape     string `gorm:"size:32;comment:消息格式" json:"shape"`
	Endpoint  string `gorm:"size:255;comment:请求地址" json:"endpoint"`
	HasImage  bool   `gorm:"default:false;comment:是否带图" json:"has_image"`

	// 用量统计
	StatusCode   int `gorm:"default:0;comment:HTTP状态码" json:"status_code"`
	InputTokens  int `gorm:"default:0;comment:输入token数" json:"input_tokens"`
	OutputTokens int `gorm:"default:0;comment:输出token数" json:"output_tokens"`

	// 性能
	DurationMs int64 `gorm:"comment:耗时(毫秒)" json:"duration_ms"`

	// 状态
	Status   string `gorm:"size:32;index;default:success;comment:状态(success/rejected/failed/timeout)" json:"status"`
	ErrorMsg string `gorm:"size:1024;comment:错误信息" json:"error_msg,omitempty"`
}

func (AICallLog) TableName() string {
	return "ai_call_logs"
}

// ==================== 状态常量 ====================

const (
	AICallStatusSuccess  = "success"
	AICallStatusRejected = "rejected" // 400/422，换下一种格式
	AICallStatusFailed   = "failed"
	AICallStatusTimeout  = "timeout"
)
