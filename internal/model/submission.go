package model

import (
	"time"

	"gorm.io/datatypes"
)

// Submission 用户提交的帖子
type Submission struct {
	ID               string                               `gorm:"primaryKey;size:36" json:"id"`
	PostLink         string                               `gorm:"size:512;not null" json:"postLink"`
	Name             string                               `gorm:"size:128" json:"name,omitempty"`
	Email            string                               `gorm:"size:255" json:"email,omitempty"`
	ImageURL         string                               `gorm:"size:512" json:"imageUrl,omitempty"`
	GeneratedContent datatypes.JSONType[GeneratedContent] `json:"generatedContent"`
	Status           string                               `gorm:"size:32;index;default:pending" json:"status"`
	IP               string                               `gorm:"size:64" json:"ip"`
	UserAgent        string                               `gorm:"size:512" json:"userAgent"`
	Timestamp        time.Time                            `gorm:"index" json:"timestamp"`
	UpdatedAt        *time.Time                           `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// ==================== 审核状态 ====================

const (
	SubmissionStatusPending    = "pending"
	SubmissionStatusApproved   = "approved"
	SubmissionStatusRejected   = "rejected"
	SubmissionStatusProcessing = "processing"
)

// ValidSubmissionStatus 是否为合法的审核状态
func ValidSubmissionStatus(s string) bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected, SubmissionStatusProcessing:
		return true
	}
	return false
}
