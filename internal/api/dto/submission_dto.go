package dto

import "cihai_ugc_202508/internal/model"

// Request DTO

// SubmitPostReq 提交帖子
type SubmitPostReq struct {
	PostLink         string                  `json:"postLink"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	ImageURL         string                  `json:"imageUrl"`
	GeneratedContent *model.GeneratedContent `json:"generatedContent"`
}

// UpdateStatusReq 更新审核状态
type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// Response DTO

// SubmitPostResp 提交成功
type SubmitPostResp struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
}

// SubmissionListResp 提交列表
type SubmissionListResp struct {
	Success     bool               `json:"success"`
	Submissions []model.Submission `json:"submissions"`
}

// SubmissionResp 单条提交
type SubmissionResp struct {
	Success    bool              `json:"success"`
	Submission *model.Submission `json:"submission"`
}

// UpdateStatusResp 状态更新结果
type UpdateStatusResp struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	UpdatedCount int64  `json:"updatedCount"`
}
