package dto

import "cihai_ugc_202508/internal/model"

// Request DTO

// GenerateContentReq 内容生成请求，图片可选
// image 与 base64Image 二选一，后者兼容旧的函数入口
type GenerateContentReq struct {
	Image       string `json:"image"`
	Base64Image string `json:"base64Image"`
	MimeType    string `json:"mimeType"`
}

// ImageData 取实际传入的图片字段
func (r GenerateContentReq) ImageData() string {
	if r.Image != "" {
		return r.Image
	}
	return r.Base64Image
}

// Response DTO

// GenerateContentResp 生成成功
type GenerateContentResp struct {
	Success  bool                   `json:"success"`
	Content  model.GeneratedContent `json:"content"`
	ImageURL string                 `json:"imageUrl,omitempty"`
}

// ErrorResp 失败响应，error 只放分类代码，不含上游细节
type ErrorResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HealthResp 健康检查
type HealthResp struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	Timestamp        string   `json:"timestamp"`
	SubmissionsCount int64    `json:"submissionsCount"`
	Providers        []string `json:"providers"`
}
