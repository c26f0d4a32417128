package dto

import "cihai_ugc_202508/internal/repository"

// AIUsageResp AI 调用统计
type AIUsageResp struct {
	Success    bool                            `json:"success"`
	Days       int                             `json:"days"`
	ByProvider []repository.ProviderUsageStats `json:"byProvider"`
	Daily      []repository.DailyUsageStats    `json:"daily"`
}
