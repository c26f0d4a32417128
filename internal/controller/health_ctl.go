package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/api/dto"
	"cihai_ugc_202508/internal/service"
)

type HealthController struct {
	submissionService *service.SubmissionService
	aiService         *service.AIService
	logger            *zap.Logger
}

func NewHealthController(submissionService *service.SubmissionService, aiService *service.AIService, logger *zap.Logger) *HealthController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthController{
		submissionService: submissionService,
		aiService:         aiService,
		logger:            logger.Named("health"),
	}
}

// Health 健康检查
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResp
// @Failure 500 {object} dto.ErrorResp
// @Router /api/health [get]
func (h *HealthController) Health(c *gin.Context) {
	count, err := h.submissionService.Count(c.Request.Context())
	if err != nil {
		h.logger.Error("统计提交数失败", zap.Error(err))
		fail(c, http.StatusInternalServerError, msgServerError, "store_unavailable")
		return
	}

	providers := h.aiService.ConfiguredProviders()
	if providers == nil {
		providers = []string{}
	}

	c.JSON(http.StatusOK, dto.HealthResp{
		Success:          true,
		Message:          "辞海UGC Backend is running!",
		Timestamp:        time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		SubmissionsCount: count,
		Providers:        providers,
	})
}
