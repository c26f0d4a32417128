package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/api/dto"
	"cihai_ugc_202508/internal/repository"
)

const maxUsageDays = 90

type AIUsageController struct {
	callLogRepo repository.AICallLogRepository
	logger      *zap.Logger
}

func NewAIUsageController(callLogRepo repository.AICallLogRepository, logger *zap.Logger) *AIUsageController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIUsageController{callLogRepo: callLogRepo, logger: logger.Named("ai_usage")}
}

// Usage AI 调用统计
// @Summary AI 调用统计
// @Description 按服务商和按天汇总最近 N 天的调用次数、结果和 token 用量
// @Tags AI
// @Produce json
// @Param days query int false "统计天数 (默认7，最大90)"
// @Success 200 {object} dto.AIUsageResp
// @Failure 500 {object} dto.ErrorResp
// @Router /api/ai/usage [get]
func (h *AIUsageController) Usage(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}
	if days > maxUsageDays {
		days = maxUsageDays
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	ctx := c.Request.Context()

	byProvider, err := h.callLogRepo.GetUsageByProvider(ctx, start, end)
	if err != nil {
		h.logger.Error("查询服务商用量失败", zap.Error(err))
		fail(c, http.StatusInternalServerError, msgServerError, "")
		return
	}
	daily, err := h.callLogRepo.GetDailyUsage(ctx, start, end)
	if err != nil {
		h.logger.Error("查询每日用量失败", zap.Error(err))
		fail(c, http.StatusInternalServerError, msgServerError, "")
		return
	}

	if byProvider == nil {
		byProvider = []repository.ProviderUsageStats{}
	}
	if daily == nil {
		daily = []repository.DailyUsageStats{}
	}
	c.JSON(http.StatusOK, dto.AIUsageResp{Success: true, Days: days, ByProvider: byProvider, Daily: daily})
}
