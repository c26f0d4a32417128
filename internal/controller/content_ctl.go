package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/api/dto"
	"cihai_ugc_202508/internal/service"
	"cihai_ugc_202508/pkg/llm"
)

type ContentController struct {
	aiService      *service.AIService
	storageService *service.StorageService
	logger         *zap.Logger
}

// NewContentController storageService 为空时不归档照片
func NewContentController(aiService *service.AIService, storageService *service.StorageService, logger *zap.Logger) *ContentController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentController{
		aiService:      aiService,
		storageService: storageService,
		logger:         logger.Named("content"),
	}
}

// Generate 根据照片生成小红书文案
// @Summary 生成小红书文案
// @Description 上传照片（base64 或 data URL），由视觉模型生成标题、正文和标签；不传图片时按纯文本生成
// @Tags Content
// @Accept json
// @Produce json
// @Param request body dto.GenerateContentReq false "图片参数"
// @Success 200 {object} dto.GenerateContentResp
// @Failure 400 {object} dto.ErrorResp "图片无效"
// @Failure 500 {object} dto.ErrorResp "生成失败"
// @Failure 504 {object} dto.ErrorResp "生成超时"
// @Router /api/generate-content [post]
func (h *ContentController) Generate(c *gin.Context) {
	var req dto.GenerateContentReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, msgBadRequest, "invalid_request")
		return
	}

	img, err := service.DecodeImage(req.ImageData(), req.MimeType)
	if err != nil {
		msg := "图片数据无效，请重新上传"
		if errors.Is(err, service.ErrImageTooLarge) {
			msg = "图片过大，请压缩后重试"
		}
		fail(c, http.StatusBadRequest, msg, "invalid_image")
		return
	}

	res, err := h.aiService.GenerateContent(c.Request.Context(), img)
	if err != nil {
		h.writeGenerateError(c, err)
		return
	}

	resp := dto.GenerateContentResp{Success: true, Content: res.Content}
	if img != nil && h.storageService != nil {
		resp.ImageURL = h.archive(c.Request.Context(), img)
	}

	h.logger.Info("内容生成成功",
		zap.String("provider", res.Provider),
		zap.String("shape", string(res.Shape)),
		zap.Bool("has_image", img != nil))
	c.JSON(http.StatusOK, resp)
}

// archive 归档失败不影响生成结果
func (h *ContentController) archive(ctx context.Context, img *service.ImageData) string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	url, err := h.storageService.SaveImage(ctx, img)
	if err != nil {
		h.logger.Warn("照片归档失败", zap.Error(err))
		return ""
	}
	return url
}

func (h *ContentController) writeGenerateError(c *gin.Context, err error) {
	var se *llm.StatusError

	switch {
	case errors.Is(err, service.ErrNoProviderConfigured):
		h.logger.Error("未配置 AI 服务商")
		fail(c, http.StatusInternalServerError, msgGenerationFailed, "no_provider")
	case errors.Is(err, service.ErrGenerationTimeout):
		h.logger.Warn("AI 生成超时", zap.Error(err))
		fail(c, http.StatusGatewayTimeout, msgGenerationTimeout, "timeout")
	case errors.As(err, &se):
		h.logger.Error("AI 服务商返回错误",
			zap.String("provider", se.Provider),
			zap.Int("status_code", se.StatusCode),
			zap.String("body", se.Body))
		status := se.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		fail(c, status, msgGenerationFailed, "upstream_error")
	default:
		h.logger.Error("AI 内容生成失败", zap.Error(err))
		fail(c, http.StatusInternalServerError, msgGenerationFailed, "generation_failed")
	}
}
