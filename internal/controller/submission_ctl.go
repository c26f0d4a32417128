package controller

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/api/dto"
	"cihai_ugc_202508/internal/model"
	"cihai_ugc_202508/internal/repository"
	"cihai_ugc_202508/internal/service"
)

type SubmissionController struct {
	submissionService *service.SubmissionService
	logger            *zap.Logger
}

func NewSubmissionController(submissionService *service.SubmissionService, logger *zap.Logger) *SubmissionController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionController{
		submissionService: submissionService,
		logger:            logger.Named("submission"),
	}
}

// ==========================================
// 1. 用户提交
// ==========================================

// Submit 提交帖子链接
// @Summary 提交小红书帖子
// @Description 用户发布后提交帖子链接，链接必须来自 xhslink.com 或 xiaohongshu.com
// @Tags Submission
// @Accept json
// @Produce json
// @Param request body dto.SubmitPostReq true "提交参数"
// @Success 200 {object} dto.SubmitPostResp
// @Failure 400 {object} dto.ErrorResp "参数错误"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/submit-post [post]
func (h *SubmissionController) Submit(c *gin.Context) {
	var req dto.SubmitPostReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, msgBadRequest, "invalid_request")
		return
	}

	in := service.SubmitInput{
		PostLink:  req.PostLink,
		Name:      req.Name,
		Email:     req.Email,
		ImageURL:  req.ImageURL,
		IP:        clientIP(c),
		UserAgent: c.Request.UserAgent(),
	}
	if req.GeneratedContent != nil {
		in.GeneratedContent = *req.GeneratedContent
	}

	sub, err := h.submissionService.Submit(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrPostLinkRequired) || errors.Is(err, service.ErrPostLinkDomain) {
			fail(c, http.StatusBadRequest, err.Error(), "invalid_post_link")
			return
		}
		var tooLong *service.FieldTooLongError
		if errors.As(err, &tooLong) {
			fail(c, http.StatusBadRequest, err.Error(), "field_too_long")
			return
		}
		h.logger.Error("保存提交失败", zap.Error(err))
		fail(c, http.StatusInternalServerError, msgServerError, "")
		return
	}

	c.JSON(http.StatusOK, dto.SubmitPostResp{
		Success:      true,
		Message:      "提交成功！我们会尽快审核您的内容。",
		SubmissionID: sub.ID,
	})
}

// ==========================================
// 2. 管理端查询
// ==========================================

// List 提交列表
// @Summary 获取提交列表
// @Description 按提交时间倒序返回，可按状态过滤
// @Tags Submission
// @Produce json
// @Param status query string false "状态 (pending/approved/rejected/processing)"
// @Success 200 {object} dto.SubmissionListResp
// @Failure 400 {object} dto.ErrorResp "状态无效"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/submissions [get]
func (h *SubmissionController) List(c *gin.Context) {
	list, err := h.submissionService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if list == nil {
		list = []model.Submission{}
	}
	c.JSON(http.StatusOK, dto.SubmissionListResp{Success: true, Submissions: list})
}

// Get 提交详情
// @Summary 获取提交详情
// @Tags Submission
// @Produce json
// @Param id path string true "提交ID"
// @Success 200 {object} dto.SubmissionResp
// @Failure 404 {object} dto.ErrorResp "记录不存在"
// @Router /api/submissions/{id} [get]
func (h *SubmissionController) Get(c *gin.Context) {
	id := submissionID(c)
	if id == "" {
		fail(c, http.StatusBadRequest, "请提供提交ID", "missing_id")
		return
	}

	sub, err := h.submissionService.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubmissionResp{Success: true, Submission: sub})
}

// ==========================================
// 3. 审核
// ==========================================

// UpdateStatus 更新审核状态
// @Summary 更新提交状态
// @Tags Submission
// @Accept json
// @Produce json
// @Param id path string true "提交ID"
// @Param request body dto.UpdateStatusReq true "新状态"
// @Success 200 {object} dto.UpdateStatusResp
// @Failure 400 {object} dto.ErrorResp "状态无效"
// @Failure 404 {object} dto.ErrorResp "记录不存在"
// @Router /api/submissions/{id}/status [put]
func (h *SubmissionController) UpdateStatus(c *gin.Context) {
	id := submissionID(c)
	var req dto.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || id == "" {
		fail(c, http.StatusBadRequest, "请提供提交ID和状态", "invalid_request")
		return
	}

	n, err := h.submissionService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UpdateStatusResp{Success: true, Message: "状态更新成功", UpdatedCount: n})
}

// Export 导出 CSV
// @Summary 导出提交记录
// @Tags Submission
// @Produce text/csv
// @Param status query string false "状态过滤"
// @Success 200 {file} file
// @Router /api/export/submissions [get]
func (h *SubmissionController) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.submissionService.ExportCSV(c.Request.Context(), &buf, c.Query("status")); err != nil {
		h.writeError(c, err)
		return
	}

	filename := "ugc-submissions-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *SubmissionController) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSubmissionNotFound):
		fail(c, http.StatusNotFound, msgNotFound, "not_found")
	case errors.Is(err, service.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, err.Error(), "invalid_status")
	default:
		h.logger.Error("提交记录操作失败", zap.Error(err))
		fail(c, http.StatusInternalServerError, msgServerError, "")
	}
}

// submissionID 路径参数优先，兼容函数入口的 ?id=
func submissionID(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return strings.TrimSpace(c.Query("id"))
}

// clientIP 优先取 X-Forwarded-For 的第一跳（原始客户端）
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("Client-IP")); ip != "" {
		return ip
	}
	return c.ClientIP()
}
