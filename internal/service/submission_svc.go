package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"cihai_ugc_202508/internal/model"
	"cihai_ugc_202508/internal/repository"
)

// 校验错误，消息直接返回给用户
var (
	ErrPostLinkRequired = errors.New("请填写帖子链接")
	ErrPostLinkDomain   = errors.New("链接必须来自 xhslink.com 或 xiaohongshu.com")
	ErrInvalidStatus    = errors.New("无效的状态值")
)

var allowedPostDomains = []string{"xhslink.com", "xiaohongshu.com"}

// 与 submissions 表的列宽一致，按字符计
const (
	maxPostLinkLen  = 512
	maxNameLen      = 128
	maxEmailLen     = 255
	maxImageURLLen  = 512
	maxIPLen        = 64
	maxUserAgentLen = 512
)

// FieldTooLongError 用户填写的字段超长
type FieldTooLongError struct {
	Field string
	Max   int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("%s不能超过%d个字符", e.Field, e.Max)
}

// SubmitInput 提交参数
type SubmitInput struct {
	PostLink         string
	Name             string
	Email            string
	ImageURL         string
	GeneratedContent model.GeneratedContent
	IP               string
	UserAgent        string
}

// SubmissionService 提交记录业务
type SubmissionService struct {
	repo   repository.SubmissionRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewSubmissionService 创建提交服务
func NewSubmissionService(repo repository.SubmissionRepository, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		repo:   repo,
		logger: logger.Named("submission"),
		now:    time.Now,
	}
}

// Submit 创建提交记录，状态为 pending
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (*model.Submission, error) {
	link := strings.TrimSpace(in.PostLink)
	if link == "" {
		return nil, ErrPostLinkRequired
	}
	if !IsAllowedPostLink(link) {
		return nil, ErrPostLinkDomain
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	imageURL := strings.TrimSpace(in.ImageURL)
	for _, f := range []struct {
		label string
		value string
		max   int
	}{
		{"帖子链接", link, maxPostLinkLen},
		{"昵称", name, maxNameLen},
		{"邮箱", email, maxEmailLen},
		{"图片地址", imageURL, maxImageURLLen},
	} {
		if utf8.RuneCountInString(f.value) > f.max {
			return nil, &FieldTooLongError{Field: f.label, Max: f.max}
		}
	}

	sub := &model.Submission{
		ID:               uuid.NewString(),
		PostLink:         link,
		Name:             name,
		Email:            email,
		ImageURL:         imageURL,
		GeneratedContent: datatypes.NewJSONType(in.GeneratedContent),
		Status:           model.SubmissionStatusPending,
		// 请求头由客户端控制，超长截断而不是拒绝
		IP:        truncateString(strings.TrimSpace(in.IP), maxIPLen),
		UserAgent: truncateString(in.UserAgent, maxUserAgentLen),
		Timestamp: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("保存提交记录失败: %w", err)
	}

	submissionsTotal.Inc()
	s.logger.Info("收到新提交",
		zap.String("id", sub.ID),
		zap.String("post_link", sub.PostLink),
		zap.String("ip", sub.IP))
	return sub, nil
}

// List 按时间倒序列出，status 为空表示全部
func (s *SubmissionService) List(ctx context.Context, status string) ([]model.Submission, error) {
	if status != "" && !model.ValidSubmissionStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, repository.SubmissionFilter{Status: status})
}

// Get 查询单条记录
func (s *SubmissionService) Get(ctx context.Context, id string) (*model.Submission, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// UpdateStatus 更新审核状态，返回修改条数
func (s *SubmissionService) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	if !model.ValidSubmissionStatus(status) {
		return 0, ErrInvalidStatus
	}

	n, err := s.repo.UpdateStatus(ctx, strings.TrimSpace(id), status, s.now().UTC())
	if err != nil {
		return 0, err
	}

	s.logger.Info("提交状态已更新", zap.String("id", id), zap.String("status", status))
	return n, nil
}

// Count 提交总数
func (s *SubmissionService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// ==================== 导出 ====================

var csvHeader = []string{"Name", "Email", "Post Link", "Status", "Timestamp", "Title", "Main Text"}

// ExportCSV 导出提交记录，正文只取前 100 个字符
func (s *SubmissionService) ExportCSV(ctx context.Context, w io.Writer, status string) error {
	list, err := s.List(ctx, status)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, sub := range list {
		content := sub.GeneratedContent.Data()
		row := []string{
			sub.Name,
			sub.Email,
			sub.PostLink,
			sub.Status,
			sub.Timestamp.UTC().Format(time.RFC3339),
			content.Title,
			truncateString(content.MainText, 100),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// IsAllowedPostLink 链接域名必须是小红书或其子域名
func IsAllowedPostLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, d := range allowedPostDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
