package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cihai_ugc_202508/internal/model"
	"cihai_ugc_202508/internal/repository"
	"cihai_ugc_202508/pkg/llm"
)

var (
	ErrNoProviderConfigured = errors.New("未配置任何 AI 服务商")
	ErrAllProvidersRejected = errors.New("所有 AI 服务商都不接受请求格式")
	ErrGenerationTimeout    = errors.New("AI 生成超时")
)

// ==================== 配置 ====================

// AIConfig AI 服务配置
type AIConfig struct {
	// 按优先级排列，未配置 Key 的会被跳过
	Providers []llm.ProviderConfig
	// 整个生成流程的截止时间，0 表示不限
	Timeout       time.Duration
	HashtagPolicy HashtagPolicy
}

// Completer 单次服务商调用，由 llm.Client 实现
type Completer interface {
	Complete(ctx context.Context, cfg llm.ProviderConfig, req llm.Request, shape llm.Shape) (*llm.Result, error)
}

// ==================== 服务 ====================

type AIService struct {
	config      *AIConfig
	client      Completer
	extractor   *ContentExtractor
	callLogRepo repository.AICallLogRepository
	logger      *zap.Logger
}

// NewAIService 创建 AI 服务，callLogRepo 可为空（非 SQL 存储时不记调用日志）
func NewAIService(cfg *AIConfig, client Completer, callLogRepo repository.AICallLogRepository, logger *zap.Logger) *AIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIService{
		config:      cfg,
		client:      client,
		extractor:   NewContentExtractor(cfg.HashtagPolicy),
		callLogRepo: callLogRepo,
		logger:      logger.Named("ai"),
	}
}

// GenerateResult 生成结果
type GenerateResult struct {
	Content  model.GeneratedContent
	Provider string
	Model    string
	Shape    llm.Shape
}

// candidate 一个服务商及其要尝试的消息格式
type candidate struct {
	provider  llm.ProviderConfig
	shapes    []llm.Shape
	withImage bool
}

// ConfiguredProviders 已配置的服务商名称，按优先级
func (s *AIService) ConfiguredProviders() []string {
	var names []string
	for _, p := range s.config.Providers {
		if p.Configured() {
			names = append(names, p.Name)
		}
	}
	return names
}

// plan 生成尝试顺序
// 有图：视觉服务商按各自格式顺序尝试，纯文本服务商兜底
// 无图：纯文本服务商优先，视觉服务商随后，全部用纯文本格式
func (s *AIService) plan(hasImage bool) []candidate {
	var vision, text []candidate
	for _, p := range s.config.Providers {
		if !p.Configured() {
			continue
		}
		if p.Vision && hasImage {
			vision = append(vision, candidate{provider: p, shapes: p.ImageShapes(), withImage: true})
			continue
		}
		c := candidate{provider: p, shapes: []llm.Shape{llm.ShapeText}}
		if p.Vision {
			vision = append(vision, c)
		} else {
			text = append(text, c)
		}
	}

	if hasImage {
		return append(vision, text...)
	}
	return append(text, vision...)
}

// GenerateContent 生成小红书文案，img 为空走纯文本路径
// 格式被拒（400/422）换下一个格式，服务商的格式用完换下一个服务商
// 其他非 2xx 或网络错误直接失败，不重试
func (s *AIService) GenerateContent(ctx context.Context, img *ImageData) (*GenerateResult, error) {
	hasImage := img != nil
	candidates := s.plan(hasImage)
	if len(candidates) == 0 {
		generationsTotal.WithLabelValues("no_provider").Inc()
		return nil, ErrNoProviderConfigured
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	var dataURL string
	if hasImage {
		dataURL = img.DataURL()
	}

	for _, c := range candidates {
		req := llm.Request{Prompt: BuildPrompt(c.withImage)}
		if c.withImage {
			req.ImageURL = dataURL
		}

		for _, shape := range c.shapes {
			start := time.Now()
			res, err := s.client.Complete(ctx, c.provider, req, shape)

			// 超时后即使拿到响应也不再处理
			if ctx.Err() != nil {
				s.record(c, shape, nil, ctx.Err(), time.Since(start))
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					generationsTotal.WithLabelValues("timeout").Inc()
					return nil, fmt.Errorf("%w: %s", ErrGenerationTimeout, c.provider.Name)
				}
				generationsTotal.WithLabelValues("canceled").Inc()
				return nil, ctx.Err()
			}

			s.record(c, shape, res, err, time.Since(start))

			if err == nil {
				text := FlattenContent(res.RawContent)
				generationsTotal.WithLabelValues("success").Inc()
				return &GenerateResult{
					Content:  s.extractor.Extract(text),
					Provider: res.Provider,
					Model:    res.Model,
					Shape:    res.Shape,
				}, nil
			}

			if llm.IsSchemaRejection(err) {
				continue
			}

			generationsTotal.WithLabelValues("failed").Inc()
			return nil, err
		}
	}

	generationsTotal.WithLabelValues("rejected").Inc()
	return nil, ErrAllProvidersRejected
}

// ==================== 连通性检查 ====================

// ProviderCheck 单个服务商的检查结果
type ProviderCheck struct {
	Provider string
	Model    string
	Duration time.Duration
	Reply    string
	Err      error
}

// CheckProviders 用纯文本请求逐个探测已配置的服务商
func (s *AIService) CheckProviders(ctx context.Context) []ProviderCheck {
	var checks []ProviderCheck
	for _, p := range s.config.Providers {
		if !p.Configured() {
			continue
		}

		p.MaxTokens = 16
		start := time.Now()
		res, err := s.client.Complete(ctx, p, llm.Request{Prompt: "请回复：OK"}, llm.ShapeText)

		check := ProviderCheck{Provider: p.Name, Model: p.Model, Duration: time.Since(start), Err: err}
		if err == nil {
			check.Reply = FlattenContent(res.RawContent)
		}
		checks = append(checks, check)
	}
	return checks
}

// ==================== 调用记录 ====================

func (s *AIService) record(c candidate, shape llm.Shape, res *llm.Result, err error, dur time.Duration) {
	status := model.AICallStatusSuccess
	statusCode := 0
	endpoint := c.provider.Endpoint()
	errMsg := ""

	var se *llm.StatusError
	switch {
	case err == nil:
		statusCode = res.StatusCode
		endpoint = res.Endpoint
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		status = model.AICallStatusTimeout
		errMsg = err.Error()
	case errors.As(err, &se):
		statusCode = se.StatusCode
		endpoint = se.Endpoint
		errMsg = se.Body
		if se.SchemaRejected() {
			status = model.AICallStatusRejected
		} else {
			status = model.AICallStatusFailed
		}
	default:
		status = model.AICallStatusFailed
		errMsg = err.Error()
	}

	fields := []zap.Field{
		zap.String("provider", c.provider.Name),
		zap.String("model", c.provider.Model),
		zap.String("shape", string(shape)),
		zap.String("endpoint", endpoint),
		zap.Bool("has_image", c.withImage),
		zap.Int("status_code", statusCode),
		zap.String("status", status),
		zap.Duration("duration", dur),
	}
	switch status {
	case model.AICallStatusSuccess:
		s.logger.Info("AI 调用成功", append(fields,
			zap.Int("prompt_tokens", res.Usage.PromptTokens),
			zap.Int("completion_tokens", res.Usage.CompletionTokens))...)
	case model.AICallStatusRejected:
		s.logger.Warn("AI 服务商拒绝了消息格式，尝试下一种", append(fields, zap.String("body", errMsg))...)
	default:
		s.logger.Error("AI 调用失败", append(fields, zap.String("error", errMsg))...)
	}

	aiAttemptsTotal.WithLabelValues(c.provider.Name, string(shape), status).Inc()
	aiAttemptDuration.WithLabelValues(c.provider.Name, status).Observe(dur.Seconds())

	log := &model.AICallLog{
		Provider:   c.provider.Name,
		ModelName:  c.provider.Model,
		Shape:      string(shape),
		Endpoint:   endpoint,
		HasImage:   c.withImage,
		StatusCode: statusCode,
		DurationMs: dur.Milliseconds(),
		Status:     status,
		ErrorMsg:   truncateString(errMsg, 1000),
	}
	if res != nil {
		log.InputTokens = res.Usage.PromptTokens
		log.OutputTokens = res.Usage.CompletionTokens
		aiTokensTotal.WithLabelValues(c.provider.Name, "prompt").Add(float64(res.Usage.PromptTokens))
		aiTokensTotal.WithLabelValues(c.provider.Name, "completion").Add(float64(res.Usage.CompletionTokens))
	}

	if s.callLogRepo == nil {
		return
	}
	// 请求可能已超时，日志用独立的短超时写入
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.callLogRepo.Create(ctx, log); err != nil {
		s.logger.Warn("写入 AI 调用日志失败", zap.Error(err))
	}
}

func truncateString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
