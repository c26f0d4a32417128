package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sashabaranov/go-openai"
)

// Request 一次生成请求的输入
type Request struct {
	Prompt   string
	ImageURL string // data:<mime>;base64,<data>，纯文本路径为空
}

// Result 一次成功调用的结果
type Result struct {
	Provider   string
	Model      string
	Shape      Shape
	Endpoint   string
	StatusCode int
	Duration   time.Duration

	// RawContent choices[0].message.content 原样返回，可能是字符串也可能是分段数组
	RawContent json.RawMessage
	Usage      openai.Usage
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage openai.Usage `json:"usage"`
}

// Client 兼容 OpenAI Chat Completion 的 HTTP 客户端
// 不做任何重试，每次调用只有一个请求在途（404 备用地址除外，也是串行）
type Client struct {
	http *resty.Client
}

// NewClient 创建客户端，hc 为空时使用 resty 默认客户端
// 不设置客户端级超时，截止时间统一由调用方的 ctx 控制
func NewClient(hc *http.Client) *Client {
	var rc *resty.Client
	if hc != nil {
		rc = resty.NewWithClient(hc)
	} else {
		rc = resty.New()
	}
	rc.SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: rc}
}

// Complete 以指定格式调用服务商
// 主地址 404 时用去掉 /v1 的备用地址再试一次同样的请求体
func (c *Client) Complete(ctx context.Context, cfg ProviderConfig, req Request, shape Shape) (*Result, error) {
	body, err := buildBody(cfg, req, shape)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	endpoint := cfg.Endpoint()
	resp, err := c.post(ctx, cfg, endpoint, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusNotFound {
		if fallback := cfg.FallbackEndpoint(); fallback != "" {
			endpoint = fallback
			resp, err = c.post(ctx, cfg, endpoint, body)
			if err != nil {
				return nil, err
			}
		}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &StatusError{
			Provider:   cfg.Name,
			Shape:      shape,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Body:       truncate(resp.String(), 2048),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, cfg.Name, err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: %s: choices 为空", ErrInvalidResponse, cfg.Name)
	}

	return &Result{
		Provider:   cfg.Name,
		Model:      cfg.Model,
		Shape:      shape,
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode(),
		Duration:   time.Since(start),
		RawContent: parsed.Choices[0].Message.Content,
		Usage:      parsed.Usage,
	}, nil
}

func (c *Client) post(ctx context.Context, cfg ProviderConfig, endpoint string, body any) (*resty.Response, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(cfg.APIKey).
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("请求 %s 失败: %w", cfg.Name, err)
	}
	return resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
