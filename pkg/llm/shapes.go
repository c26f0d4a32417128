package llm

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Shape 图片在 user 消息里的嵌入格式
// 各家兼容 OpenAI 的接口对图片字段的写法并不统一，只能逐个探测
type Shape string

const (
	// ShapeImageURLObject [{type:text}, {type:image_url, image_url:{url}}]，OpenAI 标准写法
	ShapeImageURLObject Shape = "image_url_object"
	// ShapeImageURLString [{type:text}, {type:image_url, image_url:"<url>"}]
	ShapeImageURLString Shape = "image_url_string"
	// ShapeImageType [{type:text}, {type:image, image_url:"<url>"}]
	ShapeImageType Shape = "image"
	// ShapeText content 直接为提示词字符串，纯文本路径
	ShapeText Shape = "text"
)

// DefaultImageShapes 默认探测顺序
var DefaultImageShapes = []Shape{ShapeImageURLObject, ShapeImageURLString, ShapeImageType}

// ParseShape 解析配置中的格式名称
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.TrimSpace(strings.ToLower(s))) {
	case ShapeImageURLObject:
		return ShapeImageURLObject, nil
	case ShapeImageURLString:
		return ShapeImageURLString, nil
	case ShapeImageType:
		return ShapeImageType, nil
	case ShapeText:
		return ShapeText, nil
	default:
		return "", fmt.Errorf("不支持的消息格式: %q", s)
	}
}

// ==================== 请求体 ====================

type textPart struct {
	Type openai.ChatMessagePartType `json:"type"`
	Text string                     `json:"text"`
}

type imageURLStringPart struct {
	Type     openai.ChatMessagePartType `json:"type"`
	ImageURL string                     `json:"image_url"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// buildBody 按格式构造请求体
// 标准格式和纯文本直接用 go-openai 的请求结构，另外两种非标准写法手工拼
func buildBody(cfg ProviderConfig, req Request, shape Shape) (any, error) {
	if shape != ShapeText && req.ImageURL == "" {
		return nil, fmt.Errorf("格式 %s 需要图片", shape)
	}

	switch shape {
	case ShapeText:
		return openai.ChatCompletionRequest{
			Model: cfg.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
			},
			MaxTokens:   cfg.MaxTokens,
			Temperature: float32(cfg.Temperature),
		}, nil

	case ShapeImageURLObject:
		return openai.ChatCompletionRequest{
			Model: cfg.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
						{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: req.ImageURL}},
					},
				},
			},
			MaxTokens:   cfg.MaxTokens,
			Temperature: float32(cfg.Temperature),
		}, nil

	case ShapeImageURLString, ShapeImageType:
		partType := openai.ChatMessagePartTypeImageURL
		if shape == ShapeImageType {
			partType = openai.ChatMessagePartType("image")
		}
		return chatRequest{
			Model: cfg.Model,
			Messages: []chatMessage{
				{
					Role: openai.ChatMessageRoleUser,
					Content: []any{
						textPart{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
						imageURLStringPart{Type: partType, ImageURL: req.ImageURL},
					},
				},
			},
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}, nil
	}

	return nil, fmt.Errorf("不支持的消息格式: %q", shape)
}
