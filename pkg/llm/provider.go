package llm

import (
	"net/url"
	"strings"
)

// ==================== 服务商配置 ====================

// ProviderConfig 单个 Chat Completion 服务商配置
type ProviderConfig struct {
	Name        string  // 标识，如 zhipu / qwen / deepseek
	BaseURL     string  // 如 https://api.deepseek.com/v1
	Model       string  // 模型名称
	APIKey      string  // Bearer Token，为空时该服务商被跳过
	Vision      bool    // 是否支持图片理解
	Shapes      []Shape // 图片消息格式的探测顺序，仅 Vision 服务商使用
	MaxTokens   int
	Temperature float64
}

// Configured 是否已配置（没有 Key 的服务商完全不参与调用）
func (c ProviderConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.BaseURL) != ""
}

// ImageShapes 返回图片消息格式顺序，未配置时使用默认顺序
func (c ProviderConfig) ImageShapes() []Shape {
	if len(c.Shapes) == 0 {
		return DefaultImageShapes
	}
	return c.Shapes
}

// Endpoint 主接口地址
func (c ProviderConfig) Endpoint() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if strings.HasSuffix(base, "/chat/completions") {
		return base
	}
	return base + "/chat/completions"
}

// FallbackEndpoint 去掉 /v1 路径段后的备用地址，主地址 404 时使用
// 路径里没有 v1 段时返回空串
func (c ProviderConfig) FallbackEndpoint() string {
	u, err := url.Parse(c.Endpoint())
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	kept := make([]string, 0, len(segments))
	stripped := false
	for _, seg := range segments {
		if !stripped && seg == "v1" {
			stripped = true
			continue
		}
		kept = append(kept, seg)
	}
	if !stripped {
		return ""
	}

	u.Path = "/" + strings.Join(kept, "/")
	return u.String()
}
