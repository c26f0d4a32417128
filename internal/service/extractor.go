package service

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"cihai_ugc_202508/internal/model"
)

// ==================== 默认值 ====================

const (
	DefaultTitle    = "📚 辞海：知识的海洋，智慧的源泉"
	DefaultMainText = "今天分享这本陪伴我多年的辞海！作为一部权威的综合性辞书，辞海不仅收录了丰富的词汇，更是中华文化的瑰宝。"
)

// CanonicalHashtags 活动固定标签
var CanonicalHashtags = []string{
	"#辞海",
	"#2025上海书展",
	"#书香中国上海周",
	"#辞海星空大章",
	"#云端辞海·知识随行",
}

// HashtagPolicy 标签兜底策略
type HashtagPolicy string

const (
	// HashtagPolicyUnion 模型标签在前，补齐缺失的固定标签
	HashtagPolicyUnion HashtagPolicy = "union"
	// HashtagPolicyReplace 只有完全提取不到标签时才整体替换为固定标签
	HashtagPolicyReplace HashtagPolicy = "replace"
)

var (
	titlePattern    = regexp.MustCompile(`\*\*标题：\*\*\s*([^\n]+)`)
	mainTextPattern = regexp.MustCompile(`\*\*正文：\*\*\s*([\s\S]*?)\*\*标签：\*\*`)
	tagsLinePattern = regexp.MustCompile(`\*\*标签：\*\*\s*([^\n]+)`)
	hashtagPattern  = regexp.MustCompile(`#[^\s#]+`)
)

// ==================== 内容拼接 ====================

// FlattenContent 把 choices[0].message.content 还原成纯文本
// 字符串原样返回；分段数组按顺序取各段 text，非文本段记为空串，用换行连接
func FlattenContent(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}

	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		texts = append(texts, partText(p))
	}
	return strings.Join(texts, "\n")
}

func partText(p json.RawMessage) string {
	var s string
	if err := json.Unmarshal(p, &s); err == nil {
		return s
	}
	var obj struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(p, &obj); err == nil && obj.Text != nil {
		return *obj.Text
	}
	return ""
}

// ==================== 字段提取 ====================

// ContentExtractor 按标记从模型输出里解析三个字段
// 缺失的字段各自回落到默认值，解析失败从不报错
type ContentExtractor struct {
	policy HashtagPolicy
}

// NewContentExtractor 创建解析器，未知策略按 union 处理
func NewContentExtractor(policy HashtagPolicy) *ContentExtractor {
	if policy != HashtagPolicyReplace {
		policy = HashtagPolicyUnion
	}
	return &ContentExtractor{policy: policy}
}

// Extract 解析模型输出
func (e *ContentExtractor) Extract(text string) model.GeneratedContent {
	content := model.GeneratedContent{
		Title:    DefaultTitle,
		MainText: DefaultMainText,
	}

	if m := titlePattern.FindStringSubmatch(text); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			content.Title = t
		}
	}
	if m := mainTextPattern.FindStringSubmatch(text); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			content.MainText = t
		}
	}

	var tags []string
	if m := tagsLinePattern.FindStringSubmatch(text); m != nil {
		tags = hashtagPattern.FindAllString(m[1], -1)
	}
	content.Hashtags = e.applyPolicy(tags)

	return content
}

func (e *ContentExtractor) applyPolicy(tags []string) []string {
	if e.policy == HashtagPolicyReplace {
		if len(tags) == 0 {
			return append([]string(nil), CanonicalHashtags...)
		}
		return dedupe(tags)
	}

	return dedupe(append(append([]string(nil), tags...), CanonicalHashtags...))
}

func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
