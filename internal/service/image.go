package service

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBase64Len base64 字符串长度上限，与前端限制一致
const MaxImageBase64Len = 20_000_000

const defaultImageMime = "image/jpeg"

var (
	ErrInvalidImage  = errors.New("图片数据无效")
	ErrImageTooLarge = errors.New("图片过大")
)

// ImageData 解码后的图片
type ImageData struct {
	Bytes    []byte
	MimeType string
}

// DataURL 转成发给模型的 data URL
func (img *ImageData) DataURL() string {
	return "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Bytes)
}

// Extension 文件扩展名，带点
func (img *ImageData) Extension() string {
	if ext := mimetype.Lookup(img.MimeType); ext != nil && ext.Extension() != "" {
		return ext.Extension()
	}
	return ".jpg"
}

// DecodeImage 解析请求里的图片
// 支持裸 base64 和 data URL；raw 为空返回 nil, nil，走纯文本路径
func DecodeImage(raw, declaredMime string) (*ImageData, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var urlMime string
	if strings.HasPrefix(raw, "data:") {
		comma := strings.IndexByte(raw, ',')
		if comma < 0 {
			return nil, ErrInvalidImage
		}
		header := raw[len("data:"):comma]
		urlMime, _, _ = strings.Cut(header, ";")
		raw = raw[comma+1:]
	}

	cleaned := cleanBase64(raw)
	if len(cleaned) > MaxImageBase64Len {
		return nil, ErrImageTooLarge
	}

	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(cleaned, "="))
	if err != nil || len(data) == 0 {
		return nil, ErrInvalidImage
	}

	sniffed := mimetype.Detect(data)
	if !strings.HasPrefix(sniffed.String(), "image/") && !sniffed.Is("application/octet-stream") {
		return nil, ErrInvalidImage
	}

	img := &ImageData{Bytes: data, MimeType: defaultImageMime}
	for _, m := range []string{declaredMime, urlMime, sniffed.String()} {
		m = strings.ToLower(strings.TrimSpace(m))
		if strings.HasPrefix(m, "image/") {
			img.MimeType = m
			break
		}
	}
	return img, nil
}

// cleanBase64 去掉换行、空格等非 base64 字符
func cleanBase64(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '/', r == '=':
			return r
		}
		return -1
	}, s)
}
