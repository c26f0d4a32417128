package service

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func TestDecodeImage(t *testing.T) {
	pngB64 := base64.StdEncoding.EncodeToString(pngBytes)
	jpegB64 := base64.StdEncoding.EncodeToString(jpegBytes)

	tests := []struct {
		name     string
		raw      string
		mime     string
		wantMime string
		wantErr  error
	}{
		{"裸 base64 自动识别", pngB64, "", "image/png", nil},
		{"声明的类型优先", jpegB64, "image/webp", "image/webp", nil},
		{"data URL", "data:image/png;base64," + pngB64, "", "image/png", nil},
		{"带换行空格", pngB64[:8] + "\n " + pngB64[8:], "", "image/png", nil},
		{"非图片声明被忽略", jpegB64, "text/plain", "image/jpeg", nil},
		{"文本内容", base64.StdEncoding.EncodeToString([]byte("hello, this is plain text")), "", "", ErrInvalidImage},
		{"坏的 data URL", "data:image/png;base64", "", "", ErrInvalidImage},
		{"非法 base64", "%%%%", "", "", ErrInvalidImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeImage(tt.raw, tt.mime)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeImage() error = %v", err)
			}
			if img.MimeType != tt.wantMime {
				t.Errorf("MimeType = %s, want %s", img.MimeType, tt.wantMime)
			}
		})
	}
}

func TestDecodeImage_Empty(t *testing.T) {
	img, err := DecodeImage("   ", "image/png")
	if err != nil || img != nil {
		t.Fatalf("空图片应返回 nil, nil，实际 %v, %v", img, err)
	}
}

func TestDecodeImage_TooLarge(t *testing.T) {
	raw := strings.Repeat("A", MaxImageBase64Len+4)
	if _, err := DecodeImage(raw, ""); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("err = %v, want ErrImageTooLarge", err)
	}
}

func TestImageData_DataURLAndExtension(t *testing.T) {
	img, err := DecodeImage(base64.StdEncoding.EncodeToString(pngBytes), "")
	if err != nil {
		t.Fatalf("DecodeImage() error = %v", err)
	}

	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	if img.DataURL() != want {
		t.Errorf("DataURL() = %s", img.DataURL())
	}
	if img.Extension() != ".png" {
		t.Errorf("Extension() = %s, want .png", img.Extension())
	}
}
