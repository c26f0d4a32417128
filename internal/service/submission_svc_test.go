package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"cihai_ugc_202508/internal/model"
	"cihai_ugc_202508/internal/repository"
)

func newTestSubmissionService(t *testing.T) *SubmissionService {
	t.Helper()
	repo := repository.NewSubmissionRepository(setupServiceTestDB(t))
	return NewSubmissionService(repo, nil)
}

func TestIsAllowedPostLink(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"https://www.xiaohongshu.com/explore/123", true},
		{"http://xhslink.com/a/B1c2", true},
		{"https://XHSLINK.com/x", true},
		{"https://xiaohongshu.com", true},
		{"https://fakexiaohongshu.com/x", false},
		{"https://xiaohongshu.com.evil.com/x", false},
		{"https://weibo.com/x", false},
		{"xiaohongshu.com/explore/1", false},
		{"javascript:alert(1)", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAllowedPostLink(tt.link); got != tt.want {
			t.Errorf("IsAllowedPostLink(%q) = %v, want %v", tt.link, got, tt.want)
		}
	}
}

func TestSubmissionService_Submit(t *testing.T) {
	svc := newTestSubmissionService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitInput{PostLink: "  "})
	if !errors.Is(err, ErrPostLinkRequired) {
		t.Fatalf("err = %v, want ErrPostLinkRequired", err)
	}

	_, err = svc.Submit(ctx, SubmitInput{PostLink: "https://douyin.com/video/1"})
	if !errors.Is(err, ErrPostLinkDomain) {
		t.Fatalf("err = %v, want ErrPostLinkDomain", err)
	}

	sub, err := svc.Submit(ctx, SubmitInput{
		PostLink:         " https://www.xiaohongshu.com/explore/abc ",
		GeneratedContent: model.GeneratedContent{Title: "T", MainText: "M", Hashtags: []string{"#辞海"}},
		IP:               "10.0.0.1",
		UserAgent:        "Mozilla/5.0",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.ID == "" || sub.Status != model.SubmissionStatusPending {
		t.Errorf("新提交应有 ID 且为 pending: %+v", sub)
	}
	if sub.PostLink != "https://www.xiaohongshu.com/explore/abc" {
		t.Errorf("链接未去空格: %q", sub.PostLink)
	}

	got, err := svc.Get(ctx, sub.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.IP != "10.0.0.1" || got.GeneratedContent.Data().Title != "T" {
		t.Errorf("读回的记录不一致: %+v", got)
	}
}

func TestSubmissionService_Submit_Lengths(t *testing.T) {
	svc := newTestSubmissionService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitInput{
		PostLink: "https://xhslink.com/a",
		Email:    strings.Repeat("邮", 256),
	})
	var tooLong *FieldTooLongError
	if !errors.As(err, &tooLong) || tooLong.Max != 255 {
		t.Fatalf("err = %v, want FieldTooLongError(255)", err)
	}

	sub, err := svc.Submit(ctx, SubmitInput{
		PostLink:  "https://xhslink.com/a",
		IP:        strings.Repeat("1", 100),
		UserAgent: strings.Repeat("浏", 600),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(sub.IP) != 64 {
		t.Errorf("IP 长度 = %d, want 64", len(sub.IP))
	}
	if n := utf8.RuneCountInString(sub.UserAgent); n != 512 {
		t.Errorf("UserAgent 字符数 = %d, want 512", n)
	}
}

func TestSubmissionService_UpdateStatus(t *testing.T) {
	svc := newTestSubmissionService(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, SubmitInput{PostLink: "https://xhslink.com/1"})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, sub.ID, "published"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}

	n, err := svc.UpdateStatus(ctx, sub.ID, model.SubmissionStatusApproved)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if n != 1 {
		t.Errorf("updatedCount = %d, want 1", n)
	}

	if _, err := svc.UpdateStatus(ctx, "missing", model.SubmissionStatusApproved); !errors.Is(err, repository.ErrSubmissionNotFound) {
		t.Errorf("err = %v, want ErrSubmissionNotFound", err)
	}

	if _, err := svc.List(ctx, "bogus"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("非法筛选状态应报错: %v", err)
	}
}

func TestSubmissionService_ExportCSV(t *testing.T) {
	svc := newTestSubmissionService(t)
	ctx := context.Background()

	base := time.Date(2025, 8, 20, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	longText := strings.Repeat("辞", 150)
	if _, err := svc.Submit(ctx, SubmitInput{
		PostLink:         "https://xhslink.com/a",
		Name:             "张三",
		Email:            "z@example.com",
		GeneratedContent: model.GeneratedContent{Title: "标题, 带逗号", MainText: longText},
	}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(ctx, &buf, ""); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("解析 CSV 失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("行数 = %d, want 2", len(rows))
	}
	if strings.Join(rows[0], ",") != "Name,Email,Post Link,Status,Timestamp,Title,Main Text" {
		t.Errorf("表头不正确: %v", rows[0])
	}

	row := rows[1]
	if row[0] != "张三" || row[3] != "pending" || row[4] != "2025-08-20T08:00:00Z" {
		t.Errorf("数据行不正确: %v", row)
	}
	if row[5] != "标题, 带逗号" {
		t.Errorf("标题应原样保留: %q", row[5])
	}
	if len([]rune(row[6])) != 100 {
		t.Errorf("正文应截断为 100 字, 实际 %d", len([]rune(row[6])))
	}
}
