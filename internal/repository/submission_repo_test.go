package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"cihai_ugc_202508/internal/model"
)

func newSubmission(id, status string, ts time.Time) *model.Submission {
	return &model.Submission{
		ID:       id,
		PostLink: "https://www.xiaohongshu.com/explore/" + id,
		GeneratedContent: datatypes.NewJSONType(model.GeneratedContent{
			Title:    "标题 " + id,
			MainText: "正文",
			Hashtags: []string{"#辞海"},
		}),
		Status:    status,
		IP:        "127.0.0.1",
		UserAgent: "go-test",
		Timestamp: ts,
	}
}

func TestSubmissionRepo_CreateAndGet(t *testing.T) {
	repo := NewSubmissionRepository(setupTestDB(t))
	ctx := context.Background()

	s := newSubmission("a1", model.SubmissionStatusPending, time.Now())
	require.NoError(t, repo.Create(ctx, s))

	found, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, s.PostLink, found.PostLink)
	assert.Equal(t, "标题 a1", found.GeneratedContent.Data().Title)
	assert.Equal(t, []string{"#辞海"}, found.GeneratedContent.Data().Hashtags)
	assert.Nil(t, found.UpdatedAt)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, ErrSubmissionNotFound))
}

func TestSubmissionRepo_ListNewestFirst(t *testing.T) {
	repo := NewSubmissionRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newSubmission("old", model.SubmissionStatusApproved, base)))
	require.NoError(t, repo.Create(ctx, newSubmission("new", model.SubmissionStatusPending, base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newSubmission("mid", model.SubmissionStatusPending, base.Add(time.Hour))))

	list, err := repo.List(ctx, SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{list[0].ID, list[1].ID, list[2].ID})

	pending, err := repo.List(ctx, SubmissionFilter{Status: model.SubmissionStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestSubmissionRepo_UpdateStatus(t *testing.T) {
	repo := NewSubmissionRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSubmission("s1", model.SubmissionStatusPending, time.Now())))

	at := time.Now()
	n, err := repo.UpdateStatus(ctx, "s1", model.SubmissionStatusApproved, at)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	found, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusApproved, found.Status)
	require.NotNil(t, found.UpdatedAt)

	_, err = repo.UpdateStatus(ctx, "nope", model.SubmissionStatusApproved, at)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}
