package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cihai_ugc_202508/internal/model"
)

// ErrSubmissionNotFound 提交记录不存在
var ErrSubmissionNotFound = errors.New("提交记录未找到")

// SubmissionFilter 列表筛选条件
type SubmissionFilter struct {
	Status string
}

// SubmissionRepository 提交记录仓储接口
// SQL 和 MongoDB 两种实现行为一致：列表按时间倒序，找不到返回 ErrSubmissionNotFound
type SubmissionRepository interface {
	Create(ctx context.Context, s *model.Submission) error
	List(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error)
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建基于 GORM 的提交记录仓储
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, s *model.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *submissionRepo) List(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error) {
	var list []model.Submission

	query := r.db.WithContext(ctx).Model(&model.Submission{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	err := query.Order("timestamp DESC").Find(&list).Error
	return list, err
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var s model.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": at})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrSubmissionNotFound
	}
	return res.RowsAffected, nil
}

func (r *submissionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Submission{}).Count(&n).Error
	return n, err
}
