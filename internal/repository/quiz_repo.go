package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stressease/internal/model"
)

type QuizRepo interface {
	GetByUserAndDate(ctx context.Context, userID uint64, date string) (*model.QuizSubmission, error)
	GetLastN(ctx context.Context, userID uint64, n int) ([]*model.QuizSubmission, error)
	GetByIndexRange(ctx context.Context, userID uint64, from, to int) ([]*model.QuizSubmission, error)
	CountByUser(ctx context.Context, userID uint64) (int64, error)
	CreateSubmission(ctx context.Context, sub *model.QuizSubmission) error
	UpdateSubmission(ctx context.Context, sub *model.QuizSubmission) error
}

type QuizRepoImpl struct {
	db *gorm.DB
}

func NewQuizRepo(db *gorm.DB) QuizRepo {
	return &QuizRepoImpl{db: db}
}

func (s *QuizRepoImpl) GetByUserAndDate(ctx context.Context, userID uint64, date string) (*model.QuizSubmission, error) {
	sub := &model.QuizSubmission{}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND quiz_date = ?", userID, date).
		First(sub)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return sub, nil
}

// GetLastN 按提交序号倒序取最近 n 份问卷
func (s *QuizRepoImpl) GetLastN(ctx context.Context, userID uint64, n int) ([]*model.QuizSubmission, error) {
	subs := make([]*model.QuizSubmission, 0, n)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submission_index DESC").
		Limit(n).
		Find(&subs)
	if result.Error != nil {
		return nil, result.Error
	}
	return subs, nil
}

// GetByIndexRange 按提交序号闭区间取一个周期内的问卷，升序返回
func (s *QuizRepoImpl) GetByIndexRange(ctx context.Context, userID uint64, from, to int) ([]*model.QuizSubmission, error) {
	subs := make([]*model.QuizSubmission, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND submission_index BETWEEN ? AND ?", userID, from, to).
		Order("submission_index ASC").
		Find(&subs)
	if result.Error != nil {
		return nil, result.Error
	}
	return subs, nil
}

func (s *QuizRepoImpl) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.QuizSubmission{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *QuizRepoImpl) CreateSubmission(ctx context.Context, sub *model.QuizSubmission) error {
	return s.db.WithContext(ctx).Create(sub).Error
}

func (s *QuizRepoImpl) UpdateSubmission(ctx context.Context, sub *model.QuizSubmission) error {
	return s.db.WithContext(ctx).Save(sub).Error
}
