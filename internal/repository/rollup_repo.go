package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stressease/internal/model"
)

type RollupRepo interface {
	CreateRollup(ctx context.Context, rollup *model.WeeklyRollup) error
	ExistsByCycle(ctx context.Context, userID uint64, cycle int) (bool, error)
	GetByUser(ctx context.Context, userID uint64) ([]*model.WeeklyRollup, error)
}

type RollupRepoImpl struct {
	db *gorm.DB
}

func NewRollupRepo(db *gorm.DB) RollupRepo {
	return &RollupRepoImpl{db: db}
}

// CreateRollup 写入周期汇总；同一周期重复写入被唯一索引挡掉，静默忽略
func (s *RollupRepoImpl) CreateRollup(ctx context.Context, rollup *model.WeeklyRollup) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rollup).Error
}

func (s *RollupRepoImpl) ExistsByCycle(ctx context.Context, userID uint64, cycle int) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.WeeklyRollup{}).
		Where("user_id = ? AND cycle_number = ?", userID, cycle).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (s *RollupRepoImpl) GetByUser(ctx context.Context, userID uint64) ([]*model.WeeklyRollup, error) {
	rollups := make([]*model.WeeklyRollup, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("cycle_number DESC").
		Find(&rollups)
	if result.Error != nil {
		return nil, result.Error
	}
	return rollups, nil
}
