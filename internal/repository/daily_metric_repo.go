package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stressease/internal/model"
)

type DailyMetricRepo interface {
	IncrMoodCount(ctx context.Context, userID uint64, date time.Time, delta int) error
	IncrChatCount(ctx context.Context, userID uint64, date time.Time, delta int) error
	GetRecentBuckets(ctx context.Context, userID uint64, days int) ([]*model.UserDailyMetric, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type DailyMetricRepoImpl struct {
	db *gorm.DB
}

func NewDailyMetricRepo(db *gorm.DB) DailyMetricRepo {
	return &DailyMetricRepoImpl{db: db}
}

func (s *DailyMetricRepoImpl) IncrMoodCount(ctx context.Context, userID uint64, date time.Time, delta int) error {
	return s.incrColumn(ctx, userID, date, "mood_count", delta)
}

func (s *DailyMetricRepoImpl) IncrChatCount(ctx context.Context, userID uint64, date time.Time, delta int) error {
	return s.incrColumn(ctx, userID, date, "chat_count", delta)
}

// incrColumn 按 user_id + metric_date 维度对指定计数列做 upsert 自增
func (s *DailyMetricRepoImpl) incrColumn(ctx context.Context, userID uint64, date time.Time, column string, delta int) error {
	metric := &model.UserDailyMetric{
		UserID:     userID,
		MetricDate: midnight(date),
	}
	switch column {
	case "mood_count":
		metric.MoodCount = delta
	case "chat_count":
		metric.ChatCount = delta
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "metric_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr(column+" + ?", delta),
		}),
	}).Create(metric).Error
}

func (s *DailyMetricRepoImpl) GetRecentBuckets(ctx context.Context, userID uint64, days int) ([]*model.UserDailyMetric, error) {
	metrics := make([]*model.UserDailyMetric, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("metric_date > ?", midnight(time.Now()).AddDate(0, 0, -days)).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}

// DeleteOlderThan 清理过期的计数桶，返回删除行数
func (s *DailyMetricRepoImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("metric_date < ?", midnight(cutoff)).
		Delete(&model.UserDailyMetric{})
	return result.RowsAffected, result.Error
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
