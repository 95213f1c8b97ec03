package model

import "time"

// UserDailyMetric 按日预聚合的活动计数桶，滚动窗口统计的快路径数据源。
// 某天没有记录就没有对应行，读取侧按 0 处理。
type UserDailyMetric struct {
	ID         uint64    `gorm:"primaryKey"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_user_metric_date"`
	MetricDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_metric_date"`
	MoodCount  int       `gorm:"not null;default:0"`
	ChatCount  int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (UserDailyMetric) TableName() string {
	return "user_daily_metrics"
}
