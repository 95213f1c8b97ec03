package model

import "time"

// WeeklyRollup 每满 7 次问卷提交生成一次的 DASS 周期汇总，生成后不再修改。
// AvgXxx 为该周期内 1-5 原始分的均值；XxxTotal 为 DASS-21 刻度的加权总分
// （逐题映射 {1:0, 2:1, 3:1, 4:2, 5:3} 求和后 ×2）。
// 触发时可取到的历史不足 7 份时照常生成，Incomplete 置真。
type WeeklyRollup struct {
	ID              uint64  `gorm:"primaryKey"`
	UserID          uint64  `gorm:"not null;uniqueIndex:idx_user_cycle"`
	CycleNumber     int     `gorm:"not null;uniqueIndex:idx_user_cycle"`
	AvgDepression   float64 `gorm:"not null"`
	AvgAnxiety      float64 `gorm:"not null"`
	AvgStress       float64 `gorm:"not null"`
	DepressionTotal int     `gorm:"not null"`
	AnxietyTotal    int     `gorm:"not null"`
	StressTotal     int     `gorm:"not null"`
	SampleCount     int     `gorm:"not null"`
	Incomplete      bool    `gorm:"type:tinyint(1);default:0"`
	WeekStart       string  `gorm:"type:varchar(10)"`
	WeekEnd         string  `gorm:"type:varchar(10)"`
	GeneratedAt     time.Time
}

func (WeeklyRollup) TableName() string {
	return "weekly_rollups"
}
