package model

import "time"

// QuizCycleState 每个用户的问卷周期计数器。
// 计数落库而不是放内存，进程重启后从这里恢复，不会归零。
type QuizCycleState struct {
	UserID          uint64 `gorm:"primaryKey;autoIncrement:false"`
	SubmissionCount int    `gorm:"not null;default:0"`
	UpdatedAt       time.Time
}

func (QuizCycleState) TableName() string {
	return "quiz_cycle_states"
}
