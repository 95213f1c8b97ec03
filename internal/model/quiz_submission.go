package model

import "time"

// QuizSubmission 每日 12 题问卷的一次提交。
// user_id + quiz_date 唯一，保证一人一天只有一份问卷；重复提交走覆盖更新。
// SubmissionIndex 为按用户单调递增的提交序号，只增不清零。
type QuizSubmission struct {
	ID              uint64    `gorm:"primaryKey"`
	UserID          uint64    `gorm:"not null;uniqueIndex:idx_user_quiz_date"`
	QuizDate        string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_quiz_date"`
	DayKey          string    `gorm:"type:varchar(10);not null;default:'day_1'"`
	SubmissionIndex int       `gorm:"not null;index:idx_user_submission"`
	CoreMood        int       `gorm:"not null"`
	CoreEnergy      int       `gorm:"not null"`
	CoreSleep       int       `gorm:"not null"`
	CoreStress      int       `gorm:"not null"`
	RotatingDomain  string    `gorm:"type:varchar(50);not null"`
	RotatingScores  string    `gorm:"type:json;not null"`
	DassDepression  int       `gorm:"not null"`
	DassAnxiety     int       `gorm:"not null"`
	DassStress      int       `gorm:"not null"`
	CoreAvg         float64   `gorm:"not null"`
	RotatingAvg     float64   `gorm:"not null"`
	HighPointQID    string    `gorm:"type:varchar(5)"`
	HighPointScore  int       `gorm:""`
	LowPointQID     string    `gorm:"type:varchar(5)"`
	LowPointScore   int       `gorm:""`
	AdditionalNotes string    `gorm:"type:text"`
	SubmittedAt     time.Time `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}
