package dto

// LeaderboardEntryDTO 排行榜单条记录
type LeaderboardEntryDTO struct {
	Rank         int     `json:"rank"`
	UserID       uint64  `json:"user_id"`
	Username     string  `json:"username"`
	QuizScore    int     `json:"quiz_score"`
	EmotionScore float64 `json:"emotion_score"`
	Composite    float64 `json:"composite"`
	TotalLogs    int     `json:"total_logs"`
}

// LeaderboardDTO 排行榜
type LeaderboardDTO struct {
	Entries     []LeaderboardEntryDTO `json:"entries"`
	GeneratedAt int64                 `json:"generated_at"`
}
