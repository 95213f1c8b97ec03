package dto

// SummaryDTO 用户的情绪与健康聚合视图
type SummaryDTO struct {
	UserID         uint64         `json:"user_id"`
	TotalMoodCount int            `json:"total_mood_count"`
	MoodCounts     map[string]int `json:"mood_counts"`
	MostCommonMood string         `json:"most_common_mood"`
	OverallStatus  string         `json:"overall_status"`
	AvgQuizScore   float64        `json:"avg_quiz_score"`
	AvgMoodScore   float64        `json:"avg_mood_score"`
	MoodCount7d    int            `json:"mood_count_7d"`
	ChatCount7d    int            `json:"chat_count_7d"`
	LastUpdated    int64          `json:"last_updated"`
}
