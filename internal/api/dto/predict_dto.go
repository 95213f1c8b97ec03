package dto

// PredictRequestDTO 压力预测输入特征
type PredictRequestDTO struct {
	MoodScore float64 `json:"mood_score" binding:"required" validate:"min=1,max=5"`
	ChatCount int     `json:"chat_count" validate:"min=0,max=999"`
	QuizScore float64 `json:"quiz_score" validate:"min=0,max=60"`
}

// PredictionDTO 压力预测结果
type PredictionDTO struct {
	StressLevel string  `json:"stress_level"`
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
	Source      string  `json:"source"`
}
