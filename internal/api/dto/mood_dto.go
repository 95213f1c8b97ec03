package dto

// LogMoodDTO 记录一条情绪
type LogMoodDTO struct {
	Mood      string `json:"mood" binding:"required" validate:"min=1,max=64"`
	Timestamp *int64 `json:"timestamp,omitempty"`
}

// MoodEventDTO 合并归一化后的单条情绪事件
type MoodEventDTO struct {
	Mood      string `json:"mood"`
	RawLabel  string `json:"raw_label,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Source    string `json:"source,omitempty"`
}

// MoodHistoryDTO 情绪历史
type MoodHistoryDTO struct {
	Total  int            `json:"total"`
	Events []MoodEventDTO `json:"events"`
}
