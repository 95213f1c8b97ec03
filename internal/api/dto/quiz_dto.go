package dto

// CoreScoresDTO 每日问卷的四个固定核心题目
type CoreScoresDTO struct {
	Mood   int `json:"mood" binding:"required" validate:"min=1,max=5"`
	Energy int `json:"energy" binding:"required" validate:"min=1,max=5"`
	Sleep  int `json:"sleep" binding:"required" validate:"min=1,max=5"`
	Stress int `json:"stress" binding:"required" validate:"min=1,max=5"`
}

// RotatingScoresDTO 当日轮换领域的五个题目
type RotatingScoresDTO struct {
	DomainName string `json:"domain_name" binding:"required"`
	Scores     []int  `json:"scores" binding:"required" validate:"len=5,dive,min=1,max=5"`
}

// DailyQuizDTO 每日问卷提交
type DailyQuizDTO struct {
	Date            string            `json:"date" binding:"required" validate:"datetime=2006-01-02"`
	CoreScores      CoreScoresDTO     `json:"core_scores" binding:"required"`
	RotatingScores  RotatingScoresDTO `json:"rotating_scores" binding:"required"`
	DassToday       []int             `json:"dass_today" binding:"required" validate:"len=3,dive,min=1,max=5"`
	DayKey          *string           `json:"day_key,omitempty"`
	AdditionalNotes *string           `json:"additional_notes,omitempty"`
}

// QuestionPointDTO 问卷中的单个题目及其分数
type QuestionPointDTO struct {
	QuestionID string `json:"question_id"`
	Score      int    `json:"score"`
}

// QuizResultDTO 提交后的即时统计
type QuizResultDTO struct {
	SubmissionIndex int              `json:"submission_index"`
	CoreAvg         float64          `json:"core_avg"`
	RotatingAvg     float64          `json:"rotating_avg"`
	HighPoint       QuestionPointDTO `json:"high_point"`
	LowPoint        QuestionPointDTO `json:"low_point"`
	RollupGenerated bool             `json:"rollup_generated"`
	CycleNumber     int              `json:"cycle_number,omitempty"`
}

// RollupDTO 每七次提交生成的周期汇总
type RollupDTO struct {
	CycleNumber     int     `json:"cycle_number"`
	AvgDepression   float64 `json:"avg_depression"`
	AvgAnxiety      float64 `json:"avg_anxiety"`
	AvgStress       float64 `json:"avg_stress"`
	DepressionTotal int     `json:"depression_total"`
	AnxietyTotal    int     `json:"anxiety_total"`
	StressTotal     int     `json:"stress_total"`
	SampleCount     int     `json:"sample_count"`
	Incomplete      bool    `json:"incomplete"`
	WeekStart       string  `json:"week_start"`
	WeekEnd         string  `json:"week_end"`
	GeneratedAt     string  `json:"generated_at"`
}
