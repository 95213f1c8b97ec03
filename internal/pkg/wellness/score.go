package wellness

import "math"

// 综合得分的权重：问卷 0.65、心情 0.35
const (
	quizWeight = 0.65
	moodWeight = 0.35
)

// 输入缺失时的中性兜底值（内部 0-5 刻度）
const (
	DefaultQuizAverage = 3.0
	DefaultMoodScore   = 3.0
)

// moodScoreTable 规范心情到 0-5 分值的固定映射
var moodScoreTable = map[string]float64{
	MoodHappy:    5.0,
	MoodCalm:     4.5,
	MoodContent:  4.0,
	MoodNeutral:  3.0,
	MoodSad:      2.0,
	MoodAngry:    1.5,
	MoodAnxious:  1.5,
	MoodStressed: 1.0,
}

// MoodScore 单个心情标签的分值，词表外的标签按中性处理
func MoodScore(mood string) float64 {
	if score, ok := moodScoreTable[mood]; ok {
		return score
	}
	return DefaultMoodScore
}

// AverageMoodScore 事件序列的平均心情分（0-5），无历史时返回中性兜底值
func AverageMoodScore(events []MoodEvent) float64 {
	if len(events) == 0 {
		return DefaultMoodScore
	}
	sum := 0.0
	for _, ev := range events {
		sum += MoodScore(ev.Mood)
	}
	return sum / float64(len(events))
}

// CompositeScore 排行榜综合得分。
// avgQuiz 为 0-10 刻度的问卷均分，换算到 0-100 为 ×10；
// avgMood 为 0-5 刻度的心情均分，换算到 0-100 为 ×20。
// 预测通道消费的 avgMoodScore 保持 0-5 原刻度，不走这里的换算，
// 两个消费方的刻度是各自独立的约定，不要合并。
// 输入缺失（<=0）或非有限值时代入中性兜底，结果恒落在 [0, 100]。
func CompositeScore(avgQuiz, avgMood float64) float64 {
	if avgQuiz <= 0 || math.IsNaN(avgQuiz) || math.IsInf(avgQuiz, 0) {
		avgQuiz = DefaultQuizAverage * 2 // 0-5 内部刻度换算到 0-10
	}
	if avgMood <= 0 || math.IsNaN(avgMood) || math.IsInf(avgMood, 0) {
		avgMood = DefaultMoodScore
	}

	quizComponent := clamp(avgQuiz, 0, 10) * 10
	moodComponent := clamp(avgMood, 0, 5) * 20

	return clamp(quizWeight*quizComponent+moodWeight*moodComponent, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
