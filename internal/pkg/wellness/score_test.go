package wellness

import (
	"math"
	"testing"
)

func TestMoodScore(t *testing.T) {
	cases := []struct {
		mood string
		want float64
	}{
		{MoodHappy, 5.0},
		{MoodCalm, 4.5},
		{MoodContent, 4.0},
		{MoodNeutral, 3.0},
		{MoodSad, 2.0},
		{MoodAngry, 1.5},
		{MoodAnxious, 1.5},
		{MoodStressed, 1.0},
		{MoodUnknown, 3.0},
		{"Melancholic", 3.0},
	}

	for _, tc := range cases {
		if got := MoodScore(tc.mood); got != tc.want {
			t.Errorf("MoodScore(%q) = %v, want %v", tc.mood, got, tc.want)
		}
	}
}

func TestAverageMoodScore(t *testing.T) {
	events := []MoodEvent{
		{Mood: MoodHappy},    // 5.0
		{Mood: MoodStressed}, // 1.0
	}
	if got := AverageMoodScore(events); got != 3.0 {
		t.Errorf("AverageMoodScore = %v, want 3.0", got)
	}

	// 无历史时回退中性值
	if got := AverageMoodScore(nil); got != DefaultMoodScore {
		t.Errorf("AverageMoodScore(nil) = %v, want %v", got, DefaultMoodScore)
	}
}

func TestCompositeScore(t *testing.T) {
	cases := []struct {
		name    string
		avgQuiz float64
		avgMood float64
		want    float64
	}{
		{"perfect", 10, 5, 100},
		{"floor", 0.0001, 0.0001, 0.65*0.001 + 0.35*0.002},
		{"midline", 5, 2.5, 0.65*50 + 0.35*50},
		{"quiz missing uses neutral", 0, 5, 0.65*60 + 0.35*100},
		{"mood missing uses neutral", 10, 0, 0.65*100 + 0.35*60},
		{"both missing", 0, 0, 0.65*60 + 0.35*60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CompositeScore(tc.avgQuiz, tc.avgMood)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("CompositeScore(%v, %v) = %v, want %v", tc.avgQuiz, tc.avgMood, got, tc.want)
			}
		})
	}
}

// 任意输入下结果必须落在 [0, 100] 且不为 NaN
func TestCompositeScoreBounds(t *testing.T) {
	inputs := []struct{ quiz, mood float64 }{
		{-5, -5},
		{1000, 1000},
		{math.NaN(), 3},
		{3, math.NaN()},
		{math.Inf(1), math.Inf(-1)},
		{0, 0},
	}

	for _, in := range inputs {
		got := CompositeScore(in.quiz, in.mood)
		if math.IsNaN(got) {
			t.Errorf("CompositeScore(%v, %v) is NaN", in.quiz, in.mood)
		}
		if got < 0 || got > 100 {
			t.Errorf("CompositeScore(%v, %v) = %v, out of [0, 100]", in.quiz, in.mood, got)
		}
	}
}
