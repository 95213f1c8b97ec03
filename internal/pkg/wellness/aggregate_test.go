package wellness

import (
	"testing"
	"time"
)

func dayMillis(now time.Time, daysAgo int, hour int) int64 {
	day := now.AddDate(0, 0, -daysAgo)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location()).UnixMilli()
}

func TestCountWindowFromBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	buckets := map[string]int{
		"2026-03-15": 2,
		"2026-03-14": 1,
		"2026-03-09": 4,
		"2026-03-08": 9, // 窗口外
	}

	got := CountWindowFromBuckets(buckets, now, 7)
	if got != 7 {
		t.Errorf("CountWindowFromBuckets = %d, want 7", got)
	}
}

func TestCountWindowFromBucketsMissingDays(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	if got := CountWindowFromBuckets(map[string]int{}, now, 7); got != 0 {
		t.Errorf("empty buckets = %d, want 0", got)
	}
	// days <= 0 走默认窗口
	buckets := map[string]int{"2026-03-15": 3}
	if got := CountWindowFromBuckets(buckets, now, 0); got != 3 {
		t.Errorf("default window = %d, want 3", got)
	}
}

func TestCountWindowFromEvents(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	events := []MoodEvent{
		{Mood: MoodHappy, Millis: dayMillis(now, 0, 9)},
		{Mood: MoodSad, Millis: dayMillis(now, 3, 9)},
		{Mood: MoodCalm, Millis: dayMillis(now, 6, 9)},
		{Mood: MoodAngry, Millis: dayMillis(now, 10, 9)}, // 窗口外
	}

	got := CountWindowFromEvents(events, now, 7)
	if got != 3 {
		t.Errorf("CountWindowFromEvents = %d, want 3", got)
	}
}

// 同一份数据，桶路径与全扫描路径结果必须一致
func TestWindowPathEquivalence(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 15, 23, 0, 0, 0, loc)

	events := []MoodEvent{
		{Mood: MoodHappy, Millis: dayMillis(now, 0, 8)},
		{Mood: MoodHappy, Millis: dayMillis(now, 0, 20)},
		{Mood: MoodSad, Millis: dayMillis(now, 1, 10)},
		{Mood: MoodCalm, Millis: dayMillis(now, 4, 15)},
		{Mood: MoodAngry, Millis: dayMillis(now, 6, 6)},
	}

	buckets := BucketsFromEvents(events, loc)

	for _, days := range []int{1, 3, 7} {
		fast := CountWindowFromBuckets(buckets, now, days)
		slow := CountWindowFromEvents(events, now, days)
		if fast != slow {
			t.Errorf("days=%d: fast path %d != slow path %d", days, fast, slow)
		}
	}
}

func TestTallyMoods(t *testing.T) {
	events := []MoodEvent{
		{Mood: MoodHappy, Millis: 1000},
		{Mood: MoodSad, Millis: 2000},
		{Mood: MoodHappy, Millis: 3000},
		{Mood: MoodCalm, Millis: 4000},
	}

	tally := TallyMoods(events)
	if tally.Total != 4 {
		t.Errorf("Total = %d, want 4", tally.Total)
	}
	if tally.Counts[MoodHappy] != 2 || tally.Counts[MoodSad] != 1 || tally.Counts[MoodCalm] != 1 {
		t.Errorf("Counts = %v", tally.Counts)
	}
	if tally.MostCommon != MoodHappy {
		t.Errorf("MostCommon = %q, want Happy", tally.MostCommon)
	}
	if tally.Status != StatusPositive {
		t.Errorf("Status = %q, want Positive", tally.Status)
	}
}

// 并列时最早出现的标签胜出，结果与事件顺序一致且确定
func TestTallyMoodsTieDeterministic(t *testing.T) {
	events := []MoodEvent{
		{Mood: MoodSad, Millis: 1000},
		{Mood: MoodHappy, Millis: 2000},
		{Mood: MoodHappy, Millis: 3000},
		{Mood: MoodSad, Millis: 4000},
	}

	for i := 0; i < 20; i++ {
		tally := TallyMoods(events)
		if tally.MostCommon != MoodSad {
			t.Fatalf("MostCommon = %q, want Sad (earliest encountered among tied)", tally.MostCommon)
		}
	}

	// 计数被真正超过时并列规则不再介入
	events = append(events, MoodEvent{Mood: MoodHappy, Millis: 5000})
	if tally := TallyMoods(events); tally.MostCommon != MoodHappy {
		t.Fatalf("MostCommon = %q, want Happy once the tie is broken", tally.MostCommon)
	}
}

func TestTallyMoodsStatus(t *testing.T) {
	cases := []struct {
		name   string
		moods  []string
		status string
	}{
		{"all positive", []string{MoodHappy, MoodCalm}, StatusPositive},
		{"all negative", []string{MoodSad, MoodAngry, MoodStressed}, StatusNegative},
		{"balanced", []string{MoodHappy, MoodSad}, StatusMixed},
		{"neutral only", []string{MoodNeutral, MoodNeutral}, StatusMixed},
		{"empty", nil, StatusMixed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := make([]MoodEvent, len(tc.moods))
			for i, m := range tc.moods {
				events[i] = MoodEvent{Mood: m, Millis: int64(i+1) * 1000}
			}
			tally := TallyMoods(events)
			if tally.Status != tc.status {
				t.Errorf("Status = %q, want %q", tally.Status, tc.status)
			}
		})
	}
}

func TestTallyMoodsEmpty(t *testing.T) {
	tally := TallyMoods(nil)
	if tally.Total != 0 {
		t.Errorf("Total = %d, want 0", tally.Total)
	}
	if tally.MostCommon != MoodUnknown {
		t.Errorf("MostCommon = %q, want Unknown", tally.MostCommon)
	}
}
