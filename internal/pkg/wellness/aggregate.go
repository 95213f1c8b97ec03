package wellness

import "time"

// 全量历史的分类结果
const (
	StatusPositive = "Positive"
	StatusNegative = "Negative"
	StatusMixed    = "Mixed"
)

const DateLayout = "2006-01-02"

// DefaultWindowDays 滚动统计默认窗口
const DefaultWindowDays = 7

// CountWindowFromBuckets 快路径：基于预计算的按日计数桶统计最近 days 天的总量。
// 从 now 所在日期逐天回溯，缺失的日期按 0 计。
func CountWindowFromBuckets(buckets map[string]int, now time.Time, days int) int {
	if days <= 0 {
		days = DefaultWindowDays
	}
	total := 0
	day := now
	for i := 0; i < days; i++ {
		total += buckets[day.Format(DateLayout)]
		day = day.AddDate(0, 0, -1)
	}
	return total
}

// CountWindowFromEvents 慢路径：没有按日桶时全量扫描合并后的事件序列，
// 统计时间戳落在 [now - days, now] 内的条数。对同一份底层数据，两条路径
// 必须得出一致的结果。
func CountWindowFromEvents(events []MoodEvent, now time.Time, days int) int {
	if days <= 0 {
		days = DefaultWindowDays
	}
	lower := now.AddDate(0, 0, -days).UnixMilli()
	upper := now.UnixMilli()

	count := 0
	for _, ev := range events {
		if ev.Millis >= lower && ev.Millis <= upper {
			count++
		}
	}
	return count
}

// MoodTally 全量历史的心情统计
type MoodTally struct {
	Total      int
	Counts     map[string]int
	MostCommon string
	Status     string
}

// TallyMoods 对整个合并历史（不限窗口）统计各规范心情的出现次数、
// 最高频心情与整体分类。事件序列已按时间升序，并列时最早出现的标签
// 胜出，结果是确定的。
func TallyMoods(events []MoodEvent) MoodTally {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, ev := range events {
		if counts[ev.Mood] == 0 {
			order = append(order, ev.Mood)
		}
		counts[ev.Mood]++
	}

	mostCommon := MoodUnknown
	best := 0
	for _, mood := range order {
		if counts[mood] > best {
			best = counts[mood]
			mostCommon = mood
		}
	}

	positive, negative := 0, 0
	for mood, n := range counts {
		if IsPositiveMood(mood) {
			positive += n
		} else if IsNegativeMood(mood) {
			negative += n
		}
	}

	status := StatusMixed
	if positive > negative {
		status = StatusPositive
	} else if negative > positive {
		status = StatusNegative
	}

	return MoodTally{
		Total:      len(events),
		Counts:     counts,
		MostCommon: mostCommon,
		Status:     status,
	}
}

// BucketsFromEvents 将事件序列折算成按日计数桶，供快慢路径等价性校验
// 与桶的重建使用
func BucketsFromEvents(events []MoodEvent, loc *time.Location) map[string]int {
	if loc == nil {
		loc = time.Local
	}
	buckets := make(map[string]int)
	for _, ev := range events {
		day := time.UnixMilli(ev.Millis).In(loc).Format(DateLayout)
		buckets[day]++
	}
	return buckets
}
