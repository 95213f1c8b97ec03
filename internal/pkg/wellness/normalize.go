package wellness

import (
	"strings"
	"unicode"
)

// 规范化后的心情标签
const (
	MoodHappy    = "Happy"
	MoodCalm     = "Calm"
	MoodContent  = "Content"
	MoodNeutral  = "Neutral"
	MoodSad      = "Sad"
	MoodAngry    = "Angry"
	MoodAnxious  = "Anxious"
	MoodStressed = "Stressed"
	MoodUnknown  = "Unknown"
)

// CanonicalMoods 规范词表，顺序即统计时的固定遍历顺序
var CanonicalMoods = []string{
	MoodHappy, MoodCalm, MoodContent, MoodNeutral,
	MoodSad, MoodAngry, MoodAnxious, MoodStressed,
}

// moodKeywords 关键词匹配表，按优先级排列，先命中者生效
var moodKeywords = []struct {
	stems []string
	mood  string
}{
	{[]string{"happy"}, MoodHappy},
	{[]string{"calm"}, MoodCalm},
	{[]string{"content"}, MoodContent},
	{[]string{"neutral"}, MoodNeutral},
	{[]string{"sad"}, MoodSad},
	{[]string{"angry"}, MoodAngry},
	{[]string{"anxious", "anxiety"}, MoodAnxious},
	{[]string{"stressed", "stress"}, MoodStressed},
}

// NormalizeMood 将任意原始心情文本归一到规范标签。
// 上游输入五花八门（表情符号、自由文本、大小写混杂），所以这里做的是
// 关键词包含匹配而不是精确匹配；都不命中时退化为清洗后首个单词的首字母
// 大写形式。对已规范的标签重复调用结果不变。
func NormalizeMood(raw string) string {
	cleaned := stripToPlainText(raw)
	if cleaned == "" {
		return MoodUnknown
	}

	lowered := strings.ToLower(cleaned)
	for _, kw := range moodKeywords {
		for _, stem := range kw.stems {
			if strings.Contains(lowered, stem) {
				return kw.mood
			}
		}
	}

	// 未命中任何关键词，取首个单词做兜底标签
	first := strings.Fields(lowered)[0]
	return capitalize(first)
}

// stripToPlainText 去掉字母、数字、空白以外的全部字符并裁剪首尾空白
func stripToPlainText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// IsPositiveMood 正向情绪类别
func IsPositiveMood(mood string) bool {
	return mood == MoodHappy || mood == MoodCalm || mood == MoodContent
}

// IsNegativeMood 负向情绪类别
func IsNegativeMood(mood string) bool {
	return mood == MoodSad || mood == MoodAngry || mood == MoodAnxious || mood == MoodStressed
}
