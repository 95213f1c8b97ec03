package wellness

import (
	"sort"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// MoodEvent 规范化后的单条心情事件，规范化完成后不再修改
type MoodEvent struct {
	ID       string `json:"id"`
	RawLabel string `json:"rawLabel"`
	Mood     string `json:"mood"`
	Millis   int64  `json:"timestampMillis"`
	SourceID string `json:"sourceId"`
}

// RawSource 一个来源拉回的原始文档集，Name 标识来源，拉取失败的来源
// 传空 Docs 即可
type RawSource struct {
	Name string
	Docs []bson.M
}

// labelKeys 心情字段候选键，不同来源集合用的字段名不一致
var labelKeys = []string{"mood", "emotion", "mood_label", "label"}

// MergeEvents 将多个来源的原始记录合并为一条按时间升序、无重复的事件序列。
// 每条记录先做标签归一和时间解析，时间解析失败的直接丢弃；
// 去重键为 规范标签 + "_" + 毫秒时间戳，同键保留先遇到的一条，
// 来源优先级即传入顺序（而不是时间新旧），后到的重复静默丢弃。
func MergeEvents(sources []RawSource) []MoodEvent {
	seen := make(map[string]struct{})
	events := make([]MoodEvent, 0)

	for _, src := range sources {
		for _, doc := range src.Docs {
			millis, ok := ResolveTimestamp(doc)
			if !ok {
				continue
			}

			raw := extractLabel(doc)
			mood := NormalizeMood(raw)

			key := mood + "_" + strconv.FormatInt(millis, 10)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			events = append(events, MoodEvent{
				ID:       docID(doc),
				RawLabel: raw,
				Mood:     mood,
				Millis:   millis,
				SourceID: src.Name,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Millis < events[j].Millis
	})
	return events
}

func extractLabel(doc bson.M) string {
	for _, key := range labelKeys {
		if val, exists := doc[key]; exists {
			if s, ok := val.(string); ok {
				return s
			}
		}
	}
	return ""
}

func docID(doc bson.M) string {
	if val, exists := doc["_id"]; exists {
		switch v := val.(type) {
		case string:
			return v
		case interface{ Hex() string }:
			return v.Hex()
		}
	}
	return ""
}
