package wellness

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// timestampKeys 时间字段候选键，按优先级依次尝试
var timestampKeys = []string{"timestamp", "createdAt", "time", "created_at", "created_at_ms"}

// ResolveTimestamp 从形状不一的原始记录里解析出毫秒时间戳。
// 依次尝试候选键，对每个值按运行时类型判断：时间对象、数值毫秒、
// {seconds: n} 结构。第一个解析成功的值生效；全部失败时 ok 为 false，
// 该记录会被聚合流程直接丢弃而不是报错。
func ResolveTimestamp(doc map[string]interface{}) (int64, bool) {
	for _, key := range timestampKeys {
		val, exists := doc[key]
		if !exists || val == nil {
			continue
		}
		if millis, ok := coerceMillis(val); ok {
			return millis, true
		}
	}
	return 0, false
}

func coerceMillis(val interface{}) (int64, bool) {
	switch v := val.(type) {
	case time.Time:
		return v.UnixMilli(), true
	case primitive.DateTime:
		return int64(v), true
	case primitive.Timestamp:
		return int64(v.T) * 1000, true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case bson.M:
		return secondsField(map[string]interface{}(v))
	case map[string]interface{}:
		return secondsField(v)
	}
	return 0, false
}

// secondsField 解析 {seconds: n} 形状，按秒转毫秒
func secondsField(m map[string]interface{}) (int64, bool) {
	raw, exists := m["seconds"]
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int64:
		return v * 1000, true
	case int32:
		return int64(v) * 1000, true
	case int:
		return int64(v) * 1000, true
	case float64:
		return int64(v) * 1000, true
	}
	return 0, false
}
