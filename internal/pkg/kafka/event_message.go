package kafka

import (
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// MoodEventMessage 心情记录变更事件
type MoodEventMessage struct {
	UserID    uint64 `json:"user_id"`
	Mood      string `json:"mood"`
	Timestamp int64  `json:"timestamp"`
}

// ChatEventMessage 聊天活跃事件
type ChatEventMessage struct {
	UserID    uint64 `json:"user_id"`
	Messages  int    `json:"messages"`
	Timestamp int64  `json:"timestamp"`
}

// ToMoodEvent 将 kafka 消息解析为心情事件
func ToMoodEvent(msg *sarama.ConsumerMessage) (*MoodEventMessage, error) {
	var event MoodEventMessage
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("unmarshal mood event error", "err", err)
		return nil, err
	}
	if event.UserID == 0 {
		return nil, errors.New("mood event missing user id")
	}
	return &event, nil
}

// ToChatEvent 将 kafka 消息解析为聊天活跃事件
func ToChatEvent(msg *sarama.ConsumerMessage) (*ChatEventMessage, error) {
	var event ChatEventMessage
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("unmarshal chat event error", "err", err)
		return nil, err
	}
	if event.UserID == 0 {
		return nil, errors.New("chat event missing user id")
	}
	return &event, nil
}
