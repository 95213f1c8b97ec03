package kafka

import (
	"context"
	log "log/slog"
	"strconv"
	"time"

	"stressease/internal/pkg/consts"
	"stressease/internal/pkg/redis"
	"stressease/internal/repository"

	"github.com/IBM/sarama"
)

// ChatEventsHandler 消费聊天活跃事件，维护日聊天计数桶
type ChatEventsHandler struct {
	metricRepo repository.DailyMetricRepo
}

func NewChatEventsHandler(metricRepo repository.DailyMetricRepo) *ChatEventsHandler {
	return &ChatEventsHandler{metricRepo: metricRepo}
}

func (s *ChatEventsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("chat events consumer setup")
	return nil
}

func (s *ChatEventsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("chat events consumer cleanup")
	return nil
}

func (s *ChatEventsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-chat-events consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-chat-events process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ChatEventsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToChatEvent(msg)
	if err != nil {
		return nil
	}

	delta := event.Messages
	if delta <= 0 {
		delta = 1
	}

	at := time.Now()
	if event.Timestamp > 0 {
		at = time.UnixMilli(event.Timestamp)
	}

	if err = s.metricRepo.IncrChatCount(ctx, event.UserID, at, delta); err != nil {
		return err
	}

	idStr := strconv.FormatUint(event.UserID, 10)
	if err = redis.SAdd(ctx, consts.AggregateDirtyKey, idStr); err != nil {
		log.WarnContext(ctx, "mark user dirty failed", "err", err, "user_id", event.UserID)
	}
	return nil
}
