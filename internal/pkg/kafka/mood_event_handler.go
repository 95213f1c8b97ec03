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

// MoodEventsHandler 消费心情变更事件：落日桶计数、打脏标记并广播变更。
// 聚合本身不在消费路径上修补，统一由重算任务整体重建。
type MoodEventsHandler struct {
	metricRepo repository.DailyMetricRepo
}

func NewMoodEventsHandler(metricRepo repository.DailyMetricRepo) *MoodEventsHandler {
	return &MoodEventsHandler{metricRepo: metricRepo}
}

func (s *MoodEventsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("mood events consumer setup")
	return nil
}

func (s *MoodEventsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("mood events consumer cleanup")
	return nil
}

func (s *MoodEventsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-mood-events consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-mood-events process batch error", "err", err)
		return err
	}
	return nil
}

func (s *MoodEventsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToMoodEvent(msg)
	if err != nil {
		// 坏消息直接丢弃，重试也不会变好
		return nil
	}

	at := time.Now()
	if event.Timestamp > 0 {
		at = time.UnixMilli(event.Timestamp)
	}

	if err = s.metricRepo.IncrMoodCount(ctx, event.UserID, at, 1); err != nil {
		return err
	}

	idStr := strconv.FormatUint(event.UserID, 10)
	if err = redis.SAdd(ctx, consts.AggregateDirtyKey, idStr); err != nil {
		log.WarnContext(ctx, "mark user dirty failed", "err", err, "user_id", event.UserID)
	}
	if err = redis.Publish(ctx, consts.UserSummaryChannel+idStr, event.Mood); err != nil {
		log.WarnContext(ctx, "publish mood update failed", "err", err, "user_id", event.UserID)
	}
	return nil
}
