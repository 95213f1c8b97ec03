package kafka

import (
	"context"
	log "log/slog"
	"stressease/internal/api/config"
	"stressease/internal/repository"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	moodConsumer sarama.ConsumerGroup
	moodHandler  sarama.ConsumerGroupHandler

	chatConsumer sarama.ConsumerGroup
	chatHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	metricRepo repository.DailyMetricRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	moodConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaMoodConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	moodHandler := NewMoodEventsHandler(metricRepo)

	chatConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaChatConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	chatHandler := NewChatEventsHandler(metricRepo)

	return &ConsumerManager{
		moodConsumer: moodConsumer,
		moodHandler:  moodHandler,
		chatConsumer: chatConsumer,
		chatHandler:  chatHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Mood Events Consumer
	go func() {
		topic := cfg.KafkaMoodConsumer.Topic
		log.Info("Mood events consumer started", "topic", topic)
		for {
			if err := m.moodConsumer.Consume(ctx, []string{topic}, m.moodHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Chat Events Consumer
	go func() {
		topic := cfg.KafkaChatConsumer.Topic
		log.Info("Chat events consumer started", "topic", topic)
		for {
			if err := m.chatConsumer.Consume(ctx, []string{topic}, m.chatHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.moodConsumer.Close(); err != nil {
		log.Error("Failed to close mood consumer", "err", err)
	}
	if err := m.chatConsumer.Close(); err != nil {
		log.Error("Failed to close chat consumer", "err", err)
	}

	return nil
}
