package job

import (
	"context"
	log "log/slog"
	"time"

	"stressease/internal/pkg/logger"
	"stressease/internal/repository"

	"github.com/google/uuid"
)

// 日计数桶的保留天数，窗口统计最多看 7 天，60 天留足余量
const metricRetentionDays = 60

// MetricRetentionJob 清理过期的日计数桶
type MetricRetentionJob struct {
	metricRepo repository.DailyMetricRepo
}

func NewMetricRetentionJob(metricRepo repository.DailyMetricRepo) *MetricRetentionJob {
	return &MetricRetentionJob{metricRepo: metricRepo}
}

func (s *MetricRetentionJob) Run() {
	traceID := "job-metric-retention-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	cutoff := time.Now().AddDate(0, 0, -metricRetentionDays)
	deleted, err := s.metricRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "delete stale daily metrics error", "err", err)
		return
	}
	log.InfoContext(ctx, "MetricRetentionJob finished", "deleted", deleted)
}
