package service

import (
	"context"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"stressease/internal/api/config"
	"stressease/internal/api/dto"
	"stressease/internal/pkg/consts"
	"stressease/internal/pkg/mongo"
	"stressease/internal/pkg/redis"
	"stressease/internal/pkg/wellness"
	"stressease/internal/repository"

	"golang.org/x/sync/errgroup"
)

type MoodService interface {
	LogMood(ctx context.Context, userID uint64, dto *dto.LogMoodDTO) error
	FetchMergedEvents(ctx context.Context, userID uint64) ([]wellness.MoodEvent, error)
	GetMoodHistory(ctx context.Context, userID uint64) (*dto.MoodHistoryDTO, error)
}

type MoodServiceImpl struct {
	moodRepo   mongo.MoodRepo
	metricRepo repository.DailyMetricRepo
}

func NewMoodService(moodRepo mongo.MoodRepo, metricRepo repository.DailyMetricRepo) MoodService {
	return &MoodServiceImpl{
		moodRepo:   moodRepo,
		metricRepo: metricRepo,
	}
}

func (s *MoodServiceImpl) LogMood(ctx context.Context, userID uint64, moodDTO *dto.LogMoodDTO) error {
	if strings.TrimSpace(moodDTO.Mood) == "" {
		return ErrMoodInvalid
	}

	at := time.Now()
	if moodDTO.Timestamp != nil && *moodDTO.Timestamp > 0 {
		at = time.UnixMilli(*moodDTO.Timestamp)
	}

	err := s.moodRepo.InsertMood(ctx, userID, moodDTO.Mood, at)
	if err != nil {
		return err
	}

	// 日计数与脏标记失败不影响写入成功
	if err = s.metricRepo.IncrMoodCount(ctx, userID, at, 1); err != nil {
		log.WarnContext(ctx, "increment mood metric failed", "err", err, "user_id", userID)
	}
	if err = redis.SAdd(ctx, consts.AggregateDirtyKey, strconv.FormatUint(userID, 10)); err != nil {
		log.WarnContext(ctx, "mark user dirty failed", "err", err, "user_id", userID)
	}
	if err = redis.Publish(ctx, consts.UserSummaryChannel+strconv.FormatUint(userID, 10), moodDTO.Mood); err != nil {
		log.WarnContext(ctx, "publish mood update failed", "err", err, "user_id", userID)
	}
	return nil
}

// FetchMergedEvents 并发拉取所有来源集合，单来源失败或超时仅跳过该来源
func (s *MoodServiceImpl) FetchMergedEvents(ctx context.Context, userID uint64) ([]wellness.MoodEvent, error) {
	timeout := time.Duration(config.Cfg.Aggregation.SourceTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	results := make([]wellness.RawSource, len(mongo.SourceCollections))
	g, gctx := errgroup.WithContext(ctx)

	for i, name := range mongo.SourceCollections {
		i, name := i, name
		g.Go(func() error {
			srcCtx, cancel := context.WithTimeout(gctx, timeout)
			defer cancel()

			docs, err := s.moodRepo.FetchRawEvents(srcCtx, name, userID)
			if err != nil {
				log.WarnContext(ctx, "fetch mood source failed",
					"source", name, "user_id", userID, "err", err)
				return nil
			}
			results[i] = wellness.RawSource{Name: name, Docs: docs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sources := make([]wellness.RawSource, 0, len(results))
	for _, src := range results {
		if src.Name != "" {
			sources = append(sources, src)
		}
	}
	// 全部来源不可用按空历史处理，下游统计走中性兜底
	if len(sources) == 0 {
		log.ErrorContext(ctx, "all mood sources unavailable", "user_id", userID)
	}
	return wellness.MergeEvents(sources), nil
}

func (s *MoodServiceImpl) GetMoodHistory(ctx context.Context, userID uint64) (*dto.MoodHistoryDTO, error) {
	events, err := s.FetchMergedEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	history := &dto.MoodHistoryDTO{
		Total:  len(events),
		Events: make([]dto.MoodEventDTO, 0, len(events)),
	}
	for _, ev := range events {
		history.Events = append(history.Events, dto.MoodEventDTO{
			Mood:      ev.Mood,
			RawLabel:  ev.RawLabel,
			Timestamp: ev.Millis,
			Source:    ev.SourceID,
		})
	}
	return history, nil
}
