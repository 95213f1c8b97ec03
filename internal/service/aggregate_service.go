package service

import (
	"context"
	log "log/slog"
	"strconv"
	"time"

	"stressease/internal/api/config"
	"stressease/internal/api/dto"
	"stressease/internal/model"
	"stressease/internal/pkg/consts"
	"stressease/internal/pkg/mongo"
	"stressease/internal/pkg/redis"
	"stressease/internal/pkg/util"
	"stressease/internal/pkg/wellness"
	"stressease/internal/repository"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type AggregateService interface {
	GetSummary(ctx context.Context, userID uint64) (*dto.SummaryDTO, error)
	Recompute(ctx context.Context, userID uint64) (*dto.SummaryDTO, error)
}

type AggregateServiceImpl struct {
	moodService MoodService
	quizRepo    repository.QuizRepo
	metricRepo  repository.DailyMetricRepo
	profileRepo mongo.ProfileRepo
}

func NewAggregateService(
	moodService MoodService,
	quizRepo repository.QuizRepo,
	metricRepo repository.DailyMetricRepo,
	profileRepo mongo.ProfileRepo,
) AggregateService {
	return &AggregateServiceImpl{
		moodService: moodService,
		quizRepo:    quizRepo,
		metricRepo:  metricRepo,
		profileRepo: profileRepo,
	}
}

func (s *AggregateServiceImpl) GetSummary(ctx context.Context, userID uint64) (*dto.SummaryDTO, error) {
	key := consts.UserSummaryKey + strconv.FormatUint(userID, 10)
	value, err := redis.GetValue(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "summary cache read failed", "err", err, "user_id", userID)
	}
	if value != "" {
		var summary *dto.SummaryDTO
		if err = json.Unmarshal([]byte(value), &summary); err == nil {
			return summary, nil
		}
	}
	return s.Recompute(ctx, userID)
}

// Recompute 从来源现状整体重建用户聚合，不做增量修补。
// 写入 mongo 档案后缓存到当天结束。
func (s *AggregateServiceImpl) Recompute(ctx context.Context, userID uint64) (*dto.SummaryDTO, error) {
	idStr := strconv.FormatUint(userID, 10)

	lockKey := consts.AggregateLock + idStr
	lockVal := uuid.New().String()
	lock, err := redis.TryLock(ctx, lockKey, lockVal, time.Second*10, 3)
	if err != nil {
		log.WarnContext(ctx, "aggregate lock unavailable", "err", err, "user_id", userID)
	} else if !lock {
		return nil, UnExpectedError
	} else {
		defer redis.UnLock(ctx, lockKey, lockVal)
	}

	events, err := s.moodService.FetchMergedEvents(ctx, userID)
	if err != nil {
		return nil, err
	}

	tally := wellness.TallyMoods(events)
	avgMood := wellness.AverageMoodScore(events)

	subs, err := s.quizRepo.GetLastN(ctx, userID, consts.WeeklyCycleLength)
	if err != nil {
		return nil, err
	}
	avgQuiz := quizAverage(subs)

	now := time.Now()
	windowDays := config.Cfg.Aggregation.WindowDays
	if windowDays <= 0 {
		windowDays = wellness.DefaultWindowDays
	}

	moodCount, chatCount := 0, 0
	metrics, err := s.metricRepo.GetRecentBuckets(ctx, userID, windowDays)
	if err != nil {
		log.WarnContext(ctx, "daily buckets unavailable", "err", err, "user_id", userID)
	} else {
		moodBuckets := make(map[string]int, len(metrics))
		chatBuckets := make(map[string]int, len(metrics))
		for _, m := range metrics {
			day := m.MetricDate.Format(wellness.DateLayout)
			moodBuckets[day] = m.MoodCount
			chatBuckets[day] = m.ChatCount
		}
		moodCount = wellness.CountWindowFromBuckets(moodBuckets, now, windowDays)
		chatCount = wellness.CountWindowFromBuckets(chatBuckets, now, windowDays)
	}
	// 桶不可用或尚未回填（旧集合里的历史没有对应桶）时退回全量扫描
	if moodCount == 0 {
		moodCount = wellness.CountWindowFromEvents(events, now, windowDays)
	}

	agg := &mongo.UserAggregate{
		UserID:         userID,
		TotalMoodCount: tally.Total,
		MoodCounts:     tally.Counts,
		MostCommonMood: tally.MostCommon,
		OverallStatus:  tally.Status,
		AvgQuizScore:   avgQuiz,
		AvgMoodScore:   avgMood,
		MoodCount7d:    moodCount,
		ChatCount7d:    chatCount,
		LastUpdated:    now,
	}
	if err = s.profileRepo.UpsertAggregate(ctx, agg); err != nil {
		return nil, err
	}

	summary := &dto.SummaryDTO{
		UserID:         userID,
		TotalMoodCount: tally.Total,
		MoodCounts:     tally.Counts,
		MostCommonMood: tally.MostCommon,
		OverallStatus:  tally.Status,
		AvgQuizScore:   avgQuiz,
		AvgMoodScore:   avgMood,
		MoodCount7d:    moodCount,
		ChatCount7d:    chatCount,
		LastUpdated:    now.UnixMilli(),
	}

	jsonStr, err := json.Marshal(summary)
	if err == nil {
		key := consts.UserSummaryKey + idStr
		if err = redis.SetWithExpiration(ctx, key, string(jsonStr), util.SecondsUntilMidnight(now)); err != nil {
			log.WarnContext(ctx, "summary cache write failed", "err", err, "user_id", userID)
		}
	}
	return summary, nil
}

// quizAverage 最近若干次提交的问卷均分（0-10 刻度），无历史时取中性兜底
func quizAverage(subs []*model.QuizSubmission) float64 {
	if len(subs) == 0 {
		return wellness.DefaultQuizAverage * 2
	}
	total := 0.0
	for _, sub := range subs {
		total += submissionScore(sub)
	}
	return total / float64(len(subs))
}

// submissionScore 单次提交的 0-10 分：12 题总分（12-60）除以 6
func submissionScore(sub *model.QuizSubmission) float64 {
	sum := sub.CoreMood + sub.CoreEnergy + sub.CoreSleep + sub.CoreStress +
		sub.DassDepression + sub.DassAnxiety + sub.DassStress

	var rotating []int
	if err := json.Unmarshal([]byte(sub.RotatingScores), &rotating); err == nil {
		for _, v := range rotating {
			sum += v
		}
	}
	return float64(sum) / 6.0
}
