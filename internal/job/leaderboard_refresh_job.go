package job

import (
	"context"
	log "log/slog"
	"strconv"

	"stressease/internal/pkg/consts"
	"stressease/internal/pkg/logger"
	"stressease/internal/pkg/redis"
	"stressease/internal/pkg/util"
	"stressease/internal/service"

	"github.com/google/uuid"
)

// LeaderboardRefreshJob 周期性排空脏用户集合：逐个整体重算聚合，
// 然后重建全量排行。重算失败的用户留到下一轮。
type LeaderboardRefreshJob struct {
	aggregateSvc   service.AggregateService
	leaderboardSvc service.LeaderboardService
}

func NewLeaderboardRefreshJob(aggregateSvc service.AggregateService, leaderboardSvc service.LeaderboardService) *LeaderboardRefreshJob {
	return &LeaderboardRefreshJob{
		aggregateSvc:   aggregateSvc,
		leaderboardSvc: leaderboardSvc,
	}
}

func (s *LeaderboardRefreshJob) Run() {
	traceID := "job-leaderboard-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.AggregateDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.AggregateDirtyKey, processingKey)
	if err != nil {
		// 没有脏用户时 Rename 失败，属于常态
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get aggregate dirty set error", "err", err)
		return
	}

	userIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert dirty set to int slice error", "err", err)
		return
	}

	log.InfoContext(ctx, "LeaderboardRefreshJob processing", "user_count", len(userIDs))

	for _, uid := range userIDs {
		if _, err = s.aggregateSvc.Recompute(ctx, uid); err != nil {
			log.ErrorContext(ctx, "recompute aggregate error", "uid", uid, "err", err)
			// 失败的用户放回脏集合，下一轮重试
			_ = redis.SAdd(ctx, consts.AggregateDirtyKey, strconv.FormatUint(uid, 10))
			continue
		}
		channel := consts.UserSummaryChannel + strconv.FormatUint(uid, 10)
		if err = redis.Publish(ctx, channel, "refresh"); err != nil {
			log.WarnContext(ctx, "publish summary update failed", "uid", uid, "err", err)
		}
	}

	if _, err = s.leaderboardSvc.RecomputeLeaderboard(ctx); err != nil {
		log.ErrorContext(ctx, "recompute leaderboard error", "err", err)
		return
	}

	_ = redis.DeleteKey(ctx, processingKey)
	log.InfoContext(ctx, "LeaderboardRefreshJob finished", "user_count", len(userIDs))
}
