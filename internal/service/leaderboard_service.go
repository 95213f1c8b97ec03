package service

import (
	"context"
	log "log/slog"
	"strconv"
	"time"

	"stressease/internal/api/dto"
	"stressease/internal/pkg/consts"
	"stressease/internal/pkg/mongo"
	"stressease/internal/pkg/redis"
	"stressease/internal/pkg/wellness"
	"stressease/internal/repository"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) (*dto.LeaderboardDTO, error)
	RecomputeLeaderboard(ctx context.Context) (*dto.LeaderboardDTO, error)
}

type LeaderboardServiceImpl struct {
	userRepo    repository.UserRepo
	profileRepo mongo.ProfileRepo
}

func NewLeaderboardService(userRepo repository.UserRepo, profileRepo mongo.ProfileRepo) LeaderboardService {
	return &LeaderboardServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *LeaderboardServiceImpl) GetLeaderboard(ctx context.Context) (*dto.LeaderboardDTO, error) {
	value, err := redis.GetValue(ctx, consts.LeaderboardCache)
	if err != nil {
		log.WarnContext(ctx, "leaderboard cache read failed", "err", err)
	}
	if value != "" {
		var board *dto.LeaderboardDTO
		if err = json.Unmarshal([]byte(value), &board); err == nil {
			return board, nil
		}
	}
	return s.RecomputeLeaderboard(ctx)
}

// RecomputeLeaderboard 对全量用户从零重建排行，不做增量修补。
// 档案缺失的用户按中性兜底值参与排序。
func (s *LeaderboardServiceImpl) RecomputeLeaderboard(ctx context.Context) (*dto.LeaderboardDTO, error) {
	lockVal := uuid.New().String()
	lock, err := redis.TryLock(ctx, consts.LeaderboardLock, lockVal, time.Second*30, 3)
	if err != nil {
		log.WarnContext(ctx, "leaderboard lock unavailable", "err", err)
	} else if !lock {
		return nil, UnExpectedError
	} else {
		defer redis.UnLock(ctx, consts.LeaderboardLock, lockVal)
	}

	users, err := s.userRepo.GetAllActiveUsers(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]wellness.Standing, 0, len(users))
	for _, user := range users {
		avgQuiz := wellness.DefaultQuizAverage * 2
		avgMood := wellness.DefaultMoodScore
		totalLogs := 0

		agg, err := s.profileRepo.GetAggregate(ctx, user.ID)
		if err != nil {
			log.WarnContext(ctx, "fetch user aggregate failed", "err", err, "user_id", user.ID)
		} else if agg != nil {
			if agg.AvgQuizScore > 0 {
				avgQuiz = agg.AvgQuizScore
			}
			if agg.AvgMoodScore > 0 {
				avgMood = agg.AvgMoodScore
			}
			totalLogs = agg.TotalMoodCount
		}

		username := ""
		if user.Username != nil {
			username = *user.Username
		}

		standings = append(standings, wellness.Standing{
			UserID:       user.ID,
			Username:     username,
			QuizScore:    int(avgQuiz * 10),
			EmotionScore: avgMood / 5,
			Composite:    wellness.CompositeScore(avgQuiz, avgMood),
			TotalLogs:    totalLogs,
		})
	}

	ranked := wellness.RankStandings(standings)

	board := &dto.LeaderboardDTO{
		Entries:     make([]dto.LeaderboardEntryDTO, 0, len(ranked)),
		GeneratedAt: time.Now().UnixMilli(),
	}
	for _, standing := range ranked {
		entry := dto.LeaderboardEntryDTO{}
		if err = copier.Copy(&entry, &standing); err != nil {
			return nil, err
		}
		board.Entries = append(board.Entries, entry)
	}

	s.cacheBoard(ctx, board, ranked)
	return board, nil
}

func (s *LeaderboardServiceImpl) cacheBoard(ctx context.Context, board *dto.LeaderboardDTO, ranked []wellness.Standing) {
	jsonStr, err := json.Marshal(board)
	if err != nil {
		return
	}
	if err = redis.SetWithExpiration(ctx, consts.LeaderboardCache, string(jsonStr), time.Minute*5); err != nil {
		log.WarnContext(ctx, "leaderboard cache write failed", "err", err)
		return
	}

	_ = redis.DeleteKey(ctx, consts.LeaderboardKey)
	for _, standing := range ranked {
		member := strconv.FormatUint(standing.UserID, 10)
		if err = redis.ZAdd(ctx, consts.LeaderboardKey, standing.Composite, member); err != nil {
			log.WarnContext(ctx, "leaderboard zset write failed", "err", err)
			return
		}
	}
}
