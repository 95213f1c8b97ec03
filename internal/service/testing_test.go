package service

import (
	"context"
	"errors"
	"time"

	"stressease/internal/api/config"
	"stressease/internal/model"
	mongopkg "stressease/internal/pkg/mongo"
	redispkg "stressease/internal/pkg/redis"
	"stressease/internal/pkg/wellness"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

// 测试不依赖真实 redis：全局客户端指向一个必然连不上的地址，
// 业务代码把 redis 故障当缓存未命中处理，路径仍然可走通
func init() {
	redispkg.Rdb = goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	config.Cfg = &config.Config{
		Aggregation: config.AggregationConfig{SourceTimeout: 2, WindowDays: 7},
	}
}

// fakeQuizRepo 内存版问卷存储
type fakeQuizRepo struct {
	subs []*model.QuizSubmission
}

func (s *fakeQuizRepo) GetByUserAndDate(_ context.Context, userID uint64, date string) (*model.QuizSubmission, error) {
	for _, sub := range s.subs {
		if sub.UserID == userID && sub.QuizDate == date {
			return sub, nil
		}
	}
	return nil, nil
}

func (s *fakeQuizRepo) GetLastN(_ context.Context, userID uint64, n int) ([]*model.QuizSubmission, error) {
	var out []*model.QuizSubmission
	for i := len(s.subs) - 1; i >= 0 && len(out) < n; i-- {
		if s.subs[i].UserID == userID {
			out = append(out, s.subs[i])
		}
	}
	return out, nil
}

func (s *fakeQuizRepo) GetByIndexRange(_ context.Context, userID uint64, from, to int) ([]*model.QuizSubmission, error) {
	var out []*model.QuizSubmission
	for _, sub := range s.subs {
		if sub.UserID == userID && sub.SubmissionIndex >= from && sub.SubmissionIndex <= to {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *fakeQuizRepo) CountByUser(_ context.Context, userID uint64) (int64, error) {
	var n int64
	for _, sub := range s.subs {
		if sub.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakeQuizRepo) CreateSubmission(_ context.Context, sub *model.QuizSubmission) error {
	cp := *sub
	s.subs = append(s.subs, &cp)
	return nil
}

func (s *fakeQuizRepo) UpdateSubmission(_ context.Context, sub *model.QuizSubmission) error {
	for i, existing := range s.subs {
		if existing.ID == sub.ID || (existing.UserID == sub.UserID && existing.QuizDate == sub.QuizDate) {
			cp := *sub
			s.subs[i] = &cp
			return nil
		}
	}
	return errors.New("submission not found")
}

// fakeCycleRepo 内存版提交计数器
type fakeCycleRepo struct {
	counts map[uint64]int
}

func newFakeCycleRepo() *fakeCycleRepo {
	return &fakeCycleRepo{counts: make(map[uint64]int)}
}

func (s *fakeCycleRepo) GetState(_ context.Context, userID uint64) (*model.QuizCycleState, error) {
	return &model.QuizCycleState{UserID: userID, SubmissionCount: s.counts[userID]}, nil
}

func (s *fakeCycleRepo) IncrementAndGet(_ context.Context, userID uint64) (int, error) {
	s.counts[userID]++
	return s.counts[userID], nil
}

// fakeRollupRepo 内存版周期汇总存储
type fakeRollupRepo struct {
	rollups []*model.WeeklyRollup
}

func (s *fakeRollupRepo) CreateRollup(_ context.Context, rollup *model.WeeklyRollup) error {
	cp := *rollup
	s.rollups = append(s.rollups, &cp)
	return nil
}

func (s *fakeRollupRepo) ExistsByCycle(_ context.Context, userID uint64, cycle int) (bool, error) {
	for _, r := range s.rollups {
		if r.UserID == userID && r.CycleNumber == cycle {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRollupRepo) GetByUser(_ context.Context, userID uint64) ([]*model.WeeklyRollup, error) {
	var out []*model.WeeklyRollup
	for i := len(s.rollups) - 1; i >= 0; i-- {
		if s.rollups[i].UserID == userID {
			out = append(out, s.rollups[i])
		}
	}
	return out, nil
}

// fakeMetricRepo 内存版日计数桶
type fakeMetricRepo struct {
	metrics []*model.UserDailyMetric
	moodErr error
}

func (s *fakeMetricRepo) IncrMoodCount(_ context.Context, userID uint64, date time.Time, delta int) error {
	if s.moodErr != nil {
		return s.moodErr
	}
	s.bucket(userID, date).MoodCount += delta
	return nil
}

func (s *fakeMetricRepo) IncrChatCount(_ context.Context, userID uint64, date time.Time, delta int) error {
	s.bucket(userID, date).ChatCount += delta
	return nil
}

func (s *fakeMetricRepo) bucket(userID uint64, date time.Time) *model.UserDailyMetric {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	for _, m := range s.metrics {
		if m.UserID == userID && m.MetricDate.Equal(day) {
			return m
		}
	}
	m := &model.UserDailyMetric{UserID: userID, MetricDate: day}
	s.metrics = append(s.metrics, m)
	return m
}

func (s *fakeMetricRepo) GetRecentBuckets(_ context.Context, userID uint64, days int) ([]*model.UserDailyMetric, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var out []*model.UserDailyMetric
	for _, m := range s.metrics {
		if m.UserID == userID && m.MetricDate.After(cutoff) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeMetricRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*model.UserDailyMetric
	var deleted int64
	for _, m := range s.metrics {
		if m.MetricDate.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	s.metrics = kept
	return deleted, nil
}

// fakeMoodRepo 以来源集合为键的原始文档存储，可按来源注入故障
type fakeMoodRepo struct {
	docs     map[string][]bson.M
	failures map[string]error
	inserted []wellness.MoodEvent
}

func newFakeMoodRepo() *fakeMoodRepo {
	return &fakeMoodRepo{
		docs:     make(map[string][]bson.M),
		failures: make(map[string]error),
	}
}

func (s *fakeMoodRepo) InsertMood(_ context.Context, userID uint64, rawLabel string, at time.Time) error {
	s.inserted = append(s.inserted, wellness.MoodEvent{RawLabel: rawLabel, Millis: at.UnixMilli()})
	return nil
}

func (s *fakeMoodRepo) FetchRawEvents(_ context.Context, collection string, _ uint64) ([]bson.M, error) {
	if err := s.failures[collection]; err != nil {
		return nil, err
	}
	return s.docs[collection], nil
}

// fakeProfileRepo 内存版画像聚合存储，可按用户注入读取故障
type fakeProfileRepo struct {
	aggregates map[uint64]*mongopkg.UserAggregate
	getErr     map[uint64]error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		aggregates: make(map[uint64]*mongopkg.UserAggregate),
		getErr:     make(map[uint64]error),
	}
}

func (s *fakeProfileRepo) UpsertAggregate(_ context.Context, agg *mongopkg.UserAggregate) error {
	cp := *agg
	s.aggregates[agg.UserID] = &cp
	return nil
}

func (s *fakeProfileRepo) GetAggregate(_ context.Context, userID uint64) (*mongopkg.UserAggregate, error) {
	if err := s.getErr[userID]; err != nil {
		return nil, err
	}
	return s.aggregates[userID], nil
}

// fakeUserRepo 内存版用户存储
type fakeUserRepo struct {
	users []*model.User
}

func (s *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username != nil && *u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserRepo) GetAllActiveUsers(_ context.Context) ([]*model.User, error) {
	return s.users, nil
}

func (s *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	user.ID = uint64(len(s.users) + 1)
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserRepo) UpdateUser(_ context.Context, _ *model.User) error {
	return nil
}
