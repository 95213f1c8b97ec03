package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stressease/internal/model"
	mongopkg "stressease/internal/pkg/mongo"
	"stressease/internal/pkg/wellness"

	"go.mongodb.org/mongo-driver/bson"
)

var errTestUnavailable = errors.New("unavailable")

func newAggregateFixture() (AggregateService, *fakeMoodRepo, *fakeQuizRepo, *fakeMetricRepo, *fakeProfileRepo) {
	moodRepo := newFakeMoodRepo()
	quizRepo := &fakeQuizRepo{}
	metricRepo := &fakeMetricRepo{}
	profileRepo := newFakeProfileRepo()
	moodService := NewMoodService(moodRepo, metricRepo)
	svc := NewAggregateService(moodService, quizRepo, metricRepo, profileRepo)
	return svc, moodRepo, quizRepo, metricRepo, profileRepo
}

func TestRecomputeBuildsSummary(t *testing.T) {
	svc, moodRepo, quizRepo, metricRepo, profileRepo := newAggregateFixture()
	ctx := context.Background()
	now := time.Now()

	// 3 次 Happy（5 分）、1 次 Sad（2 分）：均分 4.25，整体正向
	moodRepo.docs[mongopkg.ColMoodLogs] = []bson.M{
		{"mood": "happy", "timestamp": now.Add(-1 * time.Hour).UnixMilli()},
		{"mood": "happy", "timestamp": now.Add(-2 * time.Hour).UnixMilli()},
		{"mood": "happy", "timestamp": now.Add(-3 * time.Hour).UnixMilli()},
		{"mood": "sad", "timestamp": now.Add(-4 * time.Hour).UnixMilli()},
	}
	// 12 题总分 42，单次 0-10 得分 42/6 = 7.0
	quizRepo.subs = append(quizRepo.subs, &model.QuizSubmission{
		UserID: 1, QuizDate: "2026-08-28", SubmissionIndex: 1,
		CoreMood: 4, CoreEnergy: 4, CoreSleep: 4, CoreStress: 4,
		RotatingScores: "[4,4,4,4,4]",
		DassDepression: 2, DassAnxiety: 2, DassStress: 2,
	})
	if err := metricRepo.IncrChatCount(ctx, 1, now, 3); err != nil {
		t.Fatalf("seed chat bucket: %v", err)
	}
	if err := metricRepo.IncrChatCount(ctx, 1, now.AddDate(0, 0, -1), 2); err != nil {
		t.Fatalf("seed chat bucket: %v", err)
	}

	summary, err := svc.Recompute(ctx, 1)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	if summary.TotalMoodCount != 4 {
		t.Errorf("total mood count = %d, want 4", summary.TotalMoodCount)
	}
	if summary.MoodCounts[wellness.MoodHappy] != 3 || summary.MoodCounts[wellness.MoodSad] != 1 {
		t.Errorf("mood counts = %v, want Happy:3 Sad:1", summary.MoodCounts)
	}
	if summary.MostCommonMood != wellness.MoodHappy {
		t.Errorf("most common = %s, want Happy", summary.MostCommonMood)
	}
	if summary.OverallStatus != wellness.StatusPositive {
		t.Errorf("status = %s, want Positive", summary.OverallStatus)
	}
	if summary.AvgMoodScore != 4.25 {
		t.Errorf("avg mood = %v, want 4.25", summary.AvgMoodScore)
	}
	if summary.AvgQuizScore != 7.0 {
		t.Errorf("avg quiz = %v, want 7.0", summary.AvgQuizScore)
	}
	if summary.ChatCount7d != 5 {
		t.Errorf("chat count = %d, want 5", summary.ChatCount7d)
	}
	// 没有心情计数桶（历史来自旧集合）：窗口统计走事件扫描慢路径
	if summary.MoodCount7d != 4 {
		t.Errorf("mood count 7d = %d, want 4 from event scan", summary.MoodCount7d)
	}
	if summary.LastUpdated == 0 {
		t.Error("last updated not set")
	}

	// 聚合结果同步写入画像文档
	agg := profileRepo.aggregates[1]
	if agg == nil {
		t.Fatal("aggregate not upserted")
	}
	if agg.TotalMoodCount != 4 || agg.AvgQuizScore != 7.0 || agg.ChatCount7d != 5 {
		t.Errorf("upserted aggregate = %+v, mismatch with summary", agg)
	}
	if agg.MoodCount7d != summary.MoodCount7d {
		t.Errorf("aggregate mood count 7d = %d, want %d", agg.MoodCount7d, summary.MoodCount7d)
	}
}

func TestRecomputeMoodWindowFastPath(t *testing.T) {
	svc, moodRepo, _, metricRepo, _ := newAggregateFixture()
	ctx := context.Background()
	now := time.Now()

	// 事件都在窗口外，当日桶里有 2 次打点：窗口统计以桶为准
	moodRepo.docs[mongopkg.ColMoodLogs] = []bson.M{
		{"mood": "happy", "timestamp": now.AddDate(0, 0, -30).UnixMilli()},
	}
	if err := metricRepo.IncrMoodCount(ctx, 4, now, 2); err != nil {
		t.Fatalf("seed mood bucket: %v", err)
	}

	summary, err := svc.Recompute(ctx, 4)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if summary.MoodCount7d != 2 {
		t.Errorf("mood count 7d = %d, want 2 from daily buckets", summary.MoodCount7d)
	}
	// 全量统计不受窗口影响
	if summary.TotalMoodCount != 1 {
		t.Errorf("total mood count = %d, want 1", summary.TotalMoodCount)
	}
}

func TestRecomputeWithNoHistory(t *testing.T) {
	svc, _, _, _, _ := newAggregateFixture()

	// 无任何历史：来源可达但为空，统计走中性兜底
	summary, err := svc.Recompute(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if summary.TotalMoodCount != 0 {
		t.Errorf("total mood count = %d, want 0", summary.TotalMoodCount)
	}
	if summary.MostCommonMood != wellness.MoodUnknown {
		t.Errorf("most common = %s, want Unknown", summary.MostCommonMood)
	}
	if summary.OverallStatus != wellness.StatusMixed {
		t.Errorf("status = %s, want Mixed", summary.OverallStatus)
	}
	if summary.AvgMoodScore != wellness.DefaultMoodScore {
		t.Errorf("avg mood = %v, want neutral default", summary.AvgMoodScore)
	}
	if summary.AvgQuizScore != wellness.DefaultQuizAverage*2 {
		t.Errorf("avg quiz = %v, want neutral default on 0-10 scale", summary.AvgQuizScore)
	}
}

func TestRecomputeWithAllSourcesDown(t *testing.T) {
	svc, moodRepo, _, _, profileRepo := newAggregateFixture()

	// 记录存储整体不可用时聚合照常产出中性汇总，不向上抛错
	for _, col := range mongopkg.SourceCollections {
		moodRepo.failures[col] = errTestUnavailable
	}

	summary, err := svc.Recompute(context.Background(), 8)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if summary.TotalMoodCount != 0 || summary.MostCommonMood != wellness.MoodUnknown {
		t.Errorf("summary = %+v, want neutral defaults", summary)
	}
	if profileRepo.aggregates[8] == nil {
		t.Error("neutral aggregate not upserted")
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	svc, moodRepo, _, _, _ := newAggregateFixture()
	ctx := context.Background()

	moodRepo.docs[mongopkg.ColMoodLogs] = []bson.M{
		{"mood": "calm", "timestamp": int64(1000)},
		{"mood": "calm", "timestamp": int64(2000)},
	}

	first, err := svc.Recompute(ctx, 3)
	if err != nil {
		t.Fatalf("first Recompute: %v", err)
	}
	second, err := svc.Recompute(ctx, 3)
	if err != nil {
		t.Fatalf("second Recompute: %v", err)
	}

	// 整体重建而非增量修补：输入不变时两次结果一致
	if first.TotalMoodCount != second.TotalMoodCount ||
		first.AvgMoodScore != second.AvgMoodScore ||
		first.MostCommonMood != second.MostCommonMood {
		t.Errorf("recompute not idempotent: %+v vs %+v", first, second)
	}
}

func TestQuizAverage(t *testing.T) {
	if got := quizAverage(nil); got != wellness.DefaultQuizAverage*2 {
		t.Errorf("quizAverage(nil) = %v, want neutral default 6.0", got)
	}

	subs := []*model.QuizSubmission{
		{ // 全 1 分：总分 12，得分 2.0
			CoreMood: 1, CoreEnergy: 1, CoreSleep: 1, CoreStress: 1,
			RotatingScores: "[1,1,1,1,1]",
			DassDepression: 1, DassAnxiety: 1, DassStress: 1,
		},
		{ // 全 5 分：总分 60，得分 10.0
			CoreMood: 5, CoreEnergy: 5, CoreSleep: 5, CoreStress: 5,
			RotatingScores: "[5,5,5,5,5]",
			DassDepression: 5, DassAnxiety: 5, DassStress: 5,
		},
	}
	if got := quizAverage(subs); got != 6.0 {
		t.Errorf("quizAverage = %v, want 6.0", got)
	}
}

func TestSubmissionScoreBadRotatingJSON(t *testing.T) {
	// 轮换题 JSON 损坏时只计可读的 7 题
	sub := &model.QuizSubmission{
		CoreMood: 3, CoreEnergy: 3, CoreSleep: 3, CoreStress: 3,
		RotatingScores: "not json",
		DassDepression: 3, DassAnxiety: 3, DassStress: 3,
	}
	if got := submissionScore(sub); got != 3.5 {
		t.Errorf("submissionScore = %v, want 3.5", got)
	}
}
