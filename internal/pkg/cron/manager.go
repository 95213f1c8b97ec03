package cron

import (
	log "log/slog"
	"stressease/internal/job"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine             *cron.Cron
	leaderboardJob     *job.LeaderboardRefreshJob
	metricRetentionJob *job.MetricRetentionJob
}

func NewCronManager(leaderboardJob *job.LeaderboardRefreshJob, metricRetentionJob *job.MetricRetentionJob) *Manager {
	return &Manager{
		engine:             cron.New(cron.WithSeconds()),
		leaderboardJob:     leaderboardJob,
		metricRetentionJob: metricRetentionJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@every 5m", s.leaderboardJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.metricRetentionJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
