package service

import (
	"context"
	"fmt"
	log "log/slog"
	"math"
	"time"

	"stressease/internal/api/config"
	"stressease/internal/api/dto"

	"github.com/go-resty/resty/v2"
)

const (
	StressLevelHigh   = "High"
	StressLevelMedium = "Medium"
	StressLevelLow    = "Low"

	PredictionSourceModel    = "model"
	PredictionSourceFallback = "fallback"

	fallbackConfidence = 0.65
)

type PredictionService interface {
	Predict(ctx context.Context, req *dto.PredictRequestDTO) (*dto.PredictionDTO, error)
}

type PredictionServiceImpl struct {
	client *resty.Client
}

func NewPredictionService() PredictionService {
	timeout := time.Duration(config.Cfg.Prediction.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("X-Api-Key", config.Cfg.Prediction.ApiKey)

	return &PredictionServiceImpl{client: client}
}

// Predict 调用外部预测服务，任何失败都退回本地确定性公式，保证总有结果
func (s *PredictionServiceImpl) Predict(ctx context.Context, req *dto.PredictRequestDTO) (*dto.PredictionDTO, error) {
	if req.MoodScore < 1 || req.MoodScore > 5 ||
		req.ChatCount < 0 || req.ChatCount > 999 ||
		req.QuizScore < 0 || req.QuizScore > 60 {
		return nil, ErrPredictFeatureInvalid
	}

	prediction, err := s.callRemote(ctx, req)
	if err != nil {
		log.WarnContext(ctx, "remote prediction failed, using fallback", "err", err)
		return Fallback(req), nil
	}
	return prediction, nil
}

func (s *PredictionServiceImpl) callRemote(ctx context.Context, req *dto.PredictRequestDTO) (*dto.PredictionDTO, error) {
	if config.Cfg.Prediction.URL == "" {
		return nil, fmt.Errorf("prediction url not configured")
	}

	var remote dto.PredictionDTO
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&remote).
		Post(config.Cfg.Prediction.URL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("prediction service status %d", resp.StatusCode())
	}

	remote.Score = clampUnit(remote.Score)
	switch remote.StressLevel {
	case StressLevelHigh, StressLevelMedium, StressLevelLow:
	default:
		remote.StressLevel = levelForScore(remote.Score)
	}
	remote.Confidence = clampUnit(remote.Confidence)
	remote.Source = PredictionSourceModel
	return &remote, nil
}

// Fallback 本地兜底公式：心情、聊天活跃、问卷三个因子按 0.4/0.2/0.4 加权
func Fallback(req *dto.PredictRequestDTO) *dto.PredictionDTO {
	moodFactor := (5 - req.MoodScore) / 4
	chatFactor := math.Min(float64(req.ChatCount)/15, 1)
	quizFactor := (60 - req.QuizScore) / 48

	score := clampUnit(moodFactor*0.4 + chatFactor*0.2 + quizFactor*0.4)

	return &dto.PredictionDTO{
		StressLevel: levelForScore(score),
		Score:       score,
		Confidence:  fallbackConfidence,
		Source:      PredictionSourceFallback,
	}
}

func levelForScore(score float64) string {
	switch {
	case score >= 0.7:
		return StressLevelHigh
	case score >= 0.4:
		return StressLevelMedium
	default:
		return StressLevelLow
	}
}

func clampUnit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
