package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"stressease/internal/api/config"
	"stressease/internal/api/dto"
)

func TestFallbackPrediction(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.PredictRequestDTO
		wantScore float64
		wantLevel string
	}{
		{
			name:      "worst case clamps to 1",
			req:       dto.PredictRequestDTO{MoodScore: 1, ChatCount: 30, QuizScore: 0},
			wantScore: 1.0,
			wantLevel: StressLevelHigh,
		},
		{
			name:      "best case is 0",
			req:       dto.PredictRequestDTO{MoodScore: 5, ChatCount: 0, QuizScore: 60},
			wantScore: 0,
			wantLevel: StressLevelLow,
		},
		{
			name:      "medium boundary",
			req:       dto.PredictRequestDTO{MoodScore: 1, ChatCount: 0, QuizScore: 60},
			wantScore: 0.4,
			wantLevel: StressLevelMedium,
		},
		{
			name:      "chat factor saturates at 15",
			req:       dto.PredictRequestDTO{MoodScore: 5, ChatCount: 999, QuizScore: 60},
			wantScore: 0.2,
			wantLevel: StressLevelLow,
		},
		{
			name:      "mixed features",
			req:       dto.PredictRequestDTO{MoodScore: 3, ChatCount: 0, QuizScore: 36},
			wantScore: 0.4,
			wantLevel: StressLevelMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback(&tt.req)
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.StressLevel != tt.wantLevel {
				t.Errorf("level = %s, want %s", got.StressLevel, tt.wantLevel)
			}
			if got.Confidence != fallbackConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, fallbackConfidence)
			}
			if got.Source != PredictionSourceFallback {
				t.Errorf("source = %s, want %s", got.Source, PredictionSourceFallback)
			}
		})
	}
}

func TestFallbackDeterministic(t *testing.T) {
	req := &dto.PredictRequestDTO{MoodScore: 2, ChatCount: 6, QuizScore: 25}
	first := Fallback(req)
	for i := 0; i < 10; i++ {
		again := Fallback(req)
		if *again != *first {
			t.Fatalf("fallback not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestPredictValidatesFeatures(t *testing.T) {
	svc := NewPredictionService()
	ctx := context.Background()

	bad := []dto.PredictRequestDTO{
		{MoodScore: 0, ChatCount: 0, QuizScore: 30},
		{MoodScore: 6, ChatCount: 0, QuizScore: 30},
		{MoodScore: 3, ChatCount: -1, QuizScore: 30},
		{MoodScore: 3, ChatCount: 1000, QuizScore: 30},
		{MoodScore: 3, ChatCount: 0, QuizScore: -1},
		{MoodScore: 3, ChatCount: 0, QuizScore: 61},
	}
	for _, req := range bad {
		if _, err := svc.Predict(ctx, &req); !errors.Is(err, ErrPredictFeatureInvalid) {
			t.Errorf("Predict(%+v): err = %v, want ErrPredictFeatureInvalid", req, err)
		}
	}
}

func TestPredictFallsBackWithoutRemote(t *testing.T) {
	// 未配置远端地址，应静默退回本地公式而不是报错
	config.Cfg.Prediction.URL = ""
	svc := NewPredictionService()

	got, err := svc.Predict(context.Background(), &dto.PredictRequestDTO{
		MoodScore: 2, ChatCount: 3, QuizScore: 40,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got.Source != PredictionSourceFallback {
		t.Errorf("source = %s, want %s", got.Source, PredictionSourceFallback)
	}
	want := Fallback(&dto.PredictRequestDTO{MoodScore: 2, ChatCount: 3, QuizScore: 40})
	if *got != *want {
		t.Errorf("result = %+v, want %+v", got, want)
	}
}

func TestClampUnit(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.7, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := clampUnit(tt.in); got != tt.want {
			t.Errorf("clampUnit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
