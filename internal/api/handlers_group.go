package api

import "stressease/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler        *handler.UserHandler
	MoodHandler        *handler.MoodHandler
	QuizHandler        *handler.QuizHandler
	SummaryHandler     *handler.SummaryHandler
	LeaderboardHandler *handler.LeaderboardHandler
	PredictHandler     *handler.PredictHandler
	WsHandler          *handler.WsHandler
}
