package api

import (
	"net/http"
	"stressease/internal/api/middleware"
	"stressease/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		moodGroup := apiGroup.Group("/mood")
		moodGroup.Use(middleware.AuthMiddleware())
		{
			moodGroup.POST("", group.MoodHandler.LogMood)
			moodGroup.GET("/history", group.MoodHandler.GetHistory)
		}

		quizGroup := apiGroup.Group("/quiz")
		quizGroup.Use(middleware.AuthMiddleware())
		{
			quizGroup.POST("/daily", group.QuizHandler.SubmitDaily)
			quizGroup.GET("/rollups", group.QuizHandler.GetRollups)
		}

		summaryGroup := apiGroup.Group("/summary")
		{
			// WS 走 query token 自行鉴权
			summaryGroup.GET("/live", group.WsHandler.LiveSummary)

			authGroup := summaryGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("", group.SummaryHandler.GetSummary)
				authGroup.POST("/refresh", group.SummaryHandler.Refresh)
			}
		}

		leaderboardGroup := apiGroup.Group("/leaderboard")
		leaderboardGroup.Use(middleware.AuthMiddleware())
		{
			leaderboardGroup.GET("", group.LeaderboardHandler.GetLeaderboard)
		}

		predictGroup := apiGroup.Group("/predict")
		predictGroup.Use(middleware.AuthMiddleware())
		{
			predictGroup.POST("", group.PredictHandler.Predict)
		}
	}

	return r
}
