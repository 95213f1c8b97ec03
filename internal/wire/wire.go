package wire

import (
	"stressease/internal/api"
	"stressease/internal/api/config"
	"stressease/internal/api/handler"
	"stressease/internal/job"
	"stressease/internal/pkg/cron"
	"stressease/internal/pkg/kafka"
	mongopkg "stressease/internal/pkg/mongo"
	"stressease/internal/repository"
	"stressease/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	quizRepo := repository.NewQuizRepo(db)
	cycleRepo := repository.NewQuizCycleRepo(db)
	rollupRepo := repository.NewRollupRepo(db)
	metricRepo := repository.NewDailyMetricRepo(db)

	moodRepo := mongopkg.NewMoodRepo(mongoDB)
	profileRepo := mongopkg.NewProfileRepo(mongoDB)

	userService := service.NewUserService(userRepo)
	moodService := service.NewMoodService(moodRepo, metricRepo)
	quizService := service.NewQuizService(quizRepo, cycleRepo, rollupRepo)
	aggregateService := service.NewAggregateService(moodService, quizRepo, metricRepo, profileRepo)
	leaderboardService := service.NewLeaderboardService(userRepo, profileRepo)
	predictionService := service.NewPredictionService()

	handlers := &api.HandlersGroup{
		UserHandler:        handler.NewUserHandler(userService),
		MoodHandler:        handler.NewMoodHandler(moodService),
		QuizHandler:        handler.NewQuizHandler(quizService),
		SummaryHandler:     handler.NewSummaryHandler(aggregateService),
		LeaderboardHandler: handler.NewLeaderboardHandler(leaderboardService),
		PredictHandler:     handler.NewPredictHandler(predictionService),
		WsHandler:          handler.NewWsHandler(aggregateService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, metricRepo)
	if err != nil {
		return nil, err
	}

	leaderboardJob := job.NewLeaderboardRefreshJob(aggregateService, leaderboardService)
	retentionJob := job.NewMetricRetentionJob(metricRepo)
	cronMgr := cron.NewCronManager(leaderboardJob, retentionJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
