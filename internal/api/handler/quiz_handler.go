package handler

import (
	"stressease/internal/api/dto"
	"stressease/internal/pkg/response"
	"stressease/internal/pkg/util"
	"stressease/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizSvc service.QuizService
}

func NewQuizHandler(quizSvc service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

func (s *QuizHandler) SubmitDaily(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var quizDTO dto.DailyQuizDTO
	err := c.ShouldBind(&quizDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&quizDTO); err != nil {
		response.Error(c, err)
		return
	}
	result, err := s.quizSvc.SubmitDaily(c.Request.Context(), userID, &quizDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *QuizHandler) GetRollups(c *gin.Context) {
	userID := c.GetUint64("user_id")
	rollups, err := s.quizSvc.GetRollups(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rollups)
}
