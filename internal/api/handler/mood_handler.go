package handler

import (
	"stressease/internal/api/dto"
	"stressease/internal/pkg/response"
	"stressease/internal/pkg/util"
	"stressease/internal/service"

	"github.com/gin-gonic/gin"
)

type MoodHandler struct {
	moodSvc service.MoodService
}

func NewMoodHandler(moodSvc service.MoodService) *MoodHandler {
	return &MoodHandler{moodSvc: moodSvc}
}

func (s *MoodHandler) LogMood(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var moodDTO dto.LogMoodDTO
	err := c.ShouldBind(&moodDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&moodDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.moodSvc.LogMood(c.Request.Context(), userID, &moodDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MoodHandler) GetHistory(c *gin.Context) {
	userID := c.GetUint64("user_id")
	history, err := s.moodSvc.GetMoodHistory(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, history)
}
