package handler

import (
	"stressease/internal/api/dto"
	"stressease/internal/pkg/response"
	"stressease/internal/pkg/util"
	"stressease/internal/service"

	"github.com/gin-gonic/gin"
)

type PredictHandler struct {
	predictionSvc service.PredictionService
}

func NewPredictHandler(predictionSvc service.PredictionService) *PredictHandler {
	return &PredictHandler{predictionSvc: predictionSvc}
}

func (s *PredictHandler) Predict(c *gin.Context) {
	var req dto.PredictRequestDTO
	err := c.ShouldBind(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}
	prediction, err := s.predictionSvc.Predict(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, prediction)
}
