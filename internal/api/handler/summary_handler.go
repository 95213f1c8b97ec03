package handler

import (
	"stressease/internal/pkg/response"
	"stressease/internal/service"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	aggregateSvc service.AggregateService
}

func NewSummaryHandler(aggregateSvc service.AggregateService) *SummaryHandler {
	return &SummaryHandler{aggregateSvc: aggregateSvc}
}

func (s *SummaryHandler) GetSummary(c *gin.Context) {
	userID := c.GetUint64("user_id")
	summary, err := s.aggregateSvc.GetSummary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// Refresh 强制整体重算，绕过缓存
func (s *SummaryHandler) Refresh(c *gin.Context) {
	userID := c.GetUint64("user_id")
	summary, err := s.aggregateSvc.Recompute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}
