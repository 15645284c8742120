package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"llmboard/internal/service"
)

type ReputationHandler struct {
	svc *service.ReputationService
}

func NewReputationHandler(db *gorm.DB) *ReputationHandler {
	return &ReputationHandler{
		svc: service.NewReputationService(db),
	}
}

// Profile 用户积分聚合接口
func (h *ReputationHandler) Profile(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid user id"})
		return
	}

	profile, err := h.svc.Profile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "profile failed"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
