package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"llmboard/internal/apperr"
	"llmboard/internal/middleware"
	"llmboard/internal/service"
)

type UpvoteHandler struct {
	svc *service.UpvoteService
}

func NewUpvoteHandler(db *gorm.DB) *UpvoteHandler {
	return &UpvoteHandler{
		svc: service.NewUpvoteService(db),
	}
}

// Toggle 点赞开关接口
func (h *UpvoteHandler) Toggle(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	bid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	voted, err := h.svc.Toggle(c.Request.Context(), ident, bid)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": 1, "msg": "benchmark not found"})
		case errors.Is(err, apperr.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"code": 1, "msg": "concurrent vote, retry"})
		case errors.Is(err, service.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"code": 1, "msg": "authentication required"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "upvoted": voted})
}

// IsVoted 当前用户对该条是否在赞
func (h *UpvoteHandler) IsVoted(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	bid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	voted, err := h.svc.IsVoted(c.Request.Context(), ident, bid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "upvoted": voted})
}

// Count 点赞计数接口
func (h *UpvoteHandler) Count(c *gin.Context) {
	bid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	cnt, err := h.svc.GetCountWithLock(c.Request.Context(), bid)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 1, "msg": "benchmark not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "count": cnt})
}
