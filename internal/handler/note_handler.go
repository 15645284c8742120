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

type NoteHandler struct {
	svc *service.NoteService
}

type CreateNoteReq struct {
	Content string `json:"content"`
}

func NewNoteHandler(db *gorm.DB) *NoteHandler {
	return &NoteHandler{
		svc: service.NewNoteService(db),
	}
}

// Create 发社区备注接口
func (h *NoteHandler) Create(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	bid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req CreateNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid payload"})
		return
	}

	note, err := h.svc.Create(c.Request.Context(), ident, bid, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": 1, "msg": "benchmark not found"})
		case errors.Is(err, service.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"code": 1, "msg": "authentication required"})
		default:
			if ve, ok := apperr.AsValidation(err); ok {
				c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid payload", "violations": ve.Violations})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "create note failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, note)
}

// List 备注列表接口
func (h *NoteHandler) List(c *gin.Context) {
	bid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	notes, err := h.svc.List(c.Request.Context(), bid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "list notes failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": notes})
}
