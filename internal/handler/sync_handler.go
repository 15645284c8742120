package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"llmboard/internal/pkg"
	"llmboard/internal/service"
)

type SyncHandler struct {
	svc *service.RegistryService
}

func NewSyncHandler(db *gorm.DB, hf *pkg.HFClient) *SyncHandler {
	return &SyncHandler{
		svc: service.NewRegistryService(db, hf),
	}
}

// HfSync 外部仓库元数据回填，由外部调度器定时打这个接口
func (h *SyncHandler) HfSync(c *gin.Context) {
	updated, err := h.svc.SyncAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "sync failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "updated": updated})
}
