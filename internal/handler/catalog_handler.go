package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"llmboard/internal/repository/mysql"
)

// CatalogHandler 提交表单用的硬件/模型目录（只列已审核通过的）
type CatalogHandler struct {
	repo *mysql.CatalogRepository
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{
		repo: &mysql.CatalogRepository{DB: db},
	}
}

func (h *CatalogHandler) ListHardware(c *gin.Context) {
	list, err := h.repo.ListApprovedHardware(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "list hardware failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CatalogHandler) ListModels(c *gin.Context) {
	list, err := h.repo.ListApprovedModels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "list models failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
