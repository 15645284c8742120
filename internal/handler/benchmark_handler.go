package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"llmboard/internal/apperr"
	"llmboard/internal/middleware"
	"llmboard/internal/repository/mysql"
	"llmboard/internal/service"
	"llmboard/internal/validator"
)

type BenchmarkHandler struct {
	svc *service.BenchmarkService
}

func NewBenchmarkHandler(db *gorm.DB) *BenchmarkHandler {
	return &BenchmarkHandler{
		svc: service.NewBenchmarkService(db),
	}
}

// Submit 手动提交接口
func (h *BenchmarkHandler) Submit(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)

	var req validator.BenchmarkSubmit
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid payload"})
		return
	}

	b, err := h.svc.Submit(c.Request.Context(), ident, &req)
	if err != nil {
		if ve, ok := apperr.AsValidation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid payload", "violations": ve.Violations})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "submit failed"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// List 已核验记录列表接口，过滤全部可选、精确匹配
func (h *BenchmarkHandler) List(c *gin.Context) {
	var f mysql.ListFilters
	if v := c.Query("hardware_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid hardware_id"})
			return
		}
		f.HardwareID = id
	}
	if v := c.Query("model_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid model_id"})
			return
		}
		f.ModelID = id
	}
	f.Engine = c.Query("engine")
	f.OS = c.Query("os")
	f.Sort = c.Query("sort")
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid limit"})
			return
		}
		f.Limit = n
	}

	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Detail 详情接口，连取硬件和模型
func (h *BenchmarkHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid benchmark id"})
		return
	}

	detail, err := h.svc.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 1, "msg": "benchmark not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "detail failed"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Import llama-bench 批量导入接口
func (h *BenchmarkHandler) Import(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)

	var raw []json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "expected an array of llama-bench JSON objects"})
		return
	}

	count, err := h.svc.Import(c.Request.Context(), ident, raw)
	if err != nil {
		if ve, ok := apperr.AsValidation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": ve.Violations[0].Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "import failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "count": count})
}

// Leaderboard 硬件排行榜接口
func (h *BenchmarkHandler) Leaderboard(c *gin.Context) {
	rows, err := h.svc.Leaderboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": "leaderboard failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows})
}
