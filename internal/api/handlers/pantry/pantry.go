package pantry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	pantryService "recipe-slot/internal/core/pantry"
	"recipe-slot/internal/pkg/common"
)

// Handler 儲藏室處理程序
type Handler struct {
	service *pantryService.Service
}

// NewHandler 創建儲藏室處理程序
func NewHandler(service *pantryService.Service) *Handler {
	return &Handler{service: service}
}

// AddRequest 加入儲藏室食材
type AddRequest struct {
	Name string `json:"name" binding:"required"`
}

// List 取得儲藏室所有食材
// GET /api/v1/pantry
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": items, "count": len(items)})
}

// Add 加入食材（同名冪等）
// POST /api/v1/pantry
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("ingredient name is required"))
		return
	}

	item, err := h.service.Add(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Remove 移除食材（冪等）。路徑參數可以是 ID 或名稱。
// DELETE /api/v1/pantry/:id
func (h *Handler) Remove(c *gin.Context) {
	param := c.Param("id")
	if id, err := strconv.ParseInt(param, 10, 64); err == nil && id > 0 {
		if err := h.service.Remove(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if err := h.service.RemoveByName(c.Request.Context(), param); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Clear 清空儲藏室
// DELETE /api/v1/pantry
func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondError(c *gin.Context, err error) {
	var custom *common.CustomError
	switch {
	case common.IsValidationError(err):
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
	case errors.As(err, &custom):
		c.JSON(custom.Status, common.ErrorResponse{
			Code:    custom.Code,
			Message: custom.Message,
		})
	default:
		common.LogError("未預期的錯誤", zap.Error(err))
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Code:    common.ErrCodeInternalError,
			Message: "internal server error",
		})
	}
}
