package grocery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	groceryService "recipe-slot/internal/core/grocery"
	"recipe-slot/internal/pkg/common"
)

// Handler 採購清單處理程序
type Handler struct {
	service *groceryService.Service
}

// NewHandler 創建採購清單處理程序
func NewHandler(service *groceryService.Service) *Handler {
	return &Handler{service: service}
}

// AddItemRequest 手動加入清單項目。數量以字串傳入，
// 支援 "1/2"、"1 1/2"、"half" 等寫法。
type AddItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Amount   string `json:"amount,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category,omitempty"`
}

// UpdateItemRequest 更新清單項目
type UpdateItemRequest struct {
	Name         string   `json:"name" binding:"required"`
	Amount       *float64 `json:"amount,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Priority     string   `json:"priority,omitempty"`
	StoreSection *string  `json:"storeSection,omitempty"`
	IsCompleted  bool     `json:"isCompleted"`
}

// AddRecipeRequest 把食譜加入清單
type AddRecipeRequest struct {
	RecipeID int64 `json:"recipeId" binding:"required"`
	Servings int   `json:"servings,omitempty"` // 目標份數，0 表示照食譜原始份數
}

// GetList 取得採購清單
// GET /api/v1/grocery-list
func (h *Handler) GetList(c *gin.Context) {
	list, err := h.service.GetList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AddItem 手動加入清單項目
// POST /api/v1/grocery-list/items
func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("item name is required"))
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), req.Name, req.Amount, req.Unit, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem 更新清單項目
// PUT /api/v1/grocery-list/items/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("invalid request body"))
		return
	}

	list, err := h.service.GetList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	item := &common.GroceryListItem{
		ID:           itemID,
		ListID:       list.ID,
		Name:         req.Name,
		Amount:       req.Amount,
		Unit:         req.Unit,
		Category:     req.Category,
		Priority:     req.Priority,
		StoreSection: req.StoreSection,
		IsCompleted:  req.IsCompleted,
	}
	if err := h.service.UpdateItem(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteItem 刪除清單項目（冪等）
// DELETE /api/v1/grocery-list/items/:id
func (h *Handler) DeleteItem(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearList 清空採購清單
// DELETE /api/v1/grocery-list
func (h *Handler) ClearList(c *gin.Context) {
	if err := h.service.ClearList(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddRecipe 把食譜食材調和進採購清單
// POST /api/v1/grocery-list/add-recipe
func (h *Handler) AddRecipe(c *gin.Context) {
	var req AddRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("recipeId is required"))
		return
	}

	result, err := h.service.AddRecipeToList(c.Request.Context(), req.RecipeID, req.Servings)
	if err != nil {
		respondError(c, err)
		return
	}

	common.LogInfo("食譜已加入採購清單",
		zap.String("recipe", result.RecipeTitle),
		zap.Int("added", result.Summary.ItemsAdded),
		zap.Int("updated", result.Summary.ItemsUpdated),
		zap.Int("skipped", result.Summary.ItemsSkipped),
	)
	c.JSON(http.StatusOK, result)
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, common.NewValidationError("invalid id"))
		return 0, false
	}
	return id, true
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
