package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-slot/internal/pkg/common"
)

// SavedRequest 收藏／取消收藏的請求
type SavedRequest struct {
	RecipeID int64 `json:"recipeId" binding:"required"`
}

// TriedRequest 標記已試食譜的請求
type TriedRequest struct {
	RecipeID int64   `json:"recipeId" binding:"required"`
	Rating   *int    `json:"rating,omitempty"` // 1-5
	Notes    *string `json:"notes,omitempty"`
}

// ListSaved 取得已收藏食譜
// GET /api/v1/recipes/saved
func (h *Handler) ListSaved(c *gin.Context) {
	saved, err := h.store.ListSavedRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": saved, "count": len(saved)})
}

// Save 收藏食譜，重複收藏視為成功並以 alreadyExists 標示
// POST /api/v1/recipes/saved
func (h *Handler) Save(c *gin.Context) {
	var req SavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("recipeId is required"))
		return
	}

	// 先確保食譜在本地快取（必要時向供應商抓取）
	r, err := h.service.GetByID(c.Request.Context(), req.RecipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	existed, err := h.store.UpsertSavedRecipe(c.Request.Context(), r.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Recipe saved"
	if existed {
		message = "Recipe already saved"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       message,
		"recipeId":      r.ID,
		"alreadyExists": existed,
	})
}

// Unsave 取消收藏，不存在時視為成功
// DELETE /api/v1/recipes/saved
func (h *Handler) Unsave(c *gin.Context) {
	var req SavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("recipeId is required"))
		return
	}

	if err := h.store.DeleteSavedRecipe(c.Request.Context(), h.resolveRecipeID(c, req.RecipeID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Recipe removed from saved"})
}

// ListTried 取得已試食譜
// GET /api/v1/recipes/tried
func (h *Handler) ListTried(c *gin.Context) {
	tried, err := h.store.ListTriedRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": tried, "count": len(tried)})
}

// MarkTried 標記已試食譜，重複標記更新評分與筆記
// POST /api/v1/recipes/tried
// PUT  /api/v1/recipes/tried
func (h *Handler) MarkTried(c *gin.Context) {
	var req TriedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("recipeId is required"))
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		respondError(c, common.NewValidationError("rating must be between 1 and 5"))
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), req.RecipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	existed, err := h.store.UpsertTriedRecipe(c.Request.Context(), r.ID, req.Rating, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Recipe marked as tried"
	if existed {
		message = "Tried recipe updated"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       message,
		"recipeId":      r.ID,
		"alreadyExists": existed,
	})
}

// UnmarkTried 移除已試紀錄，不存在時視為成功
// DELETE /api/v1/recipes/tried
func (h *Handler) UnmarkTried(c *gin.Context) {
	var req SavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("recipeId is required"))
		return
	}

	if err := h.store.DeleteTriedRecipe(c.Request.Context(), h.resolveRecipeID(c, req.RecipeID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Tried record removed"})
}

// resolveRecipeID 把請求中的 ID 換成內部 ID。快取查不到時
// 原樣回傳，後續刪除本就是冪等操作。
func (h *Handler) resolveRecipeID(c *gin.Context, id int64) int64 {
	if r, err := h.store.GetRecipeByID(c.Request.Context(), id); err == nil {
		return r.ID
	}
	if r, err := h.store.GetRecipeByExternalID(c.Request.Context(), id); err == nil {
		return r.ID
	}
	return id
}
