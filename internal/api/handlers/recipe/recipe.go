package recipe

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	recipeService "recipe-slot/internal/core/recipe"
	"recipe-slot/internal/infrastructure/storage"
	"recipe-slot/internal/pkg/common"
)

// Handler 食譜處理程序
type Handler struct {
	service *recipeService.Service
	store   storage.Store
}

// NewHandler 創建食譜處理程序
func NewHandler(service *recipeService.Service, store storage.Store) *Handler {
	return &Handler{service: service, store: store}
}

// RandomResponse 隨機食譜響應。
// TotalFound 是過濾前筆數，Filtered 是被偏好條件剔除的筆數。
type RandomResponse struct {
	Recipes        []recipeService.RankedRecipe `json:"recipes"`
	Count          int                          `json:"count"`
	TotalFound     int                          `json:"totalFound"`
	Filtered       int                          `json:"filtered"`
	FiltersApplied common.Preferences           `json:"filtersApplied"`
}

// SearchResponse 以食材搜尋的響應
type SearchResponse struct {
	Groups      []recipeService.MatchGroup `json:"groups"`
	Ingredients []string                   `json:"ingredients"`
}

// Random 取得隨機食譜，依查詢參數過濾排序
// GET /api/v1/recipes/random
func (h *Handler) Random(c *gin.Context) {
	prefs := parsePreferences(c)
	opts := recipeService.DiscoverOptions{
		Number:   parseIntQuery(c, "number", 10),
		Cuisine:  c.Query("cuisine"),
		MealType: c.Query("type"),
		Tags:     common.SplitCSV(c.Query("tags")),
	}

	recipes, totalFound, err := h.service.Random(c.Request.Context(), opts, prefs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, RandomResponse{
		Recipes:        recipes,
		Count:          len(recipes),
		TotalFound:     totalFound,
		Filtered:       totalFound - len(recipes),
		FiltersApplied: prefs,
	})
}

// ByIngredients 以手邊食材搜尋食譜，回傳命中數分組
// GET /api/v1/recipes/by-ingredients?ingredients=chicken,rice
func (h *Handler) ByIngredients(c *gin.Context) {
	ingredients := common.SplitCSV(c.Query("ingredients"))
	if len(ingredients) == 0 {
		respondError(c, common.NewValidationError("ingredients query parameter is required"))
		return
	}

	prefs := parsePreferences(c)
	opts := recipeService.DiscoverOptions{
		Cuisine:  c.Query("cuisine"),
		MealType: c.Query("type"),
	}

	groups, err := h.service.SearchByIngredients(c.Request.Context(), ingredients, opts, prefs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Groups: groups, Ingredients: ingredients})
}

// GetByID 取得單一食譜詳情
// GET /api/v1/recipes/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// ClearUserData 清除使用者資料（已存、已試、儲藏室），保留食譜快取
// DELETE /api/v1/recipes/all
func (h *Handler) ClearUserData(c *gin.Context) {
	if err := h.service.ClearUserData(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	common.LogInfo("使用者資料已清除")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All user data cleared"})
}

// parsePreferences 從查詢參數組出使用者偏好
func parsePreferences(c *gin.Context) common.Preferences {
	return common.Preferences{
		Allergies:    common.SplitCSV(c.Query("allergies")),
		Intolerances: common.SplitCSV(c.Query("intolerances")),
		Diets:        common.SplitCSV(c.Query("diets")),
		MaxReadyTime: parseIntQuery(c, "maxReadyTime", common.MaxReadyTimeUnlimited),
		MaxSpiciness: parseIntQuery(c, "maxSpiciness", common.SpicinessAny),
	}
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, common.NewValidationError("invalid recipe id"))
		return 0, false
	}
	return id, true
}

// respondError 依錯誤類型輸出對應的 HTTP 響應
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
