package spoonacular

// RecipePayload 供應商回傳的完整食譜資料。
// 所有欄位解析集中於此，下游以型別安全的方式取用。
type RecipePayload struct {
	ID                  int64               `json:"id"`
	Title               string              `json:"title"`
	Image               string              `json:"image"`
	ReadyInMinutes      int                 `json:"readyInMinutes"`
	Servings            int                 `json:"servings"`
	SourceURL           string              `json:"sourceUrl"`
	Summary             string              `json:"summary"`
	Instructions        string              `json:"instructions"`
	ExtendedIngredients []IngredientPayload `json:"extendedIngredients"`
	Nutrition           *NutritionPayload   `json:"nutrition,omitempty"`
}

// IngredientPayload 供應商回傳的食材資料
type IngredientPayload struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original"`
}

// NutritionPayload 供應商回傳的營養資料
type NutritionPayload struct {
	Nutrients []NutrientPayload `json:"nutrients"`
}

// NutrientPayload 單一營養素
type NutrientPayload struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// SearchHit 以食材搜尋的單筆結果（不含完整食譜內容）
type SearchHit struct {
	ID                int64               `json:"id"`
	Title             string              `json:"title"`
	Image             string              `json:"image"`
	UsedIngredients   []IngredientPayload `json:"usedIngredients"`
	MissedIngredients []IngredientPayload `json:"missedIngredients"`
	UsedCount         int                 `json:"usedIngredientCount"`
	MissedCount       int                 `json:"missedIngredientCount"`
}

// randomResponse /recipes/random 的回應外層
type randomResponse struct {
	Recipes []RecipePayload `json:"recipes"`
}

// RandomOptions /recipes/random 的查詢選項
type RandomOptions struct {
	Number       int
	Tags         []string
	Cuisine      string
	MealType     string
	MaxReadyTime int // >= 120 視為不限制，不送出參數
}

// SearchOptions /recipes/findByIngredients 的查詢選項
type SearchOptions struct {
	Diets              []string
	Intolerances       []string
	Cuisine            string
	MealType           string
	ExcludeIngredients []string
}
