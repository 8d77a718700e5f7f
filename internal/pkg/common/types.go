package common

import (
	"strings"
	"time"
)

// Ingredient 食譜食材（從外部供應商資料轉換而來，掛上 Recipe 後不再修改）
type Ingredient struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`           // 小寫、去除前後空白的標準名稱
	Amount         float64 `json:"amount"`         // 數量（無法解析時預設 1）
	Unit           string  `json:"unit"`           // 小寫、去除前後空白
	OriginalString string  `json:"originalString"` // 原始文字，顯示給使用者
}

// Recipe 食譜（快取自外部供應商，以 external_id 去重）
type Recipe struct {
	ID             int64              `json:"id"`
	ExternalID     int64              `json:"externalId"`
	Title          string             `json:"title"`
	Image          string             `json:"image,omitempty"`
	ReadyInMinutes int                `json:"readyInMinutes"`
	Servings       int                `json:"servings"` // 最小 1，預設 4
	SourceURL      string             `json:"sourceUrl,omitempty"`
	Summary        string             `json:"summary,omitempty"`
	Instructions   string             `json:"instructions,omitempty"`
	Ingredients    []Ingredient       `json:"ingredients"`
	Nutrition      map[string]float64 `json:"nutrition,omitempty"`
	Spiciness      int                `json:"spiciness"` // 0-5
	Allergens      []string           `json:"allergens"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// GroceryList 採購清單（每個部署僅一份預設清單，首次存取時建立）
type GroceryList struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Items     []GroceryListItem `json:"items"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// GroceryListItem 採購清單項目（同一清單內名稱唯一，重複加入時合併數量）
type GroceryListItem struct {
	ID           int64     `json:"id"`
	ListID       int64     `json:"groceryListId"`
	Name         string    `json:"name"`
	Amount       *float64  `json:"amount,omitempty"`
	Unit         *string   `json:"unit,omitempty"`
	Category     *string   `json:"category,omitempty"`
	Priority     string    `json:"priority"` // high | medium | low
	StoreSection *string   `json:"storeSection,omitempty"`
	IsCompleted  bool      `json:"isCompleted"`
	RecipeID     *int64    `json:"recipeId,omitempty"`
	AddedAt      time.Time `json:"addedAt"`
}

// PantryIngredient 儲藏室食材（排除集合：已持有的食材不再加入採購清單）
type PantryIngredient struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"` // 小寫、唯一
	AddedAt    time.Time `json:"addedAt"`
	LastUsedAt time.Time `json:"lastUsedAt"`
}

// GroceryTemplate 採購清單範本
type GroceryTemplate struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Items       []GroceryTemplateItem `json:"items"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// GroceryTemplateItem 範本項目（儲存時原樣複製，不做數量合併）
type GroceryTemplateItem struct {
	ID         int64     `json:"id"`
	TemplateID int64     `json:"templateId"`
	Name       string    `json:"name"`
	Amount     *float64  `json:"amount,omitempty"`
	Unit       *string   `json:"unit,omitempty"`
	Category   *string   `json:"category,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SavedRecipe 已收藏食譜（以 recipe_id 去重）
type SavedRecipe struct {
	ID       int64     `json:"id"`
	RecipeID int64     `json:"recipeId"`
	Recipe   *Recipe   `json:"recipe,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// TriedRecipe 已嘗試食譜（重複標記時更新評分與筆記，不新增紀錄）
type TriedRecipe struct {
	ID       int64     `json:"id"`
	RecipeID int64     `json:"recipeId"`
	Recipe   *Recipe   `json:"recipe,omitempty"`
	Rating   *int      `json:"rating,omitempty"` // 1-5
	Notes    *string   `json:"notes,omitempty"`
	TriedAt  time.Time `json:"triedAt"`
}

// Preferences 使用者偏好（不持久化，由查詢參數帶入排序器）
type Preferences struct {
	Allergies    []string `json:"allergies"` // excludeIngredients，視為過敏原
	Intolerances []string `json:"intolerances"`
	Diets        []string `json:"diets"`
	MaxReadyTime int      `json:"maxReadyTime"` // 分鐘；>= 120 視為不限制
	MaxSpiciness int      `json:"maxSpiciness"` // 0-5；6 = 不限制
}

// SpicinessAny 辣度「不限制」哨兵值
const SpicinessAny = 6

// MaxReadyTimeUnlimited 烹調時間「不限制」門檻（分鐘）
const MaxReadyTimeUnlimited = 120

// Warning 食譜安全警告
type Warning struct {
	Type       string   `json:"type"`  // allergy | dietary
	Level      string   `json:"level"` // critical | warning
	Message    string   `json:"message"`
	Allergens  []string `json:"allergens,omitempty"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// SplitCSV 切割逗號分隔的查詢參數並轉小寫
func SplitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(raw), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Capitalize 首字母大寫（警告訊息顯示用）
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
