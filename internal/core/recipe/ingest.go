package recipe

import (
	"strings"

	"recipe-slot/internal/core/ingredient"
	"recipe-slot/internal/core/spoonacular"
	"recipe-slot/internal/pkg/common"
)

// placeholderImage 供應商未附圖片時的替代圖
const placeholderImage = "https://placehold.co/312x231?text=No+Image"

// nutritionFields 要保留的營養素欄位。比對供應商名稱時需排除
// saturated fat 與 net carbohydrates 這類含關鍵字的變體。
var nutritionFields = []struct {
	key     string
	match   string
	exclude string
}{
	{"calories", "calories", ""},
	{"protein", "protein", ""},
	{"fat", "fat", "saturated"},
	{"carbohydrates", "carbohydrates", "net"},
	{"fiber", "fiber", ""},
	{"sugar", "sugar", ""},
	{"sodium", "sodium", ""},
	{"cholesterol", "cholesterol", ""},
}

// FromPayload 將供應商回應轉為內部食譜。
// 所有欄位驗證與預設值集中於此，下游不再碰原始資料。
func FromPayload(payload *spoonacular.RecipePayload) (*common.Recipe, error) {
	if payload == nil || payload.ID == 0 {
		return nil, common.NewValidationError("recipe payload is missing an id")
	}
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return nil, common.NewValidationError("recipe payload is missing a title")
	}

	recipe := &common.Recipe{
		ExternalID:     payload.ID,
		Title:          title,
		Image:          payload.Image,
		ReadyInMinutes: payload.ReadyInMinutes,
		Servings:       payload.Servings,
		SourceURL:      payload.SourceURL,
		Summary:        common.FormatSummary(payload.Summary),
		Instructions:   common.FormatInstructions(payload.Instructions),
	}
	if !strings.HasPrefix(recipe.Image, "http") {
		recipe.Image = placeholderImage
	}
	if recipe.ReadyInMinutes <= 0 {
		recipe.ReadyInMinutes = 30
	}
	if recipe.Servings <= 0 {
		recipe.Servings = 4
	}

	recipe.Ingredients = coerceIngredients(payload.ExtendedIngredients)
	recipe.Nutrition = reduceNutrition(payload.Nutrition)
	recipe.Spiciness = ingredient.EstimateSpiciness(recipe.Ingredients)
	recipe.Allergens = ingredient.RecipeAllergens(recipe.Ingredients)

	return recipe, nil
}

// FromSearchHit 由搜尋結果組出降級食譜。
// 僅在詳情抓取失敗時使用，食材來自搜尋結果的 used/missed 清單。
func FromSearchHit(hit *spoonacular.SearchHit) *common.Recipe {
	ingredients := coerceIngredients(append(
		append([]spoonacular.IngredientPayload{}, hit.UsedIngredients...),
		hit.MissedIngredients...,
	))

	recipe := &common.Recipe{
		ExternalID:     hit.ID,
		Title:          hit.Title,
		Image:          hit.Image,
		ReadyInMinutes: 30,
		Servings:       4,
		Ingredients:    ingredients,
	}
	if !strings.HasPrefix(recipe.Image, "http") {
		recipe.Image = placeholderImage
	}
	recipe.Spiciness = ingredient.EstimateSpiciness(ingredients)
	recipe.Allergens = ingredient.RecipeAllergens(ingredients)
	return recipe
}

// coerceIngredients 標準化食材：名稱與單位轉小寫去空白，
// 數量缺漏時補 1，名稱與原始文字皆空者略過
func coerceIngredients(payloads []spoonacular.IngredientPayload) []common.Ingredient {
	ingredients := make([]common.Ingredient, 0, len(payloads))
	for _, p := range payloads {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		original := strings.TrimSpace(p.Original)
		if name == "" && original == "" {
			continue
		}
		amount := p.Amount
		if amount <= 0 {
			amount = 1
		}
		ingredients = append(ingredients, common.Ingredient{
			ID:             p.ID,
			Name:           name,
			Amount:         amount,
			Unit:           strings.ToLower(strings.TrimSpace(p.Unit)),
			OriginalString: original,
		})
	}
	return ingredients
}

// reduceNutrition 從供應商營養素清單萃取固定欄位
func reduceNutrition(payload *spoonacular.NutritionPayload) map[string]float64 {
	if payload == nil || len(payload.Nutrients) == 0 {
		return nil
	}

	nutrition := make(map[string]float64, len(nutritionFields))
	for _, nutrient := range payload.Nutrients {
		name := strings.ToLower(nutrient.Name)
		for _, field := range nutritionFields {
			if _, done := nutrition[field.key]; done {
				continue
			}
			if !strings.Contains(name, field.match) {
				continue
			}
			if field.exclude != "" && strings.Contains(name, field.exclude) {
				continue
			}
			nutrition[field.key] = nutrient.Amount
		}
	}
	if len(nutrition) == 0 {
		return nil
	}
	return nutrition
}
