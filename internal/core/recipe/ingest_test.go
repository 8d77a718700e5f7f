package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-slot/internal/core/spoonacular"
)

func TestFromPayload(t *testing.T) {
	payload := &spoonacular.RecipePayload{
		ID:             42,
		Title:          "  Spicy Chicken Curry ",
		Summary:        "<p>A <b>great</b> curry. Really tasty.</p>",
		Instructions:   "<ol><li>Chop.</li><li>Cook.</li></ol>",
		ReadyInMinutes: 45,
		Servings:       2,
		ExtendedIngredients: []spoonacular.IngredientPayload{
			{ID: 1, Name: " Chicken Breast ", Amount: 2, Unit: " LB ", Original: "2 lb chicken breast"},
			{ID: 2, Name: "cayenne", Amount: 0, Unit: "tsp", Original: "1 tsp cayenne"},
			{ID: 3, Name: "", Amount: 1, Original: ""},
		},
		Nutrition: &spoonacular.NutritionPayload{
			Nutrients: []spoonacular.NutrientPayload{
				{Name: "Calories", Amount: 480},
				{Name: "Saturated Fat", Amount: 6},
				{Name: "Fat", Amount: 14},
				{Name: "Net Carbohydrates", Amount: 20},
				{Name: "Carbohydrates", Amount: 28},
			},
		},
	}

	r, err := FromPayload(payload)
	require.NoError(t, err)

	assert.Equal(t, int64(42), r.ExternalID)
	assert.Equal(t, "Spicy Chicken Curry", r.Title)
	assert.Equal(t, placeholderImage, r.Image)

	// 空名稱且無原始文字的食材略過
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "chicken breast", r.Ingredients[0].Name)
	assert.Equal(t, "lb", r.Ingredients[0].Unit)
	// 數量缺漏補 1
	assert.InDelta(t, 1, r.Ingredients[1].Amount, 1e-9)

	// saturated fat 與 net carbohydrates 不覆蓋主欄位
	assert.InDelta(t, 14, r.Nutrition["fat"], 1e-9)
	assert.InDelta(t, 28, r.Nutrition["carbohydrates"], 1e-9)
	assert.InDelta(t, 480, r.Nutrition["calories"], 1e-9)

	// cayenne 推得辣度 4
	assert.Equal(t, 4, r.Spiciness)

	// HTML 已移除
	assert.NotContains(t, r.Summary, "<")
	assert.NotContains(t, r.Instructions, "<li>")
}

func TestFromPayloadDefaults(t *testing.T) {
	r, err := FromPayload(&spoonacular.RecipePayload{ID: 7, Title: "Plain"})
	require.NoError(t, err)
	assert.Equal(t, 30, r.ReadyInMinutes)
	assert.Equal(t, 4, r.Servings)
}

func TestFromPayloadInvalid(t *testing.T) {
	_, err := FromPayload(nil)
	assert.Error(t, err)

	_, err = FromPayload(&spoonacular.RecipePayload{ID: 0, Title: "x"})
	assert.Error(t, err)

	_, err = FromPayload(&spoonacular.RecipePayload{ID: 1, Title: "  "})
	assert.Error(t, err)
}

func TestFromSearchHit(t *testing.T) {
	hit := &spoonacular.SearchHit{
		ID:    9,
		Title: "Quick Stir Fry",
		UsedIngredients: []spoonacular.IngredientPayload{
			{Name: "chicken", Amount: 1, Unit: "lb", Original: "1 lb chicken"},
		},
		MissedIngredients: []spoonacular.IngredientPayload{
			{Name: "soy sauce", Amount: 2, Unit: "tbsp", Original: "2 tbsp soy sauce"},
		},
	}

	r := FromSearchHit(hit)
	assert.Equal(t, int64(9), r.ExternalID)
	assert.Equal(t, 30, r.ReadyInMinutes)
	assert.Equal(t, 4, r.Servings)
	assert.Len(t, r.Ingredients, 2)
	assert.Contains(t, r.Allergens, "soy")
}
