package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-slot/internal/pkg/common"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"純數字", "2", 2},
		{"小數", "1.5", 1.5},
		{"簡單分數", "1/2", 0.5},
		{"帶分數", "1 1/2", 1.5},
		{"空字串", "", 1},
		{"空白字串", "   ", 1},
		{"無法解析", "abc", 1},
		{"half", "half", 0.5},
		{"quarter", "a quarter", 0.25},
		{"third", "one third", 0.333},
		{"eighth", "an eighth", 0.125},
		{"大寫分數字詞", "Half", 0.5},
		{"四分之三", "3/4", 0.75},
		{"分母為零", "1/0", 1},
		{"負數夾為零", "-2", 0},
		{"負分數夾為零", "-1/2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseQuantity(tt.raw), 1e-9)
		})
	}
}

func TestSmartUnit(t *testing.T) {
	tests := []struct {
		name       string
		ingredient string
		amount     float64
		rawUnit    string
		wantAmount float64
		wantUnit   string
	}{
		{"蛋換算為打", "eggs", 24, "", 2, "dozen"},
		{"單打蛋", "egg", 6, "", 1, "dozen"},
		{"葉菜成把", "spinach", 1, "", 1, "bunch"},
		{"葉菜複數", "fresh basil", 3, "", 3, "bunches"},
		{"結球蔬菜", "lettuce", 1, "", 1, "head"},
		{"微量香料", "salt", 0.1, "", 0.1, "pinch"},
		{"香料過量改茶匙", "salt", 0.5, "", 0.5, "tsp"},
		{"具體單位只縮寫", "flour", 2, "tablespoon", 2, "tbsp"},
		{"teaspoon 縮寫", "vanilla", 1, "teaspoons", 1, "tsp"},
		{"piece 視為無單位", "chicken breast", 2, "pieces", 2, "lbs"},
		{"單磅肉", "chicken breast", 1, "", 1, "lb"},
		{"少量肉改盎司", "bacon", 0.5, "", 0.5, "oz"},
		{"魚排", "salmon", 2, "", 2, "fillets"},
		{"乳品紙盒", "milk", 1, "", 1, "carton"},
		{"烘焙麵包", "baguette", 2, "", 2, "loaves"},
		{"大量液體成杯", "vegetable broth", 8, "", 8, "cups"},
		{"少量液體液盎司", "olive oil", 2, "", 2, "fl oz"},
		{"罐頭", "diced tomatoes", 2, "", 2, "cans"},
		{"穀物成杯", "rice", 3, "", 3, "cups"},
		{"單磅義大利麵", "spaghetti", 1, "", 1, "lb"},
		{"大量義大利麵", "spaghetti", 2, "", 2, "lbs"},
		{"麵粉成杯", "flour", 2, "", 2, "cups"},
		{"單杯麵粉", "flour", 1, "", 1, "cup"},
		{"麥片成杯", "granola", 3, "", 3, "cups"},
		{"麥片包裝", "granola", 1, "", 1, "package"},
		{"整顆蔬果", "onion", 2, "", 2, "whole"},
		{"無類別取整", "mystery thing", 2.4, "", 2, "items"},
		{"無類別小量轉盎司", "mystery thing", 0.5, "", 8, "oz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, unit := SmartUnit(tt.ingredient, tt.amount, tt.rawUnit)
			assert.InDelta(t, tt.wantAmount, amount, 1e-9)
			assert.Equal(t, tt.wantUnit, unit)
		})
	}
}

func TestSmartUnitCategoryOrder(t *testing.T) {
	// "chicken broth" 同時命中肉類與液體關鍵字，肉類優先
	_, unit := SmartUnit("chicken broth", 8, "")
	assert.Equal(t, "lbs", unit)
}

func TestScaleAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		from, to int
		want     float64
	}{
		{"兩倍份數", 2, 4, 8, 4},
		{"極小值兩位小數", 0.05, 4, 8, 0.1},
		{"小於一保留一位", 0.33, 4, 8, 0.7},
		{"四分之一刻度", 2.6, 4, 8, 5.25},
		{"大數取整", 7, 4, 8, 14},
		{"份數相同不變", 1.234, 4, 4, 1.234},
		{"無效原始份數不變", 2, 0, 8, 2},
		{"縮小份數", 4, 8, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScaleAmount(tt.amount, tt.from, tt.to), 1e-9)
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		ingredient string
		want       string
	}{
		{"fresh mozzarella", "dairy"},
		{"roma tomato", "produce"},
		{"ground beef", "meat"},
		{"all-purpose flour", "pantry"},
		{"frozen peas", "frozen"},
		{"orange juice", "produce"}, // 整詞命中 orange，生鮮優先於飲料
		{"sparkling water", "beverages"},
		{"unknown thing", "pantry"},
	}

	for _, tt := range tests {
		t.Run(tt.ingredient, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.ingredient))
		})
	}
}

func TestCategorizeWordBoundary(t *testing.T) {
	// grapeseed 不應因含 grape 而被歸入生鮮區
	assert.Equal(t, "pantry", Categorize("grapeseed oil"))
}

func TestDetectAllergens(t *testing.T) {
	t.Run("同義詞展開", func(t *testing.T) {
		found := DetectAllergens("fresh mozzarella cheese", []string{"dairy", "nuts"})
		assert.Equal(t, []string{"dairy"}, found)
	})

	t.Run("未知過敏原以自身比對", func(t *testing.T) {
		found := DetectAllergens("dragonfruit smoothie", []string{"dragonfruit"})
		assert.Equal(t, []string{"dragonfruit"}, found)
	})

	t.Run("標準過敏原直呼其名", func(t *testing.T) {
		found := DetectAllergens("chopped mixed nuts", []string{"nuts"})
		assert.Equal(t, []string{"nuts"}, found)
	})

	t.Run("名稱本身優先於同義詞", func(t *testing.T) {
		found := DetectAllergens("shellfish stock", []string{"shellfish"})
		assert.Equal(t, []string{"shellfish"}, found)
	})

	t.Run("回填的同義詞", func(t *testing.T) {
		assert.Equal(t, []string{"shellfish"}, DetectAllergens("fresh clams", []string{"shellfish"}))
		assert.Equal(t, []string{"fish"}, DetectAllergens("sea bass fillet", []string{"fish"}))
		assert.Equal(t, []string{"soy"}, DetectAllergens("miso paste", []string{"soy"}))
	})

	t.Run("無命中", func(t *testing.T) {
		assert.Empty(t, DetectAllergens("plain rice", []string{"dairy", "eggs"}))
	})

	t.Run("去除重複", func(t *testing.T) {
		found := DetectAllergens("milk and cheese", []string{"dairy", "Dairy"})
		assert.Equal(t, []string{"dairy"}, found)
	})
}

func TestRecipeAllergens(t *testing.T) {
	ingredients := []common.Ingredient{
		{Name: "flour", OriginalString: "2 cups flour"},
		{Name: "butter", OriginalString: "1 stick butter"},
		{Name: "shrimp", OriginalString: "1 lb shrimp"},
	}
	found := RecipeAllergens(ingredients)
	assert.ElementsMatch(t, []string{"dairy", "gluten", "shellfish"}, found)
}

func TestCheckDietaryCompliance(t *testing.T) {
	ingredients := []common.Ingredient{
		{Name: "chicken breast", OriginalString: "2 chicken breasts"},
		{Name: "rice", OriginalString: "1 cup rice"},
	}

	t.Run("素食不符", func(t *testing.T) {
		mismatches := CheckDietaryCompliance(ingredients, []string{"vegetarian"})
		assert.Equal(t, []string{"vegetarian"}, mismatches)
	})

	t.Run("生酮不符", func(t *testing.T) {
		mismatches := CheckDietaryCompliance(ingredients, []string{"keto"})
		assert.Equal(t, []string{"keto"}, mismatches)
	})

	t.Run("未知飲食法視為符合", func(t *testing.T) {
		assert.Empty(t, CheckDietaryCompliance(ingredients, []string{"carnivore"}))
	})

	t.Run("無飲食法", func(t *testing.T) {
		assert.Empty(t, CheckDietaryCompliance(ingredients, nil))
	})
}

func TestEstimateSpiciness(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []common.Ingredient
		want        int
	}{
		{"無辣味", []common.Ingredient{{Name: "flour"}, {Name: "sugar"}}, 0},
		{"溫和香料", []common.Ingredient{{Name: "paprika"}}, 1},
		{"墨西哥辣椒", []common.Ingredient{{Name: "jalapeño"}}, 3},
		{"最高辣度", []common.Ingredient{{Name: "ghost pepper"}}, 5},
		{"取最大不累加", []common.Ingredient{{Name: "paprika"}, {Name: "cayenne"}, {Name: "cumin"}}, 4},
		{"原始描述也比對", []common.Ingredient{{Name: "hot sauce blend", OriginalString: "2 tbsp sriracha"}}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateSpiciness(tt.ingredients))
		})
	}
}
