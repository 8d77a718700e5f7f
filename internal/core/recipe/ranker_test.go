package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-slot/internal/pkg/common"
)

func rankedFixture(title string, ingredientNames ...string) *common.Recipe {
	ingredients := make([]common.Ingredient, len(ingredientNames))
	for i, name := range ingredientNames {
		ingredients[i] = common.Ingredient{Name: name, Amount: 1, OriginalString: "1 " + name}
	}
	return &common.Recipe{
		Title:          title,
		ReadyInMinutes: 30,
		Servings:       4,
		Ingredients:    ingredients,
	}
}

func TestAnnotatePriorityOrdering(t *testing.T) {
	prefs := common.Preferences{
		Allergies: []string{"dairy"},
		Diets:     []string{"vegetarian"},
	}

	// a：無過敏原且符合飲食法，b：僅符合飲食法，c：兩者皆否
	a := Annotate(rankedFixture("safe", "rice", "tomato"), prefs)
	b := Annotate(rankedFixture("dairy only", "rice", "cheese"), prefs)
	c := Annotate(rankedFixture("both", "chicken", "cheese"), prefs)

	assert.Equal(t, 1100, a.PriorityScore)
	assert.Equal(t, 100, b.PriorityScore)
	assert.Equal(t, 0, c.PriorityScore)
	assert.Greater(t, a.PriorityScore, b.PriorityScore)
	assert.Greater(t, b.PriorityScore, c.PriorityScore)

	recipes := []RankedRecipe{c, b, a}
	SortByPriority(recipes)
	assert.Equal(t, "safe", recipes[0].Title)
	assert.Equal(t, "dairy only", recipes[1].Title)
	assert.Equal(t, "both", recipes[2].Title)
}

func TestAnnotateWarnings(t *testing.T) {
	prefs := common.Preferences{
		Allergies: []string{"dairy", "nuts"},
		Diets:     []string{"vegan"},
	}
	ranked := Annotate(rankedFixture("cheesy chicken", "chicken", "cheese", "almond"), prefs)

	require.Len(t, ranked.Warnings, 2)
	assert.Equal(t, "allergy", ranked.Warnings[0].Type)
	assert.Equal(t, "critical", ranked.Warnings[0].Level)
	assert.Equal(t, "⚠️ CAUTION: Contains Dairy, Nuts", ranked.Warnings[0].Message)
	assert.Equal(t, "dietary", ranked.Warnings[1].Type)
	assert.Equal(t, "warning", ranked.Warnings[1].Level)
	assert.Equal(t, "⚠️ CAUTION: Not Vegan", ranked.Warnings[1].Message)
}

func TestAnnotateSafeRecipeNoWarnings(t *testing.T) {
	ranked := Annotate(rankedFixture("plain rice", "rice"), common.Preferences{
		Allergies: []string{"dairy"},
	})
	assert.Empty(t, ranked.Warnings)
	assert.Empty(t, ranked.MatchedAllergens)
}

func TestApplyFiltersReadyTime(t *testing.T) {
	quick := Annotate(rankedFixture("quick", "rice"), common.Preferences{})
	quick.ReadyInMinutes = 20
	slow := Annotate(rankedFixture("slow", "rice"), common.Preferences{})
	slow.ReadyInMinutes = 90

	filtered := ApplyFilters([]RankedRecipe{quick, slow}, common.Preferences{
		MaxReadyTime: 30, MaxSpiciness: common.SpicinessAny,
	})
	require.Len(t, filtered, 1)
	assert.Equal(t, "quick", filtered[0].Title)

	// 120 分鐘以上視為不限制
	unlimited := ApplyFilters([]RankedRecipe{quick, slow}, common.Preferences{
		MaxReadyTime: common.MaxReadyTimeUnlimited, MaxSpiciness: common.SpicinessAny,
	})
	assert.Len(t, unlimited, 2)
}

func TestApplyFiltersSpiciness(t *testing.T) {
	mild := Annotate(rankedFixture("mild", "rice"), common.Preferences{})
	hot := Annotate(rankedFixture("hot", "habanero"), common.Preferences{})
	hot.Spiciness = 5

	filtered := ApplyFilters([]RankedRecipe{mild, hot}, common.Preferences{
		MaxSpiciness: 2,
	})
	require.Len(t, filtered, 1)
	assert.Equal(t, "mild", filtered[0].Title)

	// 哨兵值 6 表示不限制
	unlimited := ApplyFilters([]RankedRecipe{mild, hot}, common.Preferences{
		MaxSpiciness: common.SpicinessAny,
	})
	assert.Len(t, unlimited, 2)
}

func TestApplyFiltersAllergenKeepsNonEmpty(t *testing.T) {
	prefs := common.Preferences{Allergies: []string{"dairy"}, MaxSpiciness: common.SpicinessAny}

	safe := Annotate(rankedFixture("safe", "rice"), prefs)
	unsafe := Annotate(rankedFixture("unsafe", "cheese"), prefs)

	// 安全子集非空：只留安全者
	filtered := ApplyFilters([]RankedRecipe{safe, unsafe}, prefs)
	require.Len(t, filtered, 1)
	assert.Equal(t, "safe", filtered[0].Title)

	// 全部含過敏原：保留原清單（帶警告）而非回傳空結果
	filtered = ApplyFilters([]RankedRecipe{unsafe}, prefs)
	require.Len(t, filtered, 1)
	assert.Equal(t, "unsafe", filtered[0].Title)
}

func TestCountMatches(t *testing.T) {
	ingredients := []common.Ingredient{
		{Name: "boneless chicken thighs"},
		{Name: "jasmine rice"},
		{Name: "scallions"},
	}

	// 子字串比對，不分大小寫，每個搜尋詞至多計一次
	assert.Equal(t, 2, CountMatches(ingredients, []string{"Chicken", "rice"}))
	assert.Equal(t, 1, CountMatches(ingredients, []string{"rice", "tofu"}))
	assert.Equal(t, 0, CountMatches(ingredients, []string{"beef"}))
	assert.Equal(t, 0, CountMatches(nil, []string{"chicken"}))
	assert.Equal(t, 1, CountMatches(ingredients, []string{" rice ", ""}))
}

func TestCascade(t *testing.T) {
	prefs := common.Preferences{MaxSpiciness: common.SpicinessAny}

	requested := []string{"chicken", "rice"}
	full := Annotate(rankedFixture("full match", "chicken", "rice"), prefs)
	full.MatchCount = CountMatches(full.Ingredients, requested)
	partial := Annotate(rankedFixture("partial", "chicken"), prefs)
	partial.MatchCount = CountMatches(partial.Ingredients, requested)

	groups := Cascade([]RankedRecipe{partial, full}, 2)
	require.Len(t, groups, 2)

	assert.Equal(t, 2, groups[0].MatchCount)
	assert.False(t, groups[0].IsFallback)
	require.Len(t, groups[0].Recipes, 1)
	assert.Equal(t, "full match", groups[0].Recipes[0].Title)

	// 次級組包含所有命中 >= 1 者，組間重疊
	assert.Equal(t, 1, groups[1].MatchCount)
	assert.Len(t, groups[1].Recipes, 2)
}

func TestCascadeFallback(t *testing.T) {
	prefs := common.Preferences{MaxSpiciness: common.SpicinessAny}

	recipes := make([]RankedRecipe, 0, 7)
	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		r := Annotate(rankedFixture(title, "chicken"), prefs)
		r.MatchCount = 1
		recipes = append(recipes, r)
	}

	groups := Cascade(recipes, 3)
	require.NotEmpty(t, groups)

	last := groups[len(groups)-1]
	assert.True(t, last.IsFallback)
	assert.LessOrEqual(t, len(last.Recipes), 5)
}

func TestCascadeEmpty(t *testing.T) {
	assert.Nil(t, Cascade(nil, 3))
	assert.Nil(t, Cascade([]RankedRecipe{}, 0))
}
