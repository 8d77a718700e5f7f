package grocery

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-slot/internal/infrastructure/storage"
	"recipe-slot/internal/infrastructure/storage/sqlite"
	"recipe-slot/internal/pkg/common"
)

func newTestService(t *testing.T) (*Service, storage.Store) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewService(store), store
}

func seedRecipe(t *testing.T, store storage.Store, recipe *common.Recipe) int64 {
	t.Helper()
	id, err := store.UpsertRecipe(context.Background(), recipe)
	require.NoError(t, err)
	return id
}

func TestAddItemParsesFractions(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.AddItem(context.Background(), "flour", "1 1/2", "cups", "")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, *item.Amount, 1e-9)
	assert.Equal(t, "cup", *item.Unit)
	assert.Equal(t, "pantry", *item.Category)
}

func TestAddItemMergesDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "milk", "1", "carton", "")
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, "milk", "2", "carton", "")
	require.NoError(t, err)
	assert.InDelta(t, 3, *item.Amount, 1e-9)

	list, err := svc.GetList(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestAddRecipeToListScalesAndClassifies(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	recipeID := seedRecipe(t, store, &common.Recipe{
		ExternalID: 500,
		Title:      "Simple Bread",
		Servings:   4,
		Ingredients: []common.Ingredient{
			{Name: "flour", Amount: 2, Unit: "", OriginalString: "2 cups flour"},
		},
	})

	result, err := svc.AddRecipeToList(ctx, recipeID, 8)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Simple Bread", result.RecipeTitle)
	assert.True(t, result.ServingInfo.IsScaled)
	assert.Equal(t, 4, result.ServingInfo.OriginalServings)
	assert.Equal(t, 8, result.ServingInfo.TargetServings)
	assert.Equal(t, 1, result.Summary.ItemsAdded)

	list, err := svc.GetList(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	item := list.Items[0]
	assert.Equal(t, "2 cups flour", item.Name)
	assert.InDelta(t, 4, *item.Amount, 1e-9) // 2 杯 × (8/4)
	assert.Equal(t, "cup", *item.Unit)
	assert.Equal(t, "pantry", *item.Category)
	require.NotNil(t, item.RecipeID)
	assert.Equal(t, recipeID, *item.RecipeID)
}

func TestAddRecipeToListPantryExclusion(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := store.AddPantryItem(ctx, "olive oil")
	require.NoError(t, err)

	recipeID := seedRecipe(t, store, &common.Recipe{
		ExternalID: 501,
		Title:      "Salad",
		Servings:   2,
		Ingredients: []common.Ingredient{
			{Name: "olive oil", Amount: 2, Unit: "tbsp", OriginalString: "2 tbsp olive oil"},
			{Name: "tomato", Amount: 3, Unit: "", OriginalString: "3 tomatoes"},
		},
	})

	result, err := svc.AddRecipeToList(ctx, recipeID, 0)
	require.NoError(t, err)

	assert.False(t, result.ServingInfo.IsScaled)
	assert.Equal(t, 1, result.Summary.ItemsAdded)
	assert.Equal(t, 0, result.Summary.ItemsUpdated)
	assert.Equal(t, 1, result.Summary.ItemsSkipped)
	// 被略過的食材不計入處理數
	assert.Equal(t, 1, result.Summary.TotalProcessed)
	require.Len(t, result.Details.SkippedItems, 1)
	assert.Equal(t, "2 tbsp olive oil", result.Details.SkippedItems[0].Name)
	assert.Equal(t, "In pantry (already have)", result.Details.SkippedItems[0].Reason)

	list, err := svc.GetList(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestAddRecipeToListMergesRepeatedAdd(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	recipeID := seedRecipe(t, store, &common.Recipe{
		ExternalID: 502,
		Title:      "Rice Bowl",
		Servings:   2,
		Ingredients: []common.Ingredient{
			{Name: "rice", Amount: 2, Unit: "cup", OriginalString: "2 cups rice"},
		},
	})

	first, err := svc.AddRecipeToList(ctx, recipeID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Summary.ItemsAdded)

	second, err := svc.AddRecipeToList(ctx, recipeID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Summary.ItemsAdded)
	assert.Equal(t, 1, second.Summary.ItemsUpdated)

	list, err := svc.GetList(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.InDelta(t, 4, *list.Items[0].Amount, 1e-9)
}

func TestAddRecipeToListUnknownRecipe(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddRecipeToList(context.Background(), 999, 0)
	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
}

func TestTemplatesRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "eggs", "12", "", "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "milk", "1", "carton", "")
	require.NoError(t, err)

	template, err := svc.SaveAsTemplate(ctx, "Weekly basics", "staples")
	require.NoError(t, err)
	assert.Len(t, template.Items, 2)

	// skip-existing：既有項目不動、不合併
	require.NoError(t, svc.ClearList(ctx))
	_, err = svc.AddItem(ctx, "eggs", "6", "", "")
	require.NoError(t, err)

	list, err := svc.LoadTemplate(ctx, template.ID, false)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	for _, item := range list.Items {
		if item.Name == "eggs" {
			// 6 顆蛋換算為 1 打，保留原有項目
			assert.InDelta(t, 1, *item.Amount, 1e-9)
		}
	}

	// replace：先清空再套用
	list, err = svc.LoadTemplate(ctx, template.ID, true)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	require.NoError(t, svc.DeleteTemplate(ctx, template.ID))
	_, err = svc.LoadTemplate(ctx, template.ID, false)
	assert.ErrorIs(t, err, common.ErrTemplateNotFound)
}
