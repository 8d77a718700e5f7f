package recipe

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-slot/internal/core/spoonacular"
	"recipe-slot/internal/infrastructure/storage"
	"recipe-slot/internal/infrastructure/storage/sqlite"
	"recipe-slot/internal/pkg/common"
)

// fakeProvider 測試用供應商
type fakeProvider struct {
	random    []spoonacular.RecipePayload
	hits      []spoonacular.SearchHit
	details   map[int64]*spoonacular.RecipePayload
	randomErr error
	detailErr error
	infoCalls int
}

func (f *fakeProvider) Random(_ context.Context, _ spoonacular.RandomOptions) ([]spoonacular.RecipePayload, error) {
	return f.random, f.randomErr
}

func (f *fakeProvider) FindByIngredients(_ context.Context, ingredients []string, _ spoonacular.SearchOptions) ([]spoonacular.SearchHit, error) {
	if len(ingredients) == 0 {
		return nil, common.NewValidationError("at least one ingredient is required")
	}
	return f.hits, nil
}

func (f *fakeProvider) GetInformation(_ context.Context, id int64) (*spoonacular.RecipePayload, error) {
	f.infoCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if payload, ok := f.details[id]; ok {
		return payload, nil
	}
	return nil, common.ErrRecipeNotFound
}

func newTestService(t *testing.T, provider *fakeProvider) (*Service, storage.Store) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewService(provider, store, 25), store
}

func TestServiceRandomPersistsRecipes(t *testing.T) {
	provider := &fakeProvider{
		random: []spoonacular.RecipePayload{
			{ID: 100, Title: "Rice Bowl", Servings: 2, ReadyInMinutes: 20,
				ExtendedIngredients: []spoonacular.IngredientPayload{{Name: "rice", Amount: 1, Unit: "cup", Original: "1 cup rice"}}},
			{ID: 0, Title: "invalid"}, // 無效資料略過，不中斷整批
		},
	}
	svc, store := newTestService(t, provider)

	ranked, totalFound, err := svc.Random(context.Background(), DiscoverOptions{Number: 2}, common.Preferences{MaxSpiciness: common.SpicinessAny})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, totalFound)

	// 取回的食譜寫入本地快取
	cached, err := store.GetRecipeByExternalID(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "Rice Bowl", cached.Title)
}

func TestServiceSearchByIngredients(t *testing.T) {
	provider := &fakeProvider{
		hits: []spoonacular.SearchHit{
			{ID: 1, Title: "Full", UsedCount: 2,
				UsedIngredients: []spoonacular.IngredientPayload{
					{Name: "chicken", Amount: 1, Original: "1 chicken"},
					{Name: "rice", Amount: 1, Original: "1 cup rice"},
				}},
			{ID: 2, Title: "Partial", UsedCount: 1,
				UsedIngredients: []spoonacular.IngredientPayload{{Name: "chicken", Amount: 1, Original: "1 chicken"}}},
		},
		details: map[int64]*spoonacular.RecipePayload{
			1: {ID: 1, Title: "Full", Servings: 2, ReadyInMinutes: 25,
				ExtendedIngredients: []spoonacular.IngredientPayload{
					{Name: "chicken", Amount: 1, Original: "1 chicken"},
					{Name: "rice", Amount: 1, Original: "1 cup rice"},
				}},
		},
	}
	svc, _ := newTestService(t, provider)

	groups, err := svc.SearchByIngredients(context.Background(), []string{"chicken", "rice"},
		DiscoverOptions{}, common.Preferences{MaxSpiciness: common.SpicinessAny})
	require.NoError(t, err)
	require.NotEmpty(t, groups)

	// 全數命中組在前；詳情缺漏的食譜以搜尋結果降級組出，仍在結果中
	assert.Equal(t, 2, groups[0].MatchCount)
	require.Len(t, groups[0].Recipes, 1)
	assert.Equal(t, "Full", groups[0].Recipes[0].Title)

	last := groups[len(groups)-1]
	assert.Len(t, last.Recipes, 2)
}

func TestServiceSearchMatchCountComputedLocally(t *testing.T) {
	// 供應商低報 usedIngredientCount；命中數以詳情的食材清單重算
	provider := &fakeProvider{
		hits: []spoonacular.SearchHit{{ID: 7, Title: "Chicken Fried Rice", UsedCount: 1}},
		details: map[int64]*spoonacular.RecipePayload{
			7: {ID: 7, Title: "Chicken Fried Rice", Servings: 2, ReadyInMinutes: 20,
				ExtendedIngredients: []spoonacular.IngredientPayload{
					{Name: "chicken thighs", Amount: 2, Original: "2 chicken thighs"},
					{Name: "jasmine rice", Amount: 1, Unit: "cup", Original: "1 cup jasmine rice"},
				}},
		},
	}
	svc, _ := newTestService(t, provider)

	groups, err := svc.SearchByIngredients(context.Background(), []string{"chicken", "rice"},
		DiscoverOptions{}, common.Preferences{MaxSpiciness: common.SpicinessAny})
	require.NoError(t, err)
	require.NotEmpty(t, groups)

	assert.Equal(t, 2, groups[0].MatchCount)
	require.Len(t, groups[0].Recipes, 1)
	assert.Equal(t, 2, groups[0].Recipes[0].MatchCount)
}

func TestServiceGetByIDUsesCacheFirst(t *testing.T) {
	provider := &fakeProvider{
		details: map[int64]*spoonacular.RecipePayload{
			200: {ID: 200, Title: "Remote", Servings: 4},
		},
	}
	svc, store := newTestService(t, provider)

	// 未快取：向供應商抓取並寫入
	r, err := svc.GetByID(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, "Remote", r.Title)
	assert.Equal(t, 1, provider.infoCalls)

	// 已快取（以外部 ID 查得）：不再呼叫供應商
	again, err := svc.GetByID(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, r.ExternalID, again.ExternalID)
	assert.Equal(t, 1, provider.infoCalls)

	// 內部 ID 也查得到
	byInternal, err := svc.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Remote", byInternal.Title)

	_, err = store.GetRecipeByExternalID(context.Background(), 200)
	assert.NoError(t, err)
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService(t, &fakeProvider{})

	_, err := svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
}
