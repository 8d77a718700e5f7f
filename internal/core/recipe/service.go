package recipe

import (
	"context"

	"go.uber.org/zap"

	"recipe-slot/internal/core/spoonacular"
	"recipe-slot/internal/infrastructure/storage"
	"recipe-slot/internal/pkg/common"
)

// Provider 外部食譜供應商介面
type Provider interface {
	Random(ctx context.Context, opts spoonacular.RandomOptions) ([]spoonacular.RecipePayload, error)
	FindByIngredients(ctx context.Context, ingredients []string, opts spoonacular.SearchOptions) ([]spoonacular.SearchHit, error)
	GetInformation(ctx context.Context, externalID int64) (*spoonacular.RecipePayload, error)
}

// Service 食譜服務：串接供應商、本地快取與安全排序
type Service struct {
	provider    Provider
	store       storage.Store
	detailLimit int
}

// NewService 創建食譜服務
func NewService(provider Provider, store storage.Store, detailLimit int) *Service {
	if detailLimit <= 0 {
		detailLimit = 25
	}
	return &Service{
		provider:    provider,
		store:       store,
		detailLimit: detailLimit,
	}
}

// DiscoverOptions 探索食譜的查詢選項
type DiscoverOptions struct {
	Number   int
	Cuisine  string
	MealType string
	Tags     []string
}

// Random 取得隨機食譜並依偏好過濾排序。
// 取回的食譜一律寫入本地快取，之後可離線讀取詳情。
// 第二個回傳值是過濾前的有效筆數，供回應統計使用。
func (s *Service) Random(ctx context.Context, opts DiscoverOptions, prefs common.Preferences) ([]RankedRecipe, int, error) {
	payloads, err := s.provider.Random(ctx, spoonacular.RandomOptions{
		Number:       opts.Number,
		Tags:         opts.Tags,
		Cuisine:      opts.Cuisine,
		MealType:     opts.MealType,
		MaxReadyTime: prefs.MaxReadyTime,
	})
	if err != nil {
		return nil, 0, err
	}

	ranked := make([]RankedRecipe, 0, len(payloads))
	for i := range payloads {
		r, err := FromPayload(&payloads[i])
		if err != nil {
			common.LogWarn("略過無效的供應商食譜", zap.Error(err))
			continue
		}
		if _, err := s.store.UpsertRecipe(ctx, r); err != nil {
			common.LogError("食譜寫入快取失敗", zap.Int64("external_id", r.ExternalID), zap.Error(err))
		}
		ranked = append(ranked, Annotate(r, prefs))
	}

	totalFound := len(ranked)
	ranked = ApplyFilters(ranked, prefs)
	SortByPriority(ranked)
	return ranked, totalFound, nil
}

// SearchByIngredients 以手邊食材搜尋食譜，回傳依命中數分組的結果。
// 詳情抓取失敗的食譜以搜尋結果組出降級版本，不中斷整批處理。
func (s *Service) SearchByIngredients(ctx context.Context, ingredients []string, opts DiscoverOptions, prefs common.Preferences) ([]MatchGroup, error) {
	hits, err := s.provider.FindByIngredients(ctx, ingredients, spoonacular.SearchOptions{
		Diets:              prefs.Diets,
		Intolerances:       prefs.Intolerances,
		Cuisine:            opts.Cuisine,
		MealType:           opts.MealType,
		ExcludeIngredients: prefs.Allergies,
	})
	if err != nil {
		return nil, err
	}

	if len(hits) > s.detailLimit {
		hits = hits[:s.detailLimit]
	}

	ranked := make([]RankedRecipe, 0, len(hits))
	for i := range hits {
		hit := &hits[i]
		r := s.fetchDetail(ctx, hit)
		if _, err := s.store.UpsertRecipe(ctx, r); err != nil {
			common.LogError("食譜寫入快取失敗", zap.Int64("external_id", r.ExternalID), zap.Error(err))
		}
		annotated := Annotate(r, prefs)
		// 命中數以詳情的食材清單本地計算，不信任供應商的 usedIngredientCount
		annotated.MatchCount = CountMatches(r.Ingredients, ingredients)
		ranked = append(ranked, annotated)
	}

	ranked = ApplyFilters(ranked, prefs)
	return Cascade(ranked, len(ingredients)), nil
}

// GetByID 取得單一食譜：先查本地快取（內部 ID 與外部 ID），
// 皆未命中時向供應商抓取並寫入快取
func (s *Service) GetByID(ctx context.Context, id int64) (*common.Recipe, error) {
	if r, err := s.store.GetRecipeByID(ctx, id); err == nil {
		return r, nil
	}
	if r, err := s.store.GetRecipeByExternalID(ctx, id); err == nil {
		return r, nil
	}

	payload, err := s.provider.GetInformation(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := FromPayload(payload)
	if err != nil {
		return nil, common.ErrRecipeNotFound
	}
	if _, err := s.store.UpsertRecipe(ctx, r); err != nil {
		common.LogError("食譜寫入快取失敗", zap.Int64("external_id", r.ExternalID), zap.Error(err))
	}
	return r, nil
}

// ClearUserData 清除使用者資料（已存、已試、儲藏室），保留食譜快取
func (s *Service) ClearUserData(ctx context.Context) error {
	return s.store.ClearUserData(ctx)
}

// fetchDetail 抓取搜尋命中的完整食譜，失敗時組出降級版本。
// 搜尋本身已成功，單筆詳情失敗不應讓整批結果消失。
func (s *Service) fetchDetail(ctx context.Context, hit *spoonacular.SearchHit) *common.Recipe {
	payload, err := s.provider.GetInformation(ctx, hit.ID)
	if err == nil {
		if r, convErr := FromPayload(payload); convErr == nil {
			return r
		}
	} else {
		common.LogWarn("食譜詳情抓取失敗，改用搜尋結果",
			zap.Int64("external_id", hit.ID), zap.Error(err))
	}
	return FromSearchHit(hit)
}
