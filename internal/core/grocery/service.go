package grocery

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"recipe-slot/internal/core/ingredient"
	"recipe-slot/internal/infrastructure/storage"
	"recipe-slot/internal/pkg/common"
)

// Service 採購清單服務：清單維護、範本，與食譜食材的調和寫入
type Service struct {
	store storage.Store
}

// NewService 創建採購清單服務
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// ServingInfo 份數調整資訊
type ServingInfo struct {
	OriginalServings int  `json:"originalServings"`
	TargetServings   int  `json:"targetServings"`
	IsScaled         bool `json:"isScaled"`
}

// SkippedItem 被略過的食材與原因
type SkippedItem struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// AddRecipeSummary 調和結果統計
type AddRecipeSummary struct {
	ItemsAdded     int `json:"itemsAdded"`
	ItemsUpdated   int `json:"itemsUpdated"`
	ItemsSkipped   int `json:"itemsSkipped"`
	TotalProcessed int `json:"totalProcessed"`
}

// AddRecipeDetails 調和結果明細
type AddRecipeDetails struct {
	AddedItems   []string      `json:"addedItems"`
	UpdatedItems []string      `json:"updatedItems"`
	SkippedItems []SkippedItem `json:"skippedItems"`
}

// AddRecipeResult 把食譜加入採購清單的完整結果
type AddRecipeResult struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	RecipeTitle string           `json:"recipeTitle"`
	ServingInfo ServingInfo      `json:"servingInfo"`
	Summary     AddRecipeSummary `json:"summary"`
	Details     AddRecipeDetails `json:"details"`
}

// pantrySkipReason 儲藏室略過原因，前端以此文案顯示
const pantrySkipReason = "In pantry (already have)"

// GetList 取得預設採購清單（不存在時建立）
func (s *Service) GetList(ctx context.Context) (*common.GroceryList, error) {
	return s.store.DefaultList(ctx)
}

// AddItem 手動加入清單項目。數量以字串傳入（支援 "1/2" 等寫法），
// 同名項目合併數量。
func (s *Service) AddItem(ctx context.Context, name, rawAmount, rawUnit, category string) (*common.GroceryListItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("item name is required")
	}

	list, err := s.store.DefaultList(ctx)
	if err != nil {
		return nil, err
	}

	amount := ingredient.ParseQuantity(rawAmount)
	amount, unit := ingredient.SmartUnit(name, amount, rawUnit)
	if category = strings.TrimSpace(category); category == "" {
		category = ingredient.Categorize(name)
	}

	res, err := s.store.MergeOrInsertItem(ctx, list.ID, &common.GroceryListItem{
		Name:     name,
		Amount:   &amount,
		Unit:     &unit,
		Category: &category,
	})
	if err != nil {
		return nil, err
	}
	return res.Item, nil
}

// UpdateItem 更新清單項目
func (s *Service) UpdateItem(ctx context.Context, item *common.GroceryListItem) error {
	return s.store.UpdateItem(ctx, item)
}

// DeleteItem 刪除清單項目（冪等）
func (s *Service) DeleteItem(ctx context.Context, itemID int64) error {
	list, err := s.store.DefaultList(ctx)
	if err != nil {
		return err
	}
	return s.store.DeleteItem(ctx, list.ID, itemID)
}

// ClearList 清空採購清單
func (s *Service) ClearList(ctx context.Context) error {
	list, err := s.store.DefaultList(ctx)
	if err != nil {
		return err
	}
	return s.store.ClearList(ctx, list.ID)
}

// AddRecipeToList 把食譜食材調和進採購清單。
// 每項食材依序經過：儲藏室排除、份數縮放、智慧單位推斷、
// 分類，最後合併或新增。單項失敗記錄後略過，不中斷整批。
func (s *Service) AddRecipeToList(ctx context.Context, recipeID int64, targetServings int) (*AddRecipeResult, error) {
	recipe, err := s.lookupRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	list, err := s.store.DefaultList(ctx)
	if err != nil {
		return nil, err
	}

	pantry, err := s.store.ListPantry(ctx)
	if err != nil {
		return nil, err
	}
	pantrySet := make(map[string]bool, len(pantry))
	for _, p := range pantry {
		pantrySet[strings.ToLower(p.Name)] = true
	}

	if targetServings <= 0 {
		targetServings = recipe.Servings
	}
	isScaled := targetServings != recipe.Servings

	result := &AddRecipeResult{
		RecipeTitle: recipe.Title,
		ServingInfo: ServingInfo{
			OriginalServings: recipe.Servings,
			TargetServings:   targetServings,
			IsScaled:         isScaled,
		},
		Details: AddRecipeDetails{
			AddedItems:   []string{},
			UpdatedItems: []string{},
			SkippedItems: []SkippedItem{},
		},
	}

	for _, ing := range recipe.Ingredients {
		displayName := strings.TrimSpace(ing.OriginalString)
		if displayName == "" {
			displayName = strings.TrimSpace(ing.Name)
		}
		if displayName == "" {
			continue
		}

		if s.inPantry(pantrySet, ing.Name, displayName) {
			result.Summary.ItemsSkipped++
			result.Details.SkippedItems = append(result.Details.SkippedItems, SkippedItem{
				Name: displayName, Reason: pantrySkipReason,
			})
			continue
		}

		amount := ing.Amount
		if amount <= 0 {
			amount = 1
		}
		if isScaled {
			amount = ingredient.ScaleAmount(amount, recipe.Servings, targetServings)
		}

		unitSource := ing.Name
		if unitSource == "" {
			unitSource = displayName
		}
		amount, unit := ingredient.SmartUnit(unitSource, amount, ing.Unit)
		category := ingredient.Categorize(displayName)

		res, err := s.store.MergeOrInsertItem(ctx, list.ID, &common.GroceryListItem{
			Name:     displayName,
			Amount:   &amount,
			Unit:     &unit,
			Category: &category,
			RecipeID: &recipe.ID,
		})
		if err != nil {
			common.LogError("食材寫入清單失敗",
				zap.String("ingredient", displayName), zap.Error(err))
			result.Summary.ItemsSkipped++
			result.Details.SkippedItems = append(result.Details.SkippedItems, SkippedItem{
				Name: displayName, Reason: "Failed to save",
			})
			continue
		}

		if res.Merged {
			result.Summary.ItemsUpdated++
			result.Details.UpdatedItems = append(result.Details.UpdatedItems, displayName)
		} else {
			result.Summary.ItemsAdded++
			result.Details.AddedItems = append(result.Details.AddedItems, displayName)
		}
	}

	// 只計實際寫入清單的項目，被略過者不算處理
	result.Summary.TotalProcessed = result.Summary.ItemsAdded + result.Summary.ItemsUpdated
	result.Success = true
	result.Message = fmt.Sprintf("Added %d items from %q to your grocery list",
		result.Summary.TotalProcessed, recipe.Title)
	return result, nil
}

// SaveAsTemplate 把目前清單原樣存成範本（不做數量合併）
func (s *Service) SaveAsTemplate(ctx context.Context, name, description string) (*common.GroceryTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("template name is required")
	}

	list, err := s.store.DefaultList(ctx)
	if err != nil {
		return nil, err
	}

	template := &common.GroceryTemplate{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	for _, item := range list.Items {
		template.Items = append(template.Items, common.GroceryTemplateItem{
			Name:     item.Name,
			Amount:   item.Amount,
			Unit:     item.Unit,
			Category: item.Category,
		})
	}

	if _, err := s.store.CreateTemplate(ctx, template); err != nil {
		return nil, err
	}
	return s.store.GetTemplate(ctx, template.ID)
}

// ListTemplates 取得所有範本
func (s *Service) ListTemplates(ctx context.Context) ([]common.GroceryTemplate, error) {
	return s.store.ListTemplates(ctx)
}

// LoadTemplate 把範本套用到清單。replace 為 true 時先清空清單，
// 否則只加入清單中尚無同名項目者（不合併數量）。
func (s *Service) LoadTemplate(ctx context.Context, templateID int64, replace bool) (*common.GroceryList, error) {
	template, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	list, err := s.store.DefaultList(ctx)
	if err != nil {
		return nil, err
	}

	if replace {
		if err := s.store.ClearList(ctx, list.ID); err != nil {
			return nil, err
		}
		list.Items = nil
	}

	existing := make(map[string]bool, len(list.Items))
	for _, item := range list.Items {
		existing[strings.ToLower(item.Name)] = true
	}

	for _, item := range template.Items {
		if existing[strings.ToLower(item.Name)] {
			continue
		}
		if _, err := s.store.MergeOrInsertItem(ctx, list.ID, &common.GroceryListItem{
			Name:     item.Name,
			Amount:   item.Amount,
			Unit:     item.Unit,
			Category: item.Category,
		}); err != nil {
			return nil, err
		}
	}

	return s.store.DefaultList(ctx)
}

// DeleteTemplate 刪除範本（冪等）
func (s *Service) DeleteTemplate(ctx context.Context, templateID int64) error {
	return s.store.DeleteTemplate(ctx, templateID)
}

// lookupRecipe 先以內部 ID 查本地快取，再退回外部 ID
func (s *Service) lookupRecipe(ctx context.Context, id int64) (*common.Recipe, error) {
	if r, err := s.store.GetRecipeByID(ctx, id); err == nil {
		return r, nil
	}
	return s.store.GetRecipeByExternalID(ctx, id)
}

// inPantry 檢查食材是否在儲藏室（標準名稱或原始文字任一命中）
func (s *Service) inPantry(pantrySet map[string]bool, name, displayName string) bool {
	if pantrySet[strings.ToLower(strings.TrimSpace(name))] {
		return true
	}
	return pantrySet[strings.ToLower(displayName)]
}
