package pantry

import (
	"context"

	"recipe-slot/internal/infrastructure/storage"
	"recipe-slot/internal/pkg/common"
)

// Service 儲藏室服務。儲藏室是一組「已持有」的食材名稱，
// 調和食譜時命中者不會加入採購清單。
type Service struct {
	store storage.Store
}

// NewService 創建儲藏室服務
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// List 取得儲藏室所有食材
func (s *Service) List(ctx context.Context) ([]common.PantryIngredient, error) {
	return s.store.ListPantry(ctx)
}

// Add 加入食材（同名冪等）
func (s *Service) Add(ctx context.Context, name string) (*common.PantryIngredient, error) {
	return s.store.AddPantryItem(ctx, name)
}

// Remove 移除食材（冪等）
func (s *Service) Remove(ctx context.Context, id int64) error {
	return s.store.RemovePantryItem(ctx, id)
}

// RemoveByName 依名稱移除食材（冪等）
func (s *Service) RemoveByName(ctx context.Context, name string) error {
	return s.store.RemovePantryItemByName(ctx, name)
}

// Clear 清空儲藏室
func (s *Service) Clear(ctx context.Context) error {
	return s.store.ClearPantry(ctx)
}
