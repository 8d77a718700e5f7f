package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipe-slot/internal/pkg/common"
)

// ListPantry 取得儲藏室所有食材，依名稱排序
func (s *Store) ListPantry(ctx context.Context) ([]common.PantryIngredient, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, added_at, last_used_at FROM pantry_ingredients ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry: %w", err)
	}
	defer rows.Close()

	items := []common.PantryIngredient{}
	for rows.Next() {
		var item common.PantryIngredient
		if err := rows.Scan(&item.ID, &item.Name, &item.AddedAt, &item.LastUsedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddPantryItem 加入儲藏室食材。名稱轉小寫後存放，
// 同名已存在時更新 last_used_at 並回傳既有項目。
func (s *Store) AddPantryItem(ctx context.Context, name string) (*common.PantryIngredient, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, common.NewValidationError("ingredient name is required")
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO pantry_ingredients (name) VALUES (?)
		ON CONFLICT(name) DO UPDATE SET last_used_at = CURRENT_TIMESTAMP`,
		normalized,
	); err != nil {
		return nil, fmt.Errorf("failed to add pantry item: %w", err)
	}

	var item common.PantryIngredient
	if err := s.db.QueryRowContext(ctx,
		"SELECT id, name, added_at, last_used_at FROM pantry_ingredients WHERE name = ?", normalized,
	).Scan(&item.ID, &item.Name, &item.AddedAt, &item.LastUsedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pantry item missing after insert")
		}
		return nil, fmt.Errorf("failed to read pantry item: %w", err)
	}
	return &item, nil
}

// RemovePantryItem 移除儲藏室食材，不存在時視為成功
func (s *Store) RemovePantryItem(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM pantry_ingredients WHERE id = ?", id,
	); err != nil {
		return fmt.Errorf("failed to remove pantry item: %w", err)
	}
	return nil
}

// RemovePantryItemByName 依名稱移除儲藏室食材，不存在時視為成功
func (s *Store) RemovePantryItemByName(ctx context.Context, name string) error {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM pantry_ingredients WHERE name = ?", normalized,
	); err != nil {
		return fmt.Errorf("failed to remove pantry item: %w", err)
	}
	return nil
}

// ClearPantry 清空儲藏室
func (s *Store) ClearPantry(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pantry_ingredients"); err != nil {
		return fmt.Errorf("failed to clear pantry: %w", err)
	}
	return nil
}
