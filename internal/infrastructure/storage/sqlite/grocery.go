package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipe-slot/internal/infrastructure/storage"
	"recipe-slot/internal/pkg/common"
)

const defaultListName = "My Grocery List"

// DefaultList 取得預設購物清單，不存在時在同一交易內建立
func (s *Store) DefaultList(ctx context.Context) (*common.GroceryList, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var list common.GroceryList
	err = tx.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM grocery_lists ORDER BY id LIMIT 1",
	).Scan(&list.ID, &list.Name, &list.CreatedAt, &list.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		res, insertErr := tx.ExecContext(ctx,
			"INSERT INTO grocery_lists (name) VALUES (?)", defaultListName)
		if insertErr != nil {
			return nil, fmt.Errorf("failed to create default list: %w", insertErr)
		}
		id, _ := res.LastInsertId()
		if err := tx.QueryRowContext(ctx,
			"SELECT id, name, created_at, updated_at FROM grocery_lists WHERE id = ?", id,
		).Scan(&list.ID, &list.Name, &list.CreatedAt, &list.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to read default list: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get default list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	items, err := s.ListItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	list.Items = items
	return &list, nil
}

const itemColumns = "id, list_id, name, amount, unit, category, priority, store_section, is_completed, recipe_id, added_at"

// ListItems 取得清單所有項目，依名稱排序
func (s *Store) ListItems(ctx context.Context, listID int64) ([]common.GroceryListItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM grocery_items WHERE list_id = ? ORDER BY name", listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []common.GroceryListItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// MergeOrInsertItem 合併或新增清單項目。
// 同名項目（不分大小寫）已存在時累加數量、採用新單位並重算分類；
// 查詢與寫入在單一交易內完成，並發加入同名食材不會產生重複列。
func (s *Store) MergeOrInsertItem(ctx context.Context, listID int64, item *common.GroceryListItem) (*storage.MergeResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID int64
	var prevAmount sql.NullFloat64
	err = tx.QueryRowContext(ctx,
		"SELECT id, amount FROM grocery_items WHERE list_id = ? AND LOWER(name) = LOWER(?)",
		listID, item.Name,
	).Scan(&existingID, &prevAmount)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, insertErr := tx.ExecContext(ctx, `
			INSERT INTO grocery_items (list_id, name, amount, unit, category, priority, store_section, is_completed, recipe_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			listID, item.Name, item.Amount, item.Unit, item.Category,
			orDefault(item.Priority, "medium"), item.StoreSection, item.IsCompleted, item.RecipeID,
		)
		if insertErr != nil {
			return nil, fmt.Errorf("failed to insert item: %w", insertErr)
		}
		id, _ := res.LastInsertId()
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		stored, err := s.getItem(ctx, id)
		if err != nil {
			return nil, err
		}
		return &storage.MergeResult{Item: stored, Merged: false}, nil

	case err != nil:
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}

	newAmount := prevAmount.Float64
	if item.Amount != nil {
		newAmount += *item.Amount
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE grocery_items SET amount = ?, unit = ?, category = ?, recipe_id = COALESCE(?, recipe_id)
		WHERE id = ?`,
		newAmount, item.Unit, item.Category, item.RecipeID, existingID,
	); err != nil {
		return nil, fmt.Errorf("failed to merge item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	stored, err := s.getItem(ctx, existingID)
	if err != nil {
		return nil, err
	}
	return &storage.MergeResult{Item: stored, Merged: true, PrevAmount: prevAmount.Float64}, nil
}

// UpdateItem 更新清單項目（勾選狀態、數量、單位、分類、優先度）
func (s *Store) UpdateItem(ctx context.Context, item *common.GroceryListItem) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE grocery_items
		SET name = ?, amount = ?, unit = ?, category = ?, priority = ?, store_section = ?, is_completed = ?
		WHERE id = ? AND list_id = ?`,
		item.Name, item.Amount, item.Unit, item.Category,
		orDefault(item.Priority, "medium"), item.StoreSection, item.IsCompleted,
		item.ID, item.ListID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrListNotFound
	}
	return nil
}

// DeleteItem 刪除清單項目，項目不存在時視為成功
func (s *Store) DeleteItem(ctx context.Context, listID, itemID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM grocery_items WHERE id = ? AND list_id = ?", itemID, listID,
	); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// ClearList 清空清單所有項目
func (s *Store) ClearList(ctx context.Context, listID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM grocery_items WHERE list_id = ?", listID,
	); err != nil {
		return fmt.Errorf("failed to clear list: %w", err)
	}
	return nil
}

func (s *Store) getItem(ctx context.Context, id int64) (*common.GroceryListItem, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM grocery_items WHERE id = ?", id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func scanItem(row rowScanner) (*common.GroceryListItem, error) {
	var item common.GroceryListItem
	if err := row.Scan(
		&item.ID, &item.ListID, &item.Name, &item.Amount, &item.Unit,
		&item.Category, &item.Priority, &item.StoreSection, &item.IsCompleted,
		&item.RecipeID, &item.AddedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
