package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recipe-slot/internal/pkg/common"
)

// CreateTemplate 建立購物清單範本與其項目（項目原樣複製，不做合併）
func (s *Store) CreateTemplate(ctx context.Context, template *common.GroceryTemplate) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO grocery_templates (name, description) VALUES (?, ?)",
		template.Name, template.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to create template: %w", err)
	}
	id, _ := res.LastInsertId()

	for _, item := range template.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO grocery_template_items (template_id, name, amount, unit, category)
			VALUES (?, ?, ?, ?, ?)`,
			id, item.Name, item.Amount, item.Unit, item.Category,
		); err != nil {
			return 0, fmt.Errorf("failed to create template item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	template.ID = id
	return id, nil
}

// ListTemplates 取得所有範本（含項目），新的在前
func (s *Store) ListTemplates(ctx context.Context) ([]common.GroceryTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, created_at FROM grocery_templates ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := []common.GroceryTemplate{}
	for rows.Next() {
		var t common.GroceryTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range templates {
		items, err := s.listTemplateItems(ctx, templates[i].ID)
		if err != nil {
			return nil, err
		}
		templates[i].Items = items
	}
	return templates, nil
}

// GetTemplate 取得單一範本（含項目）
func (s *Store) GetTemplate(ctx context.Context, id int64) (*common.GroceryTemplate, error) {
	var t common.GroceryTemplate
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_at FROM grocery_templates WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	items, err := s.listTemplateItems(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

// DeleteTemplate 刪除範本，不存在時視為成功
func (s *Store) DeleteTemplate(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM grocery_templates WHERE id = ?", id,
	); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

func (s *Store) listTemplateItems(ctx context.Context, templateID int64) ([]common.GroceryTemplateItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, template_id, name, amount, unit, category, created_at
		FROM grocery_template_items WHERE template_id = ? ORDER BY id`, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list template items: %w", err)
	}
	defer rows.Close()

	items := []common.GroceryTemplateItem{}
	for rows.Next() {
		var item common.GroceryTemplateItem
		if err := rows.Scan(&item.ID, &item.TemplateID, &item.Name, &item.Amount, &item.Unit, &item.Category, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
