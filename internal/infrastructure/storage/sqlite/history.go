package sqlite

import (
	"context"
	"fmt"

	"recipe-slot/internal/pkg/common"
)

// UpsertSavedRecipe 收藏食譜。重複收藏不新增紀錄，
// 回傳值表示該食譜先前是否已收藏。
func (s *Store) UpsertSavedRecipe(ctx context.Context, recipeID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_recipes (recipe_id) VALUES (?)
		ON CONFLICT(recipe_id) DO NOTHING`,
		recipeID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save recipe: %w", err)
	}
	inserted, _ := res.RowsAffected()
	return inserted == 0, nil
}

// ListSavedRecipes 取得已收藏食譜（含食譜內容），新的在前
func (s *Store) ListSavedRecipes(ctx context.Context) ([]common.SavedRecipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sr.id, sr.recipe_id, sr.saved_at, `+prefixedRecipeColumns("r")+`
		FROM saved_recipes sr
		JOIN recipes r ON r.id = sr.recipe_id
		ORDER BY sr.saved_at DESC, sr.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	defer rows.Close()

	saved := []common.SavedRecipe{}
	for rows.Next() {
		var entry common.SavedRecipe
		var recipe common.Recipe
		var ingredients, nutrition, allergens string
		if err := rows.Scan(
			&entry.ID, &entry.RecipeID, &entry.SavedAt,
			&recipe.ID, &recipe.ExternalID, &recipe.Title, &recipe.Image,
			&recipe.ReadyInMinutes, &recipe.Servings, &recipe.SourceURL,
			&recipe.Summary, &recipe.Instructions, &ingredients, &nutrition,
			&recipe.Spiciness, &allergens, &recipe.CreatedAt, &recipe.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan saved recipe: %w", err)
		}
		if err := decodeRecipeColumns(&recipe, ingredients, nutrition, allergens); err != nil {
			return nil, err
		}
		entry.Recipe = &recipe
		saved = append(saved, entry)
	}
	return saved, rows.Err()
}

// DeleteSavedRecipe 取消收藏，不存在時視為成功
func (s *Store) DeleteSavedRecipe(ctx context.Context, recipeID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM saved_recipes WHERE recipe_id = ?", recipeID,
	); err != nil {
		return fmt.Errorf("failed to unsave recipe: %w", err)
	}
	return nil
}

// UpsertTriedRecipe 記錄已試食譜，重複時更新評分、筆記與時間。
// 回傳值表示該食譜先前是否已標記。
func (s *Store) UpsertTriedRecipe(ctx context.Context, recipeID int64, rating *int, notes *string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM tried_recipes WHERE recipe_id = ?)", recipeID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check tried recipe: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO tried_recipes (recipe_id, rating, notes) VALUES (?, ?, ?)
		ON CONFLICT(recipe_id) DO UPDATE SET
			rating = excluded.rating,
			notes = excluded.notes,
			tried_at = CURRENT_TIMESTAMP`,
		recipeID, rating, notes,
	); err != nil {
		return false, fmt.Errorf("failed to mark recipe tried: %w", err)
	}
	return exists, nil
}

// ListTriedRecipes 取得已試食譜（含食譜內容），新的在前
func (s *Store) ListTriedRecipes(ctx context.Context) ([]common.TriedRecipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tr.id, tr.recipe_id, tr.rating, tr.notes, tr.tried_at, `+prefixedRecipeColumns("r")+`
		FROM tried_recipes tr
		JOIN recipes r ON r.id = tr.recipe_id
		ORDER BY tr.tried_at DESC, tr.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tried recipes: %w", err)
	}
	defer rows.Close()

	tried := []common.TriedRecipe{}
	for rows.Next() {
		var entry common.TriedRecipe
		var recipe common.Recipe
		var ingredients, nutrition, allergens string
		if err := rows.Scan(
			&entry.ID, &entry.RecipeID, &entry.Rating, &entry.Notes, &entry.TriedAt,
			&recipe.ID, &recipe.ExternalID, &recipe.Title, &recipe.Image,
			&recipe.ReadyInMinutes, &recipe.Servings, &recipe.SourceURL,
			&recipe.Summary, &recipe.Instructions, &ingredients, &nutrition,
			&recipe.Spiciness, &allergens, &recipe.CreatedAt, &recipe.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tried recipe: %w", err)
		}
		if err := decodeRecipeColumns(&recipe, ingredients, nutrition, allergens); err != nil {
			return nil, err
		}
		entry.Recipe = &recipe
		tried = append(tried, entry)
	}
	return tried, rows.Err()
}

// DeleteTriedRecipe 移除已試紀錄，不存在時視為成功
func (s *Store) DeleteTriedRecipe(ctx context.Context, recipeID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM tried_recipes WHERE recipe_id = ?", recipeID,
	); err != nil {
		return fmt.Errorf("failed to remove tried recipe: %w", err)
	}
	return nil
}

func prefixedRecipeColumns(alias string) string {
	return alias + ".id, " + alias + ".external_id, " + alias + ".title, " + alias + ".image, " +
		alias + ".ready_in_minutes, " + alias + ".servings, " + alias + ".source_url, " +
		alias + ".summary, " + alias + ".instructions, " + alias + ".ingredients, " +
		alias + ".nutrition, " + alias + ".spiciness, " + alias + ".allergens, " +
		alias + ".created_at, " + alias + ".updated_at"
}

func decodeRecipeColumns(recipe *common.Recipe, ingredients, nutrition, allergens string) error {
	if err := common.ParseJSON(ingredients, &recipe.Ingredients); err != nil {
		return fmt.Errorf("failed to decode ingredients: %w", err)
	}
	if err := common.ParseJSON(nutrition, &recipe.Nutrition); err != nil {
		return fmt.Errorf("failed to decode nutrition: %w", err)
	}
	if err := common.ParseJSON(allergens, &recipe.Allergens); err != nil {
		return fmt.Errorf("failed to decode allergens: %w", err)
	}
	return nil
}
