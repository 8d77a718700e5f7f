package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recipe-slot/internal/pkg/common"
)

// UpsertRecipe 以外部 ID 為鍵寫入食譜。已存在時更新內容並回傳既有內部 ID。
func (s *Store) UpsertRecipe(ctx context.Context, recipe *common.Recipe) (int64, error) {
	ingredients, err := common.ToJSON(recipe.Ingredients)
	if err != nil {
		return 0, fmt.Errorf("failed to encode ingredients: %w", err)
	}
	nutrition, err := common.ToJSON(recipe.Nutrition)
	if err != nil {
		return 0, fmt.Errorf("failed to encode nutrition: %w", err)
	}
	allergens, err := common.ToJSON(recipe.Allergens)
	if err != nil {
		return 0, fmt.Errorf("failed to encode allergens: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO recipes (external_id, title, image, ready_in_minutes, servings, source_url, summary, instructions, ingredients, nutrition, spiciness, allergens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			title = excluded.title,
			image = excluded.image,
			ready_in_minutes = excluded.ready_in_minutes,
			servings = excluded.servings,
			source_url = excluded.source_url,
			summary = excluded.summary,
			instructions = excluded.instructions,
			ingredients = excluded.ingredients,
			nutrition = excluded.nutrition,
			spiciness = excluded.spiciness,
			allergens = excluded.allergens,
			updated_at = CURRENT_TIMESTAMP`,
		recipe.ExternalID, recipe.Title, recipe.Image, recipe.ReadyInMinutes, recipe.Servings,
		recipe.SourceURL, recipe.Summary, recipe.Instructions, ingredients, nutrition,
		recipe.Spiciness, allergens,
	); err != nil {
		return 0, fmt.Errorf("failed to upsert recipe: %w", err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx,
		"SELECT id FROM recipes WHERE external_id = ?", recipe.ExternalID,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read recipe id: %w", err)
	}
	recipe.ID = id
	return id, nil
}

// GetRecipeByID 以內部 ID 取得食譜
func (s *Store) GetRecipeByID(ctx context.Context, id int64) (*common.Recipe, error) {
	return s.getRecipe(ctx, "id = ?", id)
}

// GetRecipeByExternalID 以外部供應商 ID 取得食譜
func (s *Store) GetRecipeByExternalID(ctx context.Context, externalID int64) (*common.Recipe, error) {
	return s.getRecipe(ctx, "external_id = ?", externalID)
}

const recipeColumns = "id, external_id, title, image, ready_in_minutes, servings, source_url, summary, instructions, ingredients, nutrition, spiciness, allergens, created_at, updated_at"

func (s *Store) getRecipe(ctx context.Context, where string, arg interface{}) (*common.Recipe, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recipeColumns+" FROM recipes WHERE "+where, arg)
	recipe, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row rowScanner) (*common.Recipe, error) {
	var recipe common.Recipe
	var ingredients, nutrition, allergens string
	if err := row.Scan(
		&recipe.ID, &recipe.ExternalID, &recipe.Title, &recipe.Image,
		&recipe.ReadyInMinutes, &recipe.Servings, &recipe.SourceURL,
		&recipe.Summary, &recipe.Instructions, &ingredients, &nutrition,
		&recipe.Spiciness, &allergens, &recipe.CreatedAt, &recipe.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := decodeRecipeColumns(&recipe, ingredients, nutrition, allergens); err != nil {
		return nil, err
	}
	return &recipe, nil
}
