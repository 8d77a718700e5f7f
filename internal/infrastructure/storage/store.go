package storage

import (
	"context"

	"recipe-slot/internal/pkg/common"
)

// MergeResult 合併寫入購物清單的結果
type MergeResult struct {
	Item       *common.GroceryListItem
	Merged     bool    // true 表示合併到既有項目，false 表示新增
	PrevAmount float64 // 合併前的數量，新增時為 0
}

// Store 持久層介面
type Store interface {
	RecipeStore
	GroceryStore
	PantryStore
	TemplateStore
	HistoryStore

	// ClearUserData 清除使用者資料（已存、已試、儲藏室），保留食譜快取
	ClearUserData(ctx context.Context) error

	// Ping 確認底層資料庫連線可用
	Ping(ctx context.Context) error
	Close() error
}

// RecipeStore 食譜快取存取
type RecipeStore interface {
	// UpsertRecipe 以外部 ID 為鍵寫入食譜，若已存在則更新並回傳既有內部 ID
	UpsertRecipe(ctx context.Context, recipe *common.Recipe) (int64, error)
	GetRecipeByID(ctx context.Context, id int64) (*common.Recipe, error)
	GetRecipeByExternalID(ctx context.Context, externalID int64) (*common.Recipe, error)
}

// GroceryStore 購物清單存取
type GroceryStore interface {
	// DefaultList 取得預設購物清單，不存在時自動建立
	DefaultList(ctx context.Context) (*common.GroceryList, error)
	ListItems(ctx context.Context, listID int64) ([]common.GroceryListItem, error)
	// MergeOrInsertItem 合併或新增清單項目。同名項目存在時累加數量並採用新單位，
	// 整個判斷與寫入在單一交易內完成
	MergeOrInsertItem(ctx context.Context, listID int64, item *common.GroceryListItem) (*MergeResult, error)
	UpdateItem(ctx context.Context, item *common.GroceryListItem) error
	// DeleteItem 刪除清單項目，項目不存在時視為成功
	DeleteItem(ctx context.Context, listID, itemID int64) error
	ClearList(ctx context.Context, listID int64) error
}

// PantryStore 儲藏室存取
type PantryStore interface {
	ListPantry(ctx context.Context) ([]common.PantryIngredient, error)
	// AddPantryItem 加入儲藏室，同名（不分大小寫）已存在時視為成功
	AddPantryItem(ctx context.Context, name string) (*common.PantryIngredient, error)
	// RemovePantryItem 移除儲藏室項目，不存在時視為成功
	RemovePantryItem(ctx context.Context, id int64) error
	// RemovePantryItemByName 以名稱移除儲藏室項目（不分大小寫、冪等）
	RemovePantryItemByName(ctx context.Context, name string) error
	ClearPantry(ctx context.Context) error
}

// TemplateStore 購物清單範本存取
type TemplateStore interface {
	CreateTemplate(ctx context.Context, template *common.GroceryTemplate) (int64, error)
	ListTemplates(ctx context.Context) ([]common.GroceryTemplate, error)
	GetTemplate(ctx context.Context, id int64) (*common.GroceryTemplate, error)
	// DeleteTemplate 刪除範本，不存在時視為成功
	DeleteTemplate(ctx context.Context, id int64) error
}

// HistoryStore 已存與已試食譜存取
type HistoryStore interface {
	// UpsertSavedRecipe 收藏食譜，重複收藏視為成功。
	// 回傳值表示該食譜先前是否已收藏。
	UpsertSavedRecipe(ctx context.Context, recipeID int64) (bool, error)
	ListSavedRecipes(ctx context.Context) ([]common.SavedRecipe, error)
	// DeleteSavedRecipe 取消收藏，不存在時視為成功
	DeleteSavedRecipe(ctx context.Context, recipeID int64) error

	// UpsertTriedRecipe 記錄已試食譜，重複時更新評分與筆記。
	// 回傳值表示該食譜先前是否已標記。
	UpsertTriedRecipe(ctx context.Context, recipeID int64, rating *int, notes *string) (bool, error)
	ListTriedRecipes(ctx context.Context) ([]common.TriedRecipe, error)
	// DeleteTriedRecipe 移除已試紀錄，不存在時視為成功
	DeleteTriedRecipe(ctx context.Context, recipeID int64) error
}
