package spoonacular

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"recipe-slot/internal/infrastructure/config"
	"recipe-slot/internal/pkg/common"
)

// Client Spoonacular API 用戶端。所有呼叫先查快取，
// 命中時不消耗供應商配額。
type Client struct {
	config *config.SpoonacularConfig
	client *resty.Client
	cache  *Cache
}

// NewClient 創建 Spoonacular 用戶端
func NewClient(cfg *config.SpoonacularConfig, cache *Cache) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		config: cfg,
		client: client,
		cache:  cache,
	}
}

// Random 取得隨機食譜
func (c *Client) Random(ctx context.Context, opts RandomOptions) ([]RecipePayload, error) {
	number := opts.Number
	if number <= 0 {
		number = 10
	}

	params := map[string]string{
		"number":               strconv.Itoa(number),
		"includeNutrition":     "true",
		"instructionsRequired": "true",
		"fillIngredients":      "true",
	}
	if len(opts.Tags) > 0 {
		params["tags"] = strings.Join(opts.Tags, ",")
	}
	if opts.Cuisine != "" {
		params["cuisine"] = opts.Cuisine
	}
	if opts.MealType != "" {
		params["type"] = opts.MealType
	}
	// 120 分鐘以上視為不限制，不送出參數
	if opts.MaxReadyTime > 0 && opts.MaxReadyTime < common.MaxReadyTimeUnlimited {
		params["maxReadyTime"] = strconv.Itoa(opts.MaxReadyTime)
	}

	var result randomResponse
	if err := c.getJSON(ctx, "/recipes/random", params, &result); err != nil {
		return nil, err
	}
	return result.Recipes, nil
}

// FindByIngredients 以食材搜尋食譜
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, opts SearchOptions) ([]SearchHit, error) {
	if len(ingredients) == 0 {
		return nil, common.NewValidationError("at least one ingredient is required")
	}

	params := map[string]string{
		"ingredients":     strings.Join(ingredients, ","),
		"number":          strconv.Itoa(c.searchNumber()),
		"ranking":         "1",
		"ignorePantry":    "true",
		"fillIngredients": "true",
	}
	if len(opts.Diets) > 0 {
		params["diet"] = strings.Join(opts.Diets, ",")
	}
	if len(opts.Intolerances) > 0 {
		params["intolerances"] = strings.Join(opts.Intolerances, ",")
	}
	if opts.Cuisine != "" {
		params["cuisine"] = opts.Cuisine
	}
	if opts.MealType != "" {
		params["type"] = opts.MealType
	}
	if len(opts.ExcludeIngredients) > 0 {
		params["excludeIngredients"] = strings.Join(opts.ExcludeIngredients, ",")
	}

	var hits []SearchHit
	if err := c.getJSON(ctx, "/recipes/findByIngredients", params, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

// GetInformation 取得單一食譜的完整內容（含營養）
func (c *Client) GetInformation(ctx context.Context, externalID int64) (*RecipePayload, error) {
	params := map[string]string{"includeNutrition": "true"}

	var payload RecipePayload
	endpoint := fmt.Sprintf("/recipes/%d/information", externalID)
	if err := c.getJSON(ctx, endpoint, params, &payload); err != nil {
		return nil, err
	}
	if payload.ID == 0 {
		return nil, common.ErrRecipeNotFound
	}
	return &payload, nil
}

// getJSON 發送 GET 請求並解析 JSON，快取命中時跳過網路呼叫
func (c *Client) getJSON(ctx context.Context, endpoint string, params map[string]string, out interface{}) error {
	key := cacheKey(endpoint, params)
	if data, ok := c.cache.Get(ctx, key); ok {
		return common.ParseJSONBytes(data, out)
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("apiKey", c.config.APIKey).
		Get(endpoint)
	requestID, _ := ctx.Value("request_id").(string)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	common.LogProviderCall(endpoint, time.Since(start), err, requestID)

	if err != nil {
		return common.NewError(common.ErrProviderError.Code, "failed to reach recipe provider", http.StatusServiceUnavailable, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		// fall through
	case http.StatusUnauthorized:
		return common.ErrProviderKey
	case http.StatusPaymentRequired:
		return common.ErrProviderQuota
	case http.StatusNotFound:
		return common.ErrRecipeNotFound
	default:
		return common.NewError(common.ErrProviderError.Code,
			fmt.Sprintf("recipe provider returned status %d", resp.StatusCode()),
			http.StatusServiceUnavailable, nil)
	}

	body := resp.Body()
	if err := common.ParseJSONBytes(body, out); err != nil {
		return common.NewError(common.ErrProviderError.Code, "failed to parse provider response", http.StatusServiceUnavailable, err)
	}

	c.cache.Set(ctx, key, body)
	return nil
}

func (c *Client) searchNumber() int {
	if c.config.SearchNumber > 0 {
		return c.config.SearchNumber
	}
	return 50
}
