package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	groceryHandler "recipe-slot/internal/api/handlers/grocery"
	"recipe-slot/internal/api/handlers/health"
	pantryHandler "recipe-slot/internal/api/handlers/pantry"
	recipeHandler "recipe-slot/internal/api/handlers/recipe"
	"recipe-slot/internal/api/middleware"
	groceryService "recipe-slot/internal/core/grocery"
	pantryService "recipe-slot/internal/core/pantry"
	recipeService "recipe-slot/internal/core/recipe"
	"recipe-slot/internal/core/spoonacular"
	"recipe-slot/internal/infrastructure/config"
	"recipe-slot/internal/infrastructure/storage"
	"recipe-slot/internal/pkg/common"
)

// 請求體大小限制 (1MB)，本服務沒有上傳需求
const maxBodySize = 1 << 20

// 單一請求逾時，涵蓋供應商往返
const requestTimeout = 30 * time.Second

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store storage.Store, cache *spoonacular.Cache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求逾時
	router.Use(middleware.Timeout(requestTimeout))

	// 初始化服務
	client := spoonacular.NewClient(&cfg.Spoonacular, cache)
	recipes := recipeService.NewService(client, store, cfg.Spoonacular.DetailLimit)
	groceries := groceryService.NewService(store)
	pantries := pantryService.NewService(store)

	recipeH := recipeHandler.NewHandler(recipes, store)
	groceryH := groceryHandler.NewHandler(groceries)
	pantryH := pantryHandler.NewHandler(pantries)

	// 配置注入 context，健康檢查用
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	// 健康檢查與探針
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.Readiness(store))
	router.GET("/live", health.Liveness)

	// API 路由
	v1 := router.Group("/api/v1")
	{
		r := v1.Group("/recipes")
		// 速率限制只掛在會打到外部供應商的食譜路由
		if cfg.RateLimit.Enabled {
			r.Use(middleware.RateLimit(newLimiter(cfg)))
		}
		{
			r.GET("/random", recipeH.Random)
			r.GET("/by-ingredients", recipeH.ByIngredients)
			r.GET("/saved", recipeH.ListSaved)
			r.POST("/saved", recipeH.Save)
			r.DELETE("/saved", recipeH.Unsave)
			r.GET("/tried", recipeH.ListTried)
			r.POST("/tried", recipeH.MarkTried)
			r.PUT("/tried", recipeH.MarkTried)
			r.DELETE("/tried", recipeH.UnmarkTried)
			r.DELETE("/all", recipeH.ClearUserData)
			r.GET("/:id", recipeH.GetByID)
		}

		g := v1.Group("/grocery-list")
		{
			g.GET("", groceryH.GetList)
			g.DELETE("", groceryH.ClearList)
			g.POST("/items", groceryH.AddItem)
			g.PUT("/items/:id", groceryH.UpdateItem)
			g.DELETE("/items/:id", groceryH.DeleteItem)
			g.POST("/add-recipe", groceryH.AddRecipe)
		}

		t := v1.Group("/grocery-templates")
		{
			t.GET("", groceryH.ListTemplates)
			t.POST("", groceryH.SaveTemplate)
			t.POST("/:id/load", groceryH.LoadTemplate)
			t.DELETE("/:id", groceryH.DeleteTemplate)
		}

		p := v1.Group("/pantry")
		{
			p.GET("", pantryH.List)
			p.POST("", pantryH.Add)
			p.DELETE("/:id", pantryH.Remove)
			p.DELETE("", pantryH.Clear)
		}
	}

	common.LogInfo("Router setup complete",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)
	return router, nil
}

// newLimiter 依設定選擇限流後端，單機用記憶體、多實例用 Redis
func newLimiter(cfg *config.Config) middleware.Limiter {
	if cfg.RateLimit.Backend == "redis" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.Addr})
		return middleware.NewRedisLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	return middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
}
