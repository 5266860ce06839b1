package router

import (
	"time"

	"github.com/unstopDD/sklad-sub000/internal/config"
	"github.com/unstopDD/sklad-sub000/internal/handler"
	"github.com/unstopDD/sklad-sub000/internal/middleware"
	"github.com/unstopDD/sklad-sub000/internal/repository"
	"github.com/unstopDD/sklad-sub000/internal/service"
	"github.com/unstopDD/sklad-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	profileRepo := repository.NewProfileRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	productRepo := repository.NewProductRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(profileRepo, cfg)
	historySvc := service.NewHistoryService(historyRepo)
	unitSvc := service.NewUnitService(unitRepo, historySvc)
	ingredientSvc := service.NewIngredientService(ingredientRepo, profileRepo, historySvc, cfg)
	productSvc := service.NewProductService(productRepo, ingredientRepo, profileRepo, historySvc, cfg)
	stockSvc := service.NewStockService(ingredientRepo, productRepo, historyRepo, dispatcher)
	dashboardSvc := service.NewDashboardService(ingredientRepo, productRepo, historySvc, rdb, cfg)
	reportSvc := service.NewReportService(ingredientSvc, ingredientRepo, productRepo, profileRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	unitsH := handler.NewUnitsHandler(unitSvc)
	ingredientsH := handler.NewIngredientsHandler(ingredientSvc)
	productsH := handler.NewProductsHandler(productSvc)
	stockH := handler.NewStockHandler(stockSvc)
	historyH := handler.NewHistoryHandler(historySvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — every record is scoped to the authenticated owner
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		units := v1.Group("/units")
		{
			units.POST("", unitsH.Create)
			units.GET("", unitsH.List)
			units.DELETE("/:id", unitsH.Remove)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.POST("", ingredientsH.Upsert)
			ingredients.GET("", ingredientsH.List)
			ingredients.GET("/:id", ingredientsH.Get)
			ingredients.PUT("/:id", ingredientsH.Update)
			ingredients.PATCH("/:id/quantity", ingredientsH.AdjustQuantity)
			ingredients.DELETE("/:id", ingredientsH.Remove)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Upsert)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Remove)
		}

		v1.POST("/production", stockH.Produce)
		v1.POST("/writeoffs", stockH.WriteOff)

		v1.GET("/history", historyH.List)
		v1.DELETE("/history", historyH.Clear)

		v1.GET("/dashboard/low-stock", dashboardH.Overview)

		v1.POST("/import/ingredients", reportsH.ImportIngredients)
		v1.GET("/export/inventory.xlsx", reportsH.ExportInventoryXLSX)
		v1.GET("/export/inventory.pdf", reportsH.ExportInventoryPDF)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
