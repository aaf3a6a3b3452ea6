package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/syndesk/syndesk/internal/api"
	"github.com/syndesk/syndesk/internal/cache"
	"github.com/syndesk/syndesk/internal/config"
	"github.com/syndesk/syndesk/internal/content"
	"github.com/syndesk/syndesk/internal/db"
	"github.com/syndesk/syndesk/internal/identity"
	"github.com/syndesk/syndesk/internal/middleware"
	"github.com/syndesk/syndesk/internal/observ"
	"github.com/syndesk/syndesk/internal/portal"
	"github.com/syndesk/syndesk/internal/ranking"
	"github.com/syndesk/syndesk/internal/repository/postgres"
	"github.com/syndesk/syndesk/internal/search"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is a development convenience; in deployment the variables come
	// from the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Startup has no request deadline; Background() is correct here.
	database, err := db.New(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	// Redis only caches popularity rankings, so a missing redis degrades
	// to recomputing on every request instead of failing startup.
	rankCache, err := cache.New(context.Background(), cfg.RedisURL, cfg.PopularityCacheTTL, logger)
	if err != nil {
		logger.Warn("redis unavailable, popularity cache disabled", zap.Error(err))
		rankCache = nil
	}
	defer rankCache.Close()

	pool := database.Pool()
	tenantRepo := postgres.NewTenantStore(pool)
	staffRepo := postgres.NewStaffUserStore(pool)
	buildingRepo := postgres.NewBuildingStore(pool)
	unitRepo := postgres.NewUnitStore(pool)
	residentRepo := postgres.NewResidentStore(pool)
	portalUserRepo := postgres.NewPortalUserStore(pool)
	engagementRepo := postgres.NewEngagementStore(pool)
	commentRepo := postgres.NewCommentStore(pool)
	financeRepo := postgres.NewFinanceStore(pool)

	registry := content.Default
	engine := ranking.NewEngine(registry, engagementRepo, rankCache, logger)
	searcher := search.NewSearcher(registry)
	provider := identity.NewHTTPProvider(cfg.IdentityProviderURL, cfg.IdentityProviderKey)
	resolver := portal.NewResolver(portalUserRepo, residentRepo, provider, logger)

	authHandler := api.NewAuthHandler(staffRepo, tenantRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	buildingHandler := api.NewBuildingHandler(buildingRepo, logger)
	unitHandler := api.NewUnitHandler(unitRepo, buildingRepo, logger)
	residentHandler := api.NewResidentHandler(residentRepo, logger)
	financeHandler := api.NewFinanceHandler(financeRepo, logger)
	articleHandler := api.NewArticleHandler(registry, engine, searcher, commentRepo, logger)
	portalHandler := api.NewPortalHandler(resolver, logger)

	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())

	logger.Info("starting syndesk",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.Int("articles", registry.Len()),
	)

	// Public: health for load balancers, signup/login to obtain a token.
	srv.GET("/v1/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})
	srv.POST("/v1/auth/signup", authHandler.Signup)
	srv.POST("/v1/auth/login", authHandler.Login)

	// Management API: staff JWTs.
	v1 := srv.Group("/v1")
	v1.Use(middleware.StaffAuth(cfg.JWTSecret))
	{
		v1.POST("/buildings", buildingHandler.Create)
		v1.GET("/buildings", buildingHandler.List)
		v1.GET("/buildings/:id", buildingHandler.GetByID)
		v1.PUT("/buildings/:id", buildingHandler.Update)
		v1.DELETE("/buildings/:id", buildingHandler.Delete)

		v1.POST("/units", unitHandler.Create)
		v1.GET("/units", unitHandler.List)
		v1.GET("/units/:id", unitHandler.GetByID)
		v1.PUT("/units/:id", unitHandler.Update)
		v1.DELETE("/units/:id", unitHandler.Delete)

		v1.POST("/residents", residentHandler.Create)
		v1.GET("/residents", residentHandler.List)
		v1.GET("/residents/:id", residentHandler.GetByID)
		v1.PUT("/residents/:id", residentHandler.Update)

		v1.POST("/finance/entries", financeHandler.Create)
		v1.GET("/finance/entries", financeHandler.List)
		v1.DELETE("/finance/entries/:id", financeHandler.Delete)
		v1.GET("/finance/summary", financeHandler.Summary)
	}

	// Resident portal: tokens asserted by the hosted identity provider.
	p := srv.Group("/v1/portal")
	p.Use(middleware.PortalAuth(cfg.PortalJWTSecret))
	{
		p.GET("/access", portalHandler.Access)

		p.GET("/articles", articleHandler.List)
		p.GET("/articles/categories", articleHandler.Categories)
		p.GET("/articles/popular", articleHandler.Popular)
		p.GET("/articles/search", articleHandler.Search)
		p.GET("/articles/:slug", articleHandler.GetBySlug)
		p.GET("/articles/:slug/stats", articleHandler.Stats)
		p.POST("/articles/:slug/view", articleHandler.TrackView)
		p.POST("/articles/:slug/rating", articleHandler.Rate)
		p.GET("/articles/:slug/comments", articleHandler.ListComments)
		p.POST("/articles/:slug/comments", articleHandler.CreateComment)
	}

	return srv.Run(":" + cfg.Port)
}
