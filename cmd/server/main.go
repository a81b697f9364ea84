package main

import (
	"log"

	_ "blog_crud_jwt/docs"
	_ "blog_crud_jwt/internal/domain/common"
	_ "blog_crud_jwt/internal/domain/post"
	_ "blog_crud_jwt/internal/domain/tag"
	_ "blog_crud_jwt/internal/domain/user"
	"blog_crud_jwt/internal/pkg/config"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/internal/pkg/registry"
	"blog_crud_jwt/internal/pkg/uploader"
	"blog_crud_jwt/pkg/cache"
	"blog_crud_jwt/pkg/database"
	"blog_crud_jwt/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Blog API
// @version 1.0
// @description Blogging platform backend: posts, tags, comments, reactions and the follow graph.
// @BasePath /
// @securityDefinitions.apikey AuthToken
// @in header
// @name x-auth-token
func main() {
	config.LoadConfig()

	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	db := database.InitDatabase()
	redisClient := database.InitRedis()
	cacheService := cache.NewRedisCache(redisClient)

	if err := uploader.InitUploader(); err != nil {
		// Uploads are optional in local setups without OSS credentials.
		logger.Log.Warn("uploader disabled", zap.Error(err))
	}

	if config.GlobalConfig.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.SystemMetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "x-auth-token"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  redisClient,
		Cache:  cacheService,
		Router: r,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		log.Fatalf("Failed to initialize modules: %v", err)
	}

	addr := ":" + config.GlobalConfig.Server.Port
	logger.Log.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
