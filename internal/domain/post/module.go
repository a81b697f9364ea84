package post

import (
	"time"

	"blog_crud_jwt/internal/domain/post/handler"
	"blog_crud_jwt/internal/domain/post/repository"
	"blog_crud_jwt/internal/domain/post/service"
	tagrepo "blog_crud_jwt/internal/domain/tag/repository"
	"blog_crud_jwt/internal/pkg/config"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/internal/pkg/registry"
	"blog_crud_jwt/internal/pkg/worker"

	"github.com/gin-gonic/gin"
)

// PostModule wires posts, comments, reactions and bookmarks.
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	// After users and tags; posts reference both.
	return 3
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	postRepo := repository.NewPostRepository(ctx.DB)
	interactionRepo := repository.NewInteractionRepository(ctx.DB)
	tagRepo := tagrepo.NewTagRepository(ctx.DB)

	flusher := worker.NewViewFlushPool(postRepo, 4, 1024)
	flusher.Start()

	viewWindow := 30 * time.Minute
	if config.GlobalConfig.App.ViewWindowMinutes > 0 {
		viewWindow = time.Duration(config.GlobalConfig.App.ViewWindowMinutes) * time.Minute
	}

	deduper := service.NewRedisViewDeduper(ctx.Redis, viewWindow)
	postService := service.NewPostService(postRepo, tagRepo, deduper, flusher)
	interactionService := service.NewInteractionService(interactionRepo, postRepo)

	postHandler := handler.NewPostHandler(postService, ctx.Admin)
	interactionHandler := handler.NewInteractionHandler(interactionService, ctx.Admin)

	setupRoutes(ctx.Router, postHandler, interactionHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler, ih *handler.InteractionHandler) {
	// Reads are public. The optional identity feeds view deduplication
	// for logged-in readers.
	readGroup := r.Group("/api/posts")
	readGroup.Use(middleware.OptionalAuthMiddleware())
	{
		readGroup.GET("", h.List)
		readGroup.GET("/search", h.Search)
		readGroup.GET("/slug/:slug", h.ShowBySlug)
		readGroup.GET("/:id", h.Show)
		readGroup.GET("/:id/comments", ih.ListComments)
	}

	postGroup := r.Group("/api/posts")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.GET("/saved", ih.SavedPosts)
		postGroup.POST("", h.Create)

		// Comment routes sit under /comments so they are not shadowed
		// by the post /:id routes.
		postGroup.POST("/comments/like/:id", ih.ToggleLikeComment)
		postGroup.PATCH("/comments/:id", ih.UpdateComment)
		postGroup.DELETE("/comments/:id", ih.RemoveComment)

		postGroup.POST("/like/:id", ih.ToggleLikePost)
		postGroup.POST("/save/:id", ih.ToggleSavePost)

		postGroup.PATCH("/:id", h.Update)
		postGroup.DELETE("/:id", h.Remove)
		postGroup.POST("/:id/comments", ih.AddComment)
	}
}
