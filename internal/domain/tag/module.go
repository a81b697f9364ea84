package tag

import (
	"blog_crud_jwt/internal/domain/tag/handler"
	"blog_crud_jwt/internal/domain/tag/repository"
	"blog_crud_jwt/internal/domain/tag/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// TagModule wires the tag catalogue.
type TagModule struct{}

func init() {
	registry.Register(&TagModule{})
}

func (m *TagModule) Name() string {
	return "tag"
}

func (m *TagModule) Priority() int {
	// After users, before posts (posts attach tags).
	return 2
}

func (m *TagModule) Init(ctx *registry.ModuleContext) error {
	tagRepo := repository.NewTagRepository(ctx.DB)
	tagService := service.NewCachedTagService(tagRepo, ctx.Cache)
	tagHandler := handler.NewTagHandler(tagService)

	setupRoutes(ctx.Router, tagHandler, ctx.Admin)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.TagHandler, checker middleware.AdminChecker) {
	// The catalogue is public to read.
	readGroup := r.Group("/api/tags")
	{
		readGroup.GET("", h.List)
		readGroup.GET("/:id", h.Show)
	}

	// Catalogue writes are an admin concern.
	writeGroup := r.Group("/api/tags")
	writeGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware(checker))
	{
		writeGroup.POST("", h.Create)
		writeGroup.PATCH("/:id", h.Update)
		writeGroup.DELETE("/:id", h.Remove)
	}
}
