package user

import (
	tagrepo "blog_crud_jwt/internal/domain/tag/repository"
	"blog_crud_jwt/internal/domain/user/handler"
	"blog_crud_jwt/internal/domain/user/repository"
	"blog_crud_jwt/internal/domain/user/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule wires accounts, auth and the follow graph.
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// Highest priority, every other module depends on accounts.
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	userRepo := repository.NewUserRepository(ctx.DB)
	followRepo := repository.NewFollowRepository(ctx.DB)
	tagRepo := tagrepo.NewTagRepository(ctx.DB)

	userService := service.NewUserService(userRepo, followRepo)
	followService := service.NewFollowService(followRepo, userRepo, tagRepo)

	userHandler := handler.NewUserHandler(userService)
	followHandler := handler.NewFollowHandler(followService)

	setupRoutes(ctx.Router, userHandler, followHandler, userService)

	// Content modules gate their admin-only routes on this.
	ctx.Admin = userService

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler, fh *handler.FollowHandler, checker middleware.AdminChecker) {
	api := r.Group("/api")

	// Public routes
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/changepassword", h.ChangePassword)
	}

	// Profile reads are public; the password hash never serializes.
	readGroup := api.Group("/users")
	{
		readGroup.GET("", h.List)
		readGroup.GET("/:id", h.Show)
	}

	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware())
	{
		// Follow graph routes come first so they are not shadowed by /:id.
		userGroup.POST("/follow/:id", fh.ToggleFollowUser)
		userGroup.GET("/followers", fh.Followers)
		userGroup.GET("/following", fh.Following)
		userGroup.POST("/tags/follow/:id", fh.ToggleFollowTag)
		userGroup.GET("/tags", fh.FollowedTags)

		userGroup.PATCH("/:id", middleware.SelfOrAdminMiddleware(checker, "id"), h.Update)
		userGroup.DELETE("/:id", middleware.SelfOrAdminMiddleware(checker, "id"), h.Remove)
	}
}
