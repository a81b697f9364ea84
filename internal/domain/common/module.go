package common

import (
	commonHandler "blog_crud_jwt/internal/pkg/common"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommonModule hosts routes that belong to no single feature area.
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // initialize last
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	statusHandler := commonHandler.NewStatusHandler(ctx.DB, ctx.Redis)
	setupRoutes(ctx.Router, statusHandler)
	return nil
}

func setupRoutes(r *gin.Engine, sh *commonHandler.StatusHandler) {
	r.GET("/api/status", sh.Status)
	r.POST("/api/upload", middleware.AuthMiddleware(), commonHandler.UploadFile)
}
