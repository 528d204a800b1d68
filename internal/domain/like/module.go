package like

import (
	"inspyre/internal/domain/like/handler"
	"inspyre/internal/domain/like/repository"
	"inspyre/internal/domain/like/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// LikeModule 点赞模块
type LikeModule struct{}

func init() {
	registry.Register(&LikeModule{})
}

func (m *LikeModule) Name() string {
	return "like"
}

func (m *LikeModule) Priority() int {
	return 12
}

func (m *LikeModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewLikeRepository(ctx.DB)
	svc := service.NewLikeService(repo, ctx.Notifier)
	h := handler.NewLikeHandler(svc)

	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.LikeHandler) {
	g := r.Group("/likes")
	g.Use(middleware.OptionalAuthMiddleware())
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}

	auth := r.Group("/likes")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.Create)
		auth.DELETE("/:id", h.Delete)
	}
}
