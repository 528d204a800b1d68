package follower

import (
	"inspyre/internal/domain/follower/handler"
	"inspyre/internal/domain/follower/repository"
	"inspyre/internal/domain/follower/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// FollowerModule 关注模块
type FollowerModule struct{}

func init() {
	registry.Register(&FollowerModule{})
}

func (m *FollowerModule) Name() string {
	return "follower"
}

func (m *FollowerModule) Priority() int {
	return 13
}

func (m *FollowerModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewFollowerRepository(ctx.DB)
	svc := service.NewFollowerService(repo, ctx.Notifier)
	h := handler.NewFollowerHandler(svc)

	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.FollowerHandler) {
	g := r.Group("/followers")
	g.Use(middleware.OptionalAuthMiddleware())
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}

	auth := r.Group("/followers")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.Create)
		auth.DELETE("/:id", h.Delete)
	}
}
