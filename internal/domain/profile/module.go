package profile

import (
	"inspyre/internal/domain/profile/handler"
	"inspyre/internal/domain/profile/repository"
	"inspyre/internal/domain/profile/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ProfileModule 主页模块
type ProfileModule struct{}

func init() {
	registry.Register(&ProfileModule{})
}

func (m *ProfileModule) Name() string {
	return "profile"
}

func (m *ProfileModule) Priority() int {
	return 2
}

func (m *ProfileModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewProfileRepository(ctx.DB)
	svc := service.NewProfileService(repo)
	h := handler.NewProfileHandler(svc)

	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ProfileHandler) {
	g := r.Group("/profiles")
	g.Use(middleware.OptionalAuthMiddleware())
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.GET("/:id/followers", h.Followers)
		g.GET("/:id/following", h.Following)
	}

	// 写操作要求登录
	auth := r.Group("/profiles")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.PUT("/:id", h.Update)
	}

	r.GET("/profile-tags", middleware.OptionalAuthMiddleware(), h.ListTags)
}
