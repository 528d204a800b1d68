package post

import (
	"inspyre/internal/domain/post/handler"
	"inspyre/internal/domain/post/repository"
	"inspyre/internal/domain/post/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PostModule 帖子模块
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	return 10
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewPostRepository(ctx.DB)
	svc := service.NewPostService(repo, ctx.Cache)
	h := handler.NewPostHandler(svc)

	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler) {
	g := r.Group("/posts")
	g.Use(middleware.OptionalAuthMiddleware())
	{
		g.GET("", h.List)
		// gin 静态路由优先于参数路由，/trending 不会落进 /:id
		g.GET("/trending", h.Trending)
		g.GET("/:id", h.Get)
	}

	// 写操作要求登录
	auth := r.Group("/posts")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.Create)
		auth.PUT("/:id", h.Update)
		auth.DELETE("/:id", h.Delete)
		auth.PUT("/:id/report", h.Report)
	}
}
