package comment

import (
	"inspyre/internal/domain/comment/handler"
	"inspyre/internal/domain/comment/repository"
	"inspyre/internal/domain/comment/service"
	"inspyre/internal/pkg/config"
	"inspyre/internal/pkg/middleware"
	"inspyre/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommentModule 评论模块
type CommentModule struct{}

func init() {
	registry.Register(&CommentModule{})
}

func (m *CommentModule) Name() string {
	return "comment"
}

func (m *CommentModule) Priority() int {
	return 11
}

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewCommentRepository(ctx.DB)
	svc := service.NewCommentService(repo, config.GlobalConfig.Comment.MaxDepth)
	h := handler.NewCommentHandler(svc)

	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CommentHandler) {
	g := r.Group("/comments")
	g.Use(middleware.OptionalAuthMiddleware())
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}

	// 写操作要求登录
	auth := r.Group("/comments")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.Create)
		auth.PUT("/:id", h.Update)
		auth.DELETE("/:id", h.Delete)
		auth.PUT("/:id/report", h.Report)
	}
}
