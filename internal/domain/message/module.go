package message

import (
	"inspyre/internal/domain/message/handler"
	"inspyre/internal/domain/message/repository"
	"inspyre/internal/domain/message/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// MessageModule 私信模块
type MessageModule struct{}

func init() {
	registry.Register(&MessageModule{})
}

func (m *MessageModule) Name() string {
	return "message"
}

func (m *MessageModule) Priority() int {
	return 20
}

func (m *MessageModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewMessageRepository(ctx.DB)
	svc := service.NewMessageService(repo, ctx.Notifier)
	h := handler.NewMessageHandler(svc)

	setupRoutes(ctx.Router, h)

	return nil
}

// 私信全部要求登录
func setupRoutes(r *gin.Engine, h *handler.MessageHandler) {
	msgs := r.Group("/messages")
	msgs.Use(middleware.AuthMiddleware())
	{
		msgs.GET("", h.List)
		msgs.POST("", h.Send)
		msgs.GET("/:id", h.Get)
		msgs.PATCH("/:id", h.MarkRead)
	}

	convs := r.Group("/conversations")
	convs.Use(middleware.AuthMiddleware())
	{
		convs.GET("", h.ListConversations)
		convs.GET("/:id", h.GetConversation)
	}
}
