package user

import (
	"inspyre/internal/domain/user/handler"
	"inspyre/internal/domain/user/repository"
	"inspyre/internal/domain/user/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，其他模块都依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)

	setupRoutes(ctx.Router, userHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	userGroup := r.Group("/users")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.GET("", h.GetUsers)
		userGroup.DELETE("/delete", h.DeleteAccount)
	}
}
