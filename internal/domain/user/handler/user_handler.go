package handler

import (
	"inspyre/internal/domain/user/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/pkg/response"
	"inspyre/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	service service.UserService
}

// NewUserHandler 创建处理器
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// LoginInput 登录输入
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 处理注册请求
// @Summary 注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body RegisterInput true "注册信息"
// @Success 201 {object} model.User
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, 400, err.Error())
		return
	}

	user, err := h.service.Register(input.Username, input.Email, input.Password)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, user)
}

// Login 处理登录请求
// @Summary 登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "登录凭证"
// @Success 200 {object} service.AuthResult
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, 400, err.Error())
		return
	}

	result, err := h.service.Login(input.Username, input.Password)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, result)
}

// GetUsers 用户简要列表
// @Summary 用户列表
// @Tags User
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} utils.PageResult
// @Router /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	users, total, err := h.service.GetUsers(p.Page, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, utils.PageResult{List: users, Total: total, Page: p.Page, Limit: limit})
}

// DeleteAccount 注销当前账号
// @Summary 注销账号
// @Tags User
// @Success 204
// @Router /users/delete [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, 401, "Authentication required")
		return
	}

	if err := h.service.DeleteAccount(userID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.NoContent(c)
}
