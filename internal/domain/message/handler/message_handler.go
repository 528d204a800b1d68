package handler

import (
	"strconv"

	"inspyre/internal/domain/message/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/pkg/response"
	"inspyre/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler 私信处理器
type MessageHandler struct {
	service service.MessageService
}

// NewMessageHandler 创建处理器
func NewMessageHandler(s service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

// sendRequest 发私信请求体
type sendRequest struct {
	Receiver uint   `json:"receiver" binding:"required"`
	Content  string `json:"content"`
}

// listQuery 私信列表查询参数
type listQuery struct {
	utils.Pagination
	Receiver uint   `form:"receiver"`
	Ordering string `form:"ordering"`
}

// List 与某用户之间的私信
// @Summary 私信列表（与对方的双向消息）
// @Tags Message
// @Param receiver query int true "对方用户ID"
// @Param ordering query string false "created_at | read，前缀 - 为降序"
// @Success 200 {object} utils.PageResult
// @Router /messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	var q listQuery
	_ = c.ShouldBindQuery(&q)
	offset, limit := q.GetPageOffset()

	viewerID, _ := middleware.CurrentUserID(c)
	views, total, err := h.service.ListBetween(viewerID, q.Receiver, q.Ordering, offset, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, utils.PageResult{List: views, Total: total, Page: q.Page, Limit: limit})
}

// Send 发私信
// @Summary 发私信
// @Tags Message
// @Accept json
// @Success 201 {object} model.MessageView
// @Failure 400 {object} response.ErrorBody
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "receiver is required")
		return
	}

	viewerID, _ := middleware.CurrentUserID(c)
	view, err := h.service.Send(viewerID, req.Receiver, req.Content)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, view)
}

// Get 私信详情
// @Summary 私信详情
// @Tags Message
// @Param id path int true "Message ID"
// @Success 200 {object} model.MessageView
// @Failure 403 {object} response.ErrorBody
// @Router /messages/{id} [get]
func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)

	view, err := h.service.Get(id, viewerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, view)
}

// MarkRead 标记已读
// @Summary 标记私信已读
// @Tags Message
// @Param id path int true "Message ID"
// @Success 200 {object} model.MessageView
// @Failure 403 {object} response.ErrorBody
// @Router /messages/{id} [patch]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)

	view, err := h.service.MarkRead(id, viewerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, view)
}

// ListConversations 会话列表
// @Summary 会话列表
// @Tags Message
// @Success 200 {array} model.ConversationView
// @Router /conversations [get]
func (h *MessageHandler) ListConversations(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)

	views, err := h.service.ListConversations(viewerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, views)
}

// GetConversation 会话详情
// @Summary 会话详情（含全部消息，打开即标记已读）
// @Tags Message
// @Param id path int true "Conversation ID"
// @Success 200 {object} model.ConversationDetailView
// @Failure 403 {object} response.ErrorBody
// @Router /conversations/{id} [get]
func (h *MessageHandler) GetConversation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, 404, "Conversation not found")
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)

	view, svcErr := h.service.GetConversation(uint(id), viewerID)
	if svcErr != nil {
		response.HandleError(c, svcErr)
		return
	}
	response.OK(c, view)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, 404, "Message not found")
		return 0, false
	}
	return uint(id), true
}
