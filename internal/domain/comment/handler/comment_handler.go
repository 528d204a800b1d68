package handler

import (
	"strconv"

	"inspyre/internal/domain/comment/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/pkg/response"

	"github.com/gin-gonic/gin"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	service service.CommentService
}

// NewCommentHandler 创建处理器
func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// createRequest 创建评论请求体
type createRequest struct {
	Post    uint   `json:"post" binding:"required"`
	Content string `json:"content"`
	Parent  *uint  `json:"parent"`
}

// updateRequest 更新评论请求体
type updateRequest struct {
	Content string `json:"content"`
}

// List 某帖子的顶层评论树
// @Summary 评论列表（顶层评论，回复内嵌）
// @Tags Comment
// @Param post query int true "Post ID"
// @Success 200 {array} model.CommentView
// @Failure 404 {object} response.ErrorBody
// @Router /comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Query("post"), 10, 32)

	viewerID, _ := middleware.CurrentUserID(c)
	views, err := h.service.ListByPost(uint(postID), viewerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, views)
}

// Get 评论详情及完整回复子树
// @Summary 评论详情
// @Tags Comment
// @Param id path int true "Comment ID"
// @Success 200 {object} model.CommentView
// @Failure 404 {object} response.ErrorBody
// @Router /comments/{id} [get]
func (h *CommentHandler) Get(c *gin.Context) {
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

// Create 创建评论或回复
// @Summary 创建评论
// @Tags Comment
// @Accept json
// @Success 201 {object} model.CommentView
// @Failure 400 {object} response.ErrorBody
// @Router /comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "post is required")
		return
	}

	viewerID, _ := middleware.CurrentUserID(c)
	view, err := h.service.Create(viewerID, service.CreateInput{
		PostID:   req.Post,
		Content:  req.Content,
		ParentID: req.Parent,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, view)
}

// Update 更新评论正文
// @Summary 更新评论
// @Tags Comment
// @Accept json
// @Param id path int true "Comment ID"
// @Success 200 {object} model.CommentView
// @Failure 403 {object} response.ErrorBody
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateRequest
	_ = c.ShouldBindJSON(&req)

	viewerID, _ := middleware.CurrentUserID(c)
	view, err := h.service.Update(id, viewerID, req.Content)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, view)
}

// Delete 删除评论及其回复子树
// @Summary 删除评论
// @Tags Comment
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} response.ErrorBody
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)

	if err := h.service.Delete(id, viewerID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// Report 举报评论
// @Summary 举报评论
// @Tags Comment
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorBody
// @Router /comments/{id}/report [put]
func (h *CommentHandler) Report(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)

	if err := h.service.Report(id, viewerID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, gin.H{"status": "comment reported"})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, 404, "Comment not found")
		return 0, false
	}
	return uint(id), true
}
