package handler

import (
	"strconv"

	"inspyre/internal/domain/like/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/pkg/response"
	"inspyre/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LikeHandler 点赞处理器
type LikeHandler struct {
	service service.LikeService
}

// NewLikeHandler 创建处理器
func NewLikeHandler(s service.LikeService) *LikeHandler {
	return &LikeHandler{service: s}
}

// createRequest 点赞请求体
type createRequest struct {
	Post uint `json:"post" binding:"required"`
}

// listQuery 列表查询参数
type listQuery struct {
	utils.Pagination
}

// List 点赞列表
// @Summary 点赞列表
// @Tags Like
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} utils.PageResult
// @Router /likes [get]
func (h *LikeHandler) List(c *gin.Context) {
	var q listQuery
	_ = c.ShouldBindQuery(&q)
	offset, limit := q.GetPageOffset()

	views, total, err := h.service.List(offset, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, utils.PageResult{List: views, Total: total, Page: q.Page, Limit: limit})
}

// Create 点赞
// @Summary 点赞帖子
// @Tags Like
// @Accept json
// @Success 201 {object} model.LikeView
// @Failure 400 {object} response.ErrorBody
// @Router /likes [post]
func (h *LikeHandler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "post is required")
		return
	}

	viewerID, _ := middleware.CurrentUserID(c)
	view, err := h.service.Create(viewerID, req.Post)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, view)
}

// Get 点赞详情
// @Summary 点赞详情
// @Tags Like
// @Param id path int true "Like ID"
// @Success 200 {object} model.LikeView
// @Failure 404 {object} response.ErrorBody
// @Router /likes/{id} [get]
func (h *LikeHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.service.Get(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, view)
}

// Delete 取消点赞
// @Summary 取消点赞
// @Tags Like
// @Param id path int true "Like ID"
// @Success 204
// @Failure 403 {object} response.ErrorBody
// @Router /likes/{id} [delete]
func (h *LikeHandler) Delete(c *gin.Context) {
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

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, 404, "Like not found")
		return 0, false
	}
	return uint(id), true
}
