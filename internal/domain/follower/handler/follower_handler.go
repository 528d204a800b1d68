package handler

import (
	"strconv"

	"inspyre/internal/domain/follower/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/pkg/response"
	"inspyre/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FollowerHandler 关注处理器
type FollowerHandler struct {
	service service.FollowerService
}

// NewFollowerHandler 创建处理器
func NewFollowerHandler(s service.FollowerService) *FollowerHandler {
	return &FollowerHandler{service: s}
}

// createRequest 关注请求体
type createRequest struct {
	Followed uint `json:"followed" binding:"required"`
}

// listQuery 列表查询参数
type listQuery struct {
	utils.Pagination
}

// List 关注列表
// @Summary 关注列表
// @Tags Follower
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} utils.PageResult
// @Router /followers [get]
func (h *FollowerHandler) List(c *gin.Context) {
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

// Create 关注用户
// @Summary 关注用户
// @Tags Follower
// @Accept json
// @Success 201 {object} model.FollowerView
// @Failure 400 {object} response.ErrorBody
// @Router /followers [post]
func (h *FollowerHandler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "followed is required")
		return
	}

	viewerID, _ := middleware.CurrentUserID(c)
	view, err := h.service.Create(viewerID, req.Followed)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, view)
}

// Get 关注详情
// @Summary 关注详情
// @Tags Follower
// @Param id path int true "Follower ID"
// @Success 200 {object} model.FollowerView
// @Failure 404 {object} response.ErrorBody
// @Router /followers/{id} [get]
func (h *FollowerHandler) Get(c *gin.Context) {
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

// Delete 取消关注
// @Summary 取消关注
// @Tags Follower
// @Param id path int true "Follower ID"
// @Success 204
// @Failure 403 {object} response.ErrorBody
// @Router /followers/{id} [delete]
func (h *FollowerHandler) Delete(c *gin.Context) {
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
		response.Error(c, 404, "Follower not found")
		return 0, false
	}
	return uint(id), true
}
