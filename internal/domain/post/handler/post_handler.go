package handler

import (
	"strconv"

	"inspyre/internal/domain/post/repository"
	"inspyre/internal/domain/post/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/pkg/response"
	"inspyre/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PostHandler 帖子处理器
type PostHandler struct {
	service service.PostService
}

// NewPostHandler 创建处理器
func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// listQuery 列表查询参数
type listQuery struct {
	utils.Pagination
	Search     string `form:"search"`
	Profile    uint   `form:"profile"`     // 某主页发布的
	LikedBy    uint   `form:"liked_by"`    // 某主页点赞过的
	Feed       uint   `form:"feed"`        // 某主页关注的作者们的
	ProfileTag string `form:"profile_tag"` // 作者主页标签
	Ordering   string `form:"ordering"`
}

// List 帖子列表
// @Summary 帖子列表
// @Tags Post
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param search query string false "标题/正文/作者名/帖子标签模糊匹配"
// @Param profile query int false "只看该主页发布的帖子"
// @Param liked_by query int false "只看该主页点赞过的帖子"
// @Param feed query int false "只看该主页关注的作者们的帖子"
// @Param profile_tag query string false "只看作者主页带该标签的帖子"
// @Param ordering query string false "likes_count | comments_count | created_at，前缀 - 为降序"
// @Success 200 {object} utils.PageResult
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var q listQuery
	_ = c.ShouldBindQuery(&q)
	offset, limit := q.GetPageOffset()

	viewerID, _ := middleware.CurrentUserID(c)
	views, total, err := h.service.List(repository.ListParams{
		Search:           q.Search,
		OwnerProfileID:   q.Profile,
		LikedByProfileID: q.LikedBy,
		FeedProfileID:    q.Feed,
		ProfileTag:       q.ProfileTag,
		Ordering:         q.Ordering,
		Offset:           offset,
		Limit:            limit,
	}, viewerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, utils.PageResult{List: views, Total: total, Page: q.Page, Limit: limit})
}

// Get 帖子详情
// @Summary 帖子详情
// @Tags Post
// @Param id path int true "Post ID"
// @Success 200 {object} model.PostView
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
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

// Create 创建帖子（multipart：title、content、tags、original_author、image）
// @Summary 创建帖子
// @Tags Post
// @Accept multipart/form-data
// @Success 201 {object} model.PostView
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)

	input := formInput(c)
	view, err := h.service.Create(viewerID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, view)
}

// Update 更新帖子
// @Summary 更新帖子
// @Tags Post
// @Accept multipart/form-data
// @Param id path int true "Post ID"
// @Success 200 {object} model.PostView
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)

	input := formInput(c)
	view, err := h.service.Update(id, viewerID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, view)
}

// Delete 删除帖子
// @Summary 删除帖子
// @Tags Post
// @Param id path int true "Post ID"
// @Success 204
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
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

// Report 举报帖子
// @Summary 举报帖子
// @Tags Post
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Router /posts/{id}/report [put]
func (h *PostHandler) Report(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)

	if err := h.service.Report(id, viewerID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, gin.H{"status": "post reported"})
}

// Trending 热门帖子
// @Summary 热门帖子（点赞最多的前10个）
// @Tags Post
// @Success 200 {array} model.PostView
// @Router /posts/trending [get]
func (h *PostHandler) Trending(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)

	views, err := h.service.Trending(c.Request.Context(), viewerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, views)
}

func formInput(c *gin.Context) service.PostInput {
	input := service.PostInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}
	if raw, exists := c.GetPostForm("tags"); exists {
		input.Tags = &raw
	}
	if raw, exists := c.GetPostForm("original_author"); exists {
		input.OriginalAuthor = raw == "true" || raw == "1"
	}
	if file, err := c.FormFile("image"); err == nil {
		input.Image = file
	}
	return input
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, 404, "Post not found")
		return 0, false
	}
	return uint(id), true
}
