package handler

import (
	"strconv"
	"strings"

	"inspyre/internal/domain/profile/repository"
	"inspyre/internal/domain/profile/service"
	"inspyre/internal/pkg/middleware"
	"inspyre/pkg/response"
	"inspyre/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 主页处理器
type ProfileHandler struct {
	service service.ProfileService
}

// NewProfileHandler 创建处理器
func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: s}
}

// listQuery 列表查询参数
type listQuery struct {
	utils.Pagination
	Follows    uint   `form:"follows"`     // 关注了该主页的主页
	FollowedBy uint   `form:"followed_by"` // 被该主页关注的主页
	Ordering   string `form:"ordering"`
}

// List 主页列表
// @Summary 主页列表
// @Tags Profile
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param follows query int false "只看关注了该主页所有者的主页"
// @Param followed_by query int false "只看被该主页所有者关注的主页"
// @Param ordering query string false "posts_count | followers_count | following_count，前缀 - 为降序"
// @Success 200 {object} utils.PageResult
// @Router /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	var q listQuery
	_ = c.ShouldBindQuery(&q)
	offset, limit := q.GetPageOffset()

	viewerID, _ := middleware.CurrentUserID(c)
	views, total, err := h.service.List(repository.ListParams{
		FollowsProfileID:    q.Follows,
		FollowedByProfileID: q.FollowedBy,
		Ordering:            q.Ordering,
		Offset:              offset,
		Limit:               limit,
	}, viewerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, utils.PageResult{List: views, Total: total, Page: q.Page, Limit: limit})
}

// Get 主页详情
// @Summary 主页详情
// @Tags Profile
// @Param id path int true "Profile ID"
// @Success 200 {object} model.ProfileView
// @Router /profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
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

// Update 更新主页（multipart：name、content、profile_tags、image）
// @Summary 更新主页
// @Tags Profile
// @Accept multipart/form-data
// @Param id path int true "Profile ID"
// @Success 200 {object} model.ProfileView
// @Router /profiles/{id} [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)

	input := service.UpdateInput{
		Name:    c.PostForm("name"),
		Content: c.PostForm("content"),
	}

	// profile_tags: 逗号分隔的标签ID
	if raw, exists := c.GetPostForm("profile_tags"); exists {
		input.HasTagEdit = true
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			tagID, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				response.Error(c, 400, "Invalid profile tag id")
				return
			}
			input.TagIDs = append(input.TagIDs, uint(tagID))
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		input.Image = file
	}

	view, err := h.service.Update(id, viewerID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, view)
}

// ListTags 主页标签词表
// @Summary 主页标签列表
// @Tags Profile
// @Success 200 {array} model.ProfileTag
// @Router /profile-tags [get]
func (h *ProfileHandler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, tags)
}

// Followers 关注者列表
// @Summary 关注者列表
// @Tags Profile
// @Param id path int true "Profile ID"
// @Success 200 {array} model.MiniUser
// @Router /profiles/{id}/followers [get]
func (h *ProfileHandler) Followers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	users, err := h.service.Followers(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, users)
}

// Following 关注中列表
// @Summary 关注中列表
// @Tags Profile
// @Param id path int true "Profile ID"
// @Success 200 {array} model.MiniUser
// @Router /profiles/{id}/following [get]
func (h *ProfileHandler) Following(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	users, err := h.service.Following(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, users)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, 404, "Profile not found")
		return 0, false
	}
	return uint(id), true
}
