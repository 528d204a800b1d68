package model

import "time"

// PostView 面向观察者的帖子表示
type PostView struct {
	ID             uint      `json:"id"`
	Owner          string    `json:"owner"`
	IsOwner        bool      `json:"is_owner"`
	ProfileID      uint      `json:"profile_id"`
	ProfileImage   string    `json:"profile_image"`
	ProfileTags    []string  `json:"profile_tags"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Image          string    `json:"image"`
	PostTags       []PostTag `json:"post_tags"`
	LikeID         *uint     `json:"like_id"`
	LikesCount     int64     `json:"likes_count"`
	CommentsCount  int64     `json:"comments_count"`
	ApprovalStatus int       `json:"approval_status"`
}

// NewPostView 纯函数 (Post, viewer) -> PostView
func NewPostView(p *PostWithCounts, owner OwnerProfile, viewerID uint, likeID *uint) *PostView {
	postTags := p.PostTags
	if postTags == nil {
		postTags = []PostTag{}
	}
	profileTags := owner.TagNames
	if profileTags == nil {
		profileTags = []string{}
	}
	return &PostView{
		ID:             p.ID,
		Owner:          p.OwnerUsername,
		IsOwner:        viewerID != 0 && viewerID == p.OwnerID,
		ProfileID:      owner.ProfileID,
		ProfileImage:   owner.Image,
		ProfileTags:    profileTags,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Title:          p.Title,
		Content:        p.Content,
		Image:          p.Image,
		PostTags:       postTags,
		LikeID:         likeID,
		LikesCount:     p.LikesCount,
		CommentsCount:  p.CommentsCount,
		ApprovalStatus: p.ApprovalStatus,
	}
}
