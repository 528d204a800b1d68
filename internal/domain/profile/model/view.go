package model

import "time"

// ProfileView 面向观察者的主页表示
// is_owner / following_id 按请求者计算，存储层不感知观察者
type ProfileView struct {
	ID             uint         `json:"id"`
	Owner          string       `json:"owner"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Name           string       `json:"name"`
	Content        string       `json:"content"`
	Image          string       `json:"image"`
	IsOwner        bool         `json:"is_owner"`
	FollowingID    *uint        `json:"following_id"`
	PostsCount     int64        `json:"posts_count"`
	FollowersCount int64        `json:"followers_count"`
	FollowingCount int64        `json:"following_count"`
	ProfileTags    []ProfileTag `json:"profile_tags_display"`
}

// NewProfileView 纯函数 (Profile, viewer) -> ProfileView
func NewProfileView(p *ProfileWithCounts, viewerID uint, followingID *uint) *ProfileView {
	tags := p.ProfileTags
	if tags == nil {
		tags = []ProfileTag{}
	}
	return &ProfileView{
		ID:             p.ID,
		Owner:          p.OwnerUsername,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Name:           p.Name,
		Content:        p.Content,
		Image:          p.Image,
		IsOwner:        viewerID != 0 && viewerID == p.OwnerID,
		FollowingID:    followingID,
		PostsCount:     p.PostsCount,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
		ProfileTags:    tags,
	}
}
