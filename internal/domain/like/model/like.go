package model

import (
	"time"

	postModel "inspyre/internal/domain/post/model"
	userModel "inspyre/internal/domain/user/model"
	baseModel "inspyre/pkg/model"
)

// Like 点赞记录，owner + post 唯一
type Like struct {
	baseModel.BaseModel
	OwnerID uint           `gorm:"not null;uniqueIndex:idx_likes_owner_post" json:"-"`
	Owner   userModel.User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PostID  uint           `gorm:"not null;uniqueIndex:idx_likes_owner_post" json:"post"`
	Post    postModel.Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// LikeWithOwner 查询结果，附带所有者用户名
type LikeWithOwner struct {
	Like
	OwnerUsername string `gorm:"->" json:"-"`
}

// LikeView 面向观察者的点赞表示
type LikeView struct {
	ID        uint      `json:"id"`
	Owner     string    `json:"owner"`
	Post      uint      `json:"post"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLikeView 纯函数 (Like) -> LikeView
func NewLikeView(row *LikeWithOwner) *LikeView {
	return &LikeView{
		ID:        row.ID,
		Owner:     row.OwnerUsername,
		Post:      row.PostID,
		CreatedAt: row.CreatedAt,
	}
}
