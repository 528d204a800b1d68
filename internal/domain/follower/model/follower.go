package model

import (
	"time"

	userModel "inspyre/internal/domain/user/model"
	baseModel "inspyre/pkg/model"
)

// Follower 关注关系：owner 关注 followed，方向单向，组合唯一
type Follower struct {
	baseModel.BaseModel
	OwnerID    uint           `gorm:"not null;uniqueIndex:idx_followers_pair" json:"-"`
	Owner      userModel.User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FollowedID uint           `gorm:"not null;uniqueIndex:idx_followers_pair" json:"followed"`
	Followed   userModel.User `gorm:"foreignKey:FollowedID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// FollowerWithNames 查询结果，附带双方用户名
type FollowerWithNames struct {
	Follower
	OwnerUsername    string `gorm:"->" json:"-"`
	FollowedUsername string `gorm:"->" json:"-"`
}

// FollowerView 面向观察者的关注表示
type FollowerView struct {
	ID           uint      `json:"id"`
	Owner        string    `json:"owner"`
	Followed     uint      `json:"followed"`
	FollowedName string    `json:"followed_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewFollowerView 纯函数 (Follower) -> FollowerView
func NewFollowerView(row *FollowerWithNames) *FollowerView {
	return &FollowerView{
		ID:           row.ID,
		Owner:        row.OwnerUsername,
		Followed:     row.FollowedID,
		FollowedName: row.FollowedUsername,
		CreatedAt:    row.CreatedAt,
	}
}
