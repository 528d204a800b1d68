package model

import (
	userModel "inspyre/internal/domain/user/model"
	baseModel "inspyre/pkg/model"
)

// ProfileTag 主页标签（固定词表：writer / artist / photographer）
type ProfileTag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

// Profile 个人主页，每个用户一条，注册时自动创建
type Profile struct {
	baseModel.BaseModel
	OwnerID     uint           `gorm:"uniqueIndex;not null" json:"-"`
	Owner       userModel.User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name        string         `gorm:"size:255" json:"name"`
	Content     string         `gorm:"type:text" json:"content"`
	Image       string         `gorm:"size:512" json:"image"`
	ProfileTags []ProfileTag   `gorm:"many2many:profile_profile_tags;" json:"-"`
}

// ProfileWithCounts 列表/详情查询结果，带统计列和所有者用户名
type ProfileWithCounts struct {
	Profile
	OwnerUsername  string `gorm:"->" json:"-"`
	PostsCount     int64  `json:"posts_count"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}
