package model

import (
	baseModel "inspyre/pkg/model"
)

// User 用户模型
type User struct {
	baseModel.BaseModel
	Username     string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // 密码散列不返回给前端
}

// MiniUser 用户简要信息：关注列表、私信参与者等场景使用
type MiniUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Image    string `json:"image"`
}
