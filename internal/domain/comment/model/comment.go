package model

import (
	postModel "inspyre/internal/domain/post/model"
	userModel "inspyre/internal/domain/user/model"
	baseModel "inspyre/pkg/model"
)

// 审核状态
const (
	StatusApproved = 0
	StatusReported = 1
)

// Comment 评论模型。parent 为空是帖子下的顶层评论，否则是对另一条评论的回复
type Comment struct {
	baseModel.BaseModel
	OwnerID        uint           `gorm:"not null;index" json:"-"`
	Owner          userModel.User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PostID         uint           `gorm:"not null;index" json:"post"`
	Post           postModel.Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID       *uint          `gorm:"index" json:"parent"`
	Parent         *Comment       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	ApprovalStatus int            `gorm:"default:0" json:"approval_status"`
}

// CommentWithOwner 查询结果，附带所有者用户名与主页摘要
type CommentWithOwner struct {
	Comment
	OwnerUsername string `gorm:"->" json:"-"`
	ProfileID     uint   `gorm:"->" json:"-"`
	ProfileImage  string `gorm:"->" json:"-"`
}
