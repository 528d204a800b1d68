package model

import (
	userModel "inspyre/internal/domain/user/model"
	baseModel "inspyre/pkg/model"
)

// 审核状态
const (
	StatusApproved = 0
	StatusReported = 1
)

// PostTag 帖子标签，自由词表，创建帖子时按需生成
type PostTag struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

// Post 帖子模型
type Post struct {
	baseModel.BaseModel
	OwnerID        uint           `gorm:"not null;index" json:"-"`
	Owner          userModel.User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Content        string         `gorm:"type:text" json:"content"`
	Image          string         `gorm:"size:512" json:"image"`
	ApprovalStatus int            `gorm:"default:0" json:"approval_status"`
	OriginalAuthor bool           `gorm:"default:false" json:"original_author"`
	PostTags       []PostTag      `gorm:"many2many:post_post_tags;" json:"-"`
}

// PostWithCounts 列表/详情查询结果，带点赞数、评论数和所有者用户名
type PostWithCounts struct {
	Post
	OwnerUsername string `gorm:"->" json:"-"`
	LikesCount    int64  `json:"likes_count"`
	CommentsCount int64  `json:"comments_count"`
}

// OwnerProfile 帖子所有者的主页摘要，序列化时附带
type OwnerProfile struct {
	ProfileID uint
	Image     string
	TagNames  []string
}
