package repository

import (
	"inspyre/internal/domain/comment/model"

	"gorm.io/gorm"
)

// CommentRepository 接口定义
type CommentRepository interface {
	ListByPost(postID uint) ([]model.CommentWithOwner, error)
	GetByID(id uint) (*model.CommentWithOwner, error)
	Create(comment *model.Comment) error
	UpdateContent(id uint, content string) error
	Delete(id uint) error
	SetApprovalStatus(id uint, status int) error
	PostExists(postID uint) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建新的仓库实例
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

const ownerSelect = `comments.*, users.username AS owner_username,
profiles.id AS profile_id, profiles.image AS profile_image`

// ListByPost 一个帖子的全部评论，单次查询，新的在前
func (r *commentRepository) ListByPost(postID uint) ([]model.CommentWithOwner, error) {
	var rows []model.CommentWithOwner
	err := r.db.Table("comments").
		Select(ownerSelect).
		Joins("JOIN users ON users.id = comments.owner_id").
		Joins("JOIN profiles ON profiles.owner_id = comments.owner_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC, comments.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID 单条评论
func (r *commentRepository) GetByID(id uint) (*model.CommentWithOwner, error) {
	var row model.CommentWithOwner
	err := r.db.Table("comments").
		Select(ownerSelect).
		Joins("JOIN users ON users.id = comments.owner_id").
		Joins("JOIN profiles ON profiles.owner_id = comments.owner_id").
		Where("comments.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create 创建评论
func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// UpdateContent 只更新正文
func (r *commentRepository) UpdateContent(id uint, content string) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content).Error
}

// Delete 硬删除；回复子树由数据库沿 parent_id 级联清理
func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Comment{}, id).Error
}

func (r *commentRepository) SetApprovalStatus(id uint, status int) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Update("approval_status", status).Error
}

// PostExists 帖子是否存在
func (r *commentRepository) PostExists(postID uint) (bool, error) {
	var count int64
	if err := r.db.Table("posts").Where("id = ?", postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
