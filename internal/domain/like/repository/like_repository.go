package repository

import (
	"inspyre/internal/domain/like/model"

	"gorm.io/gorm"
)

// LikeRepository 接口定义
type LikeRepository interface {
	Create(like *model.Like) error
	List(offset, limit int) ([]model.LikeWithOwner, int64, error)
	GetByID(id uint) (*model.LikeWithOwner, error)
	GetByOwnerAndPost(ownerID, postID uint) (*model.Like, error)
	Delete(id uint) error
	PostExists(postID uint) (bool, error)
	PostOwnerID(postID uint) (uint, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository 创建新的仓库实例
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create 创建点赞记录；owner+post 唯一约束在数据库层兜底
func (r *likeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

// List 点赞列表，按创建时间倒序分页
func (r *likeRepository) List(offset, limit int) ([]model.LikeWithOwner, int64, error) {
	var total int64
	if err := r.db.Table("likes").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.LikeWithOwner
	err := r.db.Table("likes").
		Select("likes.*, users.username AS owner_username").
		Joins("JOIN users ON users.id = likes.owner_id").
		Order("likes.created_at DESC, likes.id DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetByID 单条点赞记录
func (r *likeRepository) GetByID(id uint) (*model.LikeWithOwner, error) {
	var row model.LikeWithOwner
	err := r.db.Table("likes").
		Select("likes.*, users.username AS owner_username").
		Joins("JOIN users ON users.id = likes.owner_id").
		Where("likes.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByOwnerAndPost 查重复
func (r *likeRepository) GetByOwnerAndPost(ownerID, postID uint) (*model.Like, error) {
	var like model.Like
	err := r.db.Where("owner_id = ? AND post_id = ?", ownerID, postID).Take(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Delete 硬删除
func (r *likeRepository) Delete(id uint) error {
	return r.db.Delete(&model.Like{}, id).Error
}

// PostExists 帖子是否存在
func (r *likeRepository) PostExists(postID uint) (bool, error) {
	var count int64
	if err := r.db.Table("posts").Where("id = ?", postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PostOwnerID 帖子所有者，点赞通知用
func (r *likeRepository) PostOwnerID(postID uint) (uint, error) {
	var ownerID uint
	err := r.db.Table("posts").Select("owner_id").Where("id = ?", postID).Take(&ownerID).Error
	return ownerID, err
}
