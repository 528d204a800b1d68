package repository

import (
	"inspyre/internal/domain/follower/model"

	"gorm.io/gorm"
)

// FollowerRepository 接口定义
type FollowerRepository interface {
	Create(follower *model.Follower) error
	List(offset, limit int) ([]model.FollowerWithNames, int64, error)
	GetByID(id uint) (*model.FollowerWithNames, error)
	GetByPair(ownerID, followedID uint) (*model.Follower, error)
	Delete(id uint) error
	UserExists(userID uint) (bool, error)
}

type followerRepository struct {
	db *gorm.DB
}

// NewFollowerRepository 创建新的仓库实例
func NewFollowerRepository(db *gorm.DB) FollowerRepository {
	return &followerRepository{db: db}
}

// Create 创建关注关系；组合唯一约束在数据库层兜底
func (r *followerRepository) Create(follower *model.Follower) error {
	return r.db.Create(follower).Error
}

// List 关注列表，按创建时间倒序分页
func (r *followerRepository) List(offset, limit int) ([]model.FollowerWithNames, int64, error) {
	var total int64
	if err := r.db.Table("followers").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.FollowerWithNames
	err := r.db.Table("followers").
		Select(`followers.*, owners.username AS owner_username,
			followed.username AS followed_username`).
		Joins("JOIN users owners ON owners.id = followers.owner_id").
		Joins("JOIN users followed ON followed.id = followers.followed_id").
		Order("followers.created_at DESC, followers.id DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetByID 单条关注记录
func (r *followerRepository) GetByID(id uint) (*model.FollowerWithNames, error) {
	var row model.FollowerWithNames
	err := r.db.Table("followers").
		Select(`followers.*, owners.username AS owner_username,
			followed.username AS followed_username`).
		Joins("JOIN users owners ON owners.id = followers.owner_id").
		Joins("JOIN users followed ON followed.id = followers.followed_id").
		Where("followers.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByPair 查重复
func (r *followerRepository) GetByPair(ownerID, followedID uint) (*model.Follower, error) {
	var follower model.Follower
	err := r.db.Where("owner_id = ? AND followed_id = ?", ownerID, followedID).Take(&follower).Error
	if err != nil {
		return nil, err
	}
	return &follower, nil
}

// Delete 硬删除
func (r *followerRepository) Delete(id uint) error {
	return r.db.Delete(&model.Follower{}, id).Error
}

// UserExists 用户是否存在
func (r *followerRepository) UserExists(userID uint) (bool, error) {
	var count int64
	if err := r.db.Table("users").Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
