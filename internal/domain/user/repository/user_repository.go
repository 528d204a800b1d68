package repository

import (
	"inspyre/internal/domain/user/model"

	"gorm.io/gorm"
)

// 注册时自动创建空白个人主页（对应 profiles 表），占位头像见 migrations
const defaultProfileImage = "https://res.inspyre.example/profile_images/placeholder.png"

// UserRepository 接口定义
type UserRepository interface {
	CreateWithProfile(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	ListMini(offset, limit int) ([]model.MiniUser, int64, error)
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建新的仓库实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile 创建用户并在同一事务里建立其 Profile
// （原系统通过信号自动建 Profile，这里用事务保证原子性）
func (r *userRepository) CreateWithProfile(user *model.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Exec(
			"INSERT INTO profiles (owner_id, name, content, image, created_at, updated_at) VALUES (?, '', '', ?, now(), now())",
			user.ID, defaultProfileImage,
		).Error
	})
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListMini 用户简要列表（带头像，供私信选人等场景）
func (r *userRepository) ListMini(offset, limit int) ([]model.MiniUser, int64, error) {
	var users []model.MiniUser
	var total int64

	if err := r.db.Table("users").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Table("users").
		Select("users.id, users.username, profiles.image").
		Joins("JOIN profiles ON profiles.owner_id = users.id").
		Order("users.username").
		Offset(offset).Limit(limit).
		Scan(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Delete 硬删除用户；帖子、评论、点赞、关注、Profile 由数据库级联清理
func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&model.User{}, id).Error
}
