package repository

import (
	"fmt"
	"strings"

	"inspyre/internal/domain/profile/model"
	userModel "inspyre/internal/domain/user/model"

	"gorm.io/gorm"
)

// ListParams 主页列表的过滤与排序参数
type ListParams struct {
	// FollowsProfileID 只返回"关注了该主页所有者"的主页
	FollowsProfileID uint
	// FollowedByProfileID 只返回"被该主页所有者关注"的主页
	FollowedByProfileID uint
	// Ordering 形如 "posts_count" 或 "-followers_count"，空串为 -created_at
	Ordering string
	Offset   int
	Limit    int
}

// ProfileRepository 接口定义
type ProfileRepository interface {
	List(params ListParams) ([]model.ProfileWithCounts, int64, error)
	GetByID(id uint) (*model.ProfileWithCounts, error)
	GetByOwnerID(ownerID uint) (*model.Profile, error)
	Update(profile *model.Profile) error
	ReplaceTags(profile *model.Profile, tags []model.ProfileTag) error
	ListTags() ([]model.ProfileTag, error)
	TagsByIDs(ids []uint) ([]model.ProfileTag, error)
	TagsForProfiles(profileIDs []uint) (map[uint][]model.ProfileTag, error)
	FollowingIDs(viewerID uint, ownerIDs []uint) (map[uint]uint, error)
	FollowersOf(ownerID uint) ([]userModel.MiniUser, error)
	FollowingOf(ownerID uint) ([]userModel.MiniUser, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建新的仓库实例
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const countedSelect = `profiles.*, users.username AS owner_username,
(SELECT count(*) FROM posts WHERE posts.owner_id = profiles.owner_id) AS posts_count,
(SELECT count(*) FROM followers WHERE followers.followed_id = profiles.owner_id) AS followers_count,
(SELECT count(*) FROM followers WHERE followers.owner_id = profiles.owner_id) AS following_count`

// 允许的排序列，防止把用户输入拼进 ORDER BY
var orderingColumns = map[string]string{
	"created_at":      "profiles.created_at",
	"posts_count":     "posts_count",
	"followers_count": "followers_count",
	"following_count": "following_count",
}

func orderClause(ordering, fallback string) string {
	desc := false
	if strings.HasPrefix(ordering, "-") {
		desc = true
		ordering = ordering[1:]
	}
	col, ok := orderingColumns[ordering]
	if !ok {
		return fallback
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// List 主页列表，带统计、过滤和排序
func (r *profileRepository) List(params ListParams) ([]model.ProfileWithCounts, int64, error) {
	query := r.db.Table("profiles").
		Joins("JOIN users ON users.id = profiles.owner_id")

	if params.FollowsProfileID != 0 {
		query = query.Where(`EXISTS (
			SELECT 1 FROM followers f JOIN profiles target ON target.id = ?
			WHERE f.owner_id = profiles.owner_id AND f.followed_id = target.owner_id)`,
			params.FollowsProfileID)
	}
	if params.FollowedByProfileID != 0 {
		query = query.Where(`EXISTS (
			SELECT 1 FROM followers f JOIN profiles source ON source.id = ?
			WHERE f.followed_id = profiles.owner_id AND f.owner_id = source.owner_id)`,
			params.FollowedByProfileID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []model.ProfileWithCounts
	err := query.Select(countedSelect).
		Order(orderClause(params.Ordering, "profiles.created_at DESC")).
		Offset(params.Offset).Limit(params.Limit).
		Scan(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// GetByID 单个主页（带统计）
func (r *profileRepository) GetByID(id uint) (*model.ProfileWithCounts, error) {
	var profile model.ProfileWithCounts
	err := r.db.Table("profiles").
		Select(countedSelect).
		Joins("JOIN users ON users.id = profiles.owner_id").
		Where("profiles.id = ?", id).
		Take(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByOwnerID(ownerID uint) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("owner_id = ?", ownerID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(profile *model.Profile) error {
	return r.db.Save(profile).Error
}

// ReplaceTags 整体替换主页标签
func (r *profileRepository) ReplaceTags(profile *model.Profile, tags []model.ProfileTag) error {
	return r.db.Model(profile).Association("ProfileTags").Replace(tags)
}

func (r *profileRepository) ListTags() ([]model.ProfileTag, error) {
	var tags []model.ProfileTag
	if err := r.db.Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *profileRepository) TagsByIDs(ids []uint) ([]model.ProfileTag, error) {
	var tags []model.ProfileTag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// TagsForProfiles 批量取一页主页的标签，避免 N+1
func (r *profileRepository) TagsForProfiles(profileIDs []uint) (map[uint][]model.ProfileTag, error) {
	result := make(map[uint][]model.ProfileTag, len(profileIDs))
	if len(profileIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ProfileID uint
		ID        uint
		Name      string
	}
	err := r.db.Table("profile_profile_tags ppt").
		Select("ppt.profile_id, pt.id, pt.name").
		Joins("JOIN profile_tags pt ON pt.id = ppt.profile_tag_id").
		Where("ppt.profile_id IN ?", profileIDs).
		Order("pt.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ProfileID] = append(result[row.ProfileID], model.ProfileTag{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

// FollowingIDs 观察者对一组用户的关注记录 map[被关注者ID]关注记录ID
func (r *profileRepository) FollowingIDs(viewerID uint, ownerIDs []uint) (map[uint]uint, error) {
	result := make(map[uint]uint)
	if viewerID == 0 || len(ownerIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ID         uint
		FollowedID uint
	}
	err := r.db.Table("followers").
		Select("id, followed_id").
		Where("owner_id = ? AND followed_id IN ?", viewerID, ownerIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.FollowedID] = row.ID
	}
	return result, nil
}

func (r *profileRepository) miniUsers(joinOn, whereCol string, ownerID uint) ([]userModel.MiniUser, error) {
	var users []userModel.MiniUser
	err := r.db.Table("followers").
		Select("users.id, users.username, profiles.image").
		Joins(fmt.Sprintf("JOIN users ON users.id = followers.%s", joinOn)).
		Joins("JOIN profiles ON profiles.owner_id = users.id").
		Where(fmt.Sprintf("followers.%s = ?", whereCol), ownerID).
		Order("followers.created_at DESC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FollowersOf 关注该用户的人
func (r *profileRepository) FollowersOf(ownerID uint) ([]userModel.MiniUser, error) {
	return r.miniUsers("owner_id", "followed_id", ownerID)
}

// FollowingOf 该用户关注的人
func (r *profileRepository) FollowingOf(ownerID uint) ([]userModel.MiniUser, error) {
	return r.miniUsers("followed_id", "owner_id", ownerID)
}
