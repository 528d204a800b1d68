package repository

import (
	"strings"

	"inspyre/internal/domain/post/model"

	"gorm.io/gorm"
)

// ListParams 帖子列表的搜索、过滤与排序参数
type ListParams struct {
	// Search 模糊匹配：标题、正文、作者用户名、帖子标签
	Search string
	// OwnerProfileID 某主页发布的帖子
	OwnerProfileID uint
	// LikedByProfileID 某主页点赞过的帖子
	LikedByProfileID uint
	// FeedProfileID 某主页关注的作者们的帖子（个人时间线）
	FeedProfileID uint
	// ProfileTag 作者主页带某标签（writer 等）的帖子
	ProfileTag string
	// Ordering likes_count | comments_count | created_at，前缀 - 为降序
	Ordering string
	Offset   int
	Limit    int
}

// PostRepository 接口定义
type PostRepository interface {
	List(params ListParams) ([]model.PostWithCounts, int64, error)
	GetByID(id uint) (*model.PostWithCounts, error)
	GetByIDs(ids []uint) ([]model.PostWithCounts, error)
	Create(post *model.Post, tagNames []string) error
	Update(post *model.Post, tagNames *[]string) error
	Delete(id uint) error
	SetApprovalStatus(id uint, status int) error
	TrendingIDs(limit int) ([]uint, error)
	TagsForPosts(postIDs []uint) (map[uint][]model.PostTag, error)
	LikeIDs(viewerID uint, postIDs []uint) (map[uint]uint, error)
	OwnerProfiles(ownerIDs []uint) (map[uint]model.OwnerProfile, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建新的仓库实例
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

const countedSelect = `posts.*, users.username AS owner_username,
(SELECT count(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count,
(SELECT count(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count`

var orderingColumns = map[string]string{
	"created_at":     "posts.created_at",
	"likes_count":    "likes_count",
	"comments_count": "comments_count",
}

func orderClause(ordering string) string {
	desc := false
	if strings.HasPrefix(ordering, "-") {
		desc = true
		ordering = ordering[1:]
	}
	col, ok := orderingColumns[ordering]
	if !ok {
		return "posts.created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// List 帖子列表
func (r *postRepository) List(params ListParams) ([]model.PostWithCounts, int64, error) {
	query := r.db.Table("posts").
		Joins("JOIN users ON users.id = posts.owner_id")

	if s := strings.TrimSpace(params.Search); s != "" {
		pattern := "%" + s + "%"
		query = query.Where(`(posts.title ILIKE ? OR posts.content ILIKE ? OR users.username ILIKE ?
			OR EXISTS (SELECT 1 FROM post_post_tags ppt JOIN post_tags pt ON pt.id = ppt.post_tag_id
				WHERE ppt.post_id = posts.id AND pt.name ILIKE ?))`,
			pattern, pattern, pattern, pattern)
	}
	if params.OwnerProfileID != 0 {
		query = query.Where(
			"posts.owner_id = (SELECT owner_id FROM profiles WHERE id = ?)",
			params.OwnerProfileID)
	}
	if params.LikedByProfileID != 0 {
		query = query.Where(`EXISTS (SELECT 1 FROM likes l JOIN profiles p ON p.id = ?
			WHERE l.post_id = posts.id AND l.owner_id = p.owner_id)`,
			params.LikedByProfileID)
	}
	if params.FeedProfileID != 0 {
		query = query.Where(`EXISTS (SELECT 1 FROM followers f JOIN profiles p ON p.id = ?
			WHERE f.owner_id = p.owner_id AND f.followed_id = posts.owner_id)`,
			params.FeedProfileID)
	}
	if params.ProfileTag != "" {
		query = query.Where(`EXISTS (SELECT 1 FROM profiles pr
			JOIN profile_profile_tags ppt ON ppt.profile_id = pr.id
			JOIN profile_tags pt ON pt.id = ppt.profile_tag_id
			WHERE pr.owner_id = posts.owner_id AND pt.name = ?)`,
			params.ProfileTag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.PostWithCounts
	err := query.Select(countedSelect).
		Order(orderClause(params.Ordering)).
		Offset(params.Offset).Limit(params.Limit).
		Scan(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID 单个帖子（带统计）
func (r *postRepository) GetByID(id uint) (*model.PostWithCounts, error) {
	var post model.PostWithCounts
	err := r.db.Table("posts").
		Select(countedSelect).
		Joins("JOIN users ON users.id = posts.owner_id").
		Where("posts.id = ?", id).
		Take(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByIDs 批量取帖子，结果按传入ID顺序排列（trending 用）
func (r *postRepository) GetByIDs(ids []uint) ([]model.PostWithCounts, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var posts []model.PostWithCounts
	err := r.db.Table("posts").
		Select(countedSelect).
		Joins("JOIN users ON users.id = posts.owner_id").
		Where("posts.id IN ?", ids).
		Scan(&posts).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.PostWithCounts, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]model.PostWithCounts, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// Create 创建帖子，标签按名字 find-or-create，同一事务
func (r *postRepository) Create(post *model.Post, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags, err := findOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		post.PostTags = tags
		return tx.Create(post).Error
	})
}

// Update 更新帖子；tagNames 为 nil 表示不改动标签
func (r *postRepository) Update(post *model.Post, tagNames *[]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		if tagNames == nil {
			return nil
		}
		tags, err := findOrCreateTags(tx, *tagNames)
		if err != nil {
			return err
		}
		return tx.Model(post).Association("PostTags").Replace(tags)
	})
}

func findOrCreateTags(tx *gorm.DB, names []string) ([]model.PostTag, error) {
	var tags []model.PostTag
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var tag model.PostTag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, model.PostTag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Delete 硬删除；评论、点赞由数据库级联清理
func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&model.Post{}, id).Error
}

func (r *postRepository) SetApprovalStatus(id uint, status int) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).Update("approval_status", status).Error
}

// TrendingIDs 点赞最多的已审核帖子ID
func (r *postRepository) TrendingIDs(limit int) ([]uint, error) {
	var ids []uint
	err := r.db.Table("posts").
		Select("posts.id").
		Where("posts.approval_status = ?", model.StatusApproved).
		Order("(SELECT count(*) FROM likes WHERE likes.post_id = posts.id) DESC").
		Limit(limit).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// TagsForPosts 批量取一页帖子的标签，避免 N+1
func (r *postRepository) TagsForPosts(postIDs []uint) (map[uint][]model.PostTag, error) {
	result := make(map[uint][]model.PostTag, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		PostID uint
		ID     uint
		Name   string
	}
	err := r.db.Table("post_post_tags ppt").
		Select("ppt.post_id, pt.id, pt.name").
		Joins("JOIN post_tags pt ON pt.id = ppt.post_tag_id").
		Where("ppt.post_id IN ?", postIDs).
		Order("pt.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.PostID] = append(result[row.PostID], model.PostTag{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

// LikeIDs 观察者对一组帖子的点赞记录 map[帖子ID]点赞记录ID
func (r *postRepository) LikeIDs(viewerID uint, postIDs []uint) (map[uint]uint, error) {
	result := make(map[uint]uint)
	if viewerID == 0 || len(postIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ID     uint
		PostID uint
	}
	err := r.db.Table("likes").
		Select("id, post_id").
		Where("owner_id = ? AND post_id IN ?", viewerID, postIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.PostID] = row.ID
	}
	return result, nil
}

// OwnerProfiles 批量取作者主页摘要（主页ID、头像、主页标签名）
func (r *postRepository) OwnerProfiles(ownerIDs []uint) (map[uint]model.OwnerProfile, error) {
	result := make(map[uint]model.OwnerProfile)
	if len(ownerIDs) == 0 {
		return result, nil
	}

	var profiles []struct {
		OwnerID uint
		ID      uint
		Image   string
	}
	err := r.db.Table("profiles").
		Select("owner_id, id, image").
		Where("owner_id IN ?", ownerIDs).
		Scan(&profiles).Error
	if err != nil {
		return nil, err
	}

	profileIDs := make([]uint, 0, len(profiles))
	byProfileID := make(map[uint]uint, len(profiles))
	for _, p := range profiles {
		result[p.OwnerID] = model.OwnerProfile{ProfileID: p.ID, Image: p.Image}
		profileIDs = append(profileIDs, p.ID)
		byProfileID[p.ID] = p.OwnerID
	}

	var tagRows []struct {
		ProfileID uint
		Name      string
	}
	err = r.db.Table("profile_profile_tags ppt").
		Select("ppt.profile_id, pt.name").
		Joins("JOIN profile_tags pt ON pt.id = ppt.profile_tag_id").
		Where("ppt.profile_id IN ?", profileIDs).
		Scan(&tagRows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range tagRows {
		ownerID := byProfileID[row.ProfileID]
		op := result[ownerID]
		op.TagNames = append(op.TagNames, row.Name)
		result[ownerID] = op
	}
	return result, nil
}
