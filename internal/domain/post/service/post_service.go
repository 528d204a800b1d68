package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"inspyre/internal/domain/post/model"
	"inspyre/internal/domain/post/repository"
	"inspyre/internal/pkg/uploader"
	"inspyre/pkg/apperr"
	"inspyre/pkg/cache"

	"gorm.io/gorm"
)

const (
	trendingCacheKey = "posts:trending"
	trendingTTL      = 5 * time.Minute
	trendingLimit    = 10
)

// PostInput 创建/更新帖子输入
type PostInput struct {
	Title          string
	Content        string
	Tags           *string // 逗号分隔的标签名；nil 表示不改动
	OriginalAuthor bool
	Image          *multipart.FileHeader // 可选
}

// PostService 帖子服务接口
type PostService interface {
	List(params repository.ListParams, viewerID uint) ([]*model.PostView, int64, error)
	Get(id uint, viewerID uint) (*model.PostView, error)
	Create(viewerID uint, input PostInput) (*model.PostView, error)
	Update(id uint, viewerID uint, input PostInput) (*model.PostView, error)
	Delete(id uint, viewerID uint) error
	Report(id uint, viewerID uint) error
	Trending(ctx context.Context, viewerID uint) ([]*model.PostView, error)
}

type postService struct {
	repo  repository.PostRepository
	cache cache.CacheService
}

// NewPostService 创建帖子服务
func NewPostService(repo repository.PostRepository, cacheService cache.CacheService) PostService {
	return &postService{repo: repo, cache: cacheService}
}

// List 帖子列表
func (s *postService) List(params repository.ListParams, viewerID uint) ([]*model.PostView, int64, error) {
	posts, total, err := s.repo.List(params)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.toViews(posts, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Get 单个帖子
func (s *postService) Get(id uint, viewerID uint) (*model.PostView, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, err
	}

	views, err := s.toViews([]model.PostWithCounts{*post}, viewerID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Create 创建帖子，owner 强制为当前登录用户
func (s *postService) Create(viewerID uint, input PostInput) (*model.PostView, error) {
	if viewerID == 0 {
		return nil, apperr.Unauthenticated("Authentication required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}

	post := &model.Post{
		OwnerID:        viewerID,
		Title:          input.Title,
		Content:        input.Content,
		ApprovalStatus: model.StatusApproved,
		OriginalAuthor: input.OriginalAuthor,
	}

	if input.Image != nil {
		if uploader.GlobalUploader == nil {
			return nil, apperr.Validation("image upload is not available")
		}
		url, err := uploader.GlobalUploader.UploadImage(input.Image, "images")
		if err != nil {
			return nil, err
		}
		post.Image = url
	}

	var tagNames []string
	if input.Tags != nil {
		tagNames = splitTags(*input.Tags)
	}
	if err := s.repo.Create(post, tagNames); err != nil {
		return nil, err
	}

	return s.Get(post.ID, viewerID)
}

// Update 更新帖子，仅所有者可操作
func (s *postService) Update(id uint, viewerID uint, input PostInput) (*model.PostView, error) {
	withCounts, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, err
	}
	if withCounts.OwnerID != viewerID {
		return nil, apperr.Forbidden("You do not have permission to perform this action")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}

	post := withCounts.Post
	post.Title = input.Title
	post.Content = input.Content
	post.OriginalAuthor = input.OriginalAuthor

	if input.Image != nil {
		if uploader.GlobalUploader == nil {
			return nil, apperr.Validation("image upload is not available")
		}
		url, err := uploader.GlobalUploader.UploadImage(input.Image, "images")
		if err != nil {
			return nil, err
		}
		post.Image = url
	}

	var tagNames *[]string
	if input.Tags != nil {
		names := splitTags(*input.Tags)
		tagNames = &names
	}
	if err := s.repo.Update(&post, tagNames); err != nil {
		return nil, err
	}

	return s.Get(id, viewerID)
}

// Delete 删除帖子，仅所有者可操作；评论点赞级联清理
func (s *postService) Delete(id uint, viewerID uint) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Post not found")
		}
		return err
	}
	if post.OwnerID != viewerID {
		return apperr.Forbidden("You do not have permission to perform this action")
	}
	return s.repo.Delete(id)
}

// Report 举报帖子。任何登录用户可操作，幂等，单向 Approved -> Reported
func (s *postService) Report(id uint, viewerID uint) error {
	if viewerID == 0 {
		return apperr.Unauthenticated("Authentication required")
	}
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Post not found")
		}
		return err
	}
	return s.repo.SetApprovalStatus(id, model.StatusReported)
}

// Trending 点赞最多的前10个已审核帖子
// 只缓存ID列表：is_owner / like_id 是观察者相关的，不能缓存序列化结果
func (s *postService) Trending(ctx context.Context, viewerID uint) ([]*model.PostView, error) {
	var ids []uint
	if err := s.cache.Get(ctx, trendingCacheKey, &ids); err != nil {
		ids, err = s.repo.TrendingIDs(trendingLimit)
		if err != nil {
			return nil, err
		}
		// 缓存写失败只记日志价值不大，直接忽略
		_ = s.cache.Set(ctx, trendingCacheKey, ids, trendingTTL)
	}

	posts, err := s.repo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	views, err := s.toViews(posts, viewerID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []*model.PostView{}
	}
	return views, nil
}

func (s *postService) toViews(posts []model.PostWithCounts, viewerID uint) ([]*model.PostView, error) {
	postIDs := make([]uint, len(posts))
	ownerIDs := make([]uint, len(posts))
	for i := range posts {
		postIDs[i] = posts[i].ID
		ownerIDs[i] = posts[i].OwnerID
	}

	tags, err := s.repo.TagsForPosts(postIDs)
	if err != nil {
		return nil, err
	}
	likes, err := s.repo.LikeIDs(viewerID, postIDs)
	if err != nil {
		return nil, err
	}
	owners, err := s.repo.OwnerProfiles(ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*model.PostView, len(posts))
	for i := range posts {
		p := &posts[i]
		p.PostTags = tags[p.ID]
		var likeID *uint
		if id, ok := likes[p.ID]; ok {
			likeID = &id
		}
		views[i] = model.NewPostView(p, owners[p.OwnerID], viewerID, likeID)
	}
	return views, nil
}

func splitTags(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
