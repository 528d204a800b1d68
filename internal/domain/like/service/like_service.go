package service

import (
	"errors"
	"fmt"

	"inspyre/internal/domain/like/model"
	"inspyre/internal/domain/like/repository"
	"inspyre/internal/pkg/worker"
	"inspyre/pkg/apperr"

	"gorm.io/gorm"
)

// LikeService 点赞服务接口
type LikeService interface {
	Create(viewerID uint, postID uint) (*model.LikeView, error)
	List(offset, limit int) ([]*model.LikeView, int64, error)
	Get(id uint) (*model.LikeView, error)
	Delete(id uint, viewerID uint) error
}

type likeService struct {
	repo     repository.LikeRepository
	notifier *worker.Pool
}

// NewLikeService 创建点赞服务
func NewLikeService(repo repository.LikeRepository, notifier *worker.Pool) LikeService {
	return &likeService{repo: repo, notifier: notifier}
}

// Create 点赞。同一用户对同一帖子重复点赞直接拒绝
func (s *likeService) Create(viewerID uint, postID uint) (*model.LikeView, error) {
	if viewerID == 0 {
		return nil, apperr.Unauthenticated("Authentication required")
	}

	exists, err := s.repo.PostExists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.Validation("Post not found")
	}

	if _, err := s.repo.GetByOwnerAndPost(viewerID, postID); err == nil {
		return nil, apperr.Validation("possible duplicate")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	like := &model.Like{OwnerID: viewerID, PostID: postID}
	if err := s.repo.Create(like); err != nil {
		return nil, err
	}

	s.notifyPostOwner(viewerID, postID)

	return s.Get(like.ID)
}

// List 点赞列表
func (s *likeService) List(offset, limit int) ([]*model.LikeView, int64, error) {
	rows, total, err := s.repo.List(offset, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]*model.LikeView, 0, len(rows))
	for i := range rows {
		views = append(views, model.NewLikeView(&rows[i]))
	}
	return views, total, nil
}

// Get 单条点赞记录
func (s *likeService) Get(id uint) (*model.LikeView, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Like not found")
		}
		return nil, err
	}
	return model.NewLikeView(row), nil
}

// Delete 取消点赞，仅本人可操作
func (s *likeService) Delete(id uint, viewerID uint) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Like not found")
		}
		return err
	}
	if row.OwnerID != viewerID {
		return apperr.Forbidden("You do not have permission to perform this action")
	}
	return s.repo.Delete(id)
}

// notifyPostOwner 给帖子作者推一条点赞通知，失败不影响主流程
func (s *likeService) notifyPostOwner(viewerID, postID uint) {
	if s.notifier == nil {
		return
	}
	ownerID, err := s.repo.PostOwnerID(postID)
	if err != nil || ownerID == viewerID {
		return
	}
	s.notifier.Enqueue(worker.NotifyTask{
		UserID: ownerID,
		Title:  "New like",
		Body:   fmt.Sprintf("Your post %d was liked", postID),
	})
}
