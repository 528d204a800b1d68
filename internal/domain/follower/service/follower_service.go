package service

import (
	"errors"

	"inspyre/internal/domain/follower/model"
	"inspyre/internal/domain/follower/repository"
	"inspyre/internal/pkg/worker"
	"inspyre/pkg/apperr"

	"gorm.io/gorm"
)

// FollowerService 关注服务接口
type FollowerService interface {
	Create(viewerID uint, followedID uint) (*model.FollowerView, error)
	List(offset, limit int) ([]*model.FollowerView, int64, error)
	Get(id uint) (*model.FollowerView, error)
	Delete(id uint, viewerID uint) error
}

type followerService struct {
	repo     repository.FollowerRepository
	notifier *worker.Pool
}

// NewFollowerService 创建关注服务
func NewFollowerService(repo repository.FollowerRepository, notifier *worker.Pool) FollowerService {
	return &followerService{repo: repo, notifier: notifier}
}

// Create 关注用户。不允许关注自己，重复关注直接拒绝
func (s *followerService) Create(viewerID uint, followedID uint) (*model.FollowerView, error) {
	if viewerID == 0 {
		return nil, apperr.Unauthenticated("Authentication required")
	}
	if followedID == viewerID {
		return nil, apperr.Validation("You cannot follow yourself")
	}

	exists, err := s.repo.UserExists(followedID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.Validation("User not found")
	}

	if _, err := s.repo.GetByPair(viewerID, followedID); err == nil {
		return nil, apperr.Validation("possible duplicate")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	follower := &model.Follower{OwnerID: viewerID, FollowedID: followedID}
	if err := s.repo.Create(follower); err != nil {
		return nil, err
	}

	s.notifyFollowed(followedID)

	return s.Get(follower.ID)
}

// List 关注列表
func (s *followerService) List(offset, limit int) ([]*model.FollowerView, int64, error) {
	rows, total, err := s.repo.List(offset, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]*model.FollowerView, 0, len(rows))
	for i := range rows {
		views = append(views, model.NewFollowerView(&rows[i]))
	}
	return views, total, nil
}

// Get 单条关注记录
func (s *followerService) Get(id uint) (*model.FollowerView, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Follower not found")
		}
		return nil, err
	}
	return model.NewFollowerView(row), nil
}

// Delete 取消关注，仅本人可操作
func (s *followerService) Delete(id uint, viewerID uint) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Follower not found")
		}
		return err
	}
	if row.OwnerID != viewerID {
		return apperr.Forbidden("You do not have permission to perform this action")
	}
	return s.repo.Delete(id)
}

// notifyFollowed 给被关注者推一条通知，失败不影响主流程
func (s *followerService) notifyFollowed(followedID uint) {
	if s.notifier == nil {
		return
	}
	s.notifier.Enqueue(worker.NotifyTask{
		UserID: followedID,
		Title:  "New follower",
		Body:   "Someone started following you",
	})
}
