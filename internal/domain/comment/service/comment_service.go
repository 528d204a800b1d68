package service

import (
	"errors"
	"strings"

	"inspyre/internal/domain/comment/model"
	"inspyre/internal/domain/comment/repository"
	"inspyre/pkg/apperr"

	"gorm.io/gorm"
)

// CreateInput 创建评论输入
type CreateInput struct {
	PostID   uint
	Content  string
	ParentID *uint
}

// CommentService 评论服务接口
type CommentService interface {
	ListByPost(postID uint, viewerID uint) ([]*model.CommentView, error)
	Get(id uint, viewerID uint) (*model.CommentView, error)
	Create(viewerID uint, input CreateInput) (*model.CommentView, error)
	Update(id uint, viewerID uint, content string) (*model.CommentView, error)
	Delete(id uint, viewerID uint) error
	Report(id uint, viewerID uint) error
}

type commentService struct {
	repo     repository.CommentRepository
	maxDepth int
}

// NewCommentService 创建评论服务。maxDepth 限制嵌套回复的层数
func NewCommentService(repo repository.CommentRepository, maxDepth int) CommentService {
	return &commentService{repo: repo, maxDepth: maxDepth}
}

// ListByPost 帖子的顶层评论树，回复逐层内嵌
func (s *commentService) ListByPost(postID uint, viewerID uint) ([]*model.CommentView, error) {
	if postID == 0 {
		return nil, apperr.Validation("post query parameter is required")
	}
	exists, err := s.repo.PostExists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Post not found")
	}

	rows, err := s.repo.ListByPost(postID)
	if err != nil {
		return nil, err
	}
	roots, _, err := model.BuildTrees(rows, viewerID, s.maxDepth)
	if err != nil {
		return nil, err
	}
	return roots, nil
}

// Get 单条评论及其完整回复子树
func (s *commentService) Get(id uint, viewerID uint) (*model.CommentView, error) {
	row, err := s.getRow(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByPost(row.PostID)
	if err != nil {
		return nil, err
	}
	_, index, err := model.BuildTrees(rows, viewerID, s.maxDepth)
	if err != nil {
		return nil, err
	}
	view, ok := index[id]
	if !ok {
		return nil, apperr.NotFound("Comment not found")
	}
	return view, nil
}

// Create 创建评论，owner 强制为当前登录用户。
// parent 必须属于同一个帖子，跨帖回复直接拒绝
func (s *commentService) Create(viewerID uint, input CreateInput) (*model.CommentView, error) {
	if viewerID == 0 {
		return nil, apperr.Unauthenticated("Authentication required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperr.Validation("content must not be empty")
	}
	if input.PostID == 0 {
		return nil, apperr.Validation("post is required")
	}

	exists, err := s.repo.PostExists(input.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.Validation("Post not found")
	}

	if input.ParentID != nil {
		parent, err := s.repo.GetByID(*input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("Parent comment not found")
			}
			return nil, err
		}
		if parent.PostID != input.PostID {
			return nil, apperr.Validation("Parent comment belongs to a different post")
		}
	}

	comment := &model.Comment{
		OwnerID:        viewerID,
		PostID:         input.PostID,
		ParentID:       input.ParentID,
		Content:        input.Content,
		ApprovalStatus: model.StatusApproved,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return s.Get(comment.ID, viewerID)
}

// Update 更新评论正文，仅所有者可操作
func (s *commentService) Update(id uint, viewerID uint, content string) (*model.CommentView, error) {
	row, err := s.getRow(id)
	if err != nil {
		return nil, err
	}
	if row.OwnerID != viewerID {
		return nil, apperr.Forbidden("You do not have permission to perform this action")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("content must not be empty")
	}

	if err := s.repo.UpdateContent(id, content); err != nil {
		return nil, err
	}
	return s.Get(id, viewerID)
}

// Delete 删除评论及其整个回复子树，仅所有者可操作
func (s *commentService) Delete(id uint, viewerID uint) error {
	row, err := s.getRow(id)
	if err != nil {
		return err
	}
	if row.OwnerID != viewerID {
		return apperr.Forbidden("You do not have permission to perform this action")
	}
	return s.repo.Delete(id)
}

// Report 举报评论。任何登录用户可操作，幂等，单向 Approved -> Reported
func (s *commentService) Report(id uint, viewerID uint) error {
	if viewerID == 0 {
		return apperr.Unauthenticated("Authentication required")
	}
	if _, err := s.getRow(id); err != nil {
		return err
	}
	return s.repo.SetApprovalStatus(id, model.StatusReported)
}

func (s *commentService) getRow(id uint) (*model.CommentWithOwner, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, err
	}
	return row, nil
}
