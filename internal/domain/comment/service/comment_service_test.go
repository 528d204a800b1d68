package service

import (
	"testing"
	"time"

	"inspyre/internal/domain/comment/model"
	"inspyre/pkg/apperr"
	baseModel "inspyre/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockCommentRepository is a mock of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) ListByPost(postID uint) ([]model.CommentWithOwner, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CommentWithOwner), args.Error(1)
}

func (m *MockCommentRepository) GetByID(id uint) (*model.CommentWithOwner, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommentWithOwner), args.Error(1)
}

func (m *MockCommentRepository) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) UpdateContent(id uint, content string) error {
	args := m.Called(id, content)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCommentRepository) SetApprovalStatus(id uint, status int) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockCommentRepository) PostExists(postID uint) (bool, error) {
	args := m.Called(postID)
	return args.Bool(0), args.Error(1)
}

var testBase = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func testRow(id, ownerID, postID uint, parentID *uint) *model.CommentWithOwner {
	return &model.CommentWithOwner{
		Comment: model.Comment{
			BaseModel: baseModel.BaseModel{
				ID:        id,
				CreatedAt: testBase.Add(time.Duration(id) * time.Minute),
				UpdatedAt: testBase.Add(time.Duration(id) * time.Minute),
			},
			OwnerID:  ownerID,
			PostID:   postID,
			ParentID: parentID,
			Content:  "hello",
		},
		OwnerUsername: "alice",
		ProfileID:     ownerID,
	}
}

func uintPtr(v uint) *uint { return &v }

func TestListByPost(t *testing.T) {
	t.Run("Nested scenario C1 C2 C3", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		// 新的在前
		rows := []model.CommentWithOwner{
			*testRow(3, 10, 1, uintPtr(2)),
			*testRow(2, 10, 1, uintPtr(1)),
			*testRow(1, 10, 1, nil),
		}
		mockRepo.On("PostExists", uint(1)).Return(true, nil)
		mockRepo.On("ListByPost", uint(1)).Return(rows, nil)

		views, err := service.ListByPost(1, 10)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, uint(1), views[0].ID)
		require.Len(t, views[0].Replies, 1)
		assert.Equal(t, uint(2), views[0].Replies[0].ID)
		require.Len(t, views[0].Replies[0].Replies, 1)
		assert.Equal(t, uint(3), views[0].Replies[0].Replies[0].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown post", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		mockRepo.On("PostExists", uint(99)).Return(false, nil)

		_, err := service.ListByPost(99, 0)

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("Missing post parameter", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		_, err := service.ListByPost(0, 0)

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Depth over limit fails closed", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 2)

		rows := []model.CommentWithOwner{
			*testRow(3, 10, 1, uintPtr(2)),
			*testRow(2, 10, 1, uintPtr(1)),
			*testRow(1, 10, 1, nil),
		}
		mockRepo.On("PostExists", uint(1)).Return(true, nil)
		mockRepo.On("ListByPost", uint(1)).Return(rows, nil)

		_, err := service.ListByPost(1, 0)

		require.Error(t, err)
		assert.Equal(t, apperr.KindDepthExceeded, apperr.KindOf(err))
	})
}

func TestCreateComment(t *testing.T) {
	t.Run("Reply to parent on same post", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		mockRepo.On("PostExists", uint(1)).Return(true, nil)
		mockRepo.On("GetByID", uint(1)).Return(testRow(1, 10, 1, nil), nil)
		mockRepo.On("Create", mock.AnythingOfType("*model.Comment")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Comment).ID = 2
		}).Return(nil)
		mockRepo.On("GetByID", uint(2)).Return(testRow(2, 20, 1, uintPtr(1)), nil)
		mockRepo.On("ListByPost", uint(1)).Return([]model.CommentWithOwner{
			*testRow(2, 20, 1, uintPtr(1)),
			*testRow(1, 10, 1, nil),
		}, nil)

		view, err := service.Create(20, CreateInput{PostID: 1, Content: "hi", ParentID: uintPtr(1)})

		require.NoError(t, err)
		assert.Equal(t, uint(2), view.ID)
		assert.True(t, view.IsOwner)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Parent from another post rejected", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		mockRepo.On("PostExists", uint(2)).Return(true, nil)
		mockRepo.On("GetByID", uint(1)).Return(testRow(1, 10, 1, nil), nil)

		_, err := service.Create(20, CreateInput{PostID: 2, Content: "hi", ParentID: uintPtr(1)})

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Empty content rejected", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		_, err := service.Create(20, CreateInput{PostID: 1, Content: "   "})

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Anonymous rejected", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		_, err := service.Create(0, CreateInput{PostID: 1, Content: "hi"})

		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	})
}

func TestUpdateComment(t *testing.T) {
	t.Run("Non owner forbidden", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		mockRepo.On("GetByID", uint(1)).Return(testRow(1, 10, 1, nil), nil)

		_, err := service.Update(1, 20, "new content")

		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("Owner updates content", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		mockRepo.On("GetByID", uint(1)).Return(testRow(1, 10, 1, nil), nil)
		mockRepo.On("UpdateContent", uint(1), "new content").Return(nil)
		mockRepo.On("ListByPost", uint(1)).Return([]model.CommentWithOwner{
			*testRow(1, 10, 1, nil),
		}, nil)

		view, err := service.Update(1, 10, "new content")

		require.NoError(t, err)
		assert.Equal(t, uint(1), view.ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("Non owner forbidden", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		mockRepo.On("GetByID", uint(1)).Return(testRow(1, 10, 1, nil), nil)

		err := service.Delete(1, 20)

		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("Owner deletes", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		mockRepo.On("GetByID", uint(1)).Return(testRow(1, 10, 1, nil), nil)
		mockRepo.On("Delete", uint(1)).Return(nil)

		err := service.Delete(1, 10)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestReportComment(t *testing.T) {
	t.Run("Report is idempotent", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		mockRepo.On("GetByID", uint(1)).Return(testRow(1, 10, 1, nil), nil)
		mockRepo.On("SetApprovalStatus", uint(1), model.StatusReported).Return(nil)

		require.NoError(t, service.Report(1, 20))
		require.NoError(t, service.Report(1, 20))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown comment", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		mockRepo.On("GetByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		err := service.Report(9, 20)

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "Comment not found", apperr.MessageOf(err))
	})

	t.Run("Anonymous rejected", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, 1000)

		err := service.Report(1, 0)

		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	})
}
