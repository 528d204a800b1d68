package service

import (
	"testing"

	"inspyre/internal/domain/like/model"
	"inspyre/pkg/apperr"
	baseModel "inspyre/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockLikeRepository is a mock of LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(like *model.Like) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockLikeRepository) List(offset, limit int) ([]model.LikeWithOwner, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.LikeWithOwner), args.Get(1).(int64), args.Error(2)
}

func (m *MockLikeRepository) GetByID(id uint) (*model.LikeWithOwner, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LikeWithOwner), args.Error(1)
}

func (m *MockLikeRepository) GetByOwnerAndPost(ownerID, postID uint) (*model.Like, error) {
	args := m.Called(ownerID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Like), args.Error(1)
}

func (m *MockLikeRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockLikeRepository) PostExists(postID uint) (bool, error) {
	args := m.Called(postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) PostOwnerID(postID uint) (uint, error) {
	args := m.Called(postID)
	return args.Get(0).(uint), args.Error(1)
}

func testLike(id, ownerID, postID uint) *model.LikeWithOwner {
	return &model.LikeWithOwner{
		Like: model.Like{
			BaseModel: baseModel.BaseModel{ID: id},
			OwnerID:   ownerID,
			PostID:    postID,
		},
		OwnerUsername: "alice",
	}
}

func TestCreateLike(t *testing.T) {
	t.Run("Like success", func(t *testing.T) {
		mockRepo := new(MockLikeRepository)
		service := NewLikeService(mockRepo, nil)

		mockRepo.On("PostExists", uint(1)).Return(true, nil)
		mockRepo.On("GetByOwnerAndPost", uint(10), uint(1)).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.AnythingOfType("*model.Like")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Like).ID = 3
		}).Return(nil)
		mockRepo.On("GetByID", uint(3)).Return(testLike(3, 10, 1), nil)

		view, err := service.Create(10, 1)

		require.NoError(t, err)
		assert.Equal(t, uint(3), view.ID)
		assert.Equal(t, "alice", view.Owner)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate like rejected", func(t *testing.T) {
		mockRepo := new(MockLikeRepository)
		service := NewLikeService(mockRepo, nil)

		mockRepo.On("PostExists", uint(1)).Return(true, nil)
		existing := &model.Like{BaseModel: baseModel.BaseModel{ID: 3}, OwnerID: 10, PostID: 1}
		mockRepo.On("GetByOwnerAndPost", uint(10), uint(1)).Return(existing, nil)

		_, err := service.Create(10, 1)

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "possible duplicate", apperr.MessageOf(err))
	})

	t.Run("Unknown post rejected", func(t *testing.T) {
		mockRepo := new(MockLikeRepository)
		service := NewLikeService(mockRepo, nil)

		mockRepo.On("PostExists", uint(9)).Return(false, nil)

		_, err := service.Create(10, 9)

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestListLikes(t *testing.T) {
	t.Run("Paginated list with owner names", func(t *testing.T) {
		mockRepo := new(MockLikeRepository)
		service := NewLikeService(mockRepo, nil)

		rows := []model.LikeWithOwner{*testLike(3, 10, 1), *testLike(2, 11, 1)}
		mockRepo.On("List", 0, 20).Return(rows, int64(2), nil)

		views, total, err := service.List(0, 20)

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, views, 2)
		assert.Equal(t, uint(3), views[0].ID)
		assert.Equal(t, "alice", views[0].Owner)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty page", func(t *testing.T) {
		mockRepo := new(MockLikeRepository)
		service := NewLikeService(mockRepo, nil)

		mockRepo.On("List", 40, 20).Return([]model.LikeWithOwner{}, int64(2), nil)

		views, total, err := service.List(40, 20)

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Empty(t, views)
	})
}

func TestDeleteLike(t *testing.T) {
	t.Run("Non owner forbidden", func(t *testing.T) {
		mockRepo := new(MockLikeRepository)
		service := NewLikeService(mockRepo, nil)

		mockRepo.On("GetByID", uint(3)).Return(testLike(3, 10, 1), nil)

		err := service.Delete(3, 20)

		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("Owner deletes", func(t *testing.T) {
		mockRepo := new(MockLikeRepository)
		service := NewLikeService(mockRepo, nil)

		mockRepo.On("GetByID", uint(3)).Return(testLike(3, 10, 1), nil)
		mockRepo.On("Delete", uint(3)).Return(nil)

		err := service.Delete(3, 10)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
