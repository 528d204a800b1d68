package service

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"inspyre/internal/domain/post/model"
	"inspyre/internal/domain/post/repository"
	"inspyre/internal/pkg/uploader"
	"inspyre/pkg/apperr"
	"inspyre/pkg/cache"
	baseModel "inspyre/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockPostRepository is a mock of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(params repository.ListParams) ([]model.PostWithCounts, int64, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.PostWithCounts), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) GetByID(id uint) (*model.PostWithCounts, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostWithCounts), args.Error(1)
}

func (m *MockPostRepository) GetByIDs(ids []uint) ([]model.PostWithCounts, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PostWithCounts), args.Error(1)
}

func (m *MockPostRepository) Create(post *model.Post, tagNames []string) error {
	args := m.Called(post, tagNames)
	return args.Error(0)
}

func (m *MockPostRepository) Update(post *model.Post, tagNames *[]string) error {
	args := m.Called(post, tagNames)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) SetApprovalStatus(id uint, status int) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockPostRepository) TrendingIDs(limit int) ([]uint, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockPostRepository) TagsForPosts(postIDs []uint) (map[uint][]model.PostTag, error) {
	args := m.Called(postIDs)
	return args.Get(0).(map[uint][]model.PostTag), args.Error(1)
}

func (m *MockPostRepository) LikeIDs(viewerID uint, postIDs []uint) (map[uint]uint, error) {
	args := m.Called(viewerID, postIDs)
	return args.Get(0).(map[uint]uint), args.Error(1)
}

func (m *MockPostRepository) OwnerProfiles(ownerIDs []uint) (map[uint]model.OwnerProfile, error) {
	args := m.Called(ownerIDs)
	return args.Get(0).(map[uint]model.OwnerProfile), args.Error(1)
}

// memoryCache 简单的进程内缓存，测试 trending 的缓存路径用
type memoryCache struct {
	data map[string][]uint
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]uint)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	ids, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	*dest.(*[]uint) = ids
	return nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.data[key] = value.([]uint)
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

func testPost(id, ownerID uint, likes int64) *model.PostWithCounts {
	return &model.PostWithCounts{
		Post: model.Post{
			BaseModel: baseModel.BaseModel{ID: id},
			OwnerID:   ownerID,
			Title:     "a title",
		},
		OwnerUsername: "alice",
		LikesCount:    likes,
	}
}

func expectHydration(mockRepo *MockPostRepository, viewerID uint, postIDs, ownerIDs []uint) {
	mockRepo.On("TagsForPosts", postIDs).Return(map[uint][]model.PostTag{}, nil)
	mockRepo.On("LikeIDs", viewerID, postIDs).Return(map[uint]uint{}, nil)
	mockRepo.On("OwnerProfiles", ownerIDs).Return(map[uint]model.OwnerProfile{}, nil)
}

func TestGetPost(t *testing.T) {
	t.Run("Viewer sees is_owner on own post", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := NewPostService(mockRepo, newMemoryCache())

		mockRepo.On("GetByID", uint(1)).Return(testPost(1, 10, 0), nil)
		expectHydration(mockRepo, 10, []uint{1}, []uint{10})

		view, err := service.Get(1, 10)

		require.NoError(t, err)
		assert.True(t, view.IsOwner)
		assert.NotNil(t, view.PostTags)
	})

	t.Run("Unknown post", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := NewPostService(mockRepo, newMemoryCache())

		mockRepo.On("GetByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Get(9, 0)

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestCreatePost(t *testing.T) {
	t.Run("Image rejected when uploader unavailable", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := NewPostService(mockRepo, newMemoryCache())

		uploader.GlobalUploader = nil

		_, err := service.Create(1, PostInput{Title: "t", Image: &multipart.FileHeader{Filename: "a.png"}})

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Create without image skips uploader", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := NewPostService(mockRepo, newMemoryCache())

		uploader.GlobalUploader = nil
		mockRepo.On("Create", mock.AnythingOfType("*model.Post"), []string(nil)).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Post).ID = 1
		}).Return(nil)
		mockRepo.On("GetByID", uint(1)).Return(testPost(1, 10, 0), nil)
		expectHydration(mockRepo, 10, []uint{1}, []uint{10})

		view, err := service.Create(10, PostInput{Title: "a title"})

		require.NoError(t, err)
		assert.Equal(t, uint(1), view.ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdatePost(t *testing.T) {
	t.Run("Non owner forbidden", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := NewPostService(mockRepo, newMemoryCache())

		mockRepo.On("GetByID", uint(1)).Return(testPost(1, 10, 0), nil)

		_, err := service.Update(1, 20, PostInput{Title: "new"})

		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Non owner forbidden", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := NewPostService(mockRepo, newMemoryCache())

		mockRepo.On("GetByID", uint(1)).Return(testPost(1, 10, 0), nil)

		err := service.Delete(1, 20)

		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
}

func TestReportPost(t *testing.T) {
	t.Run("Report is idempotent", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := NewPostService(mockRepo, newMemoryCache())

		mockRepo.On("GetByID", uint(1)).Return(testPost(1, 10, 0), nil)
		mockRepo.On("SetApprovalStatus", uint(1), model.StatusReported).Return(nil)

		require.NoError(t, service.Report(1, 20))
		require.NoError(t, service.Report(1, 20))
	})
}

func TestTrending(t *testing.T) {
	t.Run("Second call served from cached ids", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := NewPostService(mockRepo, newMemoryCache())

		ids := []uint{2, 1}
		mockRepo.On("TrendingIDs", 10).Return(ids, nil).Once()
		mockRepo.On("GetByIDs", ids).Return([]model.PostWithCounts{
			*testPost(2, 10, 5),
			*testPost(1, 10, 3),
		}, nil)
		expectHydration(mockRepo, 0, []uint{2, 1}, []uint{10, 10})

		first, err := service.Trending(context.Background(), 0)
		require.NoError(t, err)
		second, err := service.Trending(context.Background(), 0)
		require.NoError(t, err)

		assert.Equal(t, first[0].ID, second[0].ID)
		assert.Equal(t, uint(2), first[0].ID)
		mockRepo.AssertExpectations(t)
	})
}
