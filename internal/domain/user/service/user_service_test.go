package service

import (
	"testing"

	"inspyre/internal/domain/user/model"
	"inspyre/internal/pkg/config"
	"inspyre/pkg/apperr"
	baseModel "inspyre/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithProfile(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListMini(offset, limit int) ([]model.MiniUser, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.MiniUser), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func init() {
	config.GlobalConfig.JWT.Secret = "test_secret_that_is_long_enough_for_tests"
	config.GlobalConfig.JWT.Expire = 24
}

func testUser(id uint, username, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &model.User{
		BaseModel:    baseModel.BaseModel{ID: id},
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
}

func TestRegister(t *testing.T) {
	t.Run("Registration success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("GetByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("CreateWithProfile", mock.AnythingOfType("*model.User")).Return(nil)

		user, err := service.Register("alice", "alice@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "password123", user.PasswordHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "alice").Return(testUser(1, "alice", "x"), nil)

		_, err := service.Register("alice", "other@example.com", "password123")

		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("Short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		_, err := service.Register("alice", "alice@example.com", "short")

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestLogin(t *testing.T) {
	t.Run("Login success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "alice").Return(testUser(1, "alice", "password123"), nil)

		result, err := service.Login("alice", "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "alice", result.User.Username)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "alice").Return(testUser(1, "alice", "password123"), nil)

		_, err := service.Login("alice", "wrong")

		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
		assert.Equal(t, "Unable to log in with provided credentials", apperr.MessageOf(err))
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Login("ghost", "password123")

		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("Delete success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByID", uint(1)).Return(testUser(1, "alice", "password123"), nil)
		mockRepo.On("Delete", uint(1)).Return(nil)

		require.NoError(t, service.DeleteAccount(1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		err := service.DeleteAccount(9)

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
