package service

import (
	"errors"
	"strings"
	"time"

	"inspyre/internal/domain/user/model"
	"inspyre/internal/domain/user/repository"
	"inspyre/pkg/apperr"
	"inspyre/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthResult 登录结果
type AuthResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// UserService 用户服务接口
type UserService interface {
	Register(username, email, password string) (*model.User, error)
	Login(username, password string) (*AuthResult, error)
	GetUsers(page, limit int) ([]model.MiniUser, int64, error)
	DeleteAccount(userID uint) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register 注册新用户，同时创建其 Profile
func (s *userService) Register(username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.Validation("username must not be empty")
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	if _, err := s.repo.GetByUsername(username); err == nil {
		return nil, apperr.Conflict("A user with that username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, apperr.Conflict("A user with that email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateWithProfile(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验凭证并签发 JWT
func (s *userService) Login(username, password string) (*AuthResult, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("Unable to log in with provided credentials")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Unauthenticated("Unable to log in with provided credentials")
	}

	token, expiresAt, err := utils.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, ExpiresAt: *expiresAt, User: user}, nil
}

// GetUsers 用户简要列表（分页）
func (s *userService) GetUsers(page, limit int) ([]model.MiniUser, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit
	return s.repo.ListMini(offset, limit)
}

// DeleteAccount 注销账号。硬删除，关联数据由数据库级联处理
func (s *userService) DeleteAccount(userID uint) error {
	if _, err := s.repo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}
	return s.repo.Delete(userID)
}
