package service

import (
	"errors"
	"mime/multipart"

	"inspyre/internal/domain/profile/model"
	"inspyre/internal/domain/profile/repository"
	userModel "inspyre/internal/domain/user/model"
	"inspyre/internal/pkg/uploader"
	"inspyre/pkg/apperr"

	"gorm.io/gorm"
)

// UpdateInput 主页更新输入
type UpdateInput struct {
	Name       string
	Content    string
	TagIDs     []uint
	Image      *multipart.FileHeader // 可选，新头像
	HasTagEdit bool
}

// ProfileService 主页服务接口
type ProfileService interface {
	List(params repository.ListParams, viewerID uint) ([]*model.ProfileView, int64, error)
	Get(id uint, viewerID uint) (*model.ProfileView, error)
	Update(id uint, viewerID uint, input UpdateInput) (*model.ProfileView, error)
	ListTags() ([]model.ProfileTag, error)
	Followers(profileID uint) ([]userModel.MiniUser, error)
	Following(profileID uint) ([]userModel.MiniUser, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService 创建主页服务
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// List 主页列表（带统计、观察者相关字段）
func (s *profileService) List(params repository.ListParams, viewerID uint) ([]*model.ProfileView, int64, error) {
	profiles, total, err := s.repo.List(params)
	if err != nil {
		return nil, 0, err
	}

	profileIDs := make([]uint, len(profiles))
	ownerIDs := make([]uint, len(profiles))
	for i := range profiles {
		profileIDs[i] = profiles[i].ID
		ownerIDs[i] = profiles[i].OwnerID
	}

	tags, err := s.repo.TagsForProfiles(profileIDs)
	if err != nil {
		return nil, 0, err
	}
	following, err := s.repo.FollowingIDs(viewerID, ownerIDs)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*model.ProfileView, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		p.ProfileTags = tags[p.ID]
		views[i] = model.NewProfileView(p, viewerID, followingIDPtr(following, p.OwnerID))
	}
	return views, total, nil
}

// Get 单个主页
func (s *profileService) Get(id uint, viewerID uint) (*model.ProfileView, error) {
	profile, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Profile not found")
		}
		return nil, err
	}
	return s.toView(profile, viewerID)
}

// Update 更新主页，仅所有者可操作
func (s *profileService) Update(id uint, viewerID uint, input UpdateInput) (*model.ProfileView, error) {
	if viewerID == 0 {
		return nil, apperr.Unauthenticated("Authentication required")
	}

	withCounts, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Profile not found")
		}
		return nil, err
	}
	if withCounts.OwnerID != viewerID {
		return nil, apperr.Forbidden("You do not have permission to perform this action")
	}

	profile := withCounts.Profile
	profile.Name = input.Name
	profile.Content = input.Content

	if input.Image != nil {
		if uploader.GlobalUploader == nil {
			return nil, apperr.Validation("image upload is not available")
		}
		url, err := uploader.GlobalUploader.UploadImage(input.Image, "profile_images")
		if err != nil {
			return nil, err
		}
		profile.Image = url
	}

	if err := s.repo.Update(&profile); err != nil {
		return nil, err
	}

	if input.HasTagEdit {
		tags, err := s.repo.TagsByIDs(input.TagIDs)
		if err != nil {
			return nil, err
		}
		if len(tags) != len(input.TagIDs) {
			return nil, apperr.Validation("Unknown profile tag")
		}
		if err := s.repo.ReplaceTags(&profile, tags); err != nil {
			return nil, err
		}
	}

	return s.Get(id, viewerID)
}

func (s *profileService) ListTags() ([]model.ProfileTag, error) {
	return s.repo.ListTags()
}

// Followers 关注该主页所有者的用户
func (s *profileService) Followers(profileID uint) ([]userModel.MiniUser, error) {
	profile, err := s.repo.GetByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Profile not found")
		}
		return nil, err
	}
	return s.repo.FollowersOf(profile.OwnerID)
}

// Following 该主页所有者关注的用户
func (s *profileService) Following(profileID uint) ([]userModel.MiniUser, error) {
	profile, err := s.repo.GetByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Profile not found")
		}
		return nil, err
	}
	return s.repo.FollowingOf(profile.OwnerID)
}

func (s *profileService) toView(profile *model.ProfileWithCounts, viewerID uint) (*model.ProfileView, error) {
	tags, err := s.repo.TagsForProfiles([]uint{profile.ID})
	if err != nil {
		return nil, err
	}
	profile.ProfileTags = tags[profile.ID]

	following, err := s.repo.FollowingIDs(viewerID, []uint{profile.OwnerID})
	if err != nil {
		return nil, err
	}
	return model.NewProfileView(profile, viewerID, followingIDPtr(following, profile.OwnerID)), nil
}

func followingIDPtr(m map[uint]uint, ownerID uint) *uint {
	if id, ok := m[ownerID]; ok {
		return &id
	}
	return nil
}
