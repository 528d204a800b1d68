package uploader

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"path/filepath"
	"time"

	"inspyre/internal/pkg/config"
	"inspyre/pkg/apperr"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// Uploader 图片上传接口
type Uploader interface {
	UploadImage(file *multipart.FileHeader, dir string) (string, error)
}

// AliyunOSSUploader OSS 实现
type AliyunOSSUploader struct {
	bucket *oss.Bucket
	config config.OSSConfig
}

func NewAliyunOSSUploader() (*AliyunOSSUploader, error) {
	cfg := config.GlobalConfig.OSS
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSUploader{
		bucket: bucket,
		config: cfg,
	}, nil
}

// ValidateImage 校验图片大小与尺寸
// 限制：不超过 2MB，宽高均不超过 4096px（见 configs）
func ValidateImage(file *multipart.FileHeader) error {
	limits := config.GlobalConfig.Upload
	if file.Size > limits.MaxImageBytes {
		return apperr.Validation(fmt.Sprintf("Image size larger than %dMB!", limits.MaxImageBytes/(1024*1024)))
	}

	src, err := file.Open()
	if err != nil {
		return apperr.Wrap(apperr.KindValidation, "Unable to read image", err)
	}
	defer src.Close()

	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return apperr.Validation("Unsupported or corrupt image file")
	}
	if cfg.Height > limits.MaxImagePx {
		return apperr.Validation(fmt.Sprintf("Image height larger than %dpx!", limits.MaxImagePx))
	}
	if cfg.Width > limits.MaxImagePx {
		return apperr.Validation(fmt.Sprintf("Image width larger than %dpx!", limits.MaxImagePx))
	}
	return nil
}

// UploadImage 校验后上传，返回公开访问 URL
// dir 为对象目录前缀，如 "images" 或 "profile_images"
func (u *AliyunOSSUploader) UploadImage(file *multipart.FileHeader, dir string) (string, error) {
	if err := ValidateImage(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 唯一对象名: dir/YYYYMMDD/uuid.ext
	ext := filepath.Ext(file.Filename)
	objectName := fmt.Sprintf("%s/%s/%s%s", dir, time.Now().Format("20060102"), uuid.New().String(), ext)

	if err := u.bucket.PutObject(objectName, src); err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://%s.%s/%s", u.config.BucketName, u.config.Endpoint, objectName)
	return url, nil
}

// GlobalUploader 全局上传器实例
var GlobalUploader Uploader

func InitUploader() error {
	uploader, err := NewAliyunOSSUploader()
	if err != nil {
		return err
	}
	GlobalUploader = uploader
	return nil
}
