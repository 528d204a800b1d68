package push

import (
	"encoding/json"
	"fmt"

	"inspyre/internal/pkg/config"

	"github.com/aliyun/alibaba-cloud-sdk-go/sdk/requests"
	"github.com/aliyun/alibaba-cloud-sdk-go/services/push"
)

// PushService 移动端推送接口
type PushService interface {
	PushToAccount(accountID string, title, body string, extParameters map[string]string) error
}

// AliyunPushService 阿里云移动推送实现
type AliyunPushService struct {
	client *push.Client
	appKey int64
}

func NewAliyunPushService() (*AliyunPushService, error) {
	cfg := config.GlobalConfig.Push

	if cfg.AccessKeyID == "" || cfg.AppKey == 0 {
		return nil, fmt.Errorf("push config is missing")
	}

	client, err := push.NewClientWithAccessKey(
		cfg.RegionID,
		cfg.AccessKeyID,
		cfg.AccessKeySecret,
	)
	if err != nil {
		return nil, err
	}

	return &AliyunPushService{
		client: client,
		appKey: cfg.AppKey,
	}, nil
}

// PushToAccount 按账号推送通知（账号即用户ID的字符串形式）
func (s *AliyunPushService) PushToAccount(accountID string, title, body string, extParameters map[string]string) error {
	request := push.CreatePushRequest()
	request.AppKey = requests.NewInteger(int(s.appKey))
	request.Target = "ACCOUNT"
	request.TargetValue = accountID
	request.Title = title
	request.Body = body
	request.DeviceType = "ALL"
	request.PushType = "NOTICE"

	if len(extParameters) > 0 {
		extJSON, _ := json.Marshal(extParameters)
		request.AndroidExtParameters = string(extJSON)
		request.IOSExtParameters = string(extJSON)
	}

	_, err := s.client.Push(request)
	return err
}
