package model

import (
	userModel "inspyre/internal/domain/user/model"
	baseModel "inspyre/pkg/model"
)

// Conversation 会话。参与者是无序集合，同一对用户只有一个会话
type Conversation struct {
	baseModel.BaseModel
	Participants []userModel.User `gorm:"many2many:conversation_participants;" json:"-"`
}

// DirectMessage 私信。用户注销后 sender/receiver 置空，消息本身保留
type DirectMessage struct {
	baseModel.BaseModel
	SenderID       *uint           `gorm:"index" json:"-"`
	Sender         *userModel.User `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	ReceiverID     *uint           `gorm:"index" json:"-"`
	Receiver       *userModel.User `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	ConversationID uint            `gorm:"not null;index" json:"conversation"`
	Conversation   Conversation    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content        string          `gorm:"type:text;not null" json:"content"`
	Read           bool            `gorm:"default:false" json:"read"`
}

// MessageWithNames 查询结果，附带双方用户名（可能已注销，为空）
type MessageWithNames struct {
	DirectMessage
	SenderUsername   *string `gorm:"->" json:"-"`
	ReceiverUsername *string `gorm:"->" json:"-"`
}
