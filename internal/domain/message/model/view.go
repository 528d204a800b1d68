package model

import (
	"time"

	userModel "inspyre/internal/domain/user/model"
	"inspyre/pkg/utils"
)

// MessageView 面向观察者的私信表示
type MessageView struct {
	ID           uint      `json:"id"`
	Sender       *string   `json:"sender"`
	Receiver     *string   `json:"receiver"`
	Conversation uint      `json:"conversation"`
	Content      string    `json:"content"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewMessageView 纯函数 (DirectMessage) -> MessageView
func NewMessageView(row *MessageWithNames) *MessageView {
	return &MessageView{
		ID:           row.ID,
		Sender:       row.SenderUsername,
		Receiver:     row.ReceiverUsername,
		Conversation: row.ConversationID,
		Content:      row.Content,
		Read:         row.Read,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// previewWords 会话列表里 latest_message 最多展示的词数
const previewWords = 10

// ConversationView 会话摘要：参与者、对方、最新消息预览、未读标记
type ConversationView struct {
	ID                uint                 `json:"id"`
	Participants      []userModel.MiniUser `json:"participants"`
	OtherUser         *userModel.MiniUser  `json:"other_user"`
	LatestMessage     string               `json:"latest_message"`
	HasUnreadMessages bool                 `json:"has_unread_messages"`
	CreatedAt         time.Time            `json:"created_at"`
}

// NewConversationView 纯函数 (Conversation, viewer) -> ConversationView
func NewConversationView(id uint, createdAt time.Time, participants []userModel.MiniUser,
	latest *MessageWithNames, hasUnread bool, viewerID uint) *ConversationView {

	if participants == nil {
		participants = []userModel.MiniUser{}
	}
	var other *userModel.MiniUser
	for i := range participants {
		if participants[i].ID != viewerID {
			other = &participants[i]
			break
		}
	}

	preview := ""
	if latest != nil {
		preview = utils.TruncateWords(latest.Content, previewWords)
	}

	return &ConversationView{
		ID:                id,
		Participants:      participants,
		OtherUser:         other,
		LatestMessage:     preview,
		HasUnreadMessages: hasUnread,
		CreatedAt:         createdAt,
	}
}

// ConversationDetailView 会话详情：摘要 + 全部消息
type ConversationDetailView struct {
	ConversationView
	Messages []*MessageView `json:"messages"`
}
