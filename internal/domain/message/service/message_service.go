package service

import (
	"errors"
	"strings"

	"inspyre/internal/domain/message/model"
	"inspyre/internal/domain/message/repository"
	"inspyre/internal/pkg/worker"
	"inspyre/pkg/apperr"
	"inspyre/pkg/utils"

	"gorm.io/gorm"
)

// MessageService 私信服务接口
type MessageService interface {
	Send(viewerID uint, receiverID uint, content string) (*model.MessageView, error)
	Get(id uint, viewerID uint) (*model.MessageView, error)
	ListBetween(viewerID, receiverID uint, ordering string, offset, limit int) ([]*model.MessageView, int64, error)
	MarkRead(id uint, viewerID uint) (*model.MessageView, error)
	ListConversations(viewerID uint) ([]*model.ConversationView, error)
	GetConversation(id uint, viewerID uint) (*model.ConversationDetailView, error)
}

type messageService struct {
	repo     repository.MessageRepository
	notifier *worker.Pool
}

// NewMessageService 创建私信服务
func NewMessageService(repo repository.MessageRepository, notifier *worker.Pool) MessageService {
	return &messageService{repo: repo, notifier: notifier}
}

// Send 发私信。两人的会话不存在则自动建立，通知异步推送
func (s *messageService) Send(viewerID uint, receiverID uint, content string) (*model.MessageView, error) {
	if viewerID == 0 {
		return nil, apperr.Unauthenticated("Authentication required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("content must not be empty")
	}
	if receiverID == viewerID {
		return nil, apperr.Validation("You cannot message yourself")
	}

	exists, err := s.repo.UserExists(receiverID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.Validation("Receiver not found")
	}

	convID, err := s.repo.FindOrCreateConversation(viewerID, receiverID)
	if err != nil {
		return nil, err
	}

	senderID, recvID := viewerID, receiverID
	msg := &model.DirectMessage{
		SenderID:       &senderID,
		ReceiverID:     &recvID,
		ConversationID: convID,
		Content:        content,
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Enqueue(worker.NotifyTask{
			UserID: receiverID,
			Title:  "New message",
			Body:   utils.TruncateWords(content, 10),
		})
	}

	return s.Get(msg.ID, viewerID)
}

// Get 单条私信，仅会话双方可见
func (s *messageService) Get(id uint, viewerID uint) (*model.MessageView, error) {
	row, err := s.getRow(id)
	if err != nil {
		return nil, err
	}
	if !isParty(row, viewerID) {
		return nil, apperr.Forbidden("You do not have permission to perform this action")
	}
	return model.NewMessageView(row), nil
}

// ListBetween 当前用户与对方之间的全部私信，双向
func (s *messageService) ListBetween(viewerID, receiverID uint, ordering string, offset, limit int) ([]*model.MessageView, int64, error) {
	if receiverID == 0 {
		return nil, 0, apperr.Validation("receiver query parameter is required")
	}

	rows, total, err := s.repo.ListBetween(viewerID, receiverID, ordering, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*model.MessageView, len(rows))
	for i := range rows {
		views[i] = model.NewMessageView(&rows[i])
	}
	return views, total, nil
}

// MarkRead 标记已读，仅接收者可操作
func (s *messageService) MarkRead(id uint, viewerID uint) (*model.MessageView, error) {
	row, err := s.getRow(id)
	if err != nil {
		return nil, err
	}
	if row.ReceiverID == nil || *row.ReceiverID != viewerID {
		return nil, apperr.Forbidden("You do not have permission to perform this action")
	}

	if err := s.repo.MarkRead(id); err != nil {
		return nil, err
	}
	row.Read = true
	return model.NewMessageView(row), nil
}

// ListConversations 当前用户的会话列表，带最新消息预览与未读标记
func (s *messageService) ListConversations(viewerID uint) ([]*model.ConversationView, error) {
	ids, err := s.repo.ConversationIDs(viewerID)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.ParticipantsFor(ids)
	if err != nil {
		return nil, err
	}
	latest, err := s.repo.LatestMessages(ids)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.UnreadFor(ids, viewerID)
	if err != nil {
		return nil, err
	}

	views := make([]*model.ConversationView, 0, len(ids))
	for _, id := range ids {
		conv, err := s.repo.GetConversation(id)
		if err != nil {
			return nil, err
		}
		var last *model.MessageWithNames
		if row, ok := latest[id]; ok {
			last = &row
		}
		views = append(views, model.NewConversationView(
			id, conv.CreatedAt, participants[id], last, unread[id], viewerID))
	}
	return views, nil
}

// GetConversation 会话详情。仅参与者可见，打开即把发给自己的消息标记已读
func (s *messageService) GetConversation(id uint, viewerID uint) (*model.ConversationDetailView, error) {
	conv, err := s.repo.GetConversation(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Conversation not found")
		}
		return nil, err
	}

	party, err := s.repo.IsParticipant(id, viewerID)
	if err != nil {
		return nil, err
	}
	if !party {
		return nil, apperr.Forbidden("You do not have permission to perform this action")
	}

	if err := s.repo.MarkConversationRead(id, viewerID); err != nil {
		return nil, err
	}

	rows, err := s.repo.MessagesInConversation(id)
	if err != nil {
		return nil, err
	}
	messages := make([]*model.MessageView, len(rows))
	for i := range rows {
		messages[i] = model.NewMessageView(&rows[i])
	}

	participants, err := s.repo.ParticipantsFor([]uint{id})
	if err != nil {
		return nil, err
	}
	latest, err := s.repo.LatestMessages([]uint{id})
	if err != nil {
		return nil, err
	}
	var last *model.MessageWithNames
	if row, ok := latest[id]; ok {
		last = &row
	}

	summary := model.NewConversationView(id, conv.CreatedAt, participants[id], last, false, viewerID)
	return &model.ConversationDetailView{
		ConversationView: *summary,
		Messages:         messages,
	}, nil
}

func (s *messageService) getRow(id uint) (*model.MessageWithNames, error) {
	row, err := s.repo.GetMessageByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Message not found")
		}
		return nil, err
	}
	return row, nil
}

func isParty(row *model.MessageWithNames, viewerID uint) bool {
	if row.SenderID != nil && *row.SenderID == viewerID {
		return true
	}
	return row.ReceiverID != nil && *row.ReceiverID == viewerID
}
