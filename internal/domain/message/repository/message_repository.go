package repository

import (
	"strings"

	"inspyre/internal/domain/message/model"
	userModel "inspyre/internal/domain/user/model"

	"gorm.io/gorm"
)

// MessageRepository 接口定义
type MessageRepository interface {
	FindOrCreateConversation(userA, userB uint) (uint, error)
	CreateMessage(msg *model.DirectMessage) error
	GetMessageByID(id uint) (*model.MessageWithNames, error)
	ListBetween(viewerID, otherID uint, ordering string, offset, limit int) ([]model.MessageWithNames, int64, error)
	MarkRead(id uint) error
	MarkConversationRead(conversationID, receiverID uint) error
	ConversationIDs(userID uint) ([]uint, error)
	GetConversation(id uint) (*model.Conversation, error)
	IsParticipant(conversationID, userID uint) (bool, error)
	ParticipantsFor(conversationIDs []uint) (map[uint][]userModel.MiniUser, error)
	LatestMessages(conversationIDs []uint) (map[uint]model.MessageWithNames, error)
	UnreadFor(conversationIDs []uint, userID uint) (map[uint]bool, error)
	MessagesInConversation(conversationID uint) ([]model.MessageWithNames, error)
	UserExists(userID uint) (bool, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建新的仓库实例
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

const messageSelect = `direct_messages.*, senders.username AS sender_username,
receivers.username AS receiver_username`

func (r *messageRepository) messageQuery() *gorm.DB {
	return r.db.Table("direct_messages").
		Select(messageSelect).
		Joins("LEFT JOIN users senders ON senders.id = direct_messages.sender_id").
		Joins("LEFT JOIN users receivers ON receivers.id = direct_messages.receiver_id")
}

// FindOrCreateConversation 取两人的会话，不存在则新建。
// 匹配条件：参与者恰好是这两个用户，不多不少
func (r *messageRepository) FindOrCreateConversation(userA, userB uint) (uint, error) {
	var ids []uint
	err := r.db.Table("conversation_participants cp").
		Select("cp.conversation_id").
		Where("cp.user_id IN ?", []uint{userA, userB}).
		Group("cp.conversation_id").
		Having(`COUNT(DISTINCT cp.user_id) = 2
			AND (SELECT COUNT(*) FROM conversation_participants x
				WHERE x.conversation_id = cp.conversation_id) = 2`).
		Limit(1).
		Scan(&ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		return ids[0], nil
	}

	var conv model.Conversation
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conv).Error; err != nil {
			return err
		}
		for _, userID := range []uint{userA, userB} {
			err := tx.Exec(
				"INSERT INTO conversation_participants (conversation_id, user_id) VALUES (?, ?)",
				conv.ID, userID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return conv.ID, nil
}

// CreateMessage 创建私信
func (r *messageRepository) CreateMessage(msg *model.DirectMessage) error {
	return r.db.Create(msg).Error
}

// GetMessageByID 单条私信
func (r *messageRepository) GetMessageByID(id uint) (*model.MessageWithNames, error) {
	var row model.MessageWithNames
	err := r.messageQuery().Where("direct_messages.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

var messageOrderings = map[string]string{
	"created_at": "direct_messages.created_at",
	"read":       "direct_messages.read",
}

func messageOrderClause(ordering string) string {
	desc := false
	if strings.HasPrefix(ordering, "-") {
		desc = true
		ordering = ordering[1:]
	}
	col, ok := messageOrderings[ordering]
	if !ok {
		return "direct_messages.created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// ListBetween 两人之间的全部私信，双向
func (r *messageRepository) ListBetween(viewerID, otherID uint, ordering string, offset, limit int) ([]model.MessageWithNames, int64, error) {
	base := r.db.Table("direct_messages").
		Where(`(direct_messages.sender_id = ? AND direct_messages.receiver_id = ?)
			OR (direct_messages.sender_id = ? AND direct_messages.receiver_id = ?)`,
			viewerID, otherID, otherID, viewerID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.MessageWithNames
	err := r.messageQuery().
		Where(`(direct_messages.sender_id = ? AND direct_messages.receiver_id = ?)
			OR (direct_messages.sender_id = ? AND direct_messages.receiver_id = ?)`,
			viewerID, otherID, otherID, viewerID).
		Order(messageOrderClause(ordering)).
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// MarkRead 标记单条已读
func (r *messageRepository) MarkRead(id uint) error {
	return r.db.Model(&model.DirectMessage{}).Where("id = ?", id).Update("read", true).Error
}

// MarkConversationRead 打开会话时，把发给 receiver 的未读消息全部标记已读
func (r *messageRepository) MarkConversationRead(conversationID, receiverID uint) error {
	return r.db.Model(&model.DirectMessage{}).
		Where("conversation_id = ? AND receiver_id = ? AND read = false", conversationID, receiverID).
		Update("read", true).Error
}

// ConversationIDs 用户参与的会话，新的在前
func (r *messageRepository) ConversationIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Table("conversation_participants cp").
		Select("cp.conversation_id").
		Joins("JOIN conversations c ON c.id = cp.conversation_id").
		Where("cp.user_id = ?", userID).
		Order("c.created_at DESC").
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetConversation 单个会话
func (r *messageRepository) GetConversation(id uint) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.Take(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// IsParticipant 用户是否是会话参与者
func (r *messageRepository) IsParticipant(conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("conversation_participants").
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ParticipantsFor 批量取会话参与者，避免 N+1
func (r *messageRepository) ParticipantsFor(conversationIDs []uint) (map[uint][]userModel.MiniUser, error) {
	result := make(map[uint][]userModel.MiniUser, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ConversationID uint
		ID             uint
		Username       string
		Image          string
	}
	err := r.db.Table("conversation_participants cp").
		Select("cp.conversation_id, users.id, users.username, profiles.image").
		Joins("JOIN users ON users.id = cp.user_id").
		Joins("JOIN profiles ON profiles.owner_id = users.id").
		Where("cp.conversation_id IN ?", conversationIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ConversationID] = append(result[row.ConversationID],
			userModel.MiniUser{ID: row.ID, Username: row.Username, Image: row.Image})
	}
	return result, nil
}

// LatestMessages 批量取每个会话的最新一条消息
func (r *messageRepository) LatestMessages(conversationIDs []uint) (map[uint]model.MessageWithNames, error) {
	result := make(map[uint]model.MessageWithNames, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return result, nil
	}

	var rows []model.MessageWithNames
	err := r.messageQuery().
		Where(`direct_messages.conversation_id IN ?
			AND direct_messages.id = (SELECT max(m.id) FROM direct_messages m
				WHERE m.conversation_id = direct_messages.conversation_id)`,
			conversationIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ConversationID] = row
	}
	return result, nil
}

// UnreadFor 批量判断会话里是否有发给该用户的未读消息
func (r *messageRepository) UnreadFor(conversationIDs []uint, userID uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return result, nil
	}

	var ids []uint
	err := r.db.Table("direct_messages").
		Distinct("conversation_id").
		Where("conversation_id IN ? AND receiver_id = ? AND read = false", conversationIDs, userID).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// MessagesInConversation 会话内全部消息，旧的在前
func (r *messageRepository) MessagesInConversation(conversationID uint) ([]model.MessageWithNames, error) {
	var rows []model.MessageWithNames
	err := r.messageQuery().
		Where("direct_messages.conversation_id = ?", conversationID).
		Order("direct_messages.created_at ASC, direct_messages.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UserExists 用户是否存在
func (r *messageRepository) UserExists(userID uint) (bool, error) {
	var count int64
	if err := r.db.Table("users").Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
