package service

import (
	"testing"

	"inspyre/internal/domain/message/model"
	userModel "inspyre/internal/domain/user/model"
	"inspyre/pkg/apperr"
	baseModel "inspyre/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockMessageRepository is a mock of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) FindOrCreateConversation(userA, userB uint) (uint, error) {
	args := m.Called(userA, userB)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockMessageRepository) CreateMessage(msg *model.DirectMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockMessageRepository) GetMessageByID(id uint) (*model.MessageWithNames, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MessageWithNames), args.Error(1)
}

func (m *MockMessageRepository) ListBetween(viewerID, otherID uint, ordering string, offset, limit int) ([]model.MessageWithNames, int64, error) {
	args := m.Called(viewerID, otherID, ordering, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.MessageWithNames), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) MarkRead(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMessageRepository) MarkConversationRead(conversationID, receiverID uint) error {
	args := m.Called(conversationID, receiverID)
	return args.Error(0)
}

func (m *MockMessageRepository) ConversationIDs(userID uint) ([]uint, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockMessageRepository) GetConversation(id uint) (*model.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *MockMessageRepository) IsParticipant(conversationID, userID uint) (bool, error) {
	args := m.Called(conversationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) ParticipantsFor(conversationIDs []uint) (map[uint][]userModel.MiniUser, error) {
	args := m.Called(conversationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint][]userModel.MiniUser), args.Error(1)
}

func (m *MockMessageRepository) LatestMessages(conversationIDs []uint) (map[uint]model.MessageWithNames, error) {
	args := m.Called(conversationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]model.MessageWithNames), args.Error(1)
}

func (m *MockMessageRepository) UnreadFor(conversationIDs []uint, userID uint) (map[uint]bool, error) {
	args := m.Called(conversationIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *MockMessageRepository) MessagesInConversation(conversationID uint) ([]model.MessageWithNames, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MessageWithNames), args.Error(1)
}

func (m *MockMessageRepository) UserExists(userID uint) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func testMessage(id uint, senderID, receiverID *uint, convID uint) *model.MessageWithNames {
	sender := "alice"
	receiver := "bob"
	return &model.MessageWithNames{
		DirectMessage: model.DirectMessage{
			BaseModel:      baseModel.BaseModel{ID: id},
			SenderID:       senderID,
			ReceiverID:     receiverID,
			ConversationID: convID,
			Content:        "hello there my friend",
		},
		SenderUsername:   &sender,
		ReceiverUsername: &receiver,
	}
}

func uintPtr(v uint) *uint { return &v }

func TestSendMessage(t *testing.T) {
	t.Run("Send creates pair conversation", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		mockRepo.On("UserExists", uint(2)).Return(true, nil)
		mockRepo.On("FindOrCreateConversation", uint(1), uint(2)).Return(uint(7), nil)
		mockRepo.On("CreateMessage", mock.AnythingOfType("*model.DirectMessage")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.DirectMessage).ID = 5
		}).Return(nil)
		mockRepo.On("GetMessageByID", uint(5)).Return(testMessage(5, uintPtr(1), uintPtr(2), 7), nil)

		view, err := service.Send(1, 2, "hello there my friend")

		require.NoError(t, err)
		assert.Equal(t, uint(5), view.ID)
		assert.Equal(t, uint(7), view.Conversation)
		assert.False(t, view.Read)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Whitespace only content rejected", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		_, err := service.Send(1, 2, "   \n\t ")

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "content must not be empty", apperr.MessageOf(err))
		mockRepo.AssertNotCalled(t, "CreateMessage", mock.Anything)
	})

	t.Run("Message to self rejected", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		_, err := service.Send(1, 1, "hi")

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Unknown receiver rejected", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		mockRepo.On("UserExists", uint(9)).Return(false, nil)

		_, err := service.Send(1, 9, "hi")

		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestGetMessage(t *testing.T) {
	t.Run("Outsider forbidden", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		mockRepo.On("GetMessageByID", uint(5)).Return(testMessage(5, uintPtr(1), uintPtr(2), 7), nil)

		_, err := service.Get(5, 3)

		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("Participant reads", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		mockRepo.On("GetMessageByID", uint(5)).Return(testMessage(5, uintPtr(1), uintPtr(2), 7), nil)

		view, err := service.Get(5, 2)

		require.NoError(t, err)
		assert.Equal(t, uint(5), view.ID)
	})

	t.Run("Unknown message", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		mockRepo.On("GetMessageByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Get(9, 1)

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestMarkRead(t *testing.T) {
	t.Run("Sender cannot mark read", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		mockRepo.On("GetMessageByID", uint(5)).Return(testMessage(5, uintPtr(1), uintPtr(2), 7), nil)

		_, err := service.MarkRead(5, 1)

		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("Receiver marks read", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		mockRepo.On("GetMessageByID", uint(5)).Return(testMessage(5, uintPtr(1), uintPtr(2), 7), nil)
		mockRepo.On("MarkRead", uint(5)).Return(nil)

		view, err := service.MarkRead(5, 2)

		require.NoError(t, err)
		assert.True(t, view.Read)
		mockRepo.AssertExpectations(t)
	})
}

func TestConversations(t *testing.T) {
	t.Run("List carries other user and unread flag", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		ids := []uint{7}
		mockRepo.On("ConversationIDs", uint(1)).Return(ids, nil)
		mockRepo.On("ParticipantsFor", ids).Return(map[uint][]userModel.MiniUser{
			7: {{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}},
		}, nil)
		mockRepo.On("LatestMessages", ids).Return(map[uint]model.MessageWithNames{
			7: *testMessage(5, uintPtr(2), uintPtr(1), 7),
		}, nil)
		mockRepo.On("UnreadFor", ids, uint(1)).Return(map[uint]bool{7: true}, nil)
		mockRepo.On("GetConversation", uint(7)).Return(&model.Conversation{
			BaseModel: baseModel.BaseModel{ID: 7},
		}, nil)

		views, err := service.ListConversations(1)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, uint(7), views[0].ID)
		require.NotNil(t, views[0].OtherUser)
		assert.Equal(t, "bob", views[0].OtherUser.Username)
		assert.True(t, views[0].HasUnreadMessages)
		assert.Equal(t, "hello there my friend", views[0].LatestMessage)
	})

	t.Run("Outsider forbidden on detail", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		mockRepo.On("GetConversation", uint(7)).Return(&model.Conversation{
			BaseModel: baseModel.BaseModel{ID: 7},
		}, nil)
		mockRepo.On("IsParticipant", uint(7), uint(3)).Return(false, nil)

		_, err := service.GetConversation(7, 3)

		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("Opening detail marks incoming read", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		service := NewMessageService(mockRepo, nil)

		ids := []uint{7}
		mockRepo.On("GetConversation", uint(7)).Return(&model.Conversation{
			BaseModel: baseModel.BaseModel{ID: 7},
		}, nil)
		mockRepo.On("IsParticipant", uint(7), uint(1)).Return(true, nil)
		mockRepo.On("MarkConversationRead", uint(7), uint(1)).Return(nil)
		mockRepo.On("MessagesInConversation", uint(7)).Return([]model.MessageWithNames{
			*testMessage(5, uintPtr(2), uintPtr(1), 7),
		}, nil)
		mockRepo.On("ParticipantsFor", ids).Return(map[uint][]userModel.MiniUser{
			7: {{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}},
		}, nil)
		mockRepo.On("LatestMessages", ids).Return(map[uint]model.MessageWithNames{
			7: *testMessage(5, uintPtr(2), uintPtr(1), 7),
		}, nil)

		view, err := service.GetConversation(7, 1)

		require.NoError(t, err)
		require.Len(t, view.Messages, 1)
		mockRepo.AssertExpectations(t)
	})
}
