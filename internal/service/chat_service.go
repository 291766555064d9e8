package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/repository"
	"github.com/celebra-app/celebra-backend/pkg/document"
	"github.com/celebra-app/celebra-backend/pkg/utils"
)

const defaultMessagePageSize = 50

type ChatService struct {
	chats    *repository.Repository[models.Conversation]
	messages *repository.Repository[models.Message]
}

func NewChatService(
	chats *repository.Repository[models.Conversation],
	messages *repository.Repository[models.Message],
) *ChatService {
	return &ChatService{
		chats:    chats,
		messages: messages,
	}
}

// chatIDFor is deterministic for a user pair within an event, so two users
// always land on the same conversation regardless of who opens it.
func chatIDFor(eventID, userA, userB string) (string, string, string) {
	if userB < userA {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("%s:%s:%s", eventID, userA, userB), userA, userB
}

// GetOrCreateChat returns the conversation between two users in an event,
// creating it on first use.
func (s *ChatService) GetOrCreateChat(userID, otherUserID, eventID string) (*models.Conversation, error) {
	chatID, userA, userB := chatIDFor(eventID, userID, otherUserID)

	existing, err := s.chats.Get(chatID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	chat := models.Conversation{
		ChatID:    chatID,
		EventID:   eventID,
		UserA:     userA,
		UserB:     userB,
		CreatedAt: utils.FormatDatetime(time.Now()),
	}
	if _, err := s.chats.Create(chat, chatID); err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetConversations lists the user's conversations, most recently active
// first. The store only ANDs filters, so the two participant sides are two
// queries merged here.
func (s *ChatService) GetConversations(userID string) ([]models.Conversation, error) {
	asA, err := s.chats.Query(
		[]document.Filter{{Field: "userA", Operator: document.OpEqual, Value: userID}},
		"", false, 0,
	)
	if err != nil {
		return nil, err
	}
	asB, err := s.chats.Query(
		[]document.Filter{{Field: "userB", Operator: document.OpEqual, Value: userID}},
		"", false, 0,
	)
	if err != nil {
		return nil, err
	}

	conversations := append(asA, asB...)
	sort.SliceStable(conversations, func(i, j int) bool {
		a, b := conversations[i], conversations[j]
		at := a.LastMessageAt
		if at == "" {
			at = a.CreatedAt
		}
		bt := b.LastMessageAt
		if bt == "" {
			bt = b.CreatedAt
		}
		return at > bt
	})
	return conversations, nil
}

// GetMessages pages a conversation newest-first. before is an exclusive
// ISO-8601 cursor; limit defaults to 50.
func (s *ChatService) GetMessages(chatID string, limit int, before string) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultMessagePageSize
	}

	filters := []document.Filter{
		{Field: "chatId", Operator: document.OpEqual, Value: chatID},
	}
	if before != "" {
		filters = append(filters, document.Filter{Field: "createdAt", Operator: document.OpLess, Value: before})
	}

	return s.messages.Query(filters, "createdAt", true, limit)
}

func (s *ChatService) SendMessage(chatID, userID, text string) (*models.Message, error) {
	chat, err := s.chats.Get(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, errors.New("chat not found")
	}
	if userID != chat.UserA && userID != chat.UserB {
		return nil, errors.New("user is not a participant of this chat")
	}

	now := utils.FormatDatetime(time.Now())
	messageID := uuid.NewString()
	message := models.Message{
		MessageID: messageID,
		ChatID:    chatID,
		UserID:    userID,
		Text:      text,
		CreatedAt: now,
	}

	if _, err := s.messages.Create(message, messageID); err != nil {
		return nil, err
	}

	if err := s.chats.Update(chatID, map[string]interface{}{
		"lastMessage":   text,
		"lastMessageAt": now,
	}); err != nil {
		return nil, err
	}

	return &message, nil
}

func (s *ChatService) MarkAsRead(chatID, userID string) error {
	chat, err := s.chats.Get(chatID)
	if err != nil {
		return err
	}
	if chat == nil {
		return errors.New("chat not found")
	}

	return s.chats.Update(chatID, map[string]interface{}{
		"lastReadBy": userID,
		"lastReadAt": utils.FormatDatetime(time.Now()),
	})
}
