package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/repository"
	"github.com/celebra-app/celebra-backend/pkg/document"
)

func newChatService(t *testing.T) *ChatService {
	t.Helper()

	store := document.NewMemoryStore()
	return NewChatService(
		repository.New[models.Conversation](store, "chats"),
		repository.New[models.Message](store, "messages"),
	)
}

func TestGetOrCreateChatIsDeterministic(t *testing.T) {
	svc := newChatService(t)

	chat, err := svc.GetOrCreateChat("bob", "alice", "event-1")
	require.NoError(t, err)
	assert.Equal(t, "event-1:alice:bob", chat.ChatID)
	assert.Equal(t, "alice", chat.UserA)
	assert.Equal(t, "bob", chat.UserB)

	// Opening from the other side lands on the same conversation.
	same, err := svc.GetOrCreateChat("alice", "bob", "event-1")
	require.NoError(t, err)
	assert.Equal(t, chat.ChatID, same.ChatID)

	conversations, err := svc.GetConversations("alice")
	require.NoError(t, err)
	assert.Len(t, conversations, 1)
}

func TestSendMessageUpdatesConversation(t *testing.T) {
	svc := newChatService(t)

	chat, err := svc.GetOrCreateChat("alice", "bob", "event-1")
	require.NoError(t, err)

	message, err := svc.SendMessage(chat.ChatID, "alice", "hi bob")
	require.NoError(t, err)
	require.NotEmpty(t, message.MessageID)
	assert.Equal(t, "hi bob", message.Text)

	conversations, err := svc.GetConversations("bob")
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, "hi bob", conversations[0].LastMessage)
	assert.Equal(t, message.CreatedAt, conversations[0].LastMessageAt)
}

func TestSendMessageRejectsOutsiders(t *testing.T) {
	svc := newChatService(t)

	chat, err := svc.GetOrCreateChat("alice", "bob", "event-1")
	require.NoError(t, err)

	_, err = svc.SendMessage(chat.ChatID, "mallory", "let me in")
	require.Error(t, err)
	assert.Equal(t, "user is not a participant of this chat", err.Error())

	_, err = svc.SendMessage("no-such-chat", "alice", "hello?")
	require.Error(t, err)
	assert.Equal(t, "chat not found", err.Error())
}

func TestGetMessagesPagesNewestFirst(t *testing.T) {
	svc := newChatService(t)

	chat, err := svc.GetOrCreateChat("alice", "bob", "event-1")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := svc.SendMessage(chat.ChatID, "alice", fmt.Sprintf("message %d", i))
		require.NoError(t, err)
		// Keep timestamps strictly increasing at microsecond precision.
		time.Sleep(time.Millisecond)
	}

	page, err := svc.GetMessages(chat.ChatID, 2, "")
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "message 4", page[0].Text)
	assert.Equal(t, "message 3", page[1].Text)

	// The cursor excludes the message it points at.
	next, err := svc.GetMessages(chat.ChatID, 2, page[1].CreatedAt)
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.Equal(t, "message 2", next[0].Text)
	assert.Equal(t, "message 1", next[1].Text)
}

func TestMarkAsRead(t *testing.T) {
	svc := newChatService(t)

	chat, err := svc.GetOrCreateChat("alice", "bob", "event-1")
	require.NoError(t, err)

	require.NoError(t, svc.MarkAsRead(chat.ChatID, "bob"))

	conversations, err := svc.GetConversations("bob")
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, "bob", conversations[0].LastReadBy)
	assert.NotEmpty(t, conversations[0].LastReadAt)

	require.Error(t, svc.MarkAsRead("no-such-chat", "bob"))
}
