package models

// Conversation is stored in the "chats" collection. Its id is deterministic
// for a user pair within an event, so create-or-get is a single upsert.
type Conversation struct {
	ChatID        string `json:"chatId"`
	EventID       string `json:"eventId"`
	UserA         string `json:"userA"`
	UserB         string `json:"userB"`
	LastMessage   string `json:"lastMessage,omitempty"`
	LastMessageAt string `json:"lastMessageAt,omitempty"`
	LastReadBy    string `json:"lastReadBy,omitempty"`
	LastReadAt    string `json:"lastReadAt,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

type Message struct {
	MessageID string `json:"messageId"`
	ChatID    string `json:"chatId"`
	UserID    string `json:"userId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type CreateChatRequest struct {
	UserID2 string `json:"userId2" validate:"required"`
	EventID string `json:"eventId" validate:"required"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}
