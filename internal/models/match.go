package models

// Like and Pass records live in the "likes" and "passes" collections and
// mark a target user as seen for the acting user within an event.
type Like struct {
	LikeID       string `json:"likeId"`
	EventID      string `json:"eventId"`
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId"`
	CreatedAt    string `json:"createdAt"`
}

type Pass struct {
	PassID       string `json:"passId"`
	EventID      string `json:"eventId"`
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId"`
	CreatedAt    string `json:"createdAt"`
}

// Match is created when two users like each other in the same event.
type Match struct {
	MatchID   string `json:"matchId"`
	EventID   string `json:"eventId"`
	UserA     string `json:"userA"`
	UserB     string `json:"userB"`
	ChatID    string `json:"chatId"`
	CreatedAt string `json:"createdAt"`
}

type LikeRequest struct {
	TargetUserID string `json:"targetUserId" validate:"required"`
}

type LikeResponse struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"matchId,omitempty"`
	ChatID  string `json:"chatId,omitempty"`
}
