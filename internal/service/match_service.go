package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/repository"
	"github.com/celebra-app/celebra-backend/pkg/document"
	"github.com/celebra-app/celebra-backend/pkg/utils"
)

type MatchService struct {
	users   *repository.Repository[models.User]
	likes   *repository.Repository[models.Like]
	passes  *repository.Repository[models.Pass]
	matches *repository.Repository[models.Match]
	chats   *ChatService
}

func NewMatchService(
	users *repository.Repository[models.User],
	likes *repository.Repository[models.Like],
	passes *repository.Repository[models.Pass],
	matches *repository.Repository[models.Match],
	chats *ChatService,
) *MatchService {
	return &MatchService{
		users:   users,
		likes:   likes,
		passes:  passes,
		matches: matches,
		chats:   chats,
	}
}

// GetPotentialMatches returns single users the caller has not yet liked or
// passed in this event, excluding the caller.
func (s *MatchService) GetPotentialMatches(eventID, userID string, limit int) ([]models.UserProfile, error) {
	singles, err := s.users.Query(
		[]document.Filter{{Field: "isSingle", Operator: document.OpEqual, Value: true}},
		"createdAt", false, 0,
	)
	if err != nil {
		return nil, err
	}

	seen, err := s.seenUserIDs(eventID, userID)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.UserProfile, 0)
	for _, user := range singles {
		if user.UserID == userID || seen[user.UserID] {
			continue
		}
		profiles = append(profiles, user.Profile())
		if limit > 0 && len(profiles) >= limit {
			break
		}
	}
	return profiles, nil
}

// Like records the like and, when the target already liked the caller,
// creates the match and its conversation.
func (s *MatchService) Like(eventID, userID, targetUserID string) (*models.LikeResponse, error) {
	likeID := uuid.NewString()
	like := models.Like{
		LikeID:       likeID,
		EventID:      eventID,
		UserID:       userID,
		TargetUserID: targetUserID,
		CreatedAt:    utils.FormatDatetime(time.Now()),
	}
	if _, err := s.likes.Create(like, likeID); err != nil {
		return nil, err
	}

	reciprocal, err := s.likes.Query([]document.Filter{
		{Field: "eventId", Operator: document.OpEqual, Value: eventID},
		{Field: "userId", Operator: document.OpEqual, Value: targetUserID},
		{Field: "targetUserId", Operator: document.OpEqual, Value: userID},
	}, "", false, 1)
	if err != nil {
		return nil, err
	}
	if len(reciprocal) == 0 {
		return &models.LikeResponse{Matched: false}, nil
	}

	chat, err := s.chats.GetOrCreateChat(userID, targetUserID, eventID)
	if err != nil {
		return nil, err
	}

	matchID := uuid.NewString()
	match := models.Match{
		MatchID:   matchID,
		EventID:   eventID,
		UserA:     userID,
		UserB:     targetUserID,
		ChatID:    chat.ChatID,
		CreatedAt: utils.FormatDatetime(time.Now()),
	}
	if _, err := s.matches.Create(match, matchID); err != nil {
		return nil, err
	}

	return &models.LikeResponse{Matched: true, MatchID: matchID, ChatID: chat.ChatID}, nil
}

func (s *MatchService) Pass(eventID, userID, targetUserID string) error {
	passID := uuid.NewString()
	pass := models.Pass{
		PassID:       passID,
		EventID:      eventID,
		UserID:       userID,
		TargetUserID: targetUserID,
		CreatedAt:    utils.FormatDatetime(time.Now()),
	}
	_, err := s.passes.Create(pass, passID)
	return err
}

// GetMatches lists the user's matches in an event, from both participant
// sides (two queries, the store only ANDs filters).
func (s *MatchService) GetMatches(eventID, userID string) ([]models.Match, error) {
	asA, err := s.matches.Query([]document.Filter{
		{Field: "eventId", Operator: document.OpEqual, Value: eventID},
		{Field: "userA", Operator: document.OpEqual, Value: userID},
	}, "", false, 0)
	if err != nil {
		return nil, err
	}
	asB, err := s.matches.Query([]document.Filter{
		{Field: "eventId", Operator: document.OpEqual, Value: eventID},
		{Field: "userB", Operator: document.OpEqual, Value: userID},
	}, "", false, 0)
	if err != nil {
		return nil, err
	}
	return append(asA, asB...), nil
}

func (s *MatchService) seenUserIDs(eventID, userID string) (map[string]bool, error) {
	seen := make(map[string]bool)

	likes, err := s.likes.Query([]document.Filter{
		{Field: "eventId", Operator: document.OpEqual, Value: eventID},
		{Field: "userId", Operator: document.OpEqual, Value: userID},
	}, "", false, 0)
	if err != nil {
		return nil, err
	}
	for _, like := range likes {
		seen[like.TargetUserID] = true
	}

	passes, err := s.passes.Query([]document.Filter{
		{Field: "eventId", Operator: document.OpEqual, Value: eventID},
		{Field: "userId", Operator: document.OpEqual, Value: userID},
	}, "", false, 0)
	if err != nil {
		return nil, err
	}
	for _, pass := range passes {
		seen[pass.TargetUserID] = true
	}

	return seen, nil
}
