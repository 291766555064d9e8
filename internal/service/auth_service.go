package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/repository"
	"github.com/celebra-app/celebra-backend/pkg/bcrypt"
	"github.com/celebra-app/celebra-backend/pkg/document"
	jwtPkg "github.com/celebra-app/celebra-backend/pkg/jwt"
	"github.com/celebra-app/celebra-backend/pkg/utils"
)

// Mailer is the slice of the notification gateway the services need.
type Mailer interface {
	SendWelcomeEmail(to, name string) error
	SendPasswordResetEmail(to, resetLink string) error
	SendInvitationEmail(to, eventName, invitationLink string) error
}

type AuthService struct {
	users       *repository.Repository[models.User]
	mailer      Mailer
	tokens      *jwtPkg.Manager
	frontendURL string
	logger      *zap.SugaredLogger
}

func NewAuthService(
	users *repository.Repository[models.User],
	mailer Mailer,
	tokens *jwtPkg.Manager,
	frontendURL string,
	logger *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		users:       users,
		mailer:      mailer,
		tokens:      tokens,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, errors.New("invalid email address")
	}

	existing, err := s.userByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already exists")
	}

	hash, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	userID := uuid.NewString()
	user := models.User{
		UserID:       userID,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		IsSingle:     req.IsSingle,
		CreatedAt:    utils.FormatDatetime(time.Now()),
	}

	if _, err := s.users.Create(user, userID); err != nil {
		return nil, err
	}

	// Registration does not wait on the mail provider; a failure is logged,
	// not surfaced.
	go func() {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
			s.logger.Warnw("failed to send welcome email", "email", user.Email, "error", err)
		}
	}()

	token, err := s.tokens.GenerateToken(userID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user.Profile()}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	return &models.AuthResponse{Token: token, User: user.Profile()}, nil
}

func (s *AuthService) GetProfile(userID string) (*models.UserProfile, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	profile := user.Profile()
	return &profile, nil
}

// ForgotPassword sends a reset link. An unknown address is not an error, so
// the endpoint does not leak which emails exist.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := s.tokens.GenerateResetToken(user.Email)
	if err != nil {
		return err
	}

	resetLink := s.frontendURL + "/reset-password?token=" + token
	return s.mailer.SendPasswordResetEmail(user.Email, resetLink)
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}
	if kind, _ := claims["type"].(string); kind != "password_reset" {
		return errors.New("invalid token claims")
	}
	email, ok := claims["sub"].(string)
	if !ok {
		return errors.New("invalid token claims")
	}

	user, err := s.userByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	hash, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.Update(user.UserID, map[string]interface{}{"passwordHash": hash})
}

func (s *AuthService) userByEmail(email string) (*models.User, error) {
	users, err := s.users.Query(
		[]document.Filter{{Field: "email", Operator: document.OpEqual, Value: email}},
		"", false, 1,
	)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}
