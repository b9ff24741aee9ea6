package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/events"
	"github.com/primestore/backend/internal/hash"
	"github.com/primestore/backend/internal/logging"
	"github.com/primestore/backend/internal/models"
	"github.com/primestore/backend/internal/repo"
	"github.com/primestore/backend/internal/tokens"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Hasher   *hash.Hasher
	Issuer   *tokens.Issuer
	Producer *events.Producer
}

type AuthResult struct {
	User  *models.User
	Token string
}

// Register creates a user with a hashed password and returns it with a
// fresh bearer token. The email pre-check is an optimization only; the
// unique index is the authoritative guard, so a constraint violation from
// the insert translates into the same validation error.
func (s *AuthService) Register(ctx context.Context, name, email, password string, phone *string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Validation("Email already exists", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := s.Hasher.HashPassword(password)
	if err != nil {
		l.Error("hash_password_failed", "error", err)
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Phone:    phone,
		Role:     "user",
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validation("Email already exists", nil)
		}
		return nil, err
	}

	token, err := s.Issuer.Sign(user.ID)
	if err != nil {
		l.Error("sign_token_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("user_registered", "user_id", user.ID)
	return &AuthResult{User: &user, Token: token}, nil
}

// Login verifies credentials. Unknown email and wrong password yield the
// identical message so the response never reveals whether the account
// exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !hash.CheckPassword(user.Password, password) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	token, err := s.Issuer.Sign(user.ID)
	if err != nil {
		l.Error("sign_token_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("user_logged_in", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Logout is stateless: the bearer token simply ages out. Kept as a service
// call so the event stream still records it.
func (s *AuthService) Logout(ctx context.Context, userID uint) {
	s.publish(ctx, events.TopicUserEvents, userID, map[string]any{
		"type":    "user_logged_out",
		"user_id": userID,
	})
}

func (s *AuthService) publish(ctx context.Context, topic string, key uint, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, topic, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "error", err)
	}
}
