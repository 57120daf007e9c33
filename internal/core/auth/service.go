// Package auth implements registration, login, and logout on top of the user
// repository and the revoked-token store.
package auth

import (
	"context"
	"errors"
	"time"

	"pharmtrack/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type service struct {
	users       domain.UserRepository
	tokens      domain.TokenStore
	jwtSecret   []byte
	tokenExpiry time.Duration
}

func NewService(users domain.UserRepository, tokens domain.TokenStore, secret string, expiry time.Duration) domain.AuthService {
	return &service{
		users:       users,
		tokens:      tokens,
		jwtSecret:   []byte(secret),
		tokenExpiry: expiry,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.EmailAddress); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserName:     req.UserName,
		EmailAddress: req.EmailAddress,
		Password:     string(hashedPwd),
	}

	if req.Profile != nil {
		user.Profile = &domain.Profile{
			FirstName:   req.Profile.FirstName,
			LastName:    req.Profile.LastName,
			Address:     req.Profile.Address,
			PhoneNumber: req.Profile.PhoneNumber,
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	user, err := s.users.GetByEmail(ctx, req.EmailAddress)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return GenerateToken(user, s.jwtSecret, s.tokenExpiry)
}

// Logout revokes the presented token for its remaining lifetime. An already
// expired token has nothing left to revoke.
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := ParseToken(token, s.jwtSecret)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	return s.tokens.Revoke(ctx, token, ttl)
}

func (s *service) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
