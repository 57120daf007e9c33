package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AuthUser is the identity resolved from a validated token. It is placed in
// the request context by the JWT middleware and passed explicitly into every
// service call.
type AuthUser struct {
	ID           int64
	EmailAddress string
}

type RegisterRequest struct {
	UserName     string          `json:"userName" validate:"required"`
	EmailAddress string          `json:"emailAddress" validate:"required,email"`
	Password     string          `json:"password" validate:"required"`
	Profile      *ProfileRequest `json:"profile"`
}

type ProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

type LoginRequest struct {
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Jwt     string `json:"jwt,omitempty"`
	Message string `json:"message"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (string, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, userID int64) (*User, error)
}

// TokenStore keeps tokens revoked by logout until they would have expired on
// their own.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
