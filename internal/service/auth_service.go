package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long a report session token stays valid.
const SessionTTL = 12 * time.Hour

var ErrInvalidPassword = errors.New("invalid password")

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService guards the profit reports behind the shop's shared password.
type AuthService interface {
	Login(password string) (Session, error)
}

type authService struct {
	hash   []byte
	secret []byte
	clock  func() time.Time
}

// NewAuthService hashes the shared password once; the plaintext is not kept.
func NewAuthService(password string, secret []byte, clock func() time.Time) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash shared password: %w", err)
	}
	if clock == nil {
		clock = time.Now
	}
	return &authService{hash: hash, secret: secret, clock: clock}, nil
}

func (s *authService) Login(password string) (Session, error) {
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return Session{}, ErrInvalidPassword
	}
	now := s.clock()
	exp := now.Add(SessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "reports",
		"scope": "reports",
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return Session{Token: signed, ExpiresAt: exp}, nil
}
