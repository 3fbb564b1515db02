package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

// AuthService issues and verifies the signed bearer tokens the SPA sends with
// every request. Tokens are stateless; there is no server-side session store.
type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TTL: ttl}
}

func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	tok, err := s.issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

func (s *AuthService) issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// UserFromToken verifies a bearer token and loads its user. Any parse,
// signature, expiry or lookup failure reads as "not authenticated".
func (s *AuthService) UserFromToken(token string) (*domain.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	return s.Users.ByID(claims.Subject)
}
