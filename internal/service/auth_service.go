package service

import (
	"errors"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService guards the catalog-ingestion endpoints. A single admin account
// is configured with a bcrypt password hash; successful login issues a JWT.
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.cfg.Admin.Username || s.cfg.Admin.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return util.GenerateJWT(username, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
}
