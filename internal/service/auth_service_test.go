package service

import (
	"testing"
	"time"

	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig(t *testing.T, password string) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			ExpireTime: time.Hour,
		},
		Admin: config.AdminConfig{
			Username:     "admin",
			PasswordHash: string(hash),
		},
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	cfg := testAuthConfig(t, "hunter2")
	svc := NewAuthService(cfg)

	token, err := svc.Login("admin", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(testAuthConfig(t, "hunter2"))

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("root", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnsetHash(t *testing.T) {
	cfg := testAuthConfig(t, "hunter2")
	cfg.Admin.PasswordHash = ""
	svc := NewAuthService(cfg)

	_, err := svc.Login("admin", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
