package services

import (
	"testing"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/google"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	s := NewAuthService(newTestDB(t), "test-secret")

	token, err := s.GenerateToken(7)
	require.NoError(t, err)

	userID, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := NewAuthService(newTestDB(t), "test-secret")

	_, err := s.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := newTestDB(t)
	issuer := NewAuthService(db, "secret-a")
	verifier := NewAuthService(db, "secret-b")

	token, err := issuer.GenerateToken(7)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestStateTokenRoundTrip(t *testing.T) {
	s := NewAuthService(newTestDB(t), "test-secret")

	state, err := s.GenerateStateToken()
	require.NoError(t, err)
	assert.NoError(t, s.ValidateStateToken(state))
}

func TestSessionTokenIsNotValidState(t *testing.T) {
	s := NewAuthService(newTestDB(t), "test-secret")

	token, err := s.GenerateToken(7)
	require.NoError(t, err)

	assert.Error(t, s.ValidateStateToken(token))
}

func TestGetOrCreateUser(t *testing.T) {
	db := newTestDB(t)
	s := NewAuthService(db, "test-secret")

	info := &google.UserInfo{ID: "g-1", Email: "teacher@example.com", Name: "Teacher", Picture: "https://pic"}
	user, err := s.GetOrCreateUser(info)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "teacher@example.com", user.Email)

	// Same email resolves to the same row, with profile fields refreshed.
	info.Name = "Renamed Teacher"
	again, err := s.GetOrCreateUser(info)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "Renamed Teacher", again.Name)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
