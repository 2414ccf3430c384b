package services

import (
	"testing"
	"time"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCredentialGetNotConnected(t *testing.T) {
	s := NewCredentialService(newTestDB(t))

	_, err := s.Get(1)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestCredentialGetRequiresRefreshToken(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Credential{
		UserID:            1,
		Provider:          models.ProviderGoogle,
		ProviderAccountID: "acct-1",
		AccessToken:       "access-1",
	}).Error)

	s := NewCredentialService(db)
	_, err := s.Get(1)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestCredentialUpsert(t *testing.T) {
	db := newTestDB(t)
	s := NewCredentialService(db)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, s.Upsert(1, "acct-1", &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Expiry:       expiry,
	}))

	cred, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "access-1", cred.AccessToken)
	assert.Equal(t, "refresh-1", cred.RefreshToken)
	assert.Equal(t, "acct-1", cred.ProviderAccountID)

	// A later sign-in without a refresh token must not clobber the stored one.
	require.NoError(t, s.Upsert(1, "acct-1", &oauth2.Token{
		AccessToken: "access-2",
		Expiry:      expiry.Add(time.Hour),
	}))

	cred, err = s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "access-2", cred.AccessToken)
	assert.Equal(t, "refresh-1", cred.RefreshToken)

	var count int64
	db.Model(&models.Credential{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCredentialDisconnectIdempotent(t *testing.T) {
	db := newTestDB(t)
	s := NewCredentialService(db)

	require.NoError(t, s.Upsert(1, "acct-1", &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))

	require.NoError(t, s.Disconnect(1))
	_, err := s.Get(1)
	assert.ErrorIs(t, err, ErrNotConnected)

	// Deleting zero rows is still fine.
	require.NoError(t, s.Disconnect(1))
}

func TestSaveRotatedKeyedByProviderAccount(t *testing.T) {
	db := newTestDB(t)
	s := NewCredentialService(db)

	cred := &models.Credential{
		UserID:            1,
		Provider:          models.ProviderGoogle,
		ProviderAccountID: "acct-1",
		AccessToken:       "access-1",
		RefreshToken:      "refresh-1",
	}
	require.NoError(t, db.Create(cred).Error)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, s.SaveRotated(cred, &oauth2.Token{
		AccessToken:  "access-2",
		RefreshToken: "refresh-2",
		Expiry:       expiry,
	}))

	var stored models.Credential
	require.NoError(t, db.First(&stored, "provider = ? AND provider_account_id = ?",
		models.ProviderGoogle, "acct-1").Error)
	assert.Equal(t, "access-2", stored.AccessToken)
	assert.Equal(t, "refresh-2", stored.RefreshToken)

	// In-memory copy follows so later comparisons see current state.
	assert.Equal(t, "access-2", cred.AccessToken)
	assert.Equal(t, "refresh-2", cred.RefreshToken)
}
