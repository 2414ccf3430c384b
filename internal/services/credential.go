package services

import (
	"errors"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/models"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type CredentialService struct {
	db *gorm.DB
}

func NewCredentialService(db *gorm.DB) *CredentialService {
	return &CredentialService{db: db}
}

// Get loads the stored Google credential for a user. Returns
// ErrNotConnected when none exists or the refresh token is missing;
// refresh tokens are only issued on first consent, so without one the
// user has to reconnect interactively.
func (s *CredentialService) Get(userID uint) (*models.Credential, error) {
	var cred models.Credential
	err := s.db.Where("user_id = ? AND provider = ?", userID, models.ProviderGoogle).
		First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, err
	}
	if cred.RefreshToken == "" {
		return nil, ErrNotConnected
	}
	return &cred, nil
}

// Upsert stores the token material obtained at sign-in, keyed by
// (user, provider). The refresh token is only overwritten when the
// provider actually returned one.
func (s *CredentialService) Upsert(userID uint, providerAccountID string, tok *oauth2.Token) error {
	var cred models.Credential
	err := s.db.Where("user_id = ? AND provider = ?", userID, models.ProviderGoogle).
		First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cred = models.Credential{
			UserID:            userID,
			Provider:          models.ProviderGoogle,
			ProviderAccountID: providerAccountID,
			AccessToken:       tok.AccessToken,
			RefreshToken:      tok.RefreshToken,
			Expiry:            tok.Expiry,
		}
		return s.db.Create(&cred).Error
	}
	if err != nil {
		return err
	}

	cred.ProviderAccountID = providerAccountID
	cred.AccessToken = tok.AccessToken
	cred.Expiry = tok.Expiry
	if tok.RefreshToken != "" {
		cred.RefreshToken = tok.RefreshToken
	}
	return s.db.Save(&cred).Error
}

// SaveRotated persists token values the provider rotated mid-sync. The
// write is keyed by (provider, provider account id): the external account
// is the stable join key, not the local user id. cred is updated in place
// so callers can keep comparing against current state.
func (s *CredentialService) SaveRotated(cred *models.Credential, tok *oauth2.Token) error {
	updates := map[string]interface{}{
		"access_token": tok.AccessToken,
		"expiry":       tok.Expiry,
	}
	if tok.RefreshToken != "" {
		updates["refresh_token"] = tok.RefreshToken
	}

	err := s.db.Model(&models.Credential{}).
		Where("provider = ? AND provider_account_id = ?", cred.Provider, cred.ProviderAccountID).
		Updates(updates).Error
	if err != nil {
		return err
	}

	cred.AccessToken = tok.AccessToken
	cred.Expiry = tok.Expiry
	if tok.RefreshToken != "" {
		cred.RefreshToken = tok.RefreshToken
	}
	return nil
}

// Disconnect deletes the stored credential so the next sign-in issues a
// fresh consent. Deleting zero rows is not an error.
func (s *CredentialService) Disconnect(userID uint) error {
	return s.db.Where("user_id = ? AND provider = ?", userID, models.ProviderGoogle).
		Delete(&models.Credential{}).Error
}
