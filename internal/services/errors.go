package services

import "errors"

var (
	// ErrNotConnected means no stored Google credential (or one without a
	// refresh token) exists; the user must go through consent again.
	ErrNotConnected = errors.New("google account not connected or missing refresh token")

	// ErrCredentialExpired means the provider rejected the refresh token
	// (invalid_grant); the user must sign out and sign in again.
	ErrCredentialExpired = errors.New("google session expired or revoked")
)
