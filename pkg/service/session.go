package service

import (
	"github.com/perchapp/cli/pkg/api"
	"github.com/perchapp/cli/pkg/credentials"
)

// CredentialsSession is a Session backed by the stored credentials file.
// Updating the profile image pushes the change to the API, then persists
// the new URL locally so later commands see it without a refetch.
type CredentialsSession struct {
	creds *credentials.Credentials
}

// NewCredentialsSession wraps loaded credentials. creds may be nil, in
// which case the session reports no authenticated user.
func NewCredentialsSession(creds *credentials.Credentials) *CredentialsSession {
	return &CredentialsSession{creds: creds}
}

// UserID returns the signed-in user's ID, or "" when signed out
func (s *CredentialsSession) UserID() string {
	if s.creds == nil || !s.creds.IsValid() {
		return ""
	}
	return s.creds.UserID
}

// SetProfileImageURL updates the profile image URL remotely and locally
func (s *CredentialsSession) SetProfileImageURL(url string) error {
	if _, err := api.UpdateUserProfile(api.UpdateProfileRequest{ProfileImageURL: url}); err != nil {
		return err
	}

	s.creds.ProfileImageURL = url
	return credentials.Save(s.creds)
}
