package service

import (
	"time"

	"github.com/perchapp/cli/pkg/api"
	"github.com/perchapp/cli/pkg/client"
	"github.com/perchapp/cli/pkg/credentials"
	"github.com/perchapp/cli/pkg/errors"
	"github.com/perchapp/cli/pkg/output"
	"github.com/perchapp/cli/pkg/prompter"
)

type AuthService struct{}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login authenticates with the API and stores credentials locally
func (s *AuthService) Login(email string) error {
	if email == "" {
		var err error
		email, err = prompter.PromptString("Email: ")
		if err != nil {
			return err
		}
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}

	client.Init()

	resp, err := api.Login(email, password)
	if err != nil {
		output.PrintError("Login failed: %v", err)
		return err
	}

	creds := &credentials.Credentials{
		AccessToken:     resp.AccessToken,
		RefreshToken:    resp.RefreshToken,
		ExpiresAt:       time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		UserID:          resp.User.ID,
		Username:        resp.User.Username,
		Email:           resp.User.Email,
		ProfileImageURL: resp.User.ProfileImageURL,
	}

	if err := credentials.Save(creds); err != nil {
		output.PrintError("Failed to save credentials: %v", err)
		return err
	}

	output.PrintSuccess("Logged in as %s", creds.Username)
	return nil
}

// Logout removes stored credentials
func (s *AuthService) Logout() error {
	if err := credentials.Delete(); err != nil {
		output.PrintError("Failed to remove credentials: %v", err)
		return err
	}

	client.ClearAuthToken()
	output.PrintSuccess("Logged out")
	return nil
}

// WhoAmI prints the signed-in user
func (s *AuthService) WhoAmI() error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}

	if creds == nil || !creds.IsValid() {
		output.PrintError("Not logged in. Please run 'perch-cli auth login'")
		return errors.NotAuthenticatedError()
	}

	output.PrintKeyValue(map[string]interface{}{
		"Username":      creds.Username,
		"Email":         creds.Email,
		"User ID":       creds.UserID,
		"Profile Image": creds.ProfileImageURL,
		"Expires":       creds.ExpiresAt.Format("2006-01-02 15:04:05"),
	})
	return nil
}
