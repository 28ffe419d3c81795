package service

import (
	"fmt"

	"github.com/perchapp/cli/pkg/api"
	"github.com/perchapp/cli/pkg/cache"
	"github.com/perchapp/cli/pkg/client"
	"github.com/perchapp/cli/pkg/credentials"
	"github.com/perchapp/cli/pkg/errors"
	"github.com/perchapp/cli/pkg/output"
)

type ProfileService struct{}

// NewProfileService creates a new profile service
func NewProfileService() *ProfileService {
	return &ProfileService{}
}

// ViewProfile views a user's profile. The current user's own profile is
// read through the user-profile cache region.
func (s *ProfileService) ViewProfile(username string) error {
	client.Init()

	creds, _ := credentials.Load()
	if creds != nil && creds.IsValid() {
		client.SetAuthToken(creds.AccessToken)
	}

	var user *api.User
	var err error

	if username == "" || username == "me" {
		user, err = s.currentUserCached()
	} else {
		user, err = api.GetUserProfile(username)
	}

	if err != nil {
		if api.IsNotFound(err) {
			output.PrintError("User not found: %s", username)
		} else {
			output.PrintError("Failed to fetch profile: %v", err)
		}
		return err
	}

	fmt.Printf("\n")
	output.PrintKeyValue(map[string]interface{}{
		"Username":      user.Username,
		"Display Name":  user.DisplayName,
		"Email":         user.Email,
		"Bio":           user.Bio,
		"Location":      user.Location,
		"Profile Image": user.ProfileImageURL,
		"Followers":     user.FollowerCount,
		"Following":     user.FollowingCount,
		"Posts":         user.PostCount,
		"Private":       user.IsPrivate,
		"Created":       user.CreatedAt.Format("2006-01-02"),
	})

	return nil
}

// ViewStats shows the current user's activity summary, read through the
// user-stats cache region.
func (s *ProfileService) ViewStats() error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}

	if creds == nil || !creds.IsValid() {
		output.PrintError("Not logged in. Please run 'perch-cli auth login'")
		return errors.NotAuthenticatedError()
	}

	client.Init()
	client.SetAuthToken(creds.AccessToken)

	store := cache.Default()

	var stats api.UserStats
	if !store.Get(cache.KeyUserStats, &stats) {
		fresh, err := api.GetUserStats()
		if err != nil {
			output.PrintError("Failed to fetch stats: %v", err)
			return err
		}
		stats = *fresh
		_ = store.Put(cache.KeyUserStats, stats)
	}

	fmt.Printf("\n")
	output.PrintKeyValue(map[string]interface{}{
		"Posts":     stats.Posts,
		"Followers": stats.Followers,
		"Following": stats.Following,
		"Likes":     stats.Likes,
	})

	return nil
}

// SetProfileImage uploads a local image file as the current user's profile
// image and prints the stored image's public URL.
func (s *ProfileService) SetProfileImage(path string) error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}

	client.Init()
	if creds != nil && creds.IsValid() {
		client.SetAuthToken(creds.AccessToken)
	}

	file, err := ImageFileFromPath(path)
	if err != nil {
		output.PrintError("%s", errors.FormatError(err))
		return err
	}

	uploader := NewProfileImageUploader(
		NewCredentialsSession(creds),
		apiRemote{},
		cache.Default(),
	)

	output.PrintInfo("Uploading %s (%d bytes)...", file.Name, file.Size)

	url, err := uploader.Upload(file)
	if err != nil {
		output.PrintError("%s", errors.FormatError(err))
		return err
	}

	output.PrintSuccess("Profile image updated!")
	fmt.Printf("Public URL: %s\n", url)
	return nil
}

func (s *ProfileService) currentUserCached() (*api.User, error) {
	store := cache.Default()

	var user api.User
	if store.Get(cache.KeyUserProfile, &user) {
		return &user, nil
	}

	fresh, err := api.GetCurrentUser()
	if err != nil {
		return nil, err
	}

	_ = store.Put(cache.KeyUserProfile, fresh)
	return fresh, nil
}
