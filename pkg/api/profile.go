package api

import (
	json "github.com/json-iterator/go"
	"github.com/perchapp/cli/pkg/client"
	"github.com/perchapp/cli/pkg/logger"
)

// GetUserProfile gets a user's public profile
func GetUserProfile(username string) (*User, error) {
	logger.Debug("Fetching user profile", "username", username)

	resp, err := client.GetClient().
		R().
		Get("/api/v1/users/" + username + "/profile")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var profileResp ProfileResponse
	if err := json.Unmarshal(resp.Body(), &profileResp); err != nil {
		return nil, err
	}

	return &profileResp.User, nil
}

// UpdateUserProfile updates current user's profile
func UpdateUserProfile(req UpdateProfileRequest) (*User, error) {
	logger.Debug("Updating user profile")

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Put("/api/v1/users/me")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var profileResp ProfileResponse
	if err := json.Unmarshal(resp.Body(), &profileResp); err != nil {
		return nil, err
	}

	return &profileResp.User, nil
}

// GetUserStats gets the current user's activity summary
func GetUserStats() (*UserStats, error) {
	logger.Debug("Fetching user stats")

	resp, err := client.GetClient().
		R().
		Get("/api/v1/users/me/stats")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var statsResp UserStatsResponse
	if err := json.Unmarshal(resp.Body(), &statsResp); err != nil {
		return nil, err
	}

	return &statsResp.Stats, nil
}
