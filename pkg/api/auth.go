package api

import (
	json "github.com/json-iterator/go"
	"github.com/perchapp/cli/pkg/client"
	"github.com/perchapp/cli/pkg/logger"
)

// Login authenticates user with email and password
func Login(email, password string) (*LoginResponse, error) {
	logger.Debug("Attempting login", "email", email)

	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/api/v1/auth/login")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := json.Unmarshal(resp.Body(), &loginResp); err != nil {
		return nil, err
	}

	logger.Debug("Login successful", "username", loginResp.User.Username)
	return &loginResp, nil
}

// GetCurrentUser gets the current authenticated user
func GetCurrentUser() (*User, error) {
	logger.Debug("Fetching current user")

	resp, err := client.GetClient().
		R().
		Get("/api/v1/auth/me")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var profileResp ProfileResponse
	if err := json.Unmarshal(resp.Body(), &profileResp); err != nil {
		return nil, err
	}

	logger.Debug("Current user fetched", "username", profileResp.User.Username)
	return &profileResp.User, nil
}
