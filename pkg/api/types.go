package api

import "time"

// Auth Response Types
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"display_name"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	ProfileImageURL string    `json:"profile_image_url"`
	FollowerCount   int       `json:"follower_count"`
	FollowingCount  int       `json:"following_count"`
	PostCount       int       `json:"post_count"`
	EmailVerified   bool      `json:"email_verified"`
	IsPrivate       bool      `json:"is_private"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Profile Response Types
type ProfileResponse struct {
	User User `json:"user"`
}

type UpdateProfileRequest struct {
	DisplayName     string `json:"display_name,omitempty"`
	Bio             string `json:"bio,omitempty"`
	Location        string `json:"location,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// UserStats is the activity summary shown on a profile
type UserStats struct {
	Posts     int `json:"posts"`
	Followers int `json:"followers"`
	Following int `json:"following"`
	Likes     int `json:"likes"`
}

type UserStatsResponse struct {
	Stats UserStats `json:"stats"`
}

// Image Upload Types

// UploadImageRequest carries a base64 data URI plus the original file name
type UploadImageRequest struct {
	ImageData string `json:"image_data"`
	FileName  string `json:"file_name"`
}

type UploadImageData struct {
	PublicURL string `json:"public_url"`
}

type UploadImageResponse struct {
	Data UploadImageData `json:"data"`
}

// Error Response Types
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
