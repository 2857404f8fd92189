package dto

import "github.com/albertcheruiyot/recipebox/internal/core/domain"

// SignupRequest represents the signup request
type SignupRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user; the password hash never leaves
// the server.
type UserResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		ImageURL: user.ImageURL,
		Bio:      user.Bio,
	}
}
