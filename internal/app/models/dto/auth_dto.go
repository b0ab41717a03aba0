package dto

import "time"

// LoginRequest represents the console login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int    `json:"expires_in" example:"28800"`
}

// AdminUserResponse describes the authenticated console user
type AdminUserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
