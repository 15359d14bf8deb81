package dto

import (
	"time"

	"jobradar/internal/usecase"
)

type IssueTokenRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresAt        string `json:"expires_at"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresAt string `json:"refresh_expires_at"`
}

func NewTokenResponse(t usecase.IssuedToken) TokenResponse {
	return TokenResponse{
		AccessToken:      t.AccessToken,
		TokenType:        t.TokenType,
		ExpiresAt:        t.ExpiresAt.UTC().Format(time.RFC3339),
		RefreshToken:     t.RefreshToken,
		RefreshExpiresAt: t.RefreshExpiresAt.UTC().Format(time.RFC3339),
	}
}
