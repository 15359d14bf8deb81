package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobradar/internal/pkg/jwt"
)

type IssuedToken struct {
	AccessToken      string
	TokenType        string
	ExpiresAt        time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type AuthUsecase interface {
	IssueToken(ctx context.Context, userID, role string) (IssuedToken, error)
	Refresh(ctx context.Context, refreshToken string) (IssuedToken, error)
}

type Auth struct {
	jwt jwt.Service
}

func NewAuthUsecase(jwtSvc jwt.Service) *Auth {
	return &Auth{jwt: jwtSvc}
}

// IssueToken mints an access and refresh token pair for an operator-chosen
// subject.
func (u *Auth) IssueToken(_ context.Context, userID, role string) (IssuedToken, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || len(userID) > 128 {
		return IssuedToken{}, &ValidationError{Fields: map[string]string{"user_id": "is required (max 128 chars)"}}
	}
	return u.issue(userID, strings.TrimSpace(role))
}

// Refresh exchanges a valid refresh token for a new pair. Access tokens are
// rejected.
func (u *Auth) Refresh(_ context.Context, refreshToken string) (IssuedToken, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return IssuedToken{}, &ValidationError{Fields: map[string]string{"refresh_token": "is required"}}
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return IssuedToken{}, errors.Join(ErrUnauthorized, err)
		}
		return IssuedToken{}, ErrUnauthorized
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return IssuedToken{}, ErrUnauthorized
	}
	return u.issue(claims.Subject, claims.Role)
}

func (u *Auth) issue(subject, role string) (IssuedToken, error) {
	access, exp, err := u.jwt.GenerateAccessToken(subject, role)
	if err != nil {
		return IssuedToken{}, ErrInternal
	}
	refresh, refreshExp, err := u.jwt.GenerateRefreshToken(subject, role)
	if err != nil {
		return IssuedToken{}, ErrInternal
	}
	return IssuedToken{
		AccessToken:      access,
		TokenType:        "Bearer",
		ExpiresAt:        exp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
