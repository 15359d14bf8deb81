package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	issuer = "jobradar"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims identify a caller. Subject is an opaque user id chosen by the issuer.
type Claims struct {
	TokenType string `json:"token_type"`
	Role      string `json:"role,omitempty"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(subject, role string) (string, time.Time, error)
	GenerateRefreshToken(subject, role string) (string, time.Time, error)
	ValidateToken(tokenString string) (Claims, error)
	ValidateAccessToken(tokenString string) (Claims, error)
}

type HMACService struct {
	accessSecret  []byte
	refreshSecret []byte

	accessExpiresIn  time.Duration
	refreshExpiresIn time.Duration

	now func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		accessSecret:     []byte(accessSecret),
		refreshSecret:    []byte(refreshSecret),
		accessExpiresIn:  accessExpiresIn,
		refreshExpiresIn: refreshExpiresIn,
		now:              time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(subject, role string) (string, time.Time, error) {
	return s.generate(TokenTypeAccess, subject, role)
}

// GenerateRefreshToken carries role so a refreshed access token keeps it.
func (s *HMACService) GenerateRefreshToken(subject, role string) (string, time.Time, error) {
	return s.generate(TokenTypeRefresh, subject, role)
}

// ValidateToken accepts either token type.
func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	claims, err := s.validateWithSecret(tokenString, s.accessSecret)
	if err == nil {
		return claims, nil
	}
	lastErr := err

	claims, err = s.validateWithSecret(tokenString, s.refreshSecret)
	if err == nil {
		return claims, nil
	}

	if errors.Is(lastErr, ErrTokenExpired) || errors.Is(err, ErrTokenExpired) {
		return Claims{}, ErrTokenExpired
	}
	return Claims{}, ErrTokenInvalid
}

func (s *HMACService) ValidateAccessToken(tokenString string) (Claims, error) {
	c, err := s.validateWithSecret(tokenString, s.accessSecret)
	if err != nil {
		return Claims{}, err
	}
	if c.TokenType != TokenTypeAccess {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

func (s *HMACService) generate(tokenType, subject, role string) (string, time.Time, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", time.Time{}, ErrTokenInvalid
	}
	secret, expIn, err := s.secretAndExpiry(tokenType)
	if err != nil {
		return "", time.Time{}, err
	}

	now := s.now().UTC()
	exp := now.Add(expIn)

	c := Claims{
		TokenType: tokenType,
		Role:      role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *HMACService) validateWithSecret(tokenString string, secret []byte) (Claims, error) {
	if len(secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	if c.TokenType != TokenTypeAccess && c.TokenType != TokenTypeRefresh {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(c.Subject) == "" {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}

func (s *HMACService) secretAndExpiry(tokenType string) ([]byte, time.Duration, error) {
	switch tokenType {
	case TokenTypeAccess:
		if len(s.accessSecret) == 0 || s.accessExpiresIn <= 0 {
			return nil, 0, ErrTokenInvalid
		}
		return s.accessSecret, s.accessExpiresIn, nil
	case TokenTypeRefresh:
		if len(s.refreshSecret) == 0 || s.refreshExpiresIn <= 0 {
			return nil, 0, ErrTokenInvalid
		}
		return s.refreshSecret, s.refreshExpiresIn, nil
	default:
		return nil, 0, ErrTokenInvalid
	}
}
