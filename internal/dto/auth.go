package dto

import (
	"time"

	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@factory.com"`
	Password string `json:"password" binding:"required,min=6" example:"Admin@123"`
}

// RefreshTokenRequest is the body of POST /auth/refresh-token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents a freshly issued token pair.
type TokenResponse struct {
	TokenType             string    `json:"tokenType" example:"Bearer"`
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

func ToTokenResponse(pair domain.TokenPair) TokenResponse {
	return TokenResponse{
		TokenType:             "Bearer",
		AccessToken:           pair.AccessToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}
}

func ToLoginResponse(result domain.LoginResult) LoginResponse {
	return LoginResponse{
		TokenResponse: ToTokenResponse(result.Tokens),
		User:          ToUserResponse(&result.User),
	}
}
