package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, track SessionTrackingRequest) (LoginResponse, error)
	LoginWithGoogle(ctx context.Context, email string, googleID string, track SessionTrackingRequest) (LoginResponse, error)
	Me(ctx context.Context, userID string, sessionType string) (SessionResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
}
