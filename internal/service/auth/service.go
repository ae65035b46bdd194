package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/auth"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/database"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/jwt"
	"github.com/sayednaweed/printing-mis-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	postgresql.RefreshTokenRepository
	permissions permission.Service
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, refreshTokenRepository postgresql.RefreshTokenRepository, permissionService permission.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:                     db,
		UserRepository:         userRepository,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
		permissions:            permissionService,
	}
}

// issueTokens generates the token pair and records the refresh token inside a
// transaction.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokens auth.TokenResponse

	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		var err error
		tokens.AccessToken, tokens.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role, user.SessionTypeUser)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokens.RefreshToken, tokens.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, userData.ID, tokens.RefreshToken, tokens.RefreshTokenExpiresIn, track); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokens, nil
}

func (a *AuthServiceImpl) sessionFor(ctx context.Context, userData user.User) (auth.SessionResponse, error) {
	payload, err := a.permissions.PayloadFor(ctx, userData.Role)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to load permissions: %w", err)
	}
	return auth.SessionResponse{
		User:        user.ToResponse(userData),
		Permissions: payload,
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, track auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	tokens, err := a.issueTokens(ctx, userData, track)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	session, err := a.sessionFor(ctx, userData)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{TokenResponse: tokens, SessionResponse: session}, nil
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string, googleID string, track auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if err != pgx.ErrNoRows {
			return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
		}
		// First sign-in with this Google account: provision a pending user.
		provider := "google"
		newUser := user.User{
			Email:           email,
			FullName:        email,
			Role:            user.RolePending,
			OAuthProvider:   &provider,
			OAuthProviderID: &googleID,
			EmailVerified:   true,
		}
		userData, err = a.UserRepository.Create(ctx, newUser)
		if err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to create user: %w", err)
		}
	}

	if userData.OAuthProvider == nil || userData.OAuthProviderID == nil {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, googleID, userData.Email)
		if err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	tokens, err := a.issueTokens(ctx, userData, track)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	session, err := a.sessionFor(ctx, userData)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{TokenResponse: tokens, SessionResponse: session}, nil
}

// Me implements auth.AuthService. sessionType picks the session flavour the
// client asked to restore; both resolve against the same user store.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string, sessionType string) (auth.SessionResponse, error) {
	if sessionType != user.SessionTypeUser && sessionType != user.SessionTypeEmployee {
		return auth.SessionResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.SessionResponse{}, auth.ErrUserNotFound
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return a.sessionFor(ctx, userData)
}

// Logout implements auth.AuthService. Revocation is idempotent; a token that
// was never issued simply revokes nothing.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		_, isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(txCtx, refreshToken)
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.RefreshTokenRepository.RevokeRefreshToken(txCtx, refreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	// 1. Verify JWT signature and expiry
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Check token type is "refresh"
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Check DB for revocation/expiry
	userID, isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// 4. Get user
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}

	// 5. Generate new access token
	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role, user.SessionTypeUser)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return resp, nil
}
