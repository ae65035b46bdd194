package auth

import (
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/validator"
)

// LoginRequest carries the credential form posted by the web client. Remember
// controls whether the client persists the returned token; the server issues
// the same token pair either way.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RefreshTokenRequest carries a refresh token when the cookie is absent.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SessionTrackingRequest records where a refresh token was issued from.
type SessionTrackingRequest struct {
	IPAddress string
	UserAgent string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

// SessionResponse is the payload of both the login and "who am I" endpoints:
// the user plus the raw permission rows the client converts into its nested
// permission map.
type SessionResponse struct {
	User        user.UserResponse  `json:"user"`
	Permissions permission.Payload `json:"permissions"`
}

// LoginResponse bundles tokens with the session payload so the client can
// bootstrap in a single round trip.
type LoginResponse struct {
	TokenResponse
	SessionResponse
}
