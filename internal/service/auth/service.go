package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminAccount is the single dashboard operator allowed to sign in.
type AdminAccount struct {
	Email        string
	PasswordHash string // bcrypt
}

type AuthServiceImpl struct {
	jwt.Service
	admin AdminAccount
}

func NewAuthService(jwtService jwt.Service, admin AdminAccount) auth.AuthService {
	return &AuthServiceImpl{
		Service: jwtService,
		admin: AdminAccount{
			Email:        strings.ToLower(strings.TrimSpace(admin.Email)),
			PasswordHash: admin.PasswordHash,
		},
	}
}

// SignIn implements auth.AuthService.
func (a *AuthServiceImpl) SignIn(ctx context.Context, req auth.SignInRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != a.admin.Email {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	// Cek password
	if err := bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("admin signed in", "email", email)
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

// SignOut implements auth.AuthService.
func (a *AuthServiceImpl) SignOut(ctx context.Context, token string) error {
	parsed, err := jwtauth.VerifyToken(a.Service.JWTAuth(), token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	a.Service.RevokeToken(token, parsed.Expiration().Unix())
	return nil
}

// Session implements auth.AuthService. It only reports whether token belongs
// to a signed-in admin.
func (a *AuthServiceImpl) Session(ctx context.Context, token string) auth.SessionResponse {
	if token == "" || a.Service.IsTokenRevoked(token) {
		return auth.SessionResponse{}
	}

	parsed, err := jwtauth.VerifyToken(a.Service.JWTAuth(), token)
	if err != nil {
		return auth.SessionResponse{}
	}

	claims, err := parsed.AsMap(ctx)
	if err != nil {
		return auth.SessionResponse{}
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return auth.SessionResponse{}
	}

	email, _ := claims["email"].(string)
	return auth.SessionResponse{Authenticated: true, Email: email}
}
