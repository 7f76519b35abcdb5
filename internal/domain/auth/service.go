package auth

import (
	"context"
)

type AuthService interface {
	SignIn(ctx context.Context, req SignInRequest) (TokenResponse, error)
	SignOut(ctx context.Context, token string) error
	Session(ctx context.Context, token string) SessionResponse
}
