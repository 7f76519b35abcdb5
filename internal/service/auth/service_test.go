package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
	testEmail     = "admin@example.com"
	testPassword  = "password123"
)

func newTestAuthService(t *testing.T) auth.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(jwt.NewJWTService(testSecret, testAccessExp), AdminAccount{
		Email:        "Admin@Example.com",
		PasswordHash: string(hash),
	})
}

// ===== AUTH SERVICE TESTS =====

func TestAuthService_SignIn_Success(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.SignIn(context.Background(), auth.SignInRequest{Email: " ADMIN@example.com", Password: testPassword})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotZero(t, resp.AccessTokenExpiresIn)
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.SignIn(context.Background(), auth.SignInRequest{Email: testEmail, Password: "wrong-password"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_SignIn_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.SignIn(context.Background(), auth.SignInRequest{Email: "someone@example.com", Password: testPassword})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_SignIn_Validation(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.SignIn(context.Background(), auth.SignInRequest{Email: "nope"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestAuthService_SessionAndSignOut(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	assert.False(t, svc.Session(ctx, "").Authenticated)
	assert.False(t, svc.Session(ctx, "garbage").Authenticated)

	resp, err := svc.SignIn(ctx, auth.SignInRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	session := svc.Session(ctx, resp.AccessToken)
	assert.True(t, session.Authenticated)
	assert.Equal(t, testEmail, session.Email)

	require.NoError(t, svc.SignOut(ctx, resp.AccessToken))
	assert.False(t, svc.Session(ctx, resp.AccessToken).Authenticated)

	assert.ErrorIs(t, svc.SignOut(ctx, "garbage"), auth.ErrInvalidToken)
}
