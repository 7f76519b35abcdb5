package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	SignIn(w http.ResponseWriter, r *http.Request)
	SignOut(w http.ResponseWriter, r *http.Request)
	Session(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// SignIn implements AuthHandler.
func (a *AuthHandlerImpl) SignIn(w http.ResponseWriter, r *http.Request) {
	var signInReq auth.SignInRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&signInReq); err != nil {
		slog.Error("SignIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// 2. Call service
	tokenResponse, err := a.authService.SignIn(r.Context(), signInReq)
	if err != nil {
		slog.Error("SignIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signed in", tokenResponse)
}

// SignOut implements AuthHandler.
func (a *AuthHandlerImpl) SignOut(w http.ResponseWriter, r *http.Request) {
	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		response.Unauthorized(w, "Missing bearer token")
		return
	}

	if err := a.authService.SignOut(r.Context(), token); err != nil {
		slog.Error("SignOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signed out", nil)
}

// Session implements AuthHandler. It never fails; a missing or bad token is
// reported as unauthenticated.
func (a *AuthHandlerImpl) Session(w http.ResponseWriter, r *http.Request) {
	response.Success(w, a.authService.Session(r.Context(), jwtauth.TokenFromHeader(r)))
}
