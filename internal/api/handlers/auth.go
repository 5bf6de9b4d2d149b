package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dom/tutoring-scheduler/internal/api/middleware"
	"github.com/dom/tutoring-scheduler/internal/auth"
	"github.com/dom/tutoring-scheduler/internal/service"
)

type AuthHandler struct {
	authService  *service.AuthService
	accessTTL    time.Duration
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, accessTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, accessTTL: accessTTL, secureCookie: secureCookie}
}

type SignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type SignUpResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type AuthResponse struct {
	OK           bool   `json:"ok"`
	ID           string `json:"id"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !decode(r, &req) {
		writeMessage(w, http.StatusBadRequest, malformedPayload)
		return
	}

	student, err := h.authService.SignUp(r.Context(), service.SignUpInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, r, err, "Failed to sign up")
		return
	}

	writeJSON(w, http.StatusCreated, SignUpResponse{OK: true, ID: student.ID.String()})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decode(r, &req) {
		writeMessage(w, http.StatusBadRequest, malformedPayload)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, r, err, "Failed to log in")
		return
	}

	h.respondWithTokens(w, result)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decode(r, &req) {
		writeMessage(w, http.StatusBadRequest, malformedPayload)
		return
	}

	result, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			writeMessage(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		writeError(w, r, err, "Failed to refresh session")
		return
	}

	h.respondWithTokens(w, result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authService.Logout(r.Context(), principal.ID); err != nil {
		writeError(w, r, err, "Failed to log out")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, result *service.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    result.AccessToken,
		Path:     "/",
		MaxAge:   int(h.accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, AuthResponse{
		OK:           true,
		ID:           result.Account.ID.String(),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}
