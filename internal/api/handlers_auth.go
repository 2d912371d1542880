package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/homelists/homelists/internal/api/respond"
	"github.com/homelists/homelists/internal/api/validate"
	"github.com/homelists/homelists/internal/auth"
	"github.com/homelists/homelists/internal/services"
)

// AuthHandler is a thin HTTP transport over AuthService. On signup and login
// it issues a session token, returned in the body and set as an HttpOnly
// cookie so both API clients and browsers can hold a session.
type AuthHandler struct {
	svc    *services.AuthService
	tokens *auth.Tokens
}

func NewAuthHandler(svc *services.AuthService, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SignUp POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string  `json:"email"`
		Password    string  `json:"password"`
		DisplayName *string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Email(req.Email); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Password(req.Password); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	u, err := h.svc.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	tok, err := h.tokens.Sign(u.UserID)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	h.setSessionCookie(w, tok)
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"user": u, "token": tok})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	u, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respond.WriteUnauthorized(w, err.Error())
			return
		}
		respond.WriteServiceError(w, err)
		return
	}
	tok, err := h.tokens.Sign(u.UserID)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	h.setSessionCookie(w, tok)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": u, "token": tok})
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	u, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}
