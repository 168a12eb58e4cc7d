package handlers

import (
	"log"
	"net/http"

	"github.com/diewo77/dashboard-app/internal/auth"
	"github.com/diewo77/dashboard-app/internal/httpx"
	"github.com/diewo77/dashboard-app/internal/services"
)

type AuthHandler struct {
	Svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// LoginPage: GET /login. Page rendering lives outside this service; the
// route answers with the form descriptor so the surface stays navigable.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"page":   "login",
		"fields": []string{"email", "password"},
	})
}

// Login: POST /login. The recognized credential failure comes back inline
// for the form to render; anything else is fatal and hits the generic error
// boundary.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	user, code, err := h.Svc.Authenticate(r.Context(), r.PostForm)
	if err != nil {
		log.Printf("login: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if code != "" {
		httpx.JSON(w, http.StatusOK, map[string]string{"error": code})
		return
	}
	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout: POST /dashboard/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
