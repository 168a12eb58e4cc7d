package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/dashboard-app/internal/models"
	"github.com/diewo77/dashboard-app/internal/services"
)

func seedHandlerUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{ID: uuid.NewString(), Email: email, Password: string(hash)}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLoginSuccessSetsSessionAndRedirects(t *testing.T) {
	db := setupHandlerTestDB(t)
	seedHandlerUser(t, db, "a@test", "secret")
	h := NewAuthHandler(services.NewAuthService(db))

	form := url.Values{"email": {"a@test"}, "password": {"secret"}}
	w := httptest.NewRecorder()
	h.Login(w, postForm("/login", form))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a session cookie")
	}
}

func TestLoginRecognizedFailureRendersInline(t *testing.T) {
	db := setupHandlerTestDB(t)
	seedHandlerUser(t, db, "a@test", "secret")
	h := NewAuthHandler(services.NewAuthService(db))

	form := url.Values{"email": {"a@test"}, "password": {"wrong"}}
	w := httptest.NewRecorder()
	h.Login(w, postForm("/login", form))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != services.CredentialsSignin {
		t.Fatalf("expected %q, got %v", services.CredentialsSignin, resp)
	}
}

func TestLoginUnrecognizedFailureIsFatal(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewAuthHandler(services.NewAuthService(db))

	if err := db.Migrator().DropTable(&models.User{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	form := url.Values{"email": {"a@test"}, "password": {"x"}}
	w := httptest.NewRecorder()
	h.Login(w, postForm("/login", form))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", w.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewAuthHandler(services.NewAuthService(db))

	w := httptest.NewRecorder()
	h.Logout(w, postForm("/dashboard/logout", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie was not cleared")
	}
}
