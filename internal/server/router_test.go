package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/dashboard-app/internal/auth"
	"github.com/diewo77/dashboard-app/internal/models"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Customer{}, &models.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db), db
}

func sessionCookie(t *testing.T, db *gorm.DB) *http.Cookie {
	t.Helper()
	u := models.User{ID: uuid.NewString(), Email: "router@test", Password: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	rec := httptest.NewRecorder()
	auth.CreateSession(rec, u.ID)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestProtectedRoutesDenyAnonymous(t *testing.T) {
	h, _ := setupRouter(t)

	for _, target := range []string{"/dashboard", "/dashboard/invoices", "/dashboard/customers"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303 got %d", target, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to sign-in page, got %q", target, loc)
		}
	}

	// mutations are gated the same way
	req := httptest.NewRequest(http.MethodPost, "/dashboard/invoices", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected anonymous mutation to be denied, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestProtectedRoutesAllowSignedIn(t *testing.T) {
	h, db := setupRouter(t)
	cookie := sessionCookie(t, db)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSignedInUserIsSentOffPublicPages(t *testing.T) {
	h, db := setupRouter(t)
	cookie := sessionCookie(t, db)

	for _, target := range []string{"/", "/login"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303 got %d", target, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/dashboard" {
			t.Fatalf("%s: expected redirect to /dashboard, got %q", target, loc)
		}
	}
}

func TestPublicPagesAllowAnonymous(t *testing.T) {
	h, _ := setupRouter(t)

	for _, target := range []string{"/", "/login"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", target, w.Code)
		}
	}
}

func TestSessionForDeletedUserIsAnonymous(t *testing.T) {
	h, db := setupRouter(t)
	cookie := sessionCookie(t, db)

	if err := db.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		t.Fatalf("delete users: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("stale session must be denied, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestHealthEndpointsBypassPolicy(t *testing.T) {
	h, _ := setupRouter(t)

	for _, target := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", target, w.Code)
		}
	}
}
