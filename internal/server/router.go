package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/dashboard-app/internal/auth"
	"github.com/diewo77/dashboard-app/internal/handlers"
	"github.com/diewo77/dashboard-app/internal/httpx"
	"github.com/diewo77/dashboard-app/internal/models"
	"github.com/diewo77/dashboard-app/internal/policy"
	"github.com/diewo77/dashboard-app/internal/services"
	"github.com/diewo77/dashboard-app/internal/validation"
	"github.com/diewo77/dashboard-app/internal/view"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. The access policy wraps every page route; health endpoints sit
// outside it.
func New(db *gorm.DB) http.Handler {
	// Sessions are presence-only, but a well-signed cookie for a user that
	// no longer exists must not count as signed in.
	auth.SetUserVerifier(func(_ context.Context, uid string) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	cache := view.NewCache()
	invSvc := services.NewInvoiceService(db, validation.NewInvoiceValidator())
	authSvc := services.NewAuthService(db)

	ih := handlers.NewInvoiceHandler(db, invSvc, cache)
	ch := handlers.NewCustomerHandler(db)
	dh := handlers.NewDashboardHandler(db)
	ah := handlers.NewAuthHandler(authSvc)

	app := http.NewServeMux()

	// Public routes; the policy middleware still redirects signed-in users
	// off them and onto the dashboard.
	app.HandleFunc("GET /{$}", landingPage)
	app.HandleFunc("GET /login", ah.LoginPage)
	app.HandleFunc("POST /login", ah.Login)

	// Protected routes: everything under /dashboard.
	app.HandleFunc("GET /dashboard", dh.Summary)
	app.HandleFunc("POST /dashboard/logout", ah.Logout)
	app.HandleFunc("GET /dashboard/invoices", ih.List)
	app.HandleFunc("POST /dashboard/invoices", ih.Create)
	app.HandleFunc("POST /dashboard/invoices/{id}", ih.Update)
	app.HandleFunc("POST /dashboard/invoices/{id}/delete", ih.Delete)
	app.HandleFunc("GET /dashboard/customers", ch.List)

	root := http.NewServeMux()

	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	root.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	root.Handle("/", auth.Middleware(policy.Middleware(app)))

	return withRecover(withLogging(root))
}

func landingPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("Invoices Dashboard API - sign in at /login")); err != nil {
		_ = err
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic: %v", rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
