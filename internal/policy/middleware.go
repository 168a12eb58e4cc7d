package policy

import (
	"net/http"

	"github.com/diewo77/dashboard-app/internal/auth"
)

// signInPath is where denied requests are sent.
const signInPath = "/login"

// Middleware evaluates the access decision for every request before any
// handler runs. It expects auth.Middleware to have populated the request
// context already.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, loggedIn := auth.UserIDFromContext(r.Context())
		v := Authorize(loggedIn, r.URL.Path)
		switch v.Decision {
		case Deny:
			http.Redirect(w, r, signInPath, http.StatusSeeOther)
		case Redirect:
			http.Redirect(w, r, v.RedirectTo, http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
