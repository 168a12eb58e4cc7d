package policy

import "strings"

// protectedPrefix gates the whole admin surface.
const protectedPrefix = "/dashboard"

// Decision is the outcome kind of an access check.
type Decision int

const (
	Allow Decision = iota
	Deny
	Redirect
)

// Verdict is the result of one access check. RedirectTo is set only for
// Redirect decisions.
type Verdict struct {
	Decision   Decision
	RedirectTo string
}

// Authorize decides access for a single navigation. It is pure and must be
// re-evaluated on every request. Rules, first match wins:
//  1. protected path, signed in  -> allow
//  2. protected path, signed out -> deny (the middleware sends the request
//     to the sign-in page)
//  3. public path, signed in     -> redirect to the dashboard (covers a
//     signed-in user visiting the landing or login page)
//  4. public path, signed out    -> allow
func Authorize(isLoggedIn bool, path string) Verdict {
	onDashboard := strings.HasPrefix(path, protectedPrefix)
	switch {
	case onDashboard && isLoggedIn:
		return Verdict{Decision: Allow}
	case onDashboard:
		return Verdict{Decision: Deny}
	case isLoggedIn:
		return Verdict{Decision: Redirect, RedirectTo: protectedPrefix}
	default:
		return Verdict{Decision: Allow}
	}
}
