package session

// Route access rules, kept as pure functions of the session's token presence
// so they are testable without any UI. A redirect always replaces the history
// entry: back-navigation must not return to a page the guard refused.

const (
	// LoginRoute is the public landing route.
	LoginRoute = "/"
	// DashboardRoute is the authenticated landing route.
	DashboardRoute = "/dashboard"
)

// Decision is the outcome of a guard check.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// RequireAuth gates authenticated-only routes: without a token the guarded
// content is never rendered and the visitor lands on the login route.
func RequireAuth(hasToken bool) Decision {
	if !hasToken {
		return Decision{RedirectTo: LoginRoute}
	}
	return Decision{Allow: true}
}

// RequireAnon gates anonymous-only routes (login, register): with a token
// present the visitor is sent to the dashboard instead.
func RequireAnon(hasToken bool) Decision {
	if hasToken {
		return Decision{RedirectTo: DashboardRoute}
	}
	return Decision{Allow: true}
}
