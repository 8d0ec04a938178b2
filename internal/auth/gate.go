package auth

import "strings"

const (
	// ProtectedPrefix guards everything under the dashboard.
	ProtectedPrefix = "/dashboard"

	// SignInPath is where denied requests are sent.
	SignInPath = "/login"

	// SignOutPath must stay reachable for signed-in users, so the gate's
	// caller exempts it; the gate itself would bounce them to the dashboard.
	SignOutPath = "/logout"
)

// Action classifies what the caller should do with a request.
type Action int

const (
	Allow Action = iota
	Deny
	Redirect
)

// Decision is the gate's verdict for one request. Target is set only for
// Redirect. The gate never touches the request or response itself; the
// caller performs the redirect.
type Decision struct {
	Action Action
	Target string
}

// Guarded reports whether the gate evaluates the given path at all.
// Internal API routes and static assets bypass the gate entirely.
func Guarded(path string) bool {
	if strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/static") {
		return false
	}

	return !strings.HasSuffix(path, ".png")
}

// Evaluate decides whether a request may proceed, based only on session
// presence and the requested path. A signed-in user is kept out of
// public-only pages such as the sign-in form and sent to the dashboard
// instead; an anonymous user is denied everything under the protected
// prefix.
func Evaluate(hasSession bool, path string) Decision {
	if strings.HasPrefix(path, ProtectedPrefix) {
		if hasSession {
			return Decision{Action: Allow}
		}

		return Decision{Action: Deny}
	}

	if hasSession {
		return Decision{Action: Redirect, Target: ProtectedPrefix}
	}

	return Decision{Action: Allow}
}
