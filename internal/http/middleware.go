package http

import (
	"net/http"

	"github.com/mwarren02/billdesk/internal/auth"
)

// Gate evaluates the authorization gate on every guarded request before any
// route handler runs. The gate itself only classifies; this middleware
// performs the resulting redirect. A denied request is sent to the sign-in
// page.
func Gate(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Sign-out is exempt: the gate would redirect a signed-in
			// user to the dashboard before the cookie could be cleared.
			if !auth.Guarded(r.URL.Path) || r.URL.Path == auth.SignOutPath {
				next.ServeHTTP(w, r)
				return
			}

			hasSession := false

			if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
				_, hasSession = sessions.Verify(cookie.Value)
			}

			decision := auth.Evaluate(hasSession, r.URL.Path)

			switch decision.Action {
			case auth.Deny:
				http.Redirect(w, r, auth.SignInPath, http.StatusFound)
			case auth.Redirect:
				http.Redirect(w, r, decision.Target, http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
