package authn

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwarren02/billdesk/internal/auth"
)

type Handler struct {
	verifier   *auth.Verifier
	sessions   *auth.SessionManager
	sessionTTL time.Duration
}

func NewHandler(verifier *auth.Verifier, sessions *auth.SessionManager, sessionTTL time.Duration) *Handler {
	return &Handler{verifier: verifier, sessions: sessions, sessionTTL: sessionTTL}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get(auth.SignInPath, h.signInForm)
	r.Post(auth.SignInPath, h.signIn)
	r.Post(auth.SignOutPath, h.signOut)
}

type signInFailure struct {
	Message string `json:"message"`
}

type signInPage struct {
	Action string   `json:"action"`
	Fields []string `json:"fields"`
}

// signInForm describes the sign-in form so anonymous clients know where and
// what to post.
func (h *Handler) signInForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	form := signInPage{Action: auth.SignInPath, Fields: []string{"email", "password"}}
	if err := json.NewEncoder(w).Encode(form); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, user := h.verifier.SignIn(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))

	switch result {
	case auth.SignInInvalidCredentials:
		writeFailure(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	case auth.SignInError:
		writeFailure(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	// Failures past the credential check are not authentication failures and
	// get no friendly message.
	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		slog.Error("failed to issue session", "error", err, "user_id", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	http.SetCookie(w, auth.SessionCookie(token, h.sessionTTL))
	http.Redirect(w, r, auth.ProtectedPrefix, http.StatusSeeOther)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredSessionCookie())
	http.Redirect(w, r, auth.SignInPath, http.StatusSeeOther)
}

func writeFailure(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(signInFailure{Message: msg}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
