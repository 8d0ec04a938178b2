package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrNotFound = errors.New("user not found")

// User is an authenticated principal.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
}

//go:generate mockgen -source=service.go -destination=service_mock.go -package=auth
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// SignInResult tags the outcome of a credential check. Bad credentials and
// backend failures are distinct variants because they surface different
// messages to the user; neither is an error in the Go sense.
type SignInResult int

const (
	SignInOK SignInResult = iota
	SignInInvalidCredentials
	SignInError
)

// Verifier checks a submitted credential pair against stored users.
type Verifier struct {
	users UserRepository
}

func NewVerifier(users UserRepository) *Verifier {
	return &Verifier{users: users}
}

// SignIn verifies the credential pair. An unknown email and a wrong
// password both yield SignInInvalidCredentials; any failure of the lookup
// itself is logged and yields SignInError. The user is returned only on
// SignInOK. Establishing a session is the caller's job.
func (v *Verifier) SignIn(ctx context.Context, email, password string) (SignInResult, *User) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return SignInInvalidCredentials, nil
	}

	user, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return SignInInvalidCredentials, nil
		}

		slog.Error("credential check failed", "error", err)

		return SignInError, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return SignInInvalidCredentials, nil
	}

	return SignInOK, user
}
