package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mwarren02/billdesk/internal/auth"
)

func TestVerifier_SignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &auth.User{
		ID:           uuid.New(),
		Email:        "dana@example.com",
		PasswordHash: string(hash),
	}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *auth.MockUserRepository)
		want      auth.SignInResult
		wantUser  bool
	}

	tests := []testCase{
		{
			name:     "CorrectPair",
			email:    "dana@example.com",
			password: "hunter22",
			setupMock: func(m *auth.MockUserRepository) {
				m.EXPECT().FindByEmail(gomock.Any(), "dana@example.com").Return(user, nil)
			},
			want:     auth.SignInOK,
			wantUser: true,
		},
		{
			name:     "WrongPassword",
			email:    "dana@example.com",
			password: "hunter23",
			setupMock: func(m *auth.MockUserRepository) {
				m.EXPECT().FindByEmail(gomock.Any(), "dana@example.com").Return(user, nil)
			},
			want: auth.SignInInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "nobody@example.com",
			password: "hunter22",
			setupMock: func(m *auth.MockUserRepository) {
				m.EXPECT().FindByEmail(gomock.Any(), "nobody@example.com").Return(nil, auth.ErrNotFound)
			},
			want: auth.SignInInvalidCredentials,
		},
		{
			// An unreachable identity backend is a distinct outcome from bad
			// credentials.
			name:     "BackendUnreachable",
			email:    "dana@example.com",
			password: "hunter22",
			setupMock: func(m *auth.MockUserRepository) {
				m.EXPECT().FindByEmail(gomock.Any(), "dana@example.com").Return(nil, errors.New("connection refused"))
			},
			want: auth.SignInError,
		},
		{
			name:      "EmptyEmail",
			email:     "  ",
			password:  "hunter22",
			setupMock: func(m *auth.MockUserRepository) {},
			want:      auth.SignInInvalidCredentials,
		},
		{
			name:      "EmptyPassword",
			email:     "dana@example.com",
			password:  "",
			setupMock: func(m *auth.MockUserRepository) {},
			want:      auth.SignInInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := auth.NewMockUserRepository(ctrl)
			tt.setupMock(users)

			verifier := auth.NewVerifier(users)
			result, got := verifier.SignIn(context.Background(), tt.email, tt.password)

			assert.Equal(t, tt.want, result)

			if tt.wantUser {
				require.NotNil(t, got)
				assert.Equal(t, user.ID, got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}
