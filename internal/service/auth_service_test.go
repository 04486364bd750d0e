package service_test

import (
	"context"
	"testing"

	"github.com/hana/diary-share/internal/repository/postgres"
	"github.com/hana/diary-share/internal/service"
	"github.com/hana/diary-share/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.RegisterInput
		setup   func()
		wantErr error
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Username: "newuser",
				Email:    "newuser@example.com",
				Password: "password123",
			},
		},
		{
			name: "nickname defaults to username",
			input: service.RegisterInput{
				Username: "plainuser",
				Email:    "plainuser@example.com",
				Password: "password123",
			},
		},
		{
			name: "duplicate username",
			input: service.RegisterInput{
				Username: "existinguser",
				Email:    "fresh@example.com",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrUsernameExists,
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Username: "freshuser",
				Email:    "taken@example.com",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Username, result.User.Username)
			assert.Equal(t, tt.input.Username, result.User.Nickname)
			assert.NotEmpty(t, result.AccessToken)

			// The token's subject must round-trip to the registered username
			subject, err := authService.ValidateToken(result.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tt.input.Username, subject)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "successful login",
			input: service.LoginInput{Username: "loginuser", Password: "correctpassword"},
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{Username: "loginuser", Password: "wrongpassword"},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:    "unknown user",
			input:   service.LoginInput{Username: "ghost", Password: "correctpassword"},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
		})
	}
}

func TestAuthService_TokenExpiry(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)

	cfg := testutil.TestConfig()
	cfg.TokenTTLMinutes = -1 // already past expiry at issue time
	authService := service.NewAuthService(repos.User, cfg)

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	token, err := authService.IssueToken(user)
	require.NoError(t, err)

	_, err = authService.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_ResolveUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("resolved").Build(t, testDB.DB)

	token, err := authService.IssueToken(user)
	require.NoError(t, err)

	resolved, err := authService.ResolveUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, err = authService.ResolveUser(ctx, "not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	// A token signed with a different secret is rejected outright
	otherCfg := testutil.TestConfig()
	otherCfg.JWTSecret = "a-completely-different-secret"
	otherService := service.NewAuthService(repos.User, otherCfg)
	foreignToken, err := otherService.IssueToken(user)
	require.NoError(t, err)

	_, err = authService.ResolveUser(ctx, foreignToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	user, _ := testutil.NewUserBuilder().
		WithUsername("profileuser").
		WithPassword("oldpassword").
		Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().
		WithEmail("occupied@example.com").
		Build(t, testDB.DB)
	_ = other

	t.Run("nickname change", func(t *testing.T) {
		updated, err := authService.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
			Nickname: strPtr("fresh nickname"),
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh nickname", updated.Nickname)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		_, err := authService.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
			Email: strPtr("occupied@example.com"),
		})
		assert.ErrorIs(t, err, service.ErrEmailExists)
	})

	t.Run("password change requires current password", func(t *testing.T) {
		_, err := authService.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
			NewPassword: strPtr("newpassword"),
		})
		assert.ErrorIs(t, err, service.ErrCurrentPasswordMissing)
	})

	t.Run("password change rejects wrong current password", func(t *testing.T) {
		_, err := authService.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
			CurrentPassword: strPtr("nope"),
			NewPassword:     strPtr("newpassword"),
		})
		assert.ErrorIs(t, err, service.ErrCurrentPasswordMismatch)
	})

	t.Run("password change", func(t *testing.T) {
		_, err := authService.UpdateProfile(ctx, user.ID, service.UpdateProfileInput{
			CurrentPassword: strPtr("oldpassword"),
			NewPassword:     strPtr("newpassword"),
		})
		require.NoError(t, err)

		_, err = authService.Login(ctx, service.LoginInput{Username: "profileuser", Password: "newpassword"})
		assert.NoError(t, err)

		_, err = authService.Login(ctx, service.LoginInput{Username: "profileuser", Password: "oldpassword"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
